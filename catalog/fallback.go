package catalog

// firstNonEmpty returns the first non-empty value. Order matters: callers
// pass the preferred field first.
func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// firstYear prefers the primary year and falls back to the secondary one.
// Zero counts as absent.
func firstYear(primary, secondary *int) *int {
	if primary != nil && *primary != 0 {
		return primary
	}
	if secondary != nil && *secondary != 0 {
		return secondary
	}
	return nil
}

func episodeThumbnail(card, list, generic string) string {
	return firstNonEmpty(card, list, generic)
}

func orEmpty[T any](s []T) []T {
	if s == nil {
		return []T{}
	}
	return s
}
