package catalog

import (
	"regexp"
	"strconv"
)

var addressPattern = regexp.MustCompile(`^(0|[1-9][0-9]*)-(0|[1-9][0-9]*)$`)

// Address identifies one episode of a series.
type Address struct {
	Season  int
	Episode int
}

func (a Address) String() string {
	return EncodeAddress(a.Season, a.Episode)
}

// EncodeAddress formats a season/episode pair as "season-episode".
func EncodeAddress(season, episode int) string {
	return strconv.Itoa(season) + "-" + strconv.Itoa(episode)
}

// ParseAddress is the inverse of EncodeAddress. Signs, padding, extra
// segments and numbers that overflow an int are rejected.
func ParseAddress(s string) (Address, error) {
	m := addressPattern.FindStringSubmatch(s)
	if m == nil {
		return Address{}, &AddressError{Input: s}
	}

	season, err := strconv.Atoi(m[1])
	if err != nil {
		return Address{}, &AddressError{Input: s}
	}
	episode, err := strconv.Atoi(m[2])
	if err != nil {
		return Address{}, &AddressError{Input: s}
	}

	return Address{Season: season, Episode: episode}, nil
}
