package models

import (
	"errors"

	"github.com/goccy/go-json"
)

// ErrInvalidServerRef is returned when a descriptor is not valid JSON.
var ErrInvalidServerRef = errors.New("invalid server descriptor")

// ServerRef is an opaque playback-source descriptor. The raw JSON it was
// decoded from is re-emitted untouched; only the option label is read.
type ServerRef struct {
	Option string
	raw    json.RawMessage
}

// NewServerRef wraps an already encoded descriptor.
func NewServerRef(raw []byte) (ServerRef, error) {
	var ref ServerRef
	if err := ref.UnmarshalJSON(raw); err != nil {
		return ServerRef{}, err
	}
	return ref, nil
}

// Raw returns the descriptor exactly as it was received.
func (s ServerRef) Raw() json.RawMessage {
	return s.raw
}

// MarshalJSON implements json.Marshaler.
func (s ServerRef) MarshalJSON() ([]byte, error) {
	if len(s.raw) > 0 {
		return s.raw, nil
	}
	return json.Marshal(struct {
		Option string `json:"option"`
	}{s.Option})
}

// UnmarshalJSON implements json.Unmarshaler.
func (s *ServerRef) UnmarshalJSON(data []byte) error {
	if !json.Valid(data) {
		return ErrInvalidServerRef
	}
	s.raw = append(json.RawMessage(nil), data...)

	var label struct {
		Option string `json:"option"`
	}
	// Descriptors that are not objects simply carry no label.
	if err := json.Unmarshal(data, &label); err == nil {
		s.Option = label.Option
	}
	return nil
}
