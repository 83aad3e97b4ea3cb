// Package student defines the roster record returned by the backend and the
// HTTP client that lists it.
package student

import (
	"studentroster/internal/jsonutil"
)

// ID identifies a student. The backend's primary key is opaque here: numeric
// and string identifiers are both accepted and kept in string form.
type ID string

// UnmarshalJSON accepts a JSON number, string or null.
func (id *ID) UnmarshalJSON(data []byte) error {
	s, err := jsonutil.ScalarToString(data, "student id")
	if err != nil {
		return err
	}
	*id = ID(s)
	return nil
}

// String returns the identifier's string form.
func (id ID) String() string { return string(id) }

// Student is one roster record.
type Student struct {
	ID   ID     `json:"id"`
	Name string `json:"name"`
}
