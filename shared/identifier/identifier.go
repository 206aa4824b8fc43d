// Package identifier describes record ids independently of the store that
// issued them. The relational store issues positive integers, the document
// store issues 24 character hex object ids. Everywhere above the store an id
// is an opaque string.
package identifier

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"tickoff/config"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

var ErrInvalidID = errors.New("invalid id")

// Codec reports whether a string is an id the configured store could have issued.
type Codec interface {
	Valid(id string) bool
}

type Serial struct{}

func (Serial) Valid(id string) bool {
	_, ok := ParseSerial(id)

	return ok
}

type ObjectID struct{}

func (ObjectID) Valid(id string) bool {
	return primitive.IsValidObjectID(id)
}

func New(cfg *config.Config) Codec {
	if cfg.IsMongo() {
		return ObjectID{}
	}

	return Serial{}
}

// ParseSerial parses a relational id. Only plain positive base-10 integers
// are accepted so every id has exactly one textual form.
func ParseSerial(id string) (int64, bool) {
	if id == "" || id[0] < '1' || id[0] > '9' {
		return 0, false
	}

	n, err := strconv.ParseInt(id, 10, 64)
	if err != nil {
		return 0, false
	}

	return n, true
}

func FormatSerial(id int64) string {
	return strconv.FormatInt(id, 10)
}

// ID is an id as it travels in JSON. It is written as a string and read from
// either a string or an integer number.
type ID string

func (id ID) String() string {
	return string(id)
}

func (id ID) MarshalJSON() ([]byte, error) {
	return json.Marshal(string(id))
}

func (id *ID) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)

	if bytes.Equal(data, []byte("null")) {
		*id = ""

		return nil
	}

	if len(data) > 0 && data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidID, err)
		}

		*id = ID(s)

		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return fmt.Errorf("%w: %w", ErrInvalidID, err)
	}

	if _, err := n.Int64(); err != nil {
		return fmt.Errorf("%w: %s is not an integer", ErrInvalidID, n.String())
	}

	*id = ID(n.String())

	return nil
}
