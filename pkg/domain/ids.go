// Package domain defines typed identifiers shared across the repository.
//
// Wrapping uuid.UUID in named types keeps identifiers from different
// aggregates out of each other's call sites at compile time.
package domain

import (
	"github.com/google/uuid"

	dErrors "peoplebook/pkg/domain-errors"
)

// PersonID identifies a person record. Server-assigned, immutable.
type PersonID uuid.UUID

// NewPersonID returns a fresh random identifier.
func NewPersonID() PersonID {
	return PersonID(uuid.New())
}

// ParsePersonID validates s as a non-nil UUID.
func ParsePersonID(s string) (PersonID, error) {
	if s == "" {
		return PersonID{}, dErrors.New(dErrors.CodeBadRequest, "id is required")
	}
	u, err := uuid.Parse(s)
	if err != nil {
		return PersonID{}, dErrors.New(dErrors.CodeBadRequest, "id must be a valid UUID")
	}
	if u == uuid.Nil {
		return PersonID{}, dErrors.New(dErrors.CodeBadRequest, "id must not be the nil UUID")
	}
	return PersonID(u), nil
}

func (id PersonID) String() string {
	return uuid.UUID(id).String()
}

// IsNil reports whether the identifier is unset.
func (id PersonID) IsNil() bool {
	return uuid.UUID(id) == uuid.Nil
}

// MarshalText implements encoding.TextMarshaler so PersonID renders as the
// canonical UUID string in JSON documents.
func (id PersonID) MarshalText() ([]byte, error) {
	return []byte(id.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (id *PersonID) UnmarshalText(b []byte) error {
	u, err := uuid.Parse(string(b))
	if err != nil {
		return err
	}
	*id = PersonID(u)
	return nil
}
