package models

import (
	"strings"
	"time"

	"peoplebook/pkg/domain"
	dErrors "peoplebook/pkg/domain-errors"
)

// DateLayout is the wire format for date_of_birth (DD-MM-YYYY). The store
// keeps the field as an opaque string; only clients parse it.
const DateLayout = "02-01-2006"

// Person is the single document type of the store.
//
// Invariants:
//   - ID uniquely determines at most one record; absence means "not found"
//   - Required fields (see Validate) are non-empty on every accepted write
//   - CreatedAt is immutable after construction; UpdatedAt moves on update
//
// Deliberately lenient, matching the observed store behavior:
//   - no format validation on email, pincode, or date_of_birth
//   - no referential check that state belongs to country or city to
//     (country, state) — the form's cascade is the only enforcement
//   - no uniqueness constraint on email
//
// The JSON tags are the persisted wire names, mixed case included.
type Person struct {
	ID          domain.PersonID `json:"id"`
	FirstName   string          `json:"first_Name"`
	LastName    string          `json:"last_Name"`
	DateOfBirth string          `json:"date_of_birth"`
	Email       string          `json:"email"`
	Gender      string          `json:"gender"`
	Country     string          `json:"country"`
	State       string          `json:"state"`
	City        string          `json:"city"`
	Address     string          `json:"address"`
	Pincode     string          `json:"pincode"`
	CreatedAt   time.Time       `json:"createdAt"`
	UpdatedAt   time.Time       `json:"updatedAt"`
}

// Fields is the user-supplied portion of a person record.
type Fields struct {
	FirstName   string
	LastName    string
	DateOfBirth string
	Email       string
	Gender      string
	Country     string
	State       string
	City        string
	Address     string
	Pincode     string
}

// NewPerson builds a validated person record with server-assigned identity
// and timestamps.
func NewPerson(id domain.PersonID, f Fields, now time.Time) (*Person, error) {
	p := &Person{
		ID:          id,
		FirstName:   f.FirstName,
		LastName:    f.LastName,
		DateOfBirth: f.DateOfBirth,
		Email:       f.Email,
		Gender:      f.Gender,
		Country:     f.Country,
		State:       f.State,
		City:        f.City,
		Address:     f.Address,
		Pincode:     f.Pincode,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

// Validate enforces required-field presence. date_of_birth, gender and city
// may be empty: the form allows submitting without a birth date, gender is
// free text, and city falls back to manual entry.
func (p *Person) Validate() error {
	required := []struct {
		wireName string
		value    string
	}{
		{"first_Name", p.FirstName},
		{"last_Name", p.LastName},
		{"email", p.Email},
		{"country", p.Country},
		{"state", p.State},
		{"address", p.Address},
		{"pincode", p.Pincode},
	}
	for _, f := range required {
		if strings.TrimSpace(f.value) == "" {
			return dErrors.Newf(dErrors.CodeBadRequest, "%s is required", f.wireName)
		}
	}
	return nil
}

// Patch carries a partial update; nil fields are left untouched. This mirrors
// the merge semantics of the store's update endpoint, where callers may send
// a subset of fields.
type Patch struct {
	FirstName   *string
	LastName    *string
	DateOfBirth *string
	Email       *string
	Gender      *string
	Country     *string
	State       *string
	City        *string
	Address     *string
	Pincode     *string
}

// Apply merges the non-nil fields of the patch into p.
func (patch Patch) Apply(p *Person) {
	set := func(dst *string, src *string) {
		if src != nil {
			*dst = *src
		}
	}
	set(&p.FirstName, patch.FirstName)
	set(&p.LastName, patch.LastName)
	set(&p.DateOfBirth, patch.DateOfBirth)
	set(&p.Email, patch.Email)
	set(&p.Gender, patch.Gender)
	set(&p.Country, patch.Country)
	set(&p.State, patch.State)
	set(&p.City, patch.City)
	set(&p.Address, patch.Address)
	set(&p.Pincode, patch.Pincode)
}
