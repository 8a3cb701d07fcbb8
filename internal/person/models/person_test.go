package models

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplebook/pkg/domain"
	dErrors "peoplebook/pkg/domain-errors"
)

func validFields() Fields {
	return Fields{
		FirstName:   "Ana",
		LastName:    "Lee",
		DateOfBirth: "04-08-1996",
		Email:       "a@x.com",
		Gender:      "Female",
		Country:     "India",
		State:       "Gujarat",
		City:        "Surat",
		Address:     "1 Rd",
		Pincode:     "395030",
	}
}

func TestNewPerson(t *testing.T) {
	now := time.Date(2026, 2, 10, 9, 30, 0, 0, time.UTC)

	t.Run("accepts a fully populated record", func(t *testing.T) {
		p, err := NewPerson(domain.NewPersonID(), validFields(), now)
		require.NoError(t, err)
		assert.Equal(t, now, p.CreatedAt)
		assert.Equal(t, now, p.UpdatedAt)
		assert.Equal(t, "Ana", p.FirstName)
	})

	t.Run("date of birth, gender and city may be empty", func(t *testing.T) {
		f := validFields()
		f.DateOfBirth = ""
		f.Gender = ""
		f.City = ""
		_, err := NewPerson(domain.NewPersonID(), f, now)
		require.NoError(t, err)
	})

	t.Run("rejects each missing required field", func(t *testing.T) {
		mutations := map[string]func(*Fields){
			"first_Name": func(f *Fields) { f.FirstName = "" },
			"last_Name":  func(f *Fields) { f.LastName = "" },
			"email":      func(f *Fields) { f.Email = "" },
			"country":    func(f *Fields) { f.Country = "" },
			"state":      func(f *Fields) { f.State = "  " },
			"address":    func(f *Fields) { f.Address = "" },
			"pincode":    func(f *Fields) { f.Pincode = "" },
		}
		for wireName, mutate := range mutations {
			f := validFields()
			mutate(&f)
			_, err := NewPerson(domain.NewPersonID(), f, now)
			require.Error(t, err, wireName)
			assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest), wireName)
			assert.Contains(t, err.Error(), wireName)
		}
	})

	t.Run("no format validation on email or pincode", func(t *testing.T) {
		f := validFields()
		f.Email = "not-an-email"
		f.Pincode = "not numeric"
		_, err := NewPerson(domain.NewPersonID(), f, now)
		require.NoError(t, err)
	})
}

func TestPatchApply(t *testing.T) {
	now := time.Now()
	p, err := NewPerson(domain.NewPersonID(), validFields(), now)
	require.NoError(t, err)

	t.Run("nil fields are untouched", func(t *testing.T) {
		cp := *p
		Patch{}.Apply(&cp)
		assert.Equal(t, *p, cp)
	})

	t.Run("set fields replace values, including to empty", func(t *testing.T) {
		cp := *p
		city := "Rajkot"
		dob := ""
		Patch{City: &city, DateOfBirth: &dob}.Apply(&cp)
		assert.Equal(t, "Rajkot", cp.City)
		assert.Empty(t, cp.DateOfBirth)
		assert.Equal(t, p.FirstName, cp.FirstName)
	})
}
