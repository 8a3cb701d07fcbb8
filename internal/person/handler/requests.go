package handler

import "peoplebook/internal/person/models"

// createUserRequest is the wire shape of POST /api/users. Identifier and
// timestamps are server-assigned and therefore absent here.
type createUserRequest struct {
	FirstName   string `json:"first_Name"`
	LastName    string `json:"last_Name"`
	DateOfBirth string `json:"date_of_birth"`
	Email       string `json:"email"`
	Gender      string `json:"gender"`
	Country     string `json:"country"`
	State       string `json:"state"`
	City        string `json:"city"`
	Address     string `json:"address"`
	Pincode     string `json:"pincode"`
}

func (r createUserRequest) toFields() models.Fields {
	return models.Fields{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Email:       r.Email,
		Gender:      r.Gender,
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
		Address:     r.Address,
		Pincode:     r.Pincode,
	}
}

// updateUserRequest is the wire shape of PUT /api/users/{id}. Pointer fields
// distinguish "absent" from "set to empty", preserving the endpoint's
// partial-merge semantics.
type updateUserRequest struct {
	FirstName   *string `json:"first_Name"`
	LastName    *string `json:"last_Name"`
	DateOfBirth *string `json:"date_of_birth"`
	Email       *string `json:"email"`
	Gender      *string `json:"gender"`
	Country     *string `json:"country"`
	State       *string `json:"state"`
	City        *string `json:"city"`
	Address     *string `json:"address"`
	Pincode     *string `json:"pincode"`
}

func (r updateUserRequest) toPatch() models.Patch {
	return models.Patch{
		FirstName:   r.FirstName,
		LastName:    r.LastName,
		DateOfBirth: r.DateOfBirth,
		Email:       r.Email,
		Gender:      r.Gender,
		Country:     r.Country,
		State:       r.State,
		City:        r.City,
		Address:     r.Address,
		Pincode:     r.Pincode,
	}
}
