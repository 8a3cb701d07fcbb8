// Package form holds the single in-progress person record (the draft) and
// decides create-versus-update on submission.
//
// The draft mirrors the record fields, with the date of birth kept as a
// structured time value and the city kept as a tagged choice between a
// lookup selection and free-typed text. Country, state and city form a
// dependency chain: assigning an upstream field unconditionally clears
// everything downstream, since the downstream option lists are derived
// from the upstream value.
package form

import (
	"context"
	"sync/atomic"
	"time"

	"peoplebook/pkg/client"
	dErrors "peoplebook/pkg/domain-errors"
	"peoplebook/pkg/geo"
)

// Field names the assignable text fields of a draft.
type Field string

const (
	FieldFirstName Field = "firstName"
	FieldLastName  Field = "lastName"
	FieldEmail     Field = "email"
	FieldGender    Field = "gender"
	FieldCountry   Field = "country"
	FieldState     Field = "state"
	FieldAddress   Field = "address"
	FieldPincode   Field = "pincode"
)

// GenderOptions is the fixed choice list offered for the gender field.
var GenderOptions = []string{"Male", "Female", "Transgender"}

// CityChoice is a tagged choice between a city picked from the lookup
// list and one typed in free text. The zero value means no city chosen.
// Modelling the manual path as its own variant keeps a real city that
// happens to share a sentinel's spelling from being misread as manual
// entry.
type CityChoice struct {
	kind cityKind
	name string
}

type cityKind int

const (
	cityNone cityKind = iota
	cityLookup
	cityManual
)

// LookupCity selects a city from the geography lookup list.
func LookupCity(name string) CityChoice {
	return CityChoice{kind: cityLookup, name: name}
}

// ManualCity captures a free-typed city name, bypassing the lookup list.
func ManualCity(text string) CityChoice {
	return CityChoice{kind: cityManual, name: text}
}

// IsManual reports whether the choice is free-typed text.
func (c CityChoice) IsManual() bool { return c.kind == cityManual }

// IsSet reports whether any city has been chosen.
func (c CityChoice) IsSet() bool { return c.kind != cityNone }

// Resolve returns the effective city name for persistence: the lookup
// selection or the manual text, whichever variant is held.
func (c CityChoice) Resolve() string { return c.name }

// Draft is the in-progress record. All fields start empty.
type Draft struct {
	FirstName   string
	LastName    string
	Email       string
	Gender      string
	Country     string
	State       string
	City        CityChoice
	Address     string
	Pincode     string
	DateOfBirth time.Time
}

// Outcome classifies the result of a submission.
type Outcome int

const (
	// OutcomeRejected means the gate fields were incomplete and no
	// request was issued.
	OutcomeRejected Outcome = iota
	// OutcomeCreated means a new record was persisted.
	OutcomeCreated
	// OutcomeUpdated means the edit target was overwritten.
	OutcomeUpdated
)

// Result is the outcome of a submission. Record is set for Created and
// Updated outcomes.
type Result struct {
	Outcome Outcome
	Record  *client.Record
}

// ErrSubmitInFlight is returned when Submit is called while a previous
// submission has not yet completed.
var ErrSubmitInFlight = dErrors.New(dErrors.CodeConflict, "a submission is already in progress")

// API is the slice of the record service the controller needs.
type API interface {
	CreateUser(ctx context.Context, f client.RecordFields) (*client.Record, error)
	UpdateUser(ctx context.Context, id string, f client.RecordFields) (*client.Record, error)
}

// Refresher is notified after every successful submission so the held
// record collection can be re-fetched.
type Refresher interface {
	Refresh(ctx context.Context) error
}

// Controller mediates edits to the draft and submits it.
type Controller struct {
	api       API
	geo       *geo.Lookup
	refresher Refresher

	draft     Draft
	editingID string
	inFlight  atomic.Bool
}

// Option configures the controller.
type Option func(*Controller)

// WithRefresher registers a collection refresher to run after each
// successful create or update.
func WithRefresher(r Refresher) Option {
	return func(c *Controller) { c.refresher = r }
}

// New constructs a controller over the given record API and geography
// lookup.
func New(api API, lookup *geo.Lookup, opts ...Option) *Controller {
	c := &Controller{
		api: api,
		geo: lookup,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Draft returns a copy of the current draft.
func (c *Controller) Draft() Draft { return c.draft }

// EditingID returns the identifier of the record being edited, or empty
// when the draft is a new record.
func (c *Controller) EditingID() string { return c.editingID }

// IsEditing reports whether a submission would update an existing record.
func (c *Controller) IsEditing() bool { return c.editingID != "" }

// SetField assigns one text field of the draft. Assigning the country
// clears the state and city; assigning the state clears the city. The
// clear fires even when the new value equals the old one or is empty,
// because the downstream option lists are derived from the new value
// either way.
func (c *Controller) SetField(field Field, value string) error {
	switch field {
	case FieldFirstName:
		c.draft.FirstName = value
	case FieldLastName:
		c.draft.LastName = value
	case FieldEmail:
		c.draft.Email = value
	case FieldGender:
		c.draft.Gender = value
	case FieldCountry:
		c.draft.Country = value
		c.draft.State = ""
		c.draft.City = CityChoice{}
	case FieldState:
		c.draft.State = value
		c.draft.City = CityChoice{}
	case FieldAddress:
		c.draft.Address = value
	case FieldPincode:
		c.draft.Pincode = value
	default:
		return dErrors.Newf(dErrors.CodeBadRequest, "unknown draft field %q", field)
	}
	return nil
}

// SetDateOfBirth assigns the structured date of birth. A zero time
// clears it.
func (c *Controller) SetDateOfBirth(t time.Time) {
	c.draft.DateOfBirth = t
}

// SelectCity assigns the city choice. Which name is persisted is decided
// only at submission time, by resolving the choice.
func (c *Controller) SelectCity(choice CityChoice) {
	c.draft.City = choice
}

// CountryOptions lists the countries offered by the geography lookup.
func (c *Controller) CountryOptions() []string {
	return c.geo.Countries()
}

// StateOptions lists the states for the draft's current country. Empty
// when no country is chosen or the country is unknown.
func (c *Controller) StateOptions() []string {
	return c.geo.StatesOf(c.draft.Country)
}

// CityOptions lists the lookup cities for the draft's current country
// and state. Empty when either is unset or unknown; the manual entry
// path remains available regardless.
func (c *Controller) CityOptions() []string {
	return c.geo.CitiesOf(c.draft.Country, c.draft.State)
}

// BeginEdit loads an existing record into the draft and marks it as the
// edit target. The wire-format date string is parsed back into the
// structured form; an unparseable date leaves the field empty. The
// stored city re-enters as a lookup choice, since the stored record no
// longer distinguishes how it was originally entered.
func (c *Controller) BeginEdit(rec client.Record) {
	draft := Draft{
		FirstName: rec.FirstName,
		LastName:  rec.LastName,
		Email:     rec.Email,
		Gender:    rec.Gender,
		Country:   rec.Country,
		State:     rec.State,
		Address:   rec.Address,
		Pincode:   rec.Pincode,
	}
	if rec.City != "" {
		draft.City = LookupCity(rec.City)
	}
	if rec.DateOfBirth != "" {
		if t, err := time.Parse(client.DateLayout, rec.DateOfBirth); err == nil {
			draft.DateOfBirth = t
		}
	}
	c.draft = draft
	c.editingID = rec.ID
}

// CancelEdit clears the edit target and resets the draft to empty.
func (c *Controller) CancelEdit() { c.Reset() }

// Reset clears the edit target and resets the draft to empty.
func (c *Controller) Reset() {
	c.draft = Draft{}
	c.editingID = ""
}

// Submit sends the draft to the record service. First and last name and
// email must be non-empty; otherwise the submission is rejected without
// issuing a request and the draft is left untouched. On success the
// draft and edit target reset and the registered refresher, if any,
// re-fetches the collection. On failure the draft is preserved so the
// user can correct and retry.
func (c *Controller) Submit(ctx context.Context) (Result, error) {
	if !c.inFlight.CompareAndSwap(false, true) {
		return Result{}, ErrSubmitInFlight
	}
	defer c.inFlight.Store(false)

	if c.draft.FirstName == "" || c.draft.LastName == "" || c.draft.Email == "" {
		return Result{Outcome: OutcomeRejected}, nil
	}

	fields := c.assemble()

	var (
		rec     *client.Record
		outcome Outcome
		err     error
	)
	if c.editingID == "" {
		rec, err = c.api.CreateUser(ctx, fields)
		outcome = OutcomeCreated
	} else {
		rec, err = c.api.UpdateUser(ctx, c.editingID, fields)
		outcome = OutcomeUpdated
	}
	if err != nil {
		return Result{}, err
	}

	c.Reset()
	result := Result{Outcome: outcome, Record: rec}

	if c.refresher != nil {
		if err := c.refresher.Refresh(ctx); err != nil {
			return result, dErrors.Wrap(err, dErrors.CodeInternal, "refresh records after submit")
		}
	}
	return result, nil
}

// assemble resolves the draft into wire fields: the effective city comes
// from whichever city variant is held, and the date of birth is either
// wire-formatted or empty.
func (c *Controller) assemble() client.RecordFields {
	fields := client.RecordFields{
		FirstName: c.draft.FirstName,
		LastName:  c.draft.LastName,
		Email:     c.draft.Email,
		Gender:    c.draft.Gender,
		Country:   c.draft.Country,
		State:     c.draft.State,
		City:      c.draft.City.Resolve(),
		Address:   c.draft.Address,
		Pincode:   c.draft.Pincode,
	}
	if !c.draft.DateOfBirth.IsZero() {
		fields.DateOfBirth = c.draft.DateOfBirth.Format(client.DateLayout)
	}
	return fields
}
