package form_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplebook/pkg/client"
	dErrors "peoplebook/pkg/domain-errors"
	"peoplebook/pkg/form"
	"peoplebook/pkg/geo"
)

// fakeAPI records the requests the controller issues and replies with a
// canned record or error.
type fakeAPI struct {
	creates []client.RecordFields
	updates map[string]client.RecordFields
	err     error
}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{updates: make(map[string]client.RecordFields)}
}

func (f *fakeAPI) CreateUser(_ context.Context, fields client.RecordFields) (*client.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.creates = append(f.creates, fields)
	return &client.Record{ID: "rec-1", RecordFields: fields}, nil
}

func (f *fakeAPI) UpdateUser(_ context.Context, id string, fields client.RecordFields) (*client.Record, error) {
	if f.err != nil {
		return nil, f.err
	}
	f.updates[id] = fields
	return &client.Record{ID: id, RecordFields: fields}, nil
}

type countingRefresher struct{ calls int }

func (r *countingRefresher) Refresh(context.Context) error {
	r.calls++
	return nil
}

func fillGated(t *testing.T, c *form.Controller) {
	t.Helper()
	require.NoError(t, c.SetField(form.FieldFirstName, "Ana"))
	require.NoError(t, c.SetField(form.FieldLastName, "Lee"))
	require.NoError(t, c.SetField(form.FieldEmail, "a@x.com"))
}

func TestSetFieldCountryClearsStateAndCity(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	require.NoError(t, c.SetField(form.FieldCountry, "India"))
	require.NoError(t, c.SetField(form.FieldState, "Gujarat"))
	c.SelectCity(form.LookupCity("Surat"))

	// The clear is unconditional, even when re-assigning the same value.
	require.NoError(t, c.SetField(form.FieldCountry, "India"))

	draft := c.Draft()
	assert.Equal(t, "India", draft.Country)
	assert.Empty(t, draft.State)
	assert.False(t, draft.City.IsSet())
}

func TestSetFieldStateClearsCity(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	require.NoError(t, c.SetField(form.FieldCountry, "India"))
	require.NoError(t, c.SetField(form.FieldState, "Gujarat"))
	c.SelectCity(form.ManualCity("Old Town"))

	require.NoError(t, c.SetField(form.FieldState, "Rajasthan"))

	draft := c.Draft()
	assert.Equal(t, "Rajasthan", draft.State)
	assert.False(t, draft.City.IsSet())
}

func TestSetFieldEmptyCountryStillClears(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	require.NoError(t, c.SetField(form.FieldCountry, "India"))
	require.NoError(t, c.SetField(form.FieldState, "Gujarat"))
	require.NoError(t, c.SetField(form.FieldCountry, ""))

	draft := c.Draft()
	assert.Empty(t, draft.Country)
	assert.Empty(t, draft.State)
}

func TestSetFieldUnknownFieldRejected(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	err := c.SetField(form.Field("shoeSize"), "42")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestStateOptionsFollowCountry(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	require.NoError(t, c.SetField(form.FieldCountry, "Japan"))
	states := c.StateOptions()
	assert.Contains(t, states, "Tokyo")
	assert.Contains(t, states, "Osaka")
	assert.NotContains(t, states, "Gujarat")
}

func TestCityOptionsFollowCountryAndState(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	require.NoError(t, c.SetField(form.FieldCountry, "India"))
	require.NoError(t, c.SetField(form.FieldState, "Gujarat"))
	cities := c.CityOptions()
	assert.Contains(t, cities, "Surat")
	assert.Contains(t, cities, "Rajkot")
}

func TestSubmitGateRejectsWithoutRequest(t *testing.T) {
	api := newFakeAPI()
	c := form.New(api, geo.Default())

	require.NoError(t, c.SetField(form.FieldFirstName, "Ana"))
	require.NoError(t, c.SetField(form.FieldLastName, "Lee"))
	// Email left empty.

	result, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeRejected, result.Outcome)
	assert.Empty(t, api.creates)
	assert.Equal(t, "Ana", c.Draft().FirstName)
}

func TestSubmitCreatesWhenNotEditing(t *testing.T) {
	api := newFakeAPI()
	refresher := &countingRefresher{}
	c := form.New(api, geo.Default(), form.WithRefresher(refresher))

	fillGated(t, c)
	require.NoError(t, c.SetField(form.FieldCountry, "India"))
	require.NoError(t, c.SetField(form.FieldState, "Gujarat"))
	c.SelectCity(form.LookupCity("Surat"))
	c.SetDateOfBirth(time.Date(1993, time.April, 12, 0, 0, 0, 0, time.UTC))

	result, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeCreated, result.Outcome)
	require.Len(t, api.creates, 1)
	assert.Equal(t, "Surat", api.creates[0].City)
	assert.Equal(t, "12-04-1993", api.creates[0].DateOfBirth)
	assert.Equal(t, 1, refresher.calls)

	// Draft and edit target reset after success.
	assert.Equal(t, form.Draft{}, c.Draft())
	assert.False(t, c.IsEditing())
}

func TestSubmitManualCityResolvesTypedText(t *testing.T) {
	api := newFakeAPI()
	c := form.New(api, geo.Default())

	fillGated(t, c)
	c.SelectCity(form.ManualCity("Harborview"))

	_, err := c.Submit(context.Background())
	require.NoError(t, err)
	require.Len(t, api.creates, 1)
	assert.Equal(t, "Harborview", api.creates[0].City)
}

func TestSubmitUpdatesWhenEditing(t *testing.T) {
	api := newFakeAPI()
	c := form.New(api, geo.Default())

	c.BeginEdit(client.Record{
		ID: "rec-9",
		RecordFields: client.RecordFields{
			FirstName:   "Ana",
			LastName:    "Lee",
			Email:       "a@x.com",
			DateOfBirth: "12-04-1993",
			City:        "Surat",
		},
	})
	require.True(t, c.IsEditing())
	require.NoError(t, c.SetField(form.FieldLastName, "Lee-Ng"))

	result, err := c.Submit(context.Background())
	require.NoError(t, err)
	assert.Equal(t, form.OutcomeUpdated, result.Outcome)
	require.Contains(t, api.updates, "rec-9")
	assert.Equal(t, "Lee-Ng", api.updates["rec-9"].LastName)
	assert.Equal(t, "12-04-1993", api.updates["rec-9"].DateOfBirth)
	assert.Empty(t, api.creates)

	assert.False(t, c.IsEditing())
	assert.Equal(t, form.Draft{}, c.Draft())
}

func TestSubmitFailurePreservesDraft(t *testing.T) {
	api := newFakeAPI()
	api.err = dErrors.New(dErrors.CodeBadRequest, "address is required")
	c := form.New(api, geo.Default())

	fillGated(t, c)

	_, err := c.Submit(context.Background())
	require.Error(t, err)
	assert.Equal(t, "Ana", c.Draft().FirstName)
	assert.False(t, c.IsEditing())
}

func TestBeginEditParsesDate(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	c.BeginEdit(client.Record{
		ID: "rec-3",
		RecordFields: client.RecordFields{
			FirstName:   "Ana",
			DateOfBirth: "01-02-1990",
		},
	})

	draft := c.Draft()
	assert.Equal(t, time.Date(1990, time.February, 1, 0, 0, 0, 0, time.UTC), draft.DateOfBirth)
	assert.Equal(t, "rec-3", c.EditingID())
}

func TestBeginEditUnparseableDateLeftEmpty(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	c.BeginEdit(client.Record{
		ID:           "rec-4",
		RecordFields: client.RecordFields{DateOfBirth: "1990/02/01"},
	})

	assert.True(t, c.Draft().DateOfBirth.IsZero())
}

func TestCancelEditResetsEverything(t *testing.T) {
	c := form.New(newFakeAPI(), geo.Default())

	c.BeginEdit(client.Record{ID: "rec-5", RecordFields: client.RecordFields{FirstName: "Ana"}})
	c.CancelEdit()

	assert.Equal(t, form.Draft{}, c.Draft())
	assert.False(t, c.IsEditing())
}

func TestGenderOptionsFixed(t *testing.T) {
	assert.Equal(t, []string{"Male", "Female", "Transgender"}, form.GenderOptions)
}
