package client_test

import (
	"context"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"peoplebook/internal/person/handler"
	"peoplebook/internal/person/service"
	"peoplebook/internal/person/store"
	"peoplebook/pkg/client"
	dErrors "peoplebook/pkg/domain-errors"
)

func newTestClient(t *testing.T) *client.Client {
	t.Helper()

	logger := slog.New(slog.NewTextHandler(testWriter{t}, &slog.HandlerOptions{Level: slog.LevelError}))
	svc := service.New(store.NewInMemory(), service.WithLogger(logger))

	r := chi.NewRouter()
	handler.New(svc, logger).Register(r)

	srv := httptest.NewServer(r)
	t.Cleanup(srv.Close)

	return client.New(srv.URL)
}

type testWriter struct{ t *testing.T }

func (w testWriter) Write(p []byte) (int, error) {
	w.t.Log(string(p))
	return len(p), nil
}

func sampleFields() client.RecordFields {
	return client.RecordFields{
		FirstName:   "Ana",
		LastName:    "Lee",
		DateOfBirth: "12-04-1993",
		Email:       "ana.lee@example.com",
		Gender:      "Female",
		Country:     "Japan",
		State:       "Tokyo",
		City:        "Shibuya",
		Address:     "4-2-8 Shibuya",
		Pincode:     "150-0002",
	}
}

func TestClientCreateAndGet(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, sampleFields())
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)
	assert.Equal(t, "Ana", created.FirstName)
	assert.Equal(t, "12-04-1993", created.DateOfBirth)
	assert.False(t, created.CreatedAt.IsZero())

	got, err := c.GetUser(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.ID, got.ID)
	assert.Equal(t, "ana.lee@example.com", got.Email)
}

func TestClientListEmpty(t *testing.T) {
	c := newTestClient(t)

	records, err := c.ListUsers(context.Background())
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestClientUpdate(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, sampleFields())
	require.NoError(t, err)

	fields := sampleFields()
	fields.City = "Harborview"
	updated, err := c.UpdateUser(ctx, created.ID, fields)
	require.NoError(t, err)
	assert.Equal(t, "Harborview", updated.City)
	assert.Equal(t, created.ID, updated.ID)
}

func TestClientDelete(t *testing.T) {
	c := newTestClient(t)
	ctx := context.Background()

	created, err := c.CreateUser(ctx, sampleFields())
	require.NoError(t, err)

	require.NoError(t, c.DeleteUser(ctx, created.ID))

	_, err = c.GetUser(ctx, created.ID)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
}

func TestClientMissingRecordIsNotFound(t *testing.T) {
	c := newTestClient(t)

	_, err := c.GetUser(context.Background(), "2f1f9350-7a47-4ad4-a4fb-8a70721be061")
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeNotFound))
	assert.Equal(t, "User not found", dErrors.MessageOf(err))
}

func TestClientValidationErrorIsBadRequest(t *testing.T) {
	c := newTestClient(t)

	fields := sampleFields()
	fields.Email = ""
	_, err := c.CreateUser(context.Background(), fields)
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeBadRequest))
}

func TestClientNonEnvelopeErrorFallsBack(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	c := client.New(srv.URL)
	_, err := c.ListUsers(context.Background())
	require.Error(t, err)
	assert.True(t, dErrors.HasCode(err, dErrors.CodeInternal))
}
