// Package service orchestrates person record lifecycle: validation, identity
// and timestamp assignment, and translation of store facts into coded errors.
package service

import (
	"context"
	"errors"
	"log/slog"

	personmetrics "peoplebook/internal/person/metrics"
	"peoplebook/internal/person/models"
	"peoplebook/internal/person/store"
	"peoplebook/pkg/domain"
	dErrors "peoplebook/pkg/domain-errors"
	"peoplebook/pkg/platform/sentinel"
	"peoplebook/pkg/requestcontext"
)

// Service owns the person collection's business rules. It is safe for
// concurrent use; per-record write atomicity comes from the store's Execute
// contract. Concurrent updates to the same record are last-write-wins; no
// version token or ETag is carried.
type Service struct {
	people  store.Store
	logger  *slog.Logger
	metrics *personmetrics.Metrics
}

// Option configures optional service collaborators.
type Option func(*Service)

// WithLogger attaches a structured logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Service) { s.logger = logger }
}

// WithMetrics attaches mutation counters.
func WithMetrics(m *personmetrics.Metrics) Option {
	return func(s *Service) { s.metrics = m }
}

// New constructs a person service over the given store.
func New(people store.Store, opts ...Option) *Service {
	s := &Service{people: people}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// List returns the full collection. Clients re-fetch it after every mutation
// to resynchronize; there is no incremental change feed.
func (s *Service) List(ctx context.Context) ([]*models.Person, error) {
	people, err := s.people.List(ctx)
	if err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to list users")
	}
	if people == nil {
		people = []*models.Person{}
	}
	return people, nil
}

// Get retrieves one record by identifier.
func (s *Service) Get(ctx context.Context, id domain.PersonID) (*models.Person, error) {
	p, err := s.people.FindByID(ctx, id)
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	return p, nil
}

// Create validates and persists a new record, assigning identity and
// timestamps. Validation is required-field presence only; email format,
// pincode format, and country/state/city consistency are deliberately not
// checked here.
func (s *Service) Create(ctx context.Context, f models.Fields) (*models.Person, error) {
	p, err := models.NewPerson(domain.NewPersonID(), f, requestcontext.Now(ctx))
	if err != nil {
		return nil, err
	}
	if err := s.people.Create(ctx, p); err != nil {
		return nil, dErrors.Wrap(err, dErrors.CodeInternal, "failed to create user")
	}
	if s.metrics != nil {
		s.metrics.IncrementCreated()
	}
	return p, nil
}

// Update merges a partial patch into the stored record and re-validates the
// result, atomically against concurrent writers of the same record.
func (s *Service) Update(ctx context.Context, id domain.PersonID, patch models.Patch) (*models.Person, error) {
	now := requestcontext.Now(ctx)
	p, err := s.people.Execute(ctx, id, func(cur *models.Person) error {
		patch.Apply(cur)
		if err := cur.Validate(); err != nil {
			return err
		}
		cur.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, wrapStoreErr(err)
	}
	if s.metrics != nil {
		s.metrics.IncrementUpdated()
	}
	return p, nil
}

// Delete removes a record permanently. There is no soft delete.
func (s *Service) Delete(ctx context.Context, id domain.PersonID) error {
	if err := s.people.Delete(ctx, id); err != nil {
		return wrapStoreErr(err)
	}
	if s.metrics != nil {
		s.metrics.IncrementDeleted()
	}
	return nil
}

// wrapStoreErr translates store facts into coded errors, passing coded
// errors (validation from Execute callbacks) through unchanged.
func wrapStoreErr(err error) error {
	if errors.Is(err, sentinel.ErrNotFound) {
		return dErrors.New(dErrors.CodeNotFound, "User not found")
	}
	var coded *dErrors.Error
	if errors.As(err, &coded) {
		return err
	}
	return dErrors.Wrap(err, dErrors.CodeInternal, "store operation failed")
}
