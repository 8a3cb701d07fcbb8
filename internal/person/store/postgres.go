package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"peoplebook/internal/person/models"
	"peoplebook/pkg/domain"
	"peoplebook/pkg/platform/sentinel"
)

const uniqueViolation = "23505"

// PostgresStore persists person records as JSONB documents, one row per
// record. Postgres guarantees per-row atomicity for single writes, which is
// the only transactional property this collection relies on.
type PostgresStore struct {
	pool *pgxpool.Pool
}

// NewPostgres constructs a Postgres-backed store on an existing pool.
func NewPostgres(pool *pgxpool.Pool) *PostgresStore {
	return &PostgresStore{pool: pool}
}

// EnsureSchema creates the people table when missing. The created_at column
// duplicates the document timestamp so listing can order without parsing
// JSONB.
func (s *PostgresStore) EnsureSchema(ctx context.Context) error {
	_, err := s.pool.Exec(ctx, `
		CREATE TABLE IF NOT EXISTS people (
			id         UUID PRIMARY KEY,
			doc        JSONB NOT NULL,
			created_at TIMESTAMPTZ NOT NULL,
			updated_at TIMESTAMPTZ NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("ensure people schema: %w", err)
	}
	return nil
}

func (s *PostgresStore) List(ctx context.Context) ([]*models.Person, error) {
	rows, err := s.pool.Query(ctx, `SELECT doc FROM people ORDER BY created_at, id`)
	if err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	defer rows.Close()

	var out []*models.Person
	for rows.Next() {
		var doc []byte
		if err := rows.Scan(&doc); err != nil {
			return nil, fmt.Errorf("scan person document: %w", err)
		}
		p, err := decodePerson(doc)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("list people: %w", err)
	}
	return out, nil
}

func (s *PostgresStore) FindByID(ctx context.Context, id domain.PersonID) (*models.Person, error) {
	var doc []byte
	err := s.pool.QueryRow(ctx, `SELECT doc FROM people WHERE id = $1`, id.String()).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("find person %s: %w", id, err)
	}
	return decodePerson(doc)
}

func (s *PostgresStore) Create(ctx context.Context, p *models.Person) error {
	doc, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode person document: %w", err)
	}
	_, err = s.pool.Exec(ctx,
		`INSERT INTO people (id, doc, created_at, updated_at) VALUES ($1, $2, $3, $4)`,
		p.ID.String(), doc, p.CreatedAt, p.UpdatedAt,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == uniqueViolation {
			return sentinel.ErrConflict
		}
		return fmt.Errorf("insert person: %w", err)
	}
	return nil
}

// Execute locks the row with SELECT ... FOR UPDATE, applies fn, and writes
// the mutated document back in the same transaction.
func (s *PostgresStore) Execute(ctx context.Context, id domain.PersonID, fn func(*models.Person) error) (*models.Person, error) {
	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return nil, fmt.Errorf("begin update: %w", err)
	}
	defer tx.Rollback(ctx)

	var doc []byte
	err = tx.QueryRow(ctx, `SELECT doc FROM people WHERE id = $1 FOR UPDATE`, id.String()).Scan(&doc)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, sentinel.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("lock person %s: %w", id, err)
	}

	p, err := decodePerson(doc)
	if err != nil {
		return nil, err
	}
	if err := fn(p); err != nil {
		return nil, err
	}

	updated, err := json.Marshal(p)
	if err != nil {
		return nil, fmt.Errorf("encode person document: %w", err)
	}
	if _, err := tx.Exec(ctx,
		`UPDATE people SET doc = $2, updated_at = $3 WHERE id = $1`,
		id.String(), updated, p.UpdatedAt,
	); err != nil {
		return nil, fmt.Errorf("update person: %w", err)
	}
	if err := tx.Commit(ctx); err != nil {
		return nil, fmt.Errorf("commit update: %w", err)
	}
	return p, nil
}

func (s *PostgresStore) Delete(ctx context.Context, id domain.PersonID) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM people WHERE id = $1`, id.String())
	if err != nil {
		return fmt.Errorf("delete person %s: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return sentinel.ErrNotFound
	}
	return nil
}

func decodePerson(doc []byte) (*models.Person, error) {
	var p models.Person
	if err := json.Unmarshal(doc, &p); err != nil {
		return nil, fmt.Errorf("decode person document: %w", err)
	}
	return &p, nil
}
