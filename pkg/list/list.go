// Package list holds the last-fetched record collection, tracks row
// selection, and dispatches edit and delete intents.
package list

import (
	"context"
	"sort"

	"peoplebook/pkg/client"
	dErrors "peoplebook/pkg/domain-errors"
)

// API is the slice of the record service the controller needs.
type API interface {
	ListUsers(ctx context.Context) ([]client.Record, error)
	DeleteUser(ctx context.Context, id string) error
}

// Editor receives a record when the user asks to edit it.
type Editor interface {
	BeginEdit(rec client.Record)
}

// Controller keeps the held collection and the selected row set. A
// failed refresh leaves the previously held collection visible, so
// callers always have a last-known-good view.
type Controller struct {
	api    API
	editor Editor

	records  []client.Record
	selected map[string]struct{}
}

// New constructs a controller with an empty collection.
func New(api API, editor Editor) *Controller {
	return &Controller{
		api:      api,
		editor:   editor,
		selected: make(map[string]struct{}),
	}
}

// Refresh replaces the held collection with the store's current full
// collection. On failure the prior collection is kept. The selected set
// is never reconciled against the new collection; entries for records
// that no longer exist are harmless until acted on.
func (c *Controller) Refresh(ctx context.Context) error {
	records, err := c.api.ListUsers(ctx)
	if err != nil {
		return dErrors.Wrap(err, dErrors.CodeOf(err), "refresh records")
	}
	c.records = records
	return nil
}

// Records returns a copy of the held collection.
func (c *Controller) Records() []client.Record {
	out := make([]client.Record, len(c.records))
	copy(out, c.records)
	return out
}

// IsSelected reports whether the row for id is selected.
func (c *Controller) IsSelected(id string) bool {
	_, ok := c.selected[id]
	return ok
}

// Selected returns the selected identifiers in stable order.
func (c *Controller) Selected() []string {
	out := make([]string, 0, len(c.selected))
	for id := range c.selected {
		out = append(out, id)
	}
	sort.Strings(out)
	return out
}

// ToggleRowSelection flips the selection state of one row.
func (c *Controller) ToggleRowSelection(id string) {
	if _, ok := c.selected[id]; ok {
		delete(c.selected, id)
		return
	}
	c.selected[id] = struct{}{}
}

// SelectAll selects every identifier in the currently held collection,
// or clears the selection entirely. The all-set is computed from the
// collection at call time, not a cached snapshot.
func (c *Controller) SelectAll(selected bool) {
	c.selected = make(map[string]struct{})
	if !selected {
		return
	}
	for _, rec := range c.records {
		c.selected[rec.ID] = struct{}{}
	}
}

// RequestEdit hands the record for id to the editor. An identifier not
// present in the held collection is a no-op.
func (c *Controller) RequestEdit(id string) {
	for _, rec := range c.records {
		if rec.ID == id {
			c.editor.BeginEdit(rec)
			return
		}
	}
}

// RequestDelete removes the record from the store and, on success,
// refreshes the held collection. On failure the collection is left
// unchanged; there is no optimistic removal.
func (c *Controller) RequestDelete(ctx context.Context, id string) error {
	if err := c.api.DeleteUser(ctx, id); err != nil {
		return err
	}
	return c.Refresh(ctx)
}
