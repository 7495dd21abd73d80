// Package store is the boundary to the table-oriented backing store.
// Collections are addressed by name and rows travel as JSON documents;
// the hosted REST backend and the local sqlite backend implement the
// same verbs. A nil Store means "no store configured": callers must
// branch on nil and fall back to bundled content instead of retrying
// or late-binding.
package store

import (
	"context"
	"encoding/json"
	"errors"
)

// Collection names.
const (
	Projects     = "projects"
	Certificates = "certificates"
	Experience   = "experience"
	SiteConfig   = "site_config"
	Analytics    = "analytics"
	AuditLogs    = "audit_logs"
)

// ErrOffline is returned by mutation paths when no store is configured.
var ErrOffline = errors.New("store: offline, no backend configured")

// ErrNotFound is returned by Update and Delete when no row matches the
// id. Mutations never silently no-op.
var ErrNotFound = errors.New("store: no row with that id")

// Query narrows and orders a Select. Zero value selects everything in
// insertion order.
type Query struct {
	// Eq filters rows by exact column match.
	Eq map[string]string
	// OrderBy names a column to sort on; Desc flips the direction.
	OrderBy string
	Desc    bool
	// Limit bounds the result set; 0 means unbounded.
	Limit int
}

type Store interface {
	Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error)
	Insert(ctx context.Context, collection string, row any) error
	// Upsert inserts or replaces by primary key.
	Upsert(ctx context.Context, collection string, row any) error
	Update(ctx context.Context, collection, id string, row any) error
	Delete(ctx context.Context, collection, id string) error
	Close() error
}

// rowID pulls the primary key out of an arbitrary row document.
func rowID(row any) (string, error) {
	data, err := json.Marshal(row)
	if err != nil {
		return "", err
	}
	var probe struct {
		ID string `json:"id"`
	}
	if err := json.Unmarshal(data, &probe); err != nil {
		return "", err
	}
	if probe.ID == "" {
		return "", errors.New("store: row has no id")
	}
	return probe.ID, nil
}
