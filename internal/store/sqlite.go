package store

import (
	"context"
	"database/sql"
	"embed"
	"encoding/json"
	"fmt"

	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

//go:embed migrations/*.sql
var embedMigrations embed.FS

// SQLiteStore keeps collections as JSON documents in a single local
// table, so the self-hosted setup speaks the same row shapes as the
// hosted backend. Ordering and filtering go through json_extract.
type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("open db: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("ping db: %w", err)
	}

	goose.SetBaseFS(embedMigrations)
	if err := goose.SetDialect("sqlite3"); err != nil {
		return nil, fmt.Errorf("set dialect: %w", err)
	}
	if err := goose.Up(db, "migrations"); err != nil {
		return nil, fmt.Errorf("run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

func (s *SQLiteStore) Select(ctx context.Context, collection string, q Query) ([]json.RawMessage, error) {
	query := `SELECT data FROM documents WHERE collection = ?`
	args := []any{collection}

	for col, val := range q.Eq {
		query += ` AND json_extract(data, ?) = ?`
		args = append(args, "$."+col, val)
	}

	if q.OrderBy != "" {
		query += ` ORDER BY json_extract(data, ?)`
		args = append(args, "$."+q.OrderBy)
		if q.Desc {
			query += ` DESC`
		}
	} else {
		query += ` ORDER BY rowid`
	}

	if q.Limit > 0 {
		query += fmt.Sprintf(` LIMIT %d`, q.Limit)
	}

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("select %s: %w", collection, err)
	}
	defer rows.Close()

	var result []json.RawMessage
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		result = append(result, json.RawMessage(data))
	}
	return result, rows.Err()
}

func (s *SQLiteStore) Insert(ctx context.Context, collection string, row any) error {
	id, data, err := encodeRow(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)`,
		collection, id, data,
	)
	if err != nil {
		return fmt.Errorf("insert into %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Upsert(ctx context.Context, collection string, row any) error {
	id, data, err := encodeRow(row)
	if err != nil {
		return err
	}
	_, err = s.db.ExecContext(ctx,
		`INSERT INTO documents (collection, id, data) VALUES (?, ?, ?)
		 ON CONFLICT (collection, id) DO UPDATE SET data = excluded.data`,
		collection, id, data,
	)
	if err != nil {
		return fmt.Errorf("upsert into %s: %w", collection, err)
	}
	return nil
}

func (s *SQLiteStore) Update(ctx context.Context, collection, id string, row any) error {
	data, err := json.Marshal(row)
	if err != nil {
		return fmt.Errorf("encode row: %w", err)
	}
	res, err := s.db.ExecContext(ctx,
		`UPDATE documents SET data = ? WHERE collection = ? AND id = ?`,
		string(data), collection, id,
	)
	if err != nil {
		return fmt.Errorf("update %s: %w", collection, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("update %s: id %s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Delete(ctx context.Context, collection, id string) error {
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM documents WHERE collection = ? AND id = ?`,
		collection, id,
	)
	if err != nil {
		return fmt.Errorf("delete from %s: %w", collection, err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return fmt.Errorf("delete from %s: id %s: %w", collection, id, ErrNotFound)
	}
	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func encodeRow(row any) (id, data string, err error) {
	id, err = rowID(row)
	if err != nil {
		return "", "", err
	}
	raw, err := json.Marshal(row)
	if err != nil {
		return "", "", fmt.Errorf("encode row: %w", err)
	}
	return id, string(raw), nil
}
