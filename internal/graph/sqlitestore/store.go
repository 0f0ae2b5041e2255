// Package sqlitestore persists the property graph in an embedded SQLite
// database: a nodes table, a per-node property table with JSON-encoded
// values, and a directed labeled edge table.
package sqlitestore

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/google/uuid"
	_ "github.com/mattn/go-sqlite3"

	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/graph"
)

const schemaDDL = `
CREATE TABLE IF NOT EXISTS nodes (
	guid      TEXT PRIMARY KEY,
	type_name TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_nodes_type ON nodes(type_name);

CREATE TABLE IF NOT EXISTS node_props (
	guid  TEXT NOT NULL,
	name  TEXT NOT NULL,
	value TEXT NOT NULL,
	PRIMARY KEY (guid, name)
);

CREATE TABLE IF NOT EXISTS edges (
	id       TEXT PRIMARY KEY,
	label    TEXT NOT NULL,
	out_guid TEXT NOT NULL,
	in_guid  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_edges_out ON edges(out_guid, label);
CREATE INDEX IF NOT EXISTS idx_edges_in ON edges(in_guid, label);
`

// Store is a SQLite-backed property graph
type Store struct {
	db *sql.DB
}

// Open opens (and if necessary initializes) a store at the given path.
// Use ":memory:" for an ephemeral store.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, fmt.Errorf("failed to open graph store: %w", err)
	}
	if _, err := db.Exec(schemaDDL); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize graph schema: %w", err)
	}
	return &Store{db: db}, nil
}

// NewWithDB wraps an existing database handle. The schema must already
// exist; used by tests.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

// Close closes the underlying database
func (s *Store) Close() error {
	return s.db.Close()
}

// PutNode upserts a node and its properties. An empty guid generates a
// fresh one. The type-marker property, when present, is mirrored into the
// nodes table so NodesByType stays an indexed lookup.
func (s *Store) PutNode(ctx context.Context, guid string, props map[string]interface{}) (string, error) {
	if guid == "" {
		guid = uuid.NewString()
	}
	typeName, _ := props[naming.TypeAttribute].(string)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return "", err
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx,
		`INSERT INTO nodes (guid, type_name) VALUES (?, ?)
		 ON CONFLICT(guid) DO UPDATE SET type_name = excluded.type_name`,
		guid, typeName); err != nil {
		return "", fmt.Errorf("failed to upsert node %s: %w", guid, err)
	}

	for name, value := range props {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode property %s of %s: %w", name, guid, err)
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO node_props (guid, name, value) VALUES (?, ?, ?)
			 ON CONFLICT(guid, name) DO UPDATE SET value = excluded.value`,
			guid, name, string(encoded)); err != nil {
			return "", fmt.Errorf("failed to upsert property %s of %s: %w", name, guid, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return guid, nil
}

// PutEdge inserts a directed labeled edge. An empty id generates a fresh one.
func (s *Store) PutEdge(ctx context.Context, id, label, outGUID, inGUID string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := s.db.ExecContext(ctx,
		`INSERT INTO edges (id, label, out_guid, in_guid) VALUES (?, ?, ?, ?)
		 ON CONFLICT(id) DO UPDATE SET label = excluded.label, out_guid = excluded.out_guid, in_guid = excluded.in_guid`,
		id, label, outGUID, inGUID); err != nil {
		return "", fmt.Errorf("failed to upsert edge %s: %w", id, err)
	}
	return id, nil
}

// Node implements graph.Graph
func (s *Store) Node(ctx context.Context, guid string) (graph.Node, error) {
	var exists string
	err := s.db.QueryRowContext(ctx, `SELECT guid FROM nodes WHERE guid = ?`, guid).Scan(&exists)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, guid)
	}
	if err != nil {
		return nil, err
	}
	return s.loadNode(ctx, guid)
}

// EdgeTarget implements graph.Graph
func (s *Store) EdgeTarget(ctx context.Context, edgeID string) (graph.Node, error) {
	var inGUID string
	err := s.db.QueryRowContext(ctx, `SELECT in_guid FROM edges WHERE id = ?`, edgeID).Scan(&inGUID)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, edgeID)
	}
	if err != nil {
		return nil, err
	}
	return s.loadNode(ctx, inGUID)
}

// Related implements graph.Graph
func (s *Store) Related(ctx context.Context, guid, label string, dir graph.Direction) (graph.Node, error) {
	query := `SELECT in_guid FROM edges WHERE out_guid = ? AND label = ? LIMIT 1`
	if dir == graph.DirectionIn {
		query = `SELECT out_guid FROM edges WHERE in_guid = ? AND label = ? LIMIT 1`
	}
	var target string
	err := s.db.QueryRowContext(ctx, query, guid, label).Scan(&target)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s %s from %s", graph.ErrNoSuchRelation, dir, label, guid)
	}
	if err != nil {
		return nil, err
	}
	return s.loadNode(ctx, target)
}

// NodesByType implements graph.Graph
func (s *Store) NodesByType(ctx context.Context, typeName string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT guid FROM nodes WHERE type_name = ? ORDER BY guid`, typeName)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var guids []string
	for rows.Next() {
		var guid string
		if err := rows.Scan(&guid); err != nil {
			return nil, err
		}
		guids = append(guids, guid)
	}
	return guids, rows.Err()
}

// loadNode reads all properties of a node into memory
func (s *Store) loadNode(ctx context.Context, guid string) (graph.Node, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT name, value FROM node_props WHERE guid = ?`, guid)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	props := make(map[string]interface{})
	for rows.Next() {
		var name, encoded string
		if err := rows.Scan(&name, &encoded); err != nil {
			return nil, err
		}
		var value interface{}
		if err := json.Unmarshal([]byte(encoded), &value); err != nil {
			return nil, fmt.Errorf("failed to decode property %s of %s: %w", name, guid, err)
		}
		props[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &storeNode{guid: guid, props: props}, nil
}
