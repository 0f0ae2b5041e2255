// Package pgstore persists the property graph in PostgreSQL via pgx,
// using the same node/property/edge shape as the embedded SQLite store.
// Intended for shared deployments where several catalog readers point at
// one graph.
package pgstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

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
	value JSONB NOT NULL,
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

// Store is a PostgreSQL-backed property graph
type Store struct {
	pool *pgxpool.Pool
}

// Open connects to the database and initializes the graph schema
func Open(ctx context.Context, dsn string) (*Store, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to graph store: %w", err)
	}
	if _, err := pool.Exec(ctx, schemaDDL); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to initialize graph schema: %w", ConvertDBError(err))
	}
	return &Store{pool: pool}, nil
}

// NewWithPool wraps an existing connection pool. The schema must already exist.
func NewWithPool(pool *pgxpool.Pool) *Store {
	return &Store{pool: pool}
}

// Close releases the connection pool
func (s *Store) Close() {
	s.pool.Close()
}

// PutNode upserts a node and its properties. An empty guid generates a fresh one.
func (s *Store) PutNode(ctx context.Context, guid string, props map[string]interface{}) (string, error) {
	if guid == "" {
		guid = uuid.NewString()
	}
	typeName, _ := props[naming.TypeAttribute].(string)

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return "", ConvertDBError(err)
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx,
		`INSERT INTO nodes (guid, type_name) VALUES ($1, $2)
		 ON CONFLICT (guid) DO UPDATE SET type_name = EXCLUDED.type_name`,
		guid, typeName); err != nil {
		return "", fmt.Errorf("failed to upsert node %s: %w", guid, ConvertDBError(err))
	}

	for name, value := range props {
		encoded, err := json.Marshal(value)
		if err != nil {
			return "", fmt.Errorf("failed to encode property %s of %s: %w", name, guid, err)
		}
		if _, err := tx.Exec(ctx,
			`INSERT INTO node_props (guid, name, value) VALUES ($1, $2, $3)
			 ON CONFLICT (guid, name) DO UPDATE SET value = EXCLUDED.value`,
			guid, name, encoded); err != nil {
			return "", fmt.Errorf("failed to upsert property %s of %s: %w", name, guid, ConvertDBError(err))
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return "", ConvertDBError(err)
	}
	return guid, nil
}

// PutEdge inserts a directed labeled edge. An empty id generates a fresh one.
func (s *Store) PutEdge(ctx context.Context, id, label, outGUID, inGUID string) (string, error) {
	if id == "" {
		id = uuid.NewString()
	}
	if _, err := s.pool.Exec(ctx,
		`INSERT INTO edges (id, label, out_guid, in_guid) VALUES ($1, $2, $3, $4)
		 ON CONFLICT (id) DO UPDATE SET label = EXCLUDED.label, out_guid = EXCLUDED.out_guid, in_guid = EXCLUDED.in_guid`,
		id, label, outGUID, inGUID); err != nil {
		return "", fmt.Errorf("failed to upsert edge %s: %w", id, ConvertDBError(err))
	}
	return id, nil
}

// Node implements graph.Graph
func (s *Store) Node(ctx context.Context, guid string) (graph.Node, error) {
	var exists string
	err := s.pool.QueryRow(ctx, `SELECT guid FROM nodes WHERE guid = $1`, guid).Scan(&exists)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", graph.ErrNodeNotFound, guid)
	}
	if err != nil {
		return nil, ConvertDBError(err)
	}
	return s.loadNode(ctx, guid)
}

// EdgeTarget implements graph.Graph
func (s *Store) EdgeTarget(ctx context.Context, edgeID string) (graph.Node, error) {
	var inGUID string
	err := s.pool.QueryRow(ctx, `SELECT in_guid FROM edges WHERE id = $1`, edgeID).Scan(&inGUID)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", graph.ErrEdgeNotFound, edgeID)
	}
	if err != nil {
		return nil, ConvertDBError(err)
	}
	return s.loadNode(ctx, inGUID)
}

// Related implements graph.Graph
func (s *Store) Related(ctx context.Context, guid, label string, dir graph.Direction) (graph.Node, error) {
	query := `SELECT in_guid FROM edges WHERE out_guid = $1 AND label = $2 LIMIT 1`
	if dir == graph.DirectionIn {
		query = `SELECT out_guid FROM edges WHERE in_guid = $1 AND label = $2 LIMIT 1`
	}
	var target string
	err := s.pool.QueryRow(ctx, query, guid, label).Scan(&target)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s %s from %s", graph.ErrNoSuchRelation, dir, label, guid)
	}
	if err != nil {
		return nil, ConvertDBError(err)
	}
	return s.loadNode(ctx, target)
}

// NodesByType implements graph.Graph
func (s *Store) NodesByType(ctx context.Context, typeName string) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT guid FROM nodes WHERE type_name = $1 ORDER BY guid`, typeName)
	if err != nil {
		return nil, ConvertDBError(err)
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

func (s *Store) loadNode(ctx context.Context, guid string) (graph.Node, error) {
	rows, err := s.pool.Query(ctx, `SELECT name, value FROM node_props WHERE guid = $1`, guid)
	if err != nil {
		return nil, ConvertDBError(err)
	}
	defer rows.Close()

	props := make(map[string]interface{})
	for rows.Next() {
		var name string
		var encoded []byte
		if err := rows.Scan(&name, &encoded); err != nil {
			return nil, err
		}
		var value interface{}
		if err := json.Unmarshal(encoded, &value); err != nil {
			return nil, fmt.Errorf("failed to decode property %s of %s: %w", name, guid, err)
		}
		props[name] = value
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return &storeNode{guid: guid, props: props}, nil
}
