package main

import (
	"context"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/mapper"
	"github.com/metagraph-io/metagraph/internal/catalog/materialize"
	"github.com/metagraph-io/metagraph/internal/catalog/naming"
	"github.com/metagraph-io/metagraph/internal/catalog/types"
	"github.com/metagraph-io/metagraph/internal/cli/config"
	"github.com/metagraph-io/metagraph/internal/graph"
	"github.com/metagraph-io/metagraph/internal/graph/pgstore"
	"github.com/metagraph-io/metagraph/internal/graph/sqlitestore"
)

// openStore opens the configured graph store backend
func openStore(ctx context.Context, cfg *config.Config) (graph.Graph, func(), error) {
	switch cfg.Store.Driver {
	case "postgres":
		store, err := pgstore.Open(ctx, cfg.Store.URL)
		if err != nil {
			return nil, nil, err
		}
		return store, store.Close, nil
	default:
		store, err := sqlitestore.Open(cfg.Store.Path)
		if err != nil {
			return nil, nil, err
		}
		return store, func() { store.Close() }, nil
	}
}

// buildCatalog loads the type registry and wires the materialization stack
func buildCatalog(typesPath string, log *zap.Logger) (*types.Registry, *materialize.Materializer, error) {
	registry := types.NewRegistry()
	if typesPath != "" {
		data, err := os.ReadFile(typesPath)
		if err != nil {
			return nil, nil, fmt.Errorf("failed to read type definitions: %w", err)
		}
		if err := types.LoadDefinitions(registry, data); err != nil {
			return nil, nil, err
		}
	}

	mat := materialize.New(registry, naming.NewResolver(), log)
	mapper.New(mat, log)
	return registry, mat, nil
}
