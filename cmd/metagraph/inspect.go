package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/metagraph-io/metagraph/internal/catalog/materialize"
	"github.com/metagraph-io/metagraph/internal/cli/config"
	"github.com/metagraph-io/metagraph/internal/graph"
	"github.com/metagraph-io/metagraph/internal/web"
)

var inspectTypesPath string

var inspectCmd = &cobra.Command{
	Use:   "inspect <guid>",
	Short: "Materialize one entity and print it",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		guid := args[0]

		cfg, err := config.Load()
		if err != nil {
			return err
		}

		store, closeStore, err := openStore(cmd.Context(), cfg)
		if err != nil {
			return err
		}
		defer closeStore()

		registry, mat, err := buildCatalog(inspectTypesPath, zap.NewNop())
		if err != nil {
			return err
		}

		ctx := cmd.Context()
		node, err := store.Node(ctx, guid)
		if err != nil {
			return err
		}
		typeName, ok := graph.StringProperty(node, mat.Naming().TypeAttributeName())
		if !ok {
			return fmt.Errorf("node %s carries no type marker", guid)
		}
		desc, ok := registry.Get(typeName)
		if !ok {
			return fmt.Errorf("type %s is not registered", typeName)
		}

		op := materialize.NewOperation(store)
		result := mat.ConstructInstance(ctx, op, desc, node)
		if result == nil {
			return fmt.Errorf("entity %s could not be materialized", guid)
		}

		heading := color.New(color.FgCyan, color.Bold)
		heading.Printf("%s %s\n", typeName, guid)

		body, err := json.MarshalIndent(web.RenderValue(result), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(body))
		return nil
	},
}

func init() {
	inspectCmd.Flags().StringVar(&inspectTypesPath, "types", "", "path to type definitions JSON")
}
