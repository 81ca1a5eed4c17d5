package main

import (
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/neuron-graph/mapping"
)

// schemaCmd represents the schema command
var schemaCmd = &cobra.Command{
	Use:   "schema",
	Short: "Prints the configured entities and their connection slots.",
	Long: `Builds the schema from the configuration without connecting to the store and prints
each entity collection, key field and connection slots. Invalid schema definitions are reported as errors.`,
	RunE: printSchema,
}

func init() {
	rootCmd.AddCommand(schemaCmd)
}

func printSchema(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	schema, err := mapping.FromConfig(cfg)
	if err != nil {
		return err
	}
	return writeSchema(cmd.OutOrStdout(), schema)
}

func writeSchema(out io.Writer, schema *mapping.Schema) error {
	w := tabwriter.NewWriter(out, 0, 4, 2, ' ', 0)
	resolver := mapping.NewResolver(schema)
	for _, e := range schema.Entities() {
		fmt.Fprintf(w, "%s\t/%s\tkey: %s\n", e.Name(), e.Collection(), e.KeyField())
		for _, slot := range resolver.ConnectionsOf(e) {
			fmt.Fprintf(w, "\t%s\t%s %s -> %s\n", slot.Name, slot.RelationshipName, slot.Direction, slot.Target.Name())
		}
	}
	return w.Flush()
}
