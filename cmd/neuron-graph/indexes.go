package main

import (
	"context"
	"time"

	"github.com/spf13/cobra"

	"github.com/neuronlabs/neuron-graph/log"
)

// indexesCmd represents the indexes command
var indexesCmd = &cobra.Command{
	Use:   "indexes",
	Short: "Ensures the key indexes of all configured entities.",
	Long: `Connects to the configured Neo4j store and creates the missing key index of each entity collection.
Existing indexes are left intact, so the command might be safely executed on each deployment.`,
	RunE: ensureIndexes,
}

func init() {
	rootCmd.AddCommand(indexesCmd)

	indexesCmd.Flags().Duration("timeout", time.Minute, "maximum duration of the command")
}

func ensureIndexes(cmd *cobra.Command, _ []string) error {
	cfg, err := readConfig(cmd)
	if err != nil {
		return err
	}
	timeout, err := cmd.Flags().GetDuration("timeout")
	if err != nil {
		return err
	}
	ctx, cancel := context.WithTimeout(context.Background(), timeout)
	defer cancel()

	s, err := newService(ctx, cfg)
	if err != nil {
		return err
	}
	defer func() {
		if err := s.Close(context.Background()); err != nil {
			log.Errorf("Closing service failed: %v", err)
		}
	}()

	if err = s.Engine().EnsureIndexes(ctx); err != nil {
		return err
	}
	log.Infof("Ensured indexes of %d entities", len(s.Engine().Schema().Entities()))
	return nil
}
