package main

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/neuronlabs/neuron-graph/config"
	"github.com/neuronlabs/neuron-graph/log"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository/neo4jrepo"
	"github.com/neuronlabs/neuron-graph/service"
)

// rootCmd represents the base command when called without any sub commands
var rootCmd = &cobra.Command{
	Use:   "neuron-graph",
	Short: "Graph store translation service tools.",
	Long: `It loads the neuron-graph configuration and prepares the Neo4j store for the service.
The configuration is read from the file provided by the '--config' flag or from the 'config'
file in the current or 'configs' directory. The environment variables with 'NEURON_GRAPH_' prefix
override the config values. The '.env' file is loaded if exists.`,
	PersistentPreRunE: loadEnv,
	SilenceUsage:      true,
}

func init() {
	rootCmd.PersistentFlags().StringP("config", "c", "", "path to the config file")
	rootCmd.PersistentFlags().String("env-file", ".env", "path to the environment variables file")
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func loadEnv(cmd *cobra.Command, _ []string) error {
	envFile, err := cmd.Flags().GetString("env-file")
	if err != nil {
		return err
	}
	if err = godotenv.Load(envFile); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("loading env file: '%s' failed: %w", envFile, err)
	}
	return nil
}

// readConfig reads the config and sets up the logger level.
func readConfig(cmd *cobra.Command) (*config.Config, error) {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return nil, err
	}
	var cfg *config.Config
	if path != "" {
		cfg, err = config.ReadConfigFile(path)
	} else {
		cfg, err = config.ReadConfig()
	}
	if err != nil {
		return nil, err
	}

	log.Default()
	level, err := log.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	if err = log.SetLevel(level); err != nil {
		return nil, err
	}
	return cfg, nil
}

// newService creates the service connected to the configured neo4j store.
func newService(ctx context.Context, cfg *config.Config) (*service.Service, error) {
	schema, err := mapping.FromConfig(cfg)
	if err != nil {
		return nil, err
	}
	store, err := neo4jrepo.New(ctx, cfg.Store)
	if err != nil {
		return nil, err
	}
	s, err := service.New(schema, store, service.WithBaseURL(cfg.BaseURL), service.WithCreatePolicy(cfg.CreatePolicy))
	if err != nil {
		_ = store.Close(ctx)
		return nil, err
	}
	return s, nil
}
