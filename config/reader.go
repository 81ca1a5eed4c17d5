package config

import (
	"strings"

	"github.com/spf13/viper"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/log"
)

// EnvPrefix is the prefix of the environment variables overriding the config values,
// i.e. NEURON_GRAPH_STORE_URI overrides the 'store.uri' key.
const EnvPrefix = "NEURON_GRAPH"

// ViperSetDefaults sets the default values for the viper config.
func ViperSetDefaults(v *viper.Viper) {
	setDefaults(v)
}

// ReadConfig reads the config named 'config' from the current or 'configs' directory.
func ReadConfig() (*Config, error) {
	return ReadNamedConfig("config")
}

// ReadNamedConfig reads the config with the provided name. The config is looked up in the
// provided 'paths' or in the current and 'configs' directory if none is given.
func ReadNamedConfig(name string, paths ...string) (*Config, error) {
	v := newViper()
	v.SetConfigName(name)
	if len(paths) == 0 {
		paths = []string{".", "configs"}
	}
	for _, path := range paths {
		v.AddConfigPath(path)
	}

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(class.ConfigRead, err, "reading config: '%s' failed", name)
	}
	return unmarshal(v)
}

// ReadConfigFile reads the config from the file at given 'path'.
func ReadConfigFile(path string) (*Config, error) {
	v := newViper()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(class.ConfigRead, err, "reading config file: '%s' failed", path)
	}
	return unmarshal(v)
}

// ReadDefaultConfig reads the default configuration, overridden by the environment variables.
func ReadDefaultConfig() (*Config, error) {
	return unmarshal(newViper())
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)
	return v
}

func unmarshal(v *viper.Viper) (*Config, error) {
	c := &Config{}
	if err := v.Unmarshal(c); err != nil {
		log.Debugf("Unmarshaling Config failed. %v", err)
		return nil, errors.Wrap(class.ConfigRead, err, "unmarshaling config failed")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return c, nil
}

func setDefaults(v *viper.Viper) {
	keys := map[string]interface{}{
		"log_level":         "info",
		"naming_convention": "snake",
		"create_policy":     CreateUpsert,
		"store.uri":         "bolt://localhost:7687",
		"store.username":    "neo4j",
		"store.database":    "neo4j",
	}

	for k, value := range keys {
		v.SetDefault(k, value)
	}
}
