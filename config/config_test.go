package config

import (
	"io/ioutil"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

const testConfig = `
log_level: debug
create_policy: strict
base_url: http://localhost:3000
store:
  uri: bolt://graph:7687
  username: admin
  password: secret
entities:
  - name: user
    key: fbid
  - name: song
    key: scid
  - name: person
    collection: people
connections:
  - name: is_friends_with
    start: user.friends
  - name: likes
    start: user.likes
    end: song.fans
`

func TestReadDefaultConfig(t *testing.T) {
	c, err := ReadDefaultConfig()
	require.NoError(t, err)

	assert.Equal(t, "info", c.LogLevel)
	assert.Equal(t, "snake", c.NamingConvention)
	assert.Equal(t, CreateUpsert, c.CreatePolicy)
	require.NotNil(t, c.Store)
	assert.Equal(t, "bolt://localhost:7687", c.Store.URI)
	assert.Equal(t, "neo4j", c.Store.Database)
}

func TestReadConfigFile(t *testing.T) {
	dir, err := ioutil.TempDir("", "neuron-graph")
	require.NoError(t, err)
	defer os.RemoveAll(dir)

	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, ioutil.WriteFile(path, []byte(testConfig), 0644))

	t.Run("File", func(t *testing.T) {
		c, err := ReadConfigFile(path)
		require.NoError(t, err)

		assert.Equal(t, "debug", c.LogLevel)
		assert.Equal(t, CreateStrict, c.CreatePolicy)
		assert.Equal(t, "bolt://graph:7687", c.Store.URI)
		assert.Equal(t, "admin", c.Store.Username)
		assert.Equal(t, "neo4j", c.Store.Database)

		require.Len(t, c.Entities, 3)
		assert.Equal(t, "fbid", c.Entities[0].Key)
		assert.Equal(t, "people", c.Entities[2].Collection)

		require.Len(t, c.Connections, 2)
		assert.Empty(t, c.Connections[0].End)
		assert.Equal(t, "song.fans", c.Connections[1].End)
	})

	t.Run("Named", func(t *testing.T) {
		c, err := ReadNamedConfig("config", dir)
		require.NoError(t, err)
		assert.Equal(t, "http://localhost:3000", c.BaseURL)
	})

	t.Run("NotFound", func(t *testing.T) {
		_, err := ReadNamedConfig("missing", dir)
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.ConfigRead))
	})
}

func TestValidate(t *testing.T) {
	c := &Config{
		LogLevel:     "verbose",
		CreatePolicy: CreateUpsert,
		Store:        &Store{URI: "bolt://localhost:7687"},
	}
	err := c.Validate()
	require.Error(t, err)
	assert.True(t, errors.IsClass(err, class.ConfigInvalid))

	c.LogLevel = ""
	assert.NoError(t, c.Validate())

	c.Entities = []*Entity{{Collection: "songs"}}
	assert.Error(t, c.Validate())

	c.Entities = nil
	c.Store = nil
	assert.Error(t, c.Validate())
}
