package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/orm"
	"github.com/neuronlabs/neuron-graph/repository/memrepo"
)

// TestIncludes tests the connections and custom properties resolved within the node.
func TestIncludes(t *testing.T) {
	ctx := context.Background()
	s := connectedService(t)
	_, err := s.Connect(ctx, int64(1), "bands", "members", &Options{Data: mapping.Properties{"fbid": int64(5)}})
	require.NoError(t, err)

	require.NoError(t, s.RegisterCustomProperty("bands", "song_count", func(ctx context.Context, e *mapping.Entity, node mapping.Properties) (interface{}, error) {
		related, err := s.Engine().GetRelatedNodes(ctx, node[e.KeyField()], e, "recorded", orm.Page{})
		if err != nil {
			return nil, err
		}
		return related.Count, nil
	}))

	t.Run("Links", func(t *testing.T) {
		got, err := s.Get(ctx, int64(1), "bands", nil)
		require.NoError(t, err)
		connections := got.Data[ConnectionsField].(map[string]interface{})
		assert.Equal(t, testBaseURL+"/bands/1/members", connections["members"])
		assert.Equal(t, testBaseURL+"/bands/1/songs", connections["songs"])
		_, ok := got.Data["song_count"]
		assert.False(t, ok)
	})

	t.Run("Included", func(t *testing.T) {
		got, err := s.Get(ctx, int64(1), "bands", &Options{Includes: []string{"songs", "song_count"}})
		require.NoError(t, err)
		connections := got.Data[ConnectionsField].(map[string]interface{})
		songs, ok := connections["songs"].([]mapping.Properties)
		require.True(t, ok)
		assert.Len(t, songs, 3)
		assert.Equal(t, testBaseURL+"/bands/1/members", connections["members"])
		assert.Equal(t, int64(3), got.Data["song_count"])
	})

	t.Run("ByRelationshipName", func(t *testing.T) {
		got, err := s.Get(ctx, int64(1), "bands", &Options{Includes: []string{"is_member_of"}})
		require.NoError(t, err)
		connections := got.Data[ConnectionsField].(map[string]interface{})
		members, ok := connections["members"].([]mapping.Properties)
		require.True(t, ok)
		require.Len(t, members, 1)
		assert.Equal(t, int64(5), members[0]["fbid"])
	})

	t.Run("Unknown", func(t *testing.T) {
		_, err := s.Get(ctx, int64(1), "bands", &Options{Includes: []string{"albums"}})
		assert.True(t, errors.IsClass(err, class.CommonInvalidOptions))
	})

	t.Run("CustomFailure", func(t *testing.T) {
		require.NoError(t, s.RegisterCustomProperty("songs", "lyrics", func(context.Context, *mapping.Entity, mapping.Properties) (interface{}, error) {
			return nil, fmt.Errorf("lyrics service unavailable")
		}))
		_, err := s.Get(ctx, int64(10), "songs", &Options{Includes: []string{"lyrics"}})
		assert.EqualError(t, err, "lyrics service unavailable")
	})
}

// TestIncludesNoBaseURL tests the node connections without the links.
func TestIncludesNoBaseURL(t *testing.T) {
	ctx := context.Background()
	s, err := New(testingSchema(t), memrepo.New())
	require.NoError(t, err)

	created, err := s.Create(ctx, int64(1), "users", nil)
	require.NoError(t, err)
	assert.Empty(t, created.URL)

	got, err := s.Get(ctx, int64(1), "users", nil)
	require.NoError(t, err)
	_, ok := got.Data[ConnectionsField]
	assert.False(t, ok)

	got, err = s.Get(ctx, int64(1), "users", &Options{Includes: []string{"bands"}})
	require.NoError(t, err)
	connections := got.Data[ConnectionsField].(map[string]interface{})
	assert.Equal(t, []mapping.Properties{}, connections["bands"])
}

// TestRegisterCustomProperty tests the custom property registration.
func TestRegisterCustomProperty(t *testing.T) {
	s := testingService(t)
	fn := func(context.Context, *mapping.Entity, mapping.Properties) (interface{}, error) { return nil, nil }

	require.NoError(t, s.RegisterCustomProperty("users", "age", fn))

	err := s.RegisterCustomProperty("users", "age", fn)
	assert.True(t, errors.IsClass(err, class.SchemaDuplicate))

	err = s.RegisterCustomProperty("users", "bands", fn)
	assert.True(t, errors.IsClass(err, class.SchemaDuplicate))

	err = s.RegisterCustomProperty("artists", "age", fn)
	assert.True(t, errors.IsClass(err, class.SchemaUnknown))

	err = s.RegisterCustomProperty("users", "height", nil)
	assert.True(t, errors.IsClass(err, class.CommonInvalidOptions))
}
