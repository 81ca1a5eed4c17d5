package service

import (
	"context"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
)

// TestClassify tests the request path classification.
func TestClassify(t *testing.T) {
	s := testingService(t)
	require.NoError(t, s.RegisterCustomProperty("bands", "rank", func(context.Context, *mapping.Entity, mapping.Properties) (interface{}, error) {
		return 1, nil
	}))

	t.Run("Collection", func(t *testing.T) {
		req, err := s.Classify("/users")
		require.NoError(t, err)
		er, ok := req.(*EntityRequest)
		require.True(t, ok)
		assert.Equal(t, "user", er.Entity.Name())
		assert.Nil(t, er.Key)
	})

	t.Run("Node", func(t *testing.T) {
		req, err := s.Classify("/users/12?include=bands")
		require.NoError(t, err)
		er, ok := req.(*EntityRequest)
		require.True(t, ok)
		assert.Equal(t, int64(12), er.Key)

		req, err = s.Classify("/users/john")
		require.NoError(t, err)
		assert.Equal(t, "john", req.(*EntityRequest).Key)
	})

	t.Run("Connection", func(t *testing.T) {
		req, err := s.Classify("/bands/1/members/5")
		require.NoError(t, err)
		cr, ok := req.(*ConnectionRequest)
		require.True(t, ok)
		assert.Equal(t, "members", cr.Slot.Name)
		assert.Equal(t, mapping.DirectionIn, cr.Slot.Direction)
		assert.Equal(t, int64(1), cr.Key)
		assert.Equal(t, int64(5), cr.ConnectedKey)
	})

	t.Run("Custom", func(t *testing.T) {
		req, err := s.Classify("/bands/1/rank")
		require.NoError(t, err)
		cr, ok := req.(*CustomRequest)
		require.True(t, ok)
		assert.Equal(t, "rank", cr.Property)
	})

	t.Run("Invalid", func(t *testing.T) {
		_, err := s.Classify("/")
		assert.True(t, errors.IsClass(err, class.CommonInvalidPath))

		_, err = s.Classify("/bands/1/members/5/6")
		assert.True(t, errors.IsClass(err, class.CommonInvalidPath))

		_, err = s.Classify("/artists/1")
		assert.True(t, errors.IsClass(err, class.SchemaUnknown))

		_, err = s.Classify("/bands/1/albums")
		assert.True(t, errors.IsClass(err, class.SchemaUnknown))
	})
}

// TestHandle tests the http method dispatch of the classified requests.
func TestHandle(t *testing.T) {
	ctx := context.Background()
	s := testingService(t)

	result, err := s.Handle(ctx, http.MethodPost, "/bands", &Options{Data: mapping.Properties{"fbid": 1, "name": "The Band"}})
	require.NoError(t, err)
	assert.Equal(t, testBaseURL+"/bands/1", result.(*Result).URL)

	result, err = s.Handle(ctx, http.MethodPut, "/bands/1", &Options{Data: mapping.Properties{"genre": "jazz"}})
	require.NoError(t, err)
	assert.Equal(t, "jazz", result.(*Result).Data["genre"])

	result, err = s.Handle(ctx, http.MethodPost, "/bands/1/songs/10", &Options{Data: mapping.Properties{"title": "x"}})
	require.NoError(t, err)
	assert.Equal(t, int64(10), result.(*Result).Data["scid"])
	assert.Equal(t, "x", result.(*Result).Data["title"])

	result, err = s.Handle(ctx, http.MethodGet, "/bands/1/songs", nil)
	require.NoError(t, err)
	assert.Equal(t, int64(1), result.(*ListResult).Count)

	result, err = s.Handle(ctx, http.MethodGet, "/songs/10", nil)
	require.NoError(t, err)
	assert.Equal(t, "x", result.(*Result).Data["title"])

	_, err = s.Handle(ctx, http.MethodDelete, "/bands/1/songs/10", nil)
	require.NoError(t, err)

	_, err = s.Handle(ctx, http.MethodGet, "/bands/1/songs/10", nil)
	assert.True(t, errors.IsClass(err, class.CommonInvalidPath))

	_, err = s.Handle(ctx, http.MethodGet, "/bands", nil)
	assert.True(t, errors.IsClass(err, class.CommonInvalidPath))

	_, err = s.Handle(ctx, http.MethodDelete, "/bands/1", nil)
	require.NoError(t, err)

	_, err = s.Handle(ctx, http.MethodGet, "/bands/1", nil)
	assert.True(t, errors.IsClass(err, class.NodeNotFound))
}

// TestHandleCustom tests the custom property request.
func TestHandleCustom(t *testing.T) {
	ctx := context.Background()
	s := testingService(t)
	require.NoError(t, s.RegisterCustomProperty("bands", "rank", func(_ context.Context, _ *mapping.Entity, node mapping.Properties) (interface{}, error) {
		return node["fbid"], nil
	}))

	_, err := s.Create(ctx, int64(4), "bands", nil)
	require.NoError(t, err)

	result, err := s.Handle(ctx, http.MethodGet, "/bands/4/rank", nil)
	require.NoError(t, err)
	assert.Equal(t, mapping.Properties{"rank": int64(4)}, result.(*Result).Data)
	assert.Equal(t, testBaseURL+"/bands/4/rank", result.(*Result).URL)

	_, err = s.Handle(ctx, http.MethodPost, "/bands/4/rank", nil)
	assert.True(t, errors.IsClass(err, class.CommonInvalidPath))
}
