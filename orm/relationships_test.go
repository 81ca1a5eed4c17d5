package orm

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
	"github.com/neuronlabs/neuron-graph/mapping"
	"github.com/neuronlabs/neuron-graph/repository"
	"github.com/neuronlabs/neuron-graph/repository/memrepo"
	"github.com/neuronlabs/neuron-graph/repository/mocks"
)

// TestCreateRelationship tests the relationship creation.
func TestCreateRelationship(t *testing.T) {
	ctx := context.Background()

	t.Run("CreateUpdateReject", func(t *testing.T) {
		store := memrepo.New()
		e := testingEngine(t, store)
		user, band := entity(e, "user"), entity(e, "band")

		_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(1), "name": "john"}, user)
		require.NoError(t, err)
		_, err = e.CreateNode(ctx, mapping.Properties{"fbid": int64(10), "name": "beatles"}, band)
		require.NoError(t, err)

		connected, err := e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10)}, nil, "is_member_of")
		require.NoError(t, err)
		assert.Equal(t, "beatles", connected.Node["name"])
		assert.Empty(t, connected.Relationship)

		userNode, err := store.IndexLookup(ctx, repository.IndexOf(user), int64(1))
		require.NoError(t, err)
		rels, err := store.NodeRelationships(ctx, userNode.ID, mapping.DirectionAll)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.Equal(t, userNode.ID, rels[0].StartID)

		connected, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10)}, mapping.Properties{"role": "guitar", "tags": []string{"x"}}, "is_member_of")
		require.NoError(t, err)
		assert.Equal(t, mapping.Properties{"role": "guitar"}, connected.Relationship)

		rels, err = store.NodeRelationships(ctx, userNode.ID, mapping.DirectionAll)
		require.NoError(t, err)
		require.Len(t, rels, 1)
		assert.Equal(t, "guitar", rels[0].Properties["role"])

		_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10)}, nil, "is_member_of")
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.ConnectionUpdateNoProperties))
	})

	t.Run("InboundDirection", func(t *testing.T) {
		store := memrepo.New()
		e := testingEngine(t, store)
		user, band := entity(e, "user"), entity(e, "band")

		_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(10)}, band)
		require.NoError(t, err)

		_, err = e.CreateRelationship(ctx, band, int64(10), user, mapping.Properties{"fbid": int64(1), "name": "paul"}, nil, "is_member_of")
		require.NoError(t, err)

		related, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{})
		require.NoError(t, err)
		require.Len(t, related.Data, 1)
		assert.Equal(t, int64(10), related.Data[0]["fbid"])
	})

	t.Run("StartMissing", func(t *testing.T) {
		e := testingEngine(t, memrepo.New())
		_, err := e.CreateRelationship(ctx, entity(e, "user"), int64(1), nil, mapping.Properties{"fbid": int64(10)}, nil, "is_member_of")
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.ConnectionStartMissing))
	})

	t.Run("MaterializedEnd", func(t *testing.T) {
		e := testingEngine(t, memrepo.New())
		user, band := entity(e, "user"), entity(e, "band")

		_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(1)}, user)
		require.NoError(t, err)

		connected, err := e.CreateRelationship(ctx, user, int64(1), nil, mapping.Properties{"name": "wings"}, mapping.Properties{"since": int64(1971)}, "is_member_of")
		require.NoError(t, err)
		key, ok := connected.Node["fbid"]
		require.True(t, ok)

		got, err := e.GetNode(ctx, key, band)
		require.NoError(t, err)
		assert.Equal(t, "wings", got["name"])
		assert.Equal(t, int64(1971), connected.Relationship["since"])
	})

	t.Run("EndCreateFailed", func(t *testing.T) {
		store := &mocks.Repository{}
		e := testingEngine(t, store)
		user := entity(e, "user")

		store.On("EnsureIndex", mock.Anything, mock.Anything).Return(nil)
		store.On("IndexLookup", mock.Anything, repository.IndexOf(user), int64(1)).Return(&repository.Node{ID: "1"}, nil)
		store.On("CreateNode", mock.Anything, mock.Anything).Return(nil, errors.NewDet(class.StoreRemoteCall, "timeout"))

		_, err := e.CreateRelationship(ctx, user, int64(1), nil, mapping.Properties{"name": "wings"}, nil, "is_member_of")
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.ConnectionCreateFailed))
	})

	t.Run("WrongEndEntity", func(t *testing.T) {
		e := testingEngine(t, memrepo.New())
		_, err := e.CreateRelationship(ctx, entity(e, "user"), int64(1), entity(e, "song"), mapping.Properties{"scid": int64(1)}, nil, "is_member_of")
		assert.True(t, errors.IsClass(err, class.SchemaUnknown))
	})

	t.Run("UnknownRelationship", func(t *testing.T) {
		e := testingEngine(t, memrepo.New())
		_, err := e.CreateRelationship(ctx, entity(e, "song"), int64(1), nil, nil, nil, "is_member_of")
		assert.True(t, errors.IsClass(err, class.SchemaUnknown))
	})
}

// TestGetRelatedNodes tests the related nodes queries.
func TestGetRelatedNodes(t *testing.T) {
	ctx := context.Background()
	e := testingEngine(t, memrepo.New())
	user, band := entity(e, "user"), entity(e, "band")

	_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(1)}, user)
	require.NoError(t, err)
	_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10), "name": "a"}, mapping.Properties{"role": "bass"}, "is_member_of")
	require.NoError(t, err)
	_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(11), "name": "b"}, nil, "is_member_of")
	require.NoError(t, err)

	t.Run("RelationshipProperties", func(t *testing.T) {
		related, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{})
		require.NoError(t, err)
		require.Len(t, related.Data, 2)
		assert.Equal(t, int64(2), related.Count)

		assert.Equal(t, mapping.Properties{"role": "bass"}, related.Data[0][RelationshipField])
		_, ok := related.Data[1][RelationshipField]
		assert.False(t, ok)
	})

	t.Run("Paging", func(t *testing.T) {
		first, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{Skip: 0, Limit: 1})
		require.NoError(t, err)
		second, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{Skip: 1, Limit: 1})
		require.NoError(t, err)
		both, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{Skip: 0, Limit: 2})
		require.NoError(t, err)

		require.Len(t, first.Data, 1)
		require.Len(t, second.Data, 1)
		assert.NotEqual(t, first.Data[0]["fbid"], second.Data[0]["fbid"])
		assert.Equal(t, both.Data, append(first.Data, second.Data...))
		assert.Equal(t, int64(2), first.Count)
		assert.Equal(t, int64(2), second.Count)
	})

	t.Run("AbsentStart", func(t *testing.T) {
		related, err := e.GetRelatedNodes(ctx, int64(99), user, "is_member_of", Page{})
		require.NoError(t, err)
		assert.Empty(t, related.Data)
		assert.Equal(t, int64(0), related.Count)
	})

	t.Run("QueryFailure", func(t *testing.T) {
		store := &mocks.Repository{}
		me := testingEngine(t, store)
		store.On("EnsureIndex", mock.Anything, mock.Anything).Return(nil)
		store.On("QueryPage", mock.Anything, mock.Anything).Return(nil, errors.NewDet(class.StoreRemoteCall, "timeout"))

		_, err := me.GetRelatedNodes(ctx, int64(1), entity(me, "user"), "is_member_of", Page{})
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.StoreRemoteCall))
	})
}

// TestSelfReferential tests the connections between the same entity nodes.
func TestSelfReferential(t *testing.T) {
	ctx := context.Background()
	e := testingEngine(t, memrepo.New())
	user := entity(e, "user")

	slot, err := e.Resolver().Resolve(user, "follows")
	require.NoError(t, err)
	assert.Equal(t, mapping.DirectionAll, slot.Direction)

	_, err = e.CreateNode(ctx, mapping.Properties{"fbid": int64(1)}, user)
	require.NoError(t, err)
	_, err = e.CreateRelationship(ctx, user, int64(1), user, mapping.Properties{"fbid": int64(2)}, nil, "follows")
	require.NoError(t, err)

	from, err := e.GetRelatedNodes(ctx, int64(1), user, "follows", Page{})
	require.NoError(t, err)
	require.Len(t, from.Data, 1)
	assert.Equal(t, int64(2), from.Data[0]["fbid"])

	to, err := e.GetRelatedNodes(ctx, int64(2), user, "follows", Page{})
	require.NoError(t, err)
	require.Len(t, to.Data, 1)
	assert.Equal(t, int64(1), to.Data[0]["fbid"])

	// the reversed connection resolves to the same relationship
	_, err = e.CreateRelationship(ctx, user, int64(2), user, mapping.Properties{"fbid": int64(1)}, nil, "follows")
	assert.True(t, errors.IsClass(err, class.ConnectionUpdateNoProperties))

	require.NoError(t, e.DeleteRelationship(ctx, user, int64(2), user, int64(1), "follows"))
	to, err = e.GetRelatedNodes(ctx, int64(2), user, "follows", Page{})
	require.NoError(t, err)
	assert.Empty(t, to.Data)
}

// TestDeleteRelationship tests the relationship deletion.
func TestDeleteRelationship(t *testing.T) {
	ctx := context.Background()
	e := testingEngine(t, memrepo.New())
	user, band := entity(e, "user"), entity(e, "band")

	_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(1)}, user)
	require.NoError(t, err)
	_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10)}, nil, "is_member_of")
	require.NoError(t, err)
	_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(11)}, nil, "is_member_of")
	require.NoError(t, err)

	err = e.DeleteRelationship(ctx, user, int64(1), band, int64(12), "is_member_of")
	require.Error(t, err)
	assert.True(t, errors.IsClass(err, class.ConnectionDeleteNotFound))
	assert.True(t, errors.IsNotFound(err))

	require.NoError(t, e.DeleteRelationship(ctx, band, int64(10), user, int64(1), "is_member_of"))

	related, err := e.GetRelatedNodes(ctx, int64(1), user, "is_member_of", Page{})
	require.NoError(t, err)
	require.Len(t, related.Data, 1)
	assert.Equal(t, int64(11), related.Data[0]["fbid"])

	err = e.DeleteRelationship(ctx, user, int64(1), band, int64(10), "is_member_of")
	assert.True(t, errors.IsClass(err, class.ConnectionDeleteNotFound))
}

// TestBatch tests the batch accumulator.
func TestBatch(t *testing.T) {
	ctx := context.Background()
	store := memrepo.New()
	b := NewBatch(store)

	_, err := b.Submit(ctx)
	assert.True(t, errors.IsClass(err, class.StoreBatchEmpty))

	start, err := store.CreateNode(ctx, mapping.Properties{})
	require.NoError(t, err)
	end, err := store.CreateNode(ctx, mapping.Properties{})
	require.NoError(t, err)
	rel, err := store.CreateRelationship(ctx, start.ID, end.ID, "follows", nil)
	require.NoError(t, err)

	b.DeleteRelationship(rel.ID)
	b.DeleteRelationship("404")
	assert.Equal(t, 2, b.Len())

	results, err := b.Submit(ctx)
	require.Error(t, err)
	assert.True(t, errors.IsClass(err, class.StoreRemoteCall))
	assert.Len(t, results, 2)
	assert.Equal(t, 0, b.Len())

	b.DeleteRelationship(rel.ID)
	_, err = b.Submit(ctx)
	require.NoError(t, err)

	rels, err := store.NodeRelationships(ctx, start.ID, mapping.DirectionAll)
	require.NoError(t, err)
	assert.Empty(t, rels)
}

// TestScalarFilter tests the composite values filtering.
func TestScalarFilter(t *testing.T) {
	type custom string
	v := 1
	filtered := ScalarFilter(mapping.Properties{
		"s":      "a",
		"i":      1,
		"u":      uint8(2),
		"f":      float32(1.5),
		"b":      true,
		"c":      custom("x"),
		"nil":    nil,
		"ptr":    &v,
		"slice":  []int{1},
		"array":  [1]int{1},
		"map":    map[string]int{},
		"struct": struct{}{},
	})
	assert.Equal(t, mapping.Properties{"s": "a", "i": 1, "u": uint8(2), "f": float32(1.5), "b": true, "c": custom("x"), "nil": nil}, filtered)
}

// TestDeleteRelationshipDuplicates tests the deletion of the relationships matched more than once.
func TestDeleteRelationshipDuplicates(t *testing.T) {
	ctx := context.Background()

	setup := func(t *testing.T, store repository.GraphStore) (*Engine, string) {
		e := testingEngine(t, store)
		user, band := entity(e, "user"), entity(e, "band")
		_, err := e.CreateNode(ctx, mapping.Properties{"fbid": int64(1)}, user)
		require.NoError(t, err)
		_, err = e.CreateRelationship(ctx, user, int64(1), band, mapping.Properties{"fbid": int64(10)}, nil, "is_member_of")
		require.NoError(t, err)

		userNode, err := store.IndexLookup(ctx, repository.IndexOf(user), int64(1))
		require.NoError(t, err)
		bandNode, err := store.IndexLookup(ctx, repository.IndexOf(band), int64(10))
		require.NoError(t, err)
		_, err = store.CreateRelationship(ctx, userNode.ID, bandNode.ID, "is_member_of", nil)
		require.NoError(t, err)
		return e, userNode.ID
	}

	t.Run("Deleted", func(t *testing.T) {
		store := memrepo.New()
		e, userID := setup(t, store)

		require.NoError(t, e.DeleteRelationship(ctx, entity(e, "user"), int64(1), entity(e, "band"), int64(10), "is_member_of"))
		rels, err := store.NodeRelationships(ctx, userID, mapping.DirectionAll)
		require.NoError(t, err)
		assert.Empty(t, rels)
	})

	t.Run("BatchFailure", func(t *testing.T) {
		store := &failingBatchStore{Repository: memrepo.New()}
		e, userID := setup(t, store)

		err := e.DeleteRelationship(ctx, entity(e, "user"), int64(1), entity(e, "band"), int64(10), "is_member_of")
		require.Error(t, err)
		assert.True(t, errors.IsClass(err, class.ConnectionDeleteFailed))

		rels, err := store.NodeRelationships(ctx, userID, mapping.DirectionAll)
		require.NoError(t, err)
		assert.Len(t, rels, 2)
	})
}

// TestGetRelatedSingleRead tests that the related nodes and their count come from a single store read.
func TestGetRelatedSingleRead(t *testing.T) {
	store := &mocks.Repository{}
	e := testingEngine(t, store)
	store.On("EnsureIndex", mock.Anything, mock.Anything).Return(nil)
	store.On("QueryPage", mock.Anything, mock.Anything).Return(&repository.RowsPage{
		Rows: []repository.Row{{
			Relationship: &repository.Relationship{ID: "r1", Properties: mapping.Properties{"role": "bass"}},
			Node:         &repository.Node{ID: "2", Properties: mapping.Properties{"fbid": int64(10)}},
		}},
		Count: 3,
	}, nil)

	related, err := e.GetRelatedNodes(context.Background(), int64(1), entity(e, "user"), "is_member_of", Page{Limit: 1})
	require.NoError(t, err)
	require.Len(t, related.Data, 1)
	assert.Equal(t, int64(3), related.Count)
	assert.Equal(t, mapping.Properties{"role": "bass"}, related.Data[0][RelationshipField])
	store.AssertNumberOfCalls(t, "QueryPage", 1)
	store.AssertNotCalled(t, "Query", mock.Anything, mock.Anything)
}
