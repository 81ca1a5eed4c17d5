package pagination

import (
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors"
	"github.com/neuronlabs/neuron-graph/errors/class"
)

func mustParse(t *testing.T, raw string) *url.URL {
	t.Helper()
	u, err := url.Parse(raw)
	require.NoError(t, err)
	return u
}

// TestLinks tests the paging links.
func TestLinks(t *testing.T) {
	base := mustParse(t, "http://localhost:8080/users/1/bands?include=members&skip=3&limit=9")

	t.Run("FirstPage", func(t *testing.T) {
		p := Links(base, 0, 10)
		require.NotNil(t, p)
		next := mustParse(t, p.Next)
		assert.Equal(t, "/users/1/bands", next.Path)
		assert.Equal(t, url.Values{"include": {"members"}, "skip": {"10"}, "limit": {"10"}}, next.Query())
		assert.Empty(t, p.Previous)
	})

	t.Run("MiddlePage", func(t *testing.T) {
		p := Links(base, 20, 10)
		require.NotNil(t, p)
		assert.Equal(t, "30", mustParse(t, p.Next).Query().Get(ParamSkip))
		assert.Equal(t, "10", mustParse(t, p.Previous).Query().Get(ParamSkip))
	})

	t.Run("PreviousClamped", func(t *testing.T) {
		p := Links(base, 5, 10)
		require.NotNil(t, p)
		assert.Equal(t, "0", mustParse(t, p.Previous).Query().Get(ParamSkip))
		assert.Equal(t, "15", mustParse(t, p.Next).Query().Get(ParamSkip))
	})

	t.Run("NoLimit", func(t *testing.T) {
		assert.Nil(t, Links(base, 0, 0))
		assert.Nil(t, Links(base, 10, -1))
		assert.Nil(t, Links(nil, 0, 10))
	})

	t.Run("BaseUnchanged", func(t *testing.T) {
		Links(base, 0, 10)
		assert.Equal(t, "3", base.Query().Get(ParamSkip))
	})
}

// TestParseParams tests the paging parameters parsing.
func TestParseParams(t *testing.T) {
	p, err := ParseParams(url.Values{"skip": {"2"}, "limit": {"5"}})
	require.NoError(t, err)
	assert.Equal(t, Params{Skip: 2, Limit: 5}, p)

	p, err = ParseParams(url.Values{})
	require.NoError(t, err)
	assert.Equal(t, Params{}, p)

	_, err = ParseParams(url.Values{"limit": {"ten"}})
	assert.True(t, errors.IsClass(err, class.CommonInvalidOptions))

	_, err = ParseParams(url.Values{"skip": {"-1"}})
	assert.True(t, errors.IsClass(err, class.CommonInvalidOptions))
}
