package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/neuronlabs/neuron-graph/errors/class"
)

func TestDetailedError(t *testing.T) {
	t.Run("New", func(t *testing.T) {
		err := NewDetf(class.NodeNotFound, "song with key scid=%d does not exist", 123)
		assert.Equal(t, "song with key scid=123 does not exist", err.Error())
		assert.Equal(t, class.NodeNotFound, err.Class())
		assert.NotEmpty(t, err.ID.String())
		assert.Contains(t, err.Operation, "errors_test.go")
	})

	t.Run("Details", func(t *testing.T) {
		err := NewDet(class.NodeConflict, "conflict").SetDetails("second")
		err.WrapDetails("first")
		assert.Equal(t, "first second", err.Details)
	})

	t.Run("Wrap", func(t *testing.T) {
		cause := fmt.Errorf("connection refused")
		err := Wrap(class.StoreRemoteCall, cause, "create node")
		assert.Equal(t, "create node: connection refused", err.Error())
		assert.Equal(t, cause, err.Unwrap())
	})
}

func TestIsClass(t *testing.T) {
	err := NewDet(class.NodeNotFound, "not found")
	wrapped := fmt.Errorf("outer: %w", err)

	assert.True(t, IsClass(err, class.NodeNotFound))
	assert.True(t, IsClass(wrapped, class.NodeNotFound))
	assert.False(t, IsClass(wrapped, class.NodeConflict))
	assert.False(t, IsClass(nil, class.NodeNotFound))
	assert.False(t, IsClass(fmt.Errorf("plain"), class.NodeNotFound))

	assert.True(t, IsMajor(wrapped, class.MjrNode))
	assert.True(t, IsNotFound(wrapped))
	assert.True(t, IsNotFound(NewDet(class.ConnectionDeleteNotFound, "")))
	assert.False(t, IsNotFound(NewDet(class.NodeDeleteFailed, "")))

	hook := Wrap(class.HookRejection, err, "hook")
	require.Equal(t, class.HookRejection, ClassOf(hook))
}

func TestMultiError(t *testing.T) {
	m := MultiError{fmt.Errorf("first"), fmt.Errorf("second")}
	assert.Equal(t, "first,second", m.Error())
}
