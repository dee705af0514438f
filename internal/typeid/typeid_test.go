package typeid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewAndValidate(t *testing.T) {
	id := NewGraphID()
	require.NoError(t, Validate(id, PrefixGraph))
	assert.Error(t, Validate(id, PrefixCommand))
	assert.Error(t, Validate("not-an-id", PrefixGraph))
	assert.NotEqual(t, id, NewGraphID())
}
