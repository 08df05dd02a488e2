package policy

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCan(t *testing.T) {
	assert.True(t, Can(1, 1, ActionUpdate))
	assert.True(t, Can(1, 1, ActionDelete))
	assert.False(t, Can(2, 1, ActionUpdate))
	assert.False(t, Can(2, 1, ActionDelete))
	// Anonymous callers are never owners.
	assert.False(t, Can(0, 0, ActionDelete))
}
