package textio

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRoundup(t *testing.T) {
	assert.Equal(t, 16, Roundup(1, 16))
	assert.Equal(t, 16, Roundup(16, 16))
	assert.Equal(t, 32, Roundup(17, 16))
	assert.Equal(t, 0, Roundup(0, 16))
}
