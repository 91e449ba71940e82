package randutil

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewIsDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for range 10 {
		assert.Equal(t, a.Uint64(), b.Uint64())
	}
}

func TestSeeds(t *testing.T) {
	first := Seeds(7, 16)
	second := Seeds(7, 16)
	assert.Equal(t, first, second)

	seen := make(map[int64]bool)
	for _, s := range first {
		assert.False(t, seen[s], "duplicate child seed %d", s)
		seen[s] = true
	}

	assert.NotEqual(t, Seeds(8, 1)[0], first[0])
}
