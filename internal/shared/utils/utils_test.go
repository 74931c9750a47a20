package utils

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

func TestUniqueUUIDs(t *testing.T) {
	a, b := uuid.New(), uuid.New()
	assert.Equal(t, []uuid.UUID{a, b}, UniqueUUIDs([]uuid.UUID{a, b, a, b, a}))
	assert.Empty(t, UniqueUUIDs(nil))
}

func TestMergeKeys(t *testing.T) {
	merged, removed := MergeKeys(
		[]string{"k1", "k2", "k3"},
		[]string{"k2", "missing"},
		[]string{"k4", "k1", "k5"},
	)

	assert.Equal(t, []string{"k1", "k3", "k4", "k5"}, merged)
	assert.Equal(t, []string{"k2"}, removed)
}

func TestMergeKeys_NothingToRemove(t *testing.T) {
	merged, removed := MergeKeys([]string{"a"}, nil, []string{"b"})
	assert.Equal(t, []string{"a", "b"}, merged)
	assert.Empty(t, removed)
}

func TestUniqueStrings(t *testing.T) {
	assert.Equal(t, []string{"a", "b"}, UniqueStrings([]string{"a", "", "b", "a"}))
	assert.Empty(t, UniqueStrings(nil))
}
