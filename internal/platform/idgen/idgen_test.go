package idgen

import (
	"testing"

	"github.com/google/uuid"
	"github.com/oklog/ulid/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUUID(t *testing.T) {
	id, err := UUID().New()
	require.NoError(t, err)
	_, err = uuid.Parse(id)
	assert.NoError(t, err)
}

func TestULID_Monotonic(t *testing.T) {
	g := ULID()
	a, err := g.New()
	require.NoError(t, err)
	b, err := g.New()
	require.NoError(t, err)

	_, err = ulid.ParseStrict(a)
	require.NoError(t, err)
	assert.Less(t, a, b)
}

func TestSequence(t *testing.T) {
	s := NewSequence("id")
	a, _ := s.New()
	b, _ := s.New()
	assert.Equal(t, "id-1", a)
	assert.Equal(t, "id-2", b)
}
