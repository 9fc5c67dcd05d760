package profile

import (
	"context"
	"testing"
	"time"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryStore_Upsert(t *testing.T) {
	s := NewMemoryStore()
	first := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	s.now = func() time.Time { return first }
	ctx := context.Background()

	p, err := s.Upsert(ctx, models.UserProfile{UID: "u1", Email: "a@example.com", DisplayName: "Ada"})
	require.NoError(t, err)
	assert.Equal(t, first, p.CreatedAt)

	later := first.Add(48 * time.Hour)
	s.now = func() time.Time { return later }
	p, err = s.Upsert(ctx, models.UserProfile{UID: "u1", Email: "a@example.com", DisplayName: "Ada L."})
	require.NoError(t, err)
	assert.Equal(t, first, p.CreatedAt)
	assert.Equal(t, later, p.UpdatedAt)

	got, err := s.Get(ctx, "u1")
	require.NoError(t, err)
	assert.Equal(t, "Ada L.", got.DisplayName)

	_, err = s.Get(ctx, "nobody")
	assert.ErrorIs(t, err, ErrNotFound)

	_, err = s.Upsert(ctx, models.UserProfile{})
	assert.ErrorIs(t, err, ErrMissingUID)
}
