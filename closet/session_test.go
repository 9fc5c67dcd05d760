package closet

import (
	"sync"
	"testing"
	"time"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSession_PlaceSaveAndLoad(t *testing.T) {
	s := NewSession()
	tee := s.Wardrobe.Add(models.ClothingItem{Name: "Tee", Category: models.CategoryTops})

	placed, ok := s.PlaceItem(tee.ID)
	require.True(t, ok)
	_, ok = s.PlaceItem("missing")
	assert.False(t, ok)

	outfit, err := s.SaveOutfit("Basics", "", "")
	require.NoError(t, err)

	s.Canvas.Clear()
	loaded, ok := s.LoadOutfit(outfit.ID)
	require.True(t, ok)
	require.Len(t, loaded, 1)
	assert.NotEqual(t, placed.ID, loaded[0].ID)
	assert.Equal(t, 1, s.Canvas.Len())
}

func TestSession_RemovingWardrobeItemKeepsPlacement(t *testing.T) {
	s := NewSession()
	tee := s.Wardrobe.Add(models.ClothingItem{Name: "Tee", Category: models.CategoryTops})
	placed, _ := s.PlaceItem(tee.ID)

	s.Wardrobe.Remove(tee.ID)

	got, ok := s.Canvas.Get(placed.ID)
	require.True(t, ok)
	assert.Equal(t, "Tee", got.Item.Name)
}

func TestSession_Stats(t *testing.T) {
	now := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	s := NewSession()
	s.Wardrobe.Add(models.ClothingItem{Name: "Old", Category: models.CategoryTops, CreatedAt: now.AddDate(0, -1, 0)})
	fresh := s.Wardrobe.Add(models.ClothingItem{Name: "New", Category: models.CategoryShoes, CreatedAt: now.Add(-time.Hour)})
	s.Wardrobe.ToggleFavorite(fresh.ID)
	_, err := s.SaveOutfit("Look", "", "")
	require.NoError(t, err)

	assert.Equal(t, models.ClosetStats{
		TotalItems:    2,
		TotalOutfits:  1,
		FavoriteItems: 1,
		RecentlyAdded: 1,
	}, s.Stats(now))
}

func TestRegistry_SessionPerUser(t *testing.T) {
	inits := 0
	r := NewRegistry(func(s *Session) {
		inits++
		s.Canvas.SetBounds(800, 600)
	})

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			r.With("alice", func(s *Session) {
				s.Wardrobe.Add(models.ClothingItem{Name: "Tee", Category: models.CategoryTops})
			})
		}()
	}
	wg.Wait()

	r.With("alice", func(s *Session) {
		assert.Len(t, s.Wardrobe.List(), 20)
		_, _, ok := s.Canvas.Bounds()
		assert.True(t, ok)
	})
	r.With("bob", func(s *Session) {
		assert.Empty(t, s.Wardrobe.List())
	})
	assert.Equal(t, 2, inits)
}
