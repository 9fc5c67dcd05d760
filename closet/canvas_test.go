package closet

import (
	"math/rand"
	"testing"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func item(name string, c models.Category) models.ClothingItem {
	return models.ClothingItem{ID: "src-" + name, Name: name, Category: c, ImageURL: name + ".png"}
}

func TestCanvas_AddToCanvasDefaults(t *testing.T) {
	c := NewCanvas()
	hat := item("hat", models.CategoryAccessories)

	p := c.AddToCanvas(hat)

	assert.NotEqual(t, hat.ID, p.ID)
	require.NotNil(t, p.Position)
	assert.Equal(t, models.Position{X: DefaultX, Y: DefaultY}, *p.Position)
	assert.Equal(t, 1.0, p.Scale)
	assert.Equal(t, 0, p.Rotation)
	assert.Equal(t, "hat", p.Item.Name)
}

func TestCanvas_SameItemPlacedTwiceGetsDistinctIDs(t *testing.T) {
	c := NewCanvas()
	shirt := item("shirt", models.CategoryTops)

	a := c.AddToCanvas(shirt)
	b := c.AddToCanvas(shirt)

	assert.NotEqual(t, a.ID, b.ID)
	assert.Equal(t, 2, c.Len())
}

func TestCanvas_LayerPriorityByCategory(t *testing.T) {
	c := NewCanvas()
	shoes := c.AddToCanvas(item("shoes", models.CategoryShoes))
	bottoms := c.AddToCanvas(item("jeans", models.CategoryBottoms))
	hat := c.AddToCanvas(item("hat", models.CategoryAccessories))
	top := c.AddToCanvas(item("tee", models.CategoryTops))

	assert.Greater(t, hat.ZIndex, top.ZIndex)
	assert.Greater(t, top.ZIndex, bottoms.ZIndex)
	assert.Greater(t, bottoms.ZIndex, shoes.ZIndex)

	var order []string
	for _, p := range c.Items() {
		order = append(order, p.Item.Name)
	}
	assert.Equal(t, []string{"shoes", "jeans", "tee", "hat"}, order)
}

func TestCanvas_ItemsBreaksTiesByInsertion(t *testing.T) {
	c := NewCanvas()
	c.AddToCanvas(item("first", models.CategoryTops))
	c.AddToCanvas(item("second", models.CategoryTops))

	items := c.Items()
	assert.Equal(t, "first", items[0].Item.Name)
	assert.Equal(t, "second", items[1].Item.Name)
}

func TestCanvas_MoveWithoutBoundsIsNoop(t *testing.T) {
	c := NewCanvas()
	p := c.AddToCanvas(item("tee", models.CategoryTops))

	_, ok := c.Move(p.ID, 10, 10)
	assert.False(t, ok)

	got, _ := c.Get(p.ID)
	assert.Equal(t, DefaultX, got.Position.X)
}

func TestCanvas_MoveClampsToBounds(t *testing.T) {
	c := NewCanvas()
	c.SetBounds(500, 400)
	p := c.AddToCanvas(item("tee", models.CategoryTops))

	moved, ok := c.Move(p.ID, 50, 60)
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 50, Y: 60}, *moved.Position)

	moved, _ = c.Move(p.ID, -20, 1000)
	assert.Equal(t, models.Position{X: 0, Y: 400 - ItemFootprint}, *moved.Position)

	c.Scale(p.ID, 1)
	moved, _ = c.Move(p.ID, 1000, 1000)
	assert.Equal(t, models.Position{X: 500 - 2*ItemFootprint, Y: 400 - 2*ItemFootprint}, *moved.Position)
}

func TestCanvas_MoveOnCanvasSmallerThanFootprint(t *testing.T) {
	c := NewCanvas()
	c.SetBounds(50, 50)
	p := c.AddToCanvas(item("coat", models.CategoryTops))

	moved, ok := c.Move(p.ID, 30, 30)
	require.True(t, ok)
	assert.Equal(t, models.Position{X: 0, Y: 0}, *moved.Position)
}

func TestCanvas_ScaleStaysInRange(t *testing.T) {
	c := NewCanvas()
	p := c.AddToCanvas(item("tee", models.CategoryTops))
	rng := rand.New(rand.NewSource(7))

	for i := 0; i < 500; i++ {
		delta := (rng.Float64() - 0.5) * 3
		got, ok := c.Scale(p.ID, delta)
		require.True(t, ok)
		assert.GreaterOrEqual(t, got.Scale, MinScale)
		assert.LessOrEqual(t, got.Scale, MaxScale)
	}

	got, _ := c.Scale(p.ID, 100)
	assert.Equal(t, MaxScale, got.Scale)
	got, _ = c.Scale(p.ID, -100)
	assert.Equal(t, MinScale, got.Scale)
}

func TestCanvas_RotateCyclesQuarterTurns(t *testing.T) {
	c := NewCanvas()
	p := c.AddToCanvas(item("tee", models.CategoryTops))

	seen := []int{}
	for i := 0; i < 4; i++ {
		got, ok := c.Rotate(p.ID)
		require.True(t, ok)
		seen = append(seen, got.Rotation)
	}

	assert.Equal(t, []int{90, 180, 270, 0}, seen)
}

func TestCanvas_BringToFront(t *testing.T) {
	c := NewCanvas()
	shoes := c.AddToCanvas(item("shoes", models.CategoryShoes))
	hat := c.AddToCanvas(item("hat", models.CategoryAccessories))

	front, ok := c.BringToFront(shoes.ID)
	require.True(t, ok)
	assert.Equal(t, hat.ZIndex+1, front.ZIndex)

	again, _ := c.BringToFront(shoes.ID)
	assert.Greater(t, again.ZIndex, front.ZIndex)

	items := c.Items()
	assert.Equal(t, shoes.ID, items[len(items)-1].ID)
}

func TestCanvas_UnknownIDsAreNoops(t *testing.T) {
	c := NewCanvas()
	c.SetBounds(100, 100)
	c.AddToCanvas(item("tee", models.CategoryTops))
	before := c.Snapshot()

	assert.NotPanics(t, func() {
		_, ok := c.Move("missing", 1, 1)
		assert.False(t, ok)
		_, ok = c.Scale("missing", 1)
		assert.False(t, ok)
		_, ok = c.Rotate("missing")
		assert.False(t, ok)
		_, ok = c.BringToFront("missing")
		assert.False(t, ok)
		assert.False(t, c.Remove("missing"))
	})
	assert.Equal(t, before, c.Snapshot())
}

func TestCanvas_RemoveAndClear(t *testing.T) {
	c := NewCanvas()
	c.SetBounds(300, 300)
	a := c.AddToCanvas(item("a", models.CategoryTops))
	c.AddToCanvas(item("b", models.CategoryTops))

	assert.True(t, c.Remove(a.ID))
	assert.Equal(t, 1, c.Len())

	c.Clear()
	assert.Zero(t, c.Len())
	_, _, ok := c.Bounds()
	assert.True(t, ok)
}

func TestCanvas_SnapshotIsDetached(t *testing.T) {
	c := NewCanvas()
	c.SetBounds(500, 500)
	p := c.AddToCanvas(item("tee", models.CategoryTops))

	snap := c.Snapshot()
	snap[0].Position.X = 999
	snap[0].Item.Name = "changed"

	got, _ := c.Get(p.ID)
	assert.Equal(t, DefaultX, got.Position.X)
	assert.Equal(t, "tee", got.Item.Name)
}
