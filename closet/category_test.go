package closet

import (
	"testing"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGuessCategory(t *testing.T) {
	tests := []struct {
		texts []string
		want  models.Category
	}{
		{[]string{"Accessories"}, models.CategoryAccessories},
		{[]string{"Men White Solid Cotton T-Shirt"}, models.CategoryTops},
		{[]string{"Bootcut Jeans"}, models.CategoryBottoms},
		{[]string{"Running Sneakers"}, models.CategoryShoes},
		{[]string{"That leather belt"}, models.CategoryAccessories},
		{[]string{"", "Home > Women > Skirts"}, models.CategoryBottoms},
		{[]string{"Mystery object"}, models.CategoryTops},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, GuessCategory(tt.texts...), "%v", tt.texts)
	}
}

func TestLayerPriority(t *testing.T) {
	assert.Equal(t, 4, LayerPriority(models.CategoryAccessories))
	assert.Equal(t, 1, LayerPriority(models.CategoryShoes))
	assert.Equal(t, DefaultZIndex, LayerPriority(models.Category("unknown")))
}

func TestResolveCategory(t *testing.T) {
	c, err := ResolveCategory(" Shoes ")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryShoes, c)

	c, err = ResolveCategory("", "Slim fit chinos")
	require.NoError(t, err)
	assert.Equal(t, models.CategoryBottoms, c)

	_, err = ResolveCategory("outerwear")
	assert.ErrorIs(t, err, ErrInvalidCategory)
}
