package closet

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/raushankrgupta/virtual-closet/models"
)

// layerPriority is the initial z-order of an item added to the canvas.
// Accessories render above garments, shoes at the bottom.
var layerPriority = map[models.Category]int{
	models.CategoryAccessories: 4,
	models.CategoryTops:        3,
	models.CategoryBottoms:     2,
	models.CategoryShoes:       1,
}

// ErrInvalidCategory is returned for a category outside models.Categories
var ErrInvalidCategory = errors.New("invalid category")

// ResolveCategory parses an explicit category. Empty input falls back to
// guessing from hints.
func ResolveCategory(raw string, hints ...string) (models.Category, error) {
	if strings.TrimSpace(raw) == "" {
		return GuessCategory(hints...), nil
	}
	c, err := models.ParseCategory(raw)
	if err != nil {
		return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
	}
	return c, nil
}

// LayerPriority returns the default z-order for a category
func LayerPriority(c models.Category) int {
	if p, ok := layerPriority[c]; ok {
		return p
	}
	return DefaultZIndex
}

// categoryKeywords is checked in order; a word matches when it starts with a keyword.
var categoryKeywords = []struct {
	category models.Category
	words    []string
}{
	{models.CategoryBottoms, []string{"jean", "trouser", "pant", "short", "skirt", "legging", "jogger", "chino", "bottom", "capri"}},
	{models.CategoryShoes, []string{"shoe", "sneaker", "boot", "sandal", "heel", "loafer", "slipper", "footwear", "flip", "trainer"}},
	{models.CategoryAccessories, []string{"bag", "belt", "hat", "cap", "scarf", "watch", "sunglass", "necklace", "earring", "bracelet", "wallet", "jewel", "accessor"}},
	{models.CategoryTops, []string{"shirt", "tshirt", "tee", "top", "blouse", "sweater", "hoodie", "jacket", "coat", "kurta", "dress", "cardigan"}},
}

// GuessCategory maps free text (a page title, breadcrumb or category label) to
// a wardrobe category. Text that matches nothing is treated as a top.
func GuessCategory(texts ...string) models.Category {
	for _, text := range texts {
		if c, err := models.ParseCategory(text); err == nil {
			return c
		}
	}
	for _, text := range texts {
		words := strings.FieldsFunc(strings.ToLower(text), func(r rune) bool {
			return !unicode.IsLetter(r)
		})
		for _, group := range categoryKeywords {
			for _, word := range words {
				for _, kw := range group.words {
					if strings.HasPrefix(word, kw) {
						return group.category
					}
				}
			}
		}
	}
	return models.CategoryTops
}
