package models

// Position is a point in canvas coordinate space
type Position struct {
	X float64 `bson:"x" json:"x"`
	Y float64 `bson:"y" json:"y"`
}

// PlacedItem is an instance of a wardrobe item positioned on the outfit canvas.
// A nil Position, zero Scale or zero ZIndex means the field was never set.
type PlacedItem struct {
	ID       string       `bson:"id" json:"id"`
	Item     ClothingItem `bson:"item" json:"item"`
	Position *Position    `bson:"position,omitempty" json:"position,omitempty"`
	ZIndex   int          `bson:"z_index" json:"z_index"`
	Scale    float64      `bson:"scale" json:"scale"`
	Rotation int          `bson:"rotation" json:"rotation"` // degrees, one of 0/90/180/270
}

// Clone deep-copies the placement, including its position and item tags
func (p PlacedItem) Clone() PlacedItem {
	p.Item = p.Item.Clone()
	if p.Position != nil {
		pos := *p.Position
		p.Position = &pos
	}
	return p
}
