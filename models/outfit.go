package models

import "time"

// Outfit is a named snapshot of a canvas composition
type Outfit struct {
	ID        string       `bson:"id" json:"id"`
	Name      string       `bson:"name" json:"name"`
	Items     []PlacedItem `bson:"items" json:"items"`
	Occasion  string       `bson:"occasion,omitempty" json:"occasion,omitempty"`
	Season    string       `bson:"season,omitempty" json:"season,omitempty"`
	Favorite  bool         `bson:"favorite" json:"favorite"`
	Thumbnail string       `bson:"thumbnail,omitempty" json:"thumbnail,omitempty"`
	CreatedAt time.Time    `bson:"created_at" json:"created_at"`
}

// Clone deep-copies the outfit and every placement in it
func (o Outfit) Clone() Outfit {
	if o.Items != nil {
		items := make([]PlacedItem, len(o.Items))
		for i, it := range o.Items {
			items[i] = it.Clone()
		}
		o.Items = items
	}
	return o
}
