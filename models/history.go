package models

// HistoryEntry is one prompt/response pair from the text generator
type HistoryEntry struct {
	Prompt    string `bson:"prompt" json:"prompt"`
	Text      string `bson:"text" json:"text"`
	CreatedAt int64  `bson:"createdAt" json:"createdAt"` // epoch milliseconds
}
