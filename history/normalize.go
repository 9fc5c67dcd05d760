package history

import (
	"math"

	"github.com/raushankrgupta/virtual-closet/models"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Field is the document field holding the entry array
const Field = "history"

// Normalize converts a stored history value into entries. Anything that is not
// an array yields no entries; array elements that are not documents are
// dropped; missing prompt or text become "" and a missing or non-numeric
// createdAt becomes 0. The stored order is preserved.
func Normalize(raw interface{}) []models.HistoryEntry {
	list, ok := asList(raw)
	if !ok {
		return []models.HistoryEntry{}
	}

	entries := make([]models.HistoryEntry, 0, len(list))
	for _, el := range list {
		doc, ok := asDocument(el)
		if !ok {
			continue
		}
		entries = append(entries, models.HistoryEntry{
			Prompt:    asString(doc["prompt"]),
			Text:      asString(doc["text"]),
			CreatedAt: asMillis(doc["createdAt"]),
		})
	}
	return entries
}

func asList(v interface{}) ([]interface{}, bool) {
	switch l := v.(type) {
	case bson.A:
		return l, true
	case []interface{}:
		return l, true
	case []bson.M:
		out := make([]interface{}, len(l))
		for i := range l {
			out[i] = l[i]
		}
		return out, true
	}
	return nil, false
}

func asDocument(v interface{}) (map[string]interface{}, bool) {
	switch d := v.(type) {
	case bson.M:
		return d, true
	case map[string]interface{}:
		return d, true
	case bson.D:
		m := make(map[string]interface{}, len(d))
		for _, e := range d {
			m[e.Key] = e.Value
		}
		return m, true
	}
	return nil, false
}

func asString(v interface{}) string {
	s, _ := v.(string)
	return s
}

func asMillis(v interface{}) int64 {
	switch n := v.(type) {
	case int64:
		return n
	case int32:
		return int64(n)
	case int:
		return int64(n)
	case float64:
		if math.IsNaN(n) || math.IsInf(n, 0) {
			return 0
		}
		return int64(n)
	case primitive.DateTime:
		return int64(n)
	}
	return 0
}
