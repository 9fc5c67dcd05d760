// Package api exposes the closet, generation and profile features over HTTP.
package api

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/generation"
	"github.com/raushankrgupta/virtual-closet/history"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
	"go.uber.org/zap"
)

// ProfileStore reads and writes user profile documents
type ProfileStore interface {
	Upsert(ctx context.Context, p models.UserProfile) (models.UserProfile, error)
	Get(ctx context.Context, uid string) (models.UserProfile, error)
}

// Handler carries the dependencies shared by every endpoint
type Handler struct {
	Closets    *closet.Registry
	History    history.Store
	Generation *generation.Service
	// Generator backs the public /generate/text endpoint, which records no history
	Generator generation.Generator
	TextCap   int
	Profiles  ProfileStore
	// Images is nil when storage is not configured
	Images          utils.ImageStore
	VerifyIDToken   TokenVerifier
	BrowserFallback bool
	Logger          *zap.Logger

	now func() time.Time
}

func (h *Handler) logger() *zap.Logger {
	if h.Logger == nil {
		return zap.L()
	}
	return h.Logger
}

func (h *Handler) clock() time.Time {
	if h.now != nil {
		return h.now()
	}
	return time.Now()
}

// flushLog writes the request's log message once the handler returns
func (h *Handler) flushLog(r *http.Request, logMessageBuilder *strings.Builder) {
	userID, _ := GetUserIDFromContext(r.Context())
	h.logger().Info(logMessageBuilder.String(),
		zap.String("path", r.URL.Path),
		zap.String("user_id", userID),
	)
}

func decodeJSON(r *http.Request, v interface{}) error {
	return json.NewDecoder(r.Body).Decode(v)
}

// withSession resolves the caller and runs fn against their closet session.
// It reports false after writing a 401.
func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, logMessageBuilder *strings.Builder, fn func(*closet.Session)) bool {
	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return false
	}
	h.Closets.With(userID, fn)
	return true
}

// presentItem swaps a stored image key for a temporary URL
func (h *Handler) presentItem(ctx context.Context, item models.ClothingItem) models.ClothingItem {
	if h.Images != nil {
		item.ImageURL = utils.PresignImageURL(ctx, h.Images, item.ImageURL)
	}
	return item
}

func (h *Handler) presentItems(ctx context.Context, items []models.ClothingItem) []models.ClothingItem {
	out := make([]models.ClothingItem, 0, len(items))
	for _, it := range items {
		out = append(out, h.presentItem(ctx, it))
	}
	return out
}

func (h *Handler) presentPlaced(ctx context.Context, items []models.PlacedItem) []models.PlacedItem {
	out := make([]models.PlacedItem, 0, len(items))
	for _, p := range items {
		p.Item = h.presentItem(ctx, p.Item)
		out = append(out, p)
	}
	return out
}

func (h *Handler) presentOutfit(ctx context.Context, o models.Outfit) models.Outfit {
	o.Items = h.presentPlaced(ctx, o.Items)
	if h.Images != nil {
		o.Thumbnail = utils.PresignImageURL(ctx, h.Images, o.Thumbnail)
	}
	return o
}

func (h *Handler) presentOutfits(ctx context.Context, outfits []models.Outfit) []models.Outfit {
	out := make([]models.Outfit, 0, len(outfits))
	for _, o := range outfits {
		out = append(out, h.presentOutfit(ctx, o))
	}
	return out
}
