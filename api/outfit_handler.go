package api

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

type saveOutfitRequest struct {
	Name     string `json:"name"`
	Occasion string `json:"occasion"`
	Season   string `json:"season"`
}

type outfitsResponse struct {
	Outfits []models.Outfit `json:"outfits"`
}

// ListOutfitsHandler lists saved outfits in save order
func (h *Handler) ListOutfitsHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateArchive(w, r, "[List Outfits API]", nil)
}

// SaveOutfitHandler archives the current canvas under a name
func (h *Handler) SaveOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Save Outfit API]")

	var req saveOutfitRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	var (
		outfit  models.Outfit
		saveErr error
	)
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		outfit, saveErr = s.SaveOutfit(req.Name, req.Occasion, req.Season)
	})
	if !ok {
		return
	}
	if errors.Is(saveErr, closet.ErrEmptyOutfitName) {
		utils.RespondError(w, &logMessageBuilder, "Outfit name is required", http.StatusBadRequest)
		return
	}
	if saveErr != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Save failed: %v", saveErr))
		utils.RespondError(w, &logMessageBuilder, "Failed to save outfit", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Saved outfit %s with %d items", outfit.ID, len(outfit.Items)))
	utils.RespondJSON(w, http.StatusCreated, h.presentOutfit(r.Context(), outfit))
}

// LoadOutfitHandler replaces the canvas with a saved outfit
func (h *Handler) LoadOutfitHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Load Outfit API]")

	id := chi.URLParam(r, "id")
	var (
		state canvasResponse
		found bool
	)
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		if _, found = s.LoadOutfit(id); found {
			state = h.canvasState(r, s)
		}
	})
	if !ok {
		return
	}
	if !found {
		utils.RespondError(w, &logMessageBuilder, "Outfit not found", http.StatusNotFound)
		return
	}

	utils.RespondJSON(w, http.StatusOK, state)
}

// FavoriteOutfitHandler toggles an outfit's favorite flag
func (h *Handler) FavoriteOutfitHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateArchive(w, r, "[Favorite Outfit API]", func(a *closet.Archive, id string) {
		a.ToggleFavorite(id)
	})
}

// DeleteOutfitHandler removes a saved outfit. The canvas is not affected.
func (h *Handler) DeleteOutfitHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateArchive(w, r, "[Delete Outfit API]", func(a *closet.Archive, id string) {
		a.Delete(id)
	})
}

func (h *Handler) mutateArchive(w http.ResponseWriter, r *http.Request, apiName string, fn func(*closet.Archive, string)) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, apiName)

	id := chi.URLParam(r, "id")
	var outfits []models.Outfit
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		if fn != nil {
			fn(s.Archive, id)
		}
		outfits = s.Archive.List()
	})
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, outfitsResponse{Outfits: h.presentOutfits(r.Context(), outfits)})
}
