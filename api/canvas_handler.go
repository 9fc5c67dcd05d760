package api

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

type canvasResponse struct {
	Width  float64             `json:"width"`
	Height float64             `json:"height"`
	Items  []models.PlacedItem `json:"items"`
}

type boundsRequest struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

type placeRequest struct {
	ItemID string `json:"item_id"`
}

type moveRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type scaleRequest struct {
	Delta float64 `json:"delta"`
}

func (h *Handler) canvasState(r *http.Request, s *closet.Session) canvasResponse {
	width, height, _ := s.Canvas.Bounds()
	return canvasResponse{
		Width:  width,
		Height: height,
		Items:  h.presentPlaced(r.Context(), s.Canvas.Items()),
	}
}

// respondCanvas runs fn against the caller's session and answers with the
// canvas as it stands afterwards, in render order
func (h *Handler) respondCanvas(w http.ResponseWriter, r *http.Request, apiName string, fn func(*closet.Session)) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, apiName)

	var state canvasResponse
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		if fn != nil {
			fn(s)
		}
		state = h.canvasState(r, s)
	})
	if !ok {
		return
	}
	utils.RespondJSON(w, http.StatusOK, state)
}

// CanvasHandler returns the canvas in render order
func (h *Handler) CanvasHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCanvas(w, r, "[Canvas API]", nil)
}

// CanvasBoundsHandler registers the client's visible canvas size
func (h *Handler) CanvasBoundsHandler(w http.ResponseWriter, r *http.Request) {
	var req boundsRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, nil, "Invalid request body", http.StatusBadRequest)
		return
	}
	h.respondCanvas(w, r, "[Canvas Bounds API]", func(s *closet.Session) {
		s.Canvas.SetBounds(req.Width, req.Height)
	})
}

// PlaceItemHandler places a wardrobe item on the canvas
func (h *Handler) PlaceItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Place Canvas Item API]")

	var req placeRequest
	if err := decodeJSON(r, &req); err != nil || req.ItemID == "" {
		utils.RespondError(w, &logMessageBuilder, "item_id is required", http.StatusBadRequest)
		return
	}

	var (
		placed models.PlacedItem
		found  bool
	)
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		placed, found = s.PlaceItem(req.ItemID)
	})
	if !ok {
		return
	}
	if !found {
		utils.RespondError(w, &logMessageBuilder, "Wardrobe item not found", http.StatusNotFound)
		return
	}

	placed.Item = h.presentItem(r.Context(), placed.Item)
	utils.RespondJSON(w, http.StatusCreated, placed)
}

// MoveItemHandler moves a placement, clamped to the registered bounds.
// Without bounds the move is ignored.
func (h *Handler) MoveItemHandler(w http.ResponseWriter, r *http.Request) {
	var req moveRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, nil, "Invalid request body", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	h.respondCanvas(w, r, "[Move Canvas Item API]", func(s *closet.Session) {
		s.Canvas.Move(id, req.X, req.Y)
	})
}

// ScaleItemHandler adjusts a placement's scale by delta
func (h *Handler) ScaleItemHandler(w http.ResponseWriter, r *http.Request) {
	var req scaleRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, nil, "Invalid request body", http.StatusBadRequest)
		return
	}
	id := chi.URLParam(r, "id")
	h.respondCanvas(w, r, "[Scale Canvas Item API]", func(s *closet.Session) {
		s.Canvas.Scale(id, req.Delta)
	})
}

// RotateItemHandler turns a placement a quarter turn clockwise
func (h *Handler) RotateItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondCanvas(w, r, "[Rotate Canvas Item API]", func(s *closet.Session) {
		s.Canvas.Rotate(id)
	})
}

// BringToFrontHandler raises a placement above every other one
func (h *Handler) BringToFrontHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondCanvas(w, r, "[Bring To Front API]", func(s *closet.Session) {
		s.Canvas.BringToFront(id)
	})
}

func (h *Handler) RemovePlacedItemHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	h.respondCanvas(w, r, "[Remove Canvas Item API]", func(s *closet.Session) {
		s.Canvas.Remove(id)
	})
}

func (h *Handler) ClearCanvasHandler(w http.ResponseWriter, r *http.Request) {
	h.respondCanvas(w, r, "[Clear Canvas API]", func(s *closet.Session) {
		s.Canvas.Clear()
	})
}
