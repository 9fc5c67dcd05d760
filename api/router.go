package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// NewRouter wires every route of the closet service
func NewRouter(h *Handler) chi.Router {
	r := chi.NewRouter()

	r.Use(corsMiddleware)
	r.Use(utils.LatencyMiddleware(h.logger()))
	r.Use(middleware.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		utils.RespondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	// Public
	r.Post("/generate/text", h.GenerateTextHandler)
	r.Post("/auth/google", h.GoogleSignInHandler)

	r.Group(func(r chi.Router) {
		r.Use(AuthMiddleware)

		r.Get("/profile", h.ProfileHandler)
		r.Get("/dashboard", h.DashboardHandler)
		r.Get("/history", h.HistoryHandler)
		r.Post("/generate", h.GenerateHandler)

		r.Route("/wardrobe", func(r chi.Router) {
			r.Get("/items", h.ListItemsHandler)
			r.Post("/items", h.AddItemHandler)
			r.Post("/items/upload", h.UploadItemHandler)
			r.Post("/import", h.ImportItemHandler)
			r.Delete("/items/{id}", h.DeleteItemHandler)
			r.Post("/items/{id}/favorite", h.FavoriteItemHandler)
		})

		r.Route("/canvas", func(r chi.Router) {
			r.Get("/", h.CanvasHandler)
			r.Delete("/", h.ClearCanvasHandler)
			r.Put("/bounds", h.CanvasBoundsHandler)
			r.Post("/items", h.PlaceItemHandler)
			r.Post("/items/{id}/move", h.MoveItemHandler)
			r.Post("/items/{id}/scale", h.ScaleItemHandler)
			r.Post("/items/{id}/rotate", h.RotateItemHandler)
			r.Post("/items/{id}/front", h.BringToFrontHandler)
			r.Delete("/items/{id}", h.RemovePlacedItemHandler)
		})

		r.Route("/outfits", func(r chi.Router) {
			r.Get("/", h.ListOutfitsHandler)
			r.Post("/", h.SaveOutfitHandler)
			r.Post("/{id}/load", h.LoadOutfitHandler)
			r.Post("/{id}/favorite", h.FavoriteOutfitHandler)
			r.Delete("/{id}", h.DeleteOutfitHandler)
		})
	})

	return r
}
