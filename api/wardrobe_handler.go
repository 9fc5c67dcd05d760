package api

import (
	"bytes"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/scrapers"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// MaxUploadBytes bounds a multipart item upload
const MaxUploadBytes = 10 << 20

type itemRequest struct {
	Name     string   `json:"name"`
	Category string   `json:"category"`
	ImageURL string   `json:"image_url"`
	Tags     []string `json:"tags"`
	Color    string   `json:"color"`
}

type importRequest struct {
	URL string `json:"url"`
}

type itemsResponse struct {
	Items []models.ClothingItem `json:"items"`
}

func imageFolder(userID string) string {
	return "wardrobe/" + userID
}

// ListItemsHandler lists wardrobe items, optionally filtered by category,
// a search query over name and tags, and a comma separated tag list
func (h *Handler) ListItemsHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[List Wardrobe API]")

	query := r.URL.Query()
	var category models.Category
	if raw := query.Get("category"); raw != "" {
		c, err := closet.ResolveCategory(raw)
		if err != nil {
			utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
			return
		}
		category = c
	}

	var tags []string
	if raw := query.Get("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	var items []models.ClothingItem
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		matches := s.Wardrobe.Search(query.Get("q"), tags)
		if category == "" {
			items = matches
			return
		}
		matched := make(map[string]bool, len(matches))
		for _, it := range matches {
			matched[it.ID] = true
		}
		items = []models.ClothingItem{}
		for _, it := range s.Wardrobe.ListByCategory(category) {
			if matched[it.ID] {
				items = append(items, it)
			}
		}
	})
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, itemsResponse{Items: h.presentItems(r.Context(), items)})
}

// AddItemHandler adds an item described by JSON. A missing category is
// guessed from the name.
func (h *Handler) AddItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Add Wardrobe Item API]")

	var req itemRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}
	if strings.TrimSpace(req.Name) == "" {
		utils.RespondError(w, &logMessageBuilder, "name is required", http.StatusBadRequest)
		return
	}
	category, err := closet.ResolveCategory(req.Category, req.Name)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	var added models.ClothingItem
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		added = s.Wardrobe.Add(models.ClothingItem{
			Name:     strings.TrimSpace(req.Name),
			Category: category,
			ImageURL: req.ImageURL,
			Tags:     req.Tags,
			Color:    req.Color,
		})
	})
	if !ok {
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Added item %s", added.ID))
	utils.RespondJSON(w, http.StatusCreated, h.presentItem(r.Context(), added))
}

// UploadItemHandler stores an uploaded photo and adds it as a wardrobe item.
// Form fields: image (file), name, category, tags, color.
func (h *Handler) UploadItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Upload Wardrobe Item API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}
	if h.Images == nil {
		utils.RespondError(w, &logMessageBuilder, "Image storage is not configured", http.StatusServiceUnavailable)
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, MaxUploadBytes+1<<20)
	if err := r.ParseMultipartForm(MaxUploadBytes); err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error parsing form data: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error parsing form data", http.StatusBadRequest)
		return
	}

	name := strings.TrimSpace(r.FormValue("name"))
	if name == "" {
		utils.RespondError(w, &logMessageBuilder, "name is required", http.StatusBadRequest)
		return
	}
	category, err := closet.ResolveCategory(r.FormValue("category"), name)
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, err.Error(), http.StatusBadRequest)
		return
	}

	file, fileHeader, err := r.FormFile("image")
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "image file is required", http.StatusBadRequest)
		return
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error reading file: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Error reading file", http.StatusBadRequest)
		return
	}
	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" || contentType == "application/octet-stream" {
		contentType = http.DetectContentType(data)
	}
	if !strings.HasPrefix(contentType, "image/") {
		utils.RespondError(w, &logMessageBuilder, "file is not an image", http.StatusBadRequest)
		return
	}

	key, err := h.Images.Upload(r.Context(), bytes.NewReader(data), utils.ObjectKey(imageFolder(userID), fileHeader.Filename), contentType)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Upload failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to store image", http.StatusBadGateway)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Uploaded %s", key))

	var tags []string
	if raw := r.FormValue("tags"); raw != "" {
		tags = strings.Split(raw, ",")
	}

	var added models.ClothingItem
	h.Closets.With(userID, func(s *closet.Session) {
		added = s.Wardrobe.Add(models.ClothingItem{
			Name:     name,
			Category: category,
			ImageURL: key,
			Tags:     tags,
			Color:    r.FormValue("color"),
		})
	})

	utils.RespondJSON(w, http.StatusCreated, h.presentItem(r.Context(), added))
}

// ImportItemHandler scrapes a product page and adds it as a wardrobe item.
// The first product image is copied to storage when storage is configured.
func (h *Handler) ImportItemHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Import Wardrobe Item API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req importRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.URL) == "" {
		utils.RespondError(w, &logMessageBuilder, "url is required", http.StatusBadRequest)
		return
	}
	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Importing URL: %s", req.URL))

	scraper, resolvedURL, err := scrapers.GetScraper(r.Context(), strings.TrimSpace(req.URL), h.BrowserFallback)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Error finding scraper: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Unsupported product URL", http.StatusBadRequest)
		return
	}

	product, err := scraper.ScrapeProduct(r.Context(), resolvedURL)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Scraping failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to read product page", http.StatusBadGateway)
		return
	}
	if product.Title == "" {
		utils.RespondError(w, &logMessageBuilder, "Product page has no title", http.StatusUnprocessableEntity)
		return
	}

	image := ""
	if len(product.Images) > 0 {
		image = product.Images[0]
		if h.Images != nil {
			key, err := utils.CopyImageToStore(r.Context(), h.Images, image, imageFolder(userID))
			if err != nil {
				// Keep the remote URL
				utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Image copy failed: %v", err))
			} else {
				image = key
			}
		}
	}

	var tags []string
	if product.Brand != "" {
		tags = append(tags, product.Brand)
	}

	var added models.ClothingItem
	h.Closets.With(userID, func(s *closet.Session) {
		added = s.Wardrobe.Add(models.ClothingItem{
			Name:      product.Title,
			Category:  closet.GuessCategory(product.CategoryHint, product.Title),
			ImageURL:  image,
			Tags:      tags,
			Color:     product.Color,
			SourceURL: product.URL,
		})
	})

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Imported item %s as %s", added.ID, added.Category))
	utils.RespondJSON(w, http.StatusCreated, h.presentItem(r.Context(), added))
}

// DeleteItemHandler removes a wardrobe item. Unknown ids leave the wardrobe
// unchanged. Placements already on the canvas are kept.
func (h *Handler) DeleteItemHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateWardrobe(w, r, "[Delete Wardrobe Item API]", func(wd *closet.Wardrobe, id string) {
		wd.Remove(id)
	})
}

// FavoriteItemHandler toggles an item's favorite flag
func (h *Handler) FavoriteItemHandler(w http.ResponseWriter, r *http.Request) {
	h.mutateWardrobe(w, r, "[Favorite Wardrobe Item API]", func(wd *closet.Wardrobe, id string) {
		wd.ToggleFavorite(id)
	})
}

// mutateWardrobe applies fn to the item named in the path and answers with
// the resulting wardrobe
func (h *Handler) mutateWardrobe(w http.ResponseWriter, r *http.Request, apiName string, fn func(*closet.Wardrobe, string)) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, apiName)

	id := chi.URLParam(r, "id")
	var items []models.ClothingItem
	ok := h.withSession(w, r, &logMessageBuilder, func(s *closet.Session) {
		fn(s.Wardrobe, id)
		items = s.Wardrobe.List()
	})
	if !ok {
		return
	}

	utils.RespondJSON(w, http.StatusOK, itemsResponse{Items: h.presentItems(r.Context(), items)})
}
