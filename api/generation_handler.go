package api

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"github.com/raushankrgupta/virtual-closet/closet"
	"github.com/raushankrgupta/virtual-closet/generation"
	"github.com/raushankrgupta/virtual-closet/history"
	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
)

// DashboardHistorySize is how many generations the dashboard shows
const DashboardHistorySize = 3

type historyResponse struct {
	History []models.HistoryEntry `json:"history"`
}

type dashboardResponse struct {
	Stats         models.ClosetStats    `json:"stats"`
	RecentHistory []models.HistoryEntry `json:"recent_history"`
}

// GenerateTextHandler is the raw generation endpoint: prompt in, truncated
// text out, nothing recorded
func (h *Handler) GenerateTextHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Generate Text API]")

	var req generation.TextRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.Prompt) == "" {
		utils.RespondError(w, &logMessageBuilder, "Please enter a prompt", http.StatusBadRequest)
		return
	}

	text, err := h.Generator.GenerateText(r.Context(), req.Prompt)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate text", http.StatusBadGateway)
		return
	}

	utils.RespondJSON(w, http.StatusOK, generation.TextResponse{Text: generation.Truncate(text, h.TextCap)})
}

// GenerateHandler generates text for the caller and records it in their history
func (h *Handler) GenerateHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Generate API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var req generation.TextRequest
	if err := decodeJSON(r, &req); err != nil {
		utils.RespondError(w, &logMessageBuilder, "Invalid request body", http.StatusBadRequest)
		return
	}

	text, err := h.Generation.Generate(r.Context(), userID, req.Prompt)
	switch {
	case errors.Is(err, generation.ErrEmptyPrompt):
		utils.RespondError(w, &logMessageBuilder, "Please enter a prompt", http.StatusBadRequest)
		return
	case err != nil:
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generation failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to generate text", http.StatusBadGateway)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Generated %d characters", len([]rune(text))))
	utils.RespondJSON(w, http.StatusOK, generation.TextResponse{Text: text})
}

// HistoryHandler lists the caller's generations. order is asc (default) or
// desc; limit keeps the first n entries after ordering.
func (h *Handler) HistoryHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[History API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	order := strings.ToLower(r.URL.Query().Get("order"))
	if order != "" && order != "asc" && order != "desc" {
		utils.RespondError(w, &logMessageBuilder, "order must be asc or desc", http.StatusBadRequest)
		return
	}

	limit := 0
	if limitStr := r.URL.Query().Get("limit"); limitStr != "" {
		l, err := strconv.Atoi(limitStr)
		if err != nil || l < 0 {
			utils.RespondError(w, &logMessageBuilder, "limit must be a non-negative integer", http.StatusBadRequest)
			return
		}
		limit = l
	}

	entries, err := h.History.Read(r.Context(), userID)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("History read failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load history", http.StatusInternalServerError)
		return
	}

	if order == "desc" {
		entries = history.SortDescending(entries)
	} else {
		entries = history.SortAscending(entries)
	}
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	if entries == nil {
		entries = []models.HistoryEntry{}
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Returned %d entries", len(entries)))
	utils.RespondJSON(w, http.StatusOK, historyResponse{History: entries})
}

// DashboardHandler summarizes the closet and shows the latest generations.
// A history read failure leaves the recent list empty.
func (h *Handler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Dashboard API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	var stats models.ClosetStats
	now := h.clock()
	h.Closets.With(userID, func(s *closet.Session) {
		stats = s.Stats(now)
	})

	recent := []models.HistoryEntry{}
	entries, err := h.History.Read(r.Context(), userID)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("History read failed: %v", err))
	} else if len(entries) > 0 {
		recent = history.Recent(entries, DashboardHistorySize)
	}

	utils.RespondJSON(w, http.StatusOK, dashboardResponse{Stats: stats, RecentHistory: recent})
}
