package api

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/profile"
	"github.com/raushankrgupta/virtual-closet/utils"
	"google.golang.org/api/idtoken"
)

// ProviderGoogle is recorded on profiles created through Google sign-in
const ProviderGoogle = "google.com"

// TokenVerifier checks an identity token and returns the profile it vouches for
type TokenVerifier func(ctx context.Context, idToken string) (models.UserProfile, error)

// GoogleTokenVerifier validates Google ID tokens issued for clientID
func GoogleTokenVerifier(clientID string) TokenVerifier {
	return func(ctx context.Context, idToken string) (models.UserProfile, error) {
		payload, err := idtoken.Validate(ctx, idToken, clientID)
		if err != nil {
			return models.UserProfile{}, fmt.Errorf("invalid google id token: %w", err)
		}
		claim := func(key string) string {
			v, _ := payload.Claims[key].(string)
			return v
		}
		return models.UserProfile{
			UID:         payload.Subject,
			Email:       claim("email"),
			DisplayName: claim("name"),
			PhotoURL:    claim("picture"),
			Provider:    ProviderGoogle,
		}, nil
	}
}

type googleSignInRequest struct {
	IDToken string `json:"id_token"`
}

type signInResponse struct {
	Token string             `json:"token"`
	User  models.UserProfile `json:"user"`
}

// GoogleSignInHandler exchanges a Google ID token for a session token and
// refreshes the user's profile document
func (h *Handler) GoogleSignInHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Google Sign-In API]")

	var req googleSignInRequest
	if err := decodeJSON(r, &req); err != nil || strings.TrimSpace(req.IDToken) == "" {
		utils.RespondError(w, &logMessageBuilder, "id_token is required", http.StatusBadRequest)
		return
	}

	if h.VerifyIDToken == nil {
		utils.RespondError(w, &logMessageBuilder, "Sign-in is not configured", http.StatusServiceUnavailable)
		return
	}
	identity, err := h.VerifyIDToken(r.Context(), req.IDToken)
	if err != nil || identity.UID == "" {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Token verification failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Invalid identity token", http.StatusUnauthorized)
		return
	}

	user, err := h.Profiles.Upsert(r.Context(), identity)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile upsert failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to save profile", http.StatusInternalServerError)
		return
	}

	token, err := utils.GenerateToken(user.UID)
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Token generation failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to create session", http.StatusInternalServerError)
		return
	}

	utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Signed in %s", user.UID))
	utils.RespondJSON(w, http.StatusOK, signInResponse{Token: token, User: user})
}

// ProfileHandler returns the caller's profile document
func (h *Handler) ProfileHandler(w http.ResponseWriter, r *http.Request) {
	var logMessageBuilder strings.Builder
	defer h.flushLog(r, &logMessageBuilder)
	utils.AddToLogMessage(&logMessageBuilder, "[Profile API]")

	userID, err := GetUserIDFromContext(r.Context())
	if err != nil {
		utils.RespondError(w, &logMessageBuilder, "Unauthorized", http.StatusUnauthorized)
		return
	}

	user, err := h.Profiles.Get(r.Context(), userID)
	if errors.Is(err, profile.ErrNotFound) {
		utils.RespondError(w, &logMessageBuilder, "Profile not found", http.StatusNotFound)
		return
	}
	if err != nil {
		utils.AddToLogMessage(&logMessageBuilder, fmt.Sprintf("Profile read failed: %v", err))
		utils.RespondError(w, &logMessageBuilder, "Failed to load profile", http.StatusInternalServerError)
		return
	}

	utils.RespondJSON(w, http.StatusOK, user)
}
