package api

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/raushankrgupta/virtual-closet/models"
	"github.com/raushankrgupta/virtual-closet/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeVerifier(_ context.Context, idToken string) (models.UserProfile, error) {
	if idToken != "good-token" {
		return models.UserProfile{}, errors.New("bad signature")
	}
	return models.UserProfile{
		UID:         "google-uid-1",
		Email:       "ada@example.com",
		DisplayName: "Ada",
		Provider:    ProviderGoogle,
	}, nil
}

func TestGoogleSignInHandler(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodPost, "/auth/google", "", googleSignInRequest{IDToken: "good-token"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)

	env.handler.VerifyIDToken = fakeVerifier

	rec = env.do(t, http.MethodPost, "/auth/google", "", googleSignInRequest{})
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/google", "", googleSignInRequest{IDToken: "forged"})
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = env.do(t, http.MethodPost, "/auth/google", "", googleSignInRequest{IDToken: "good-token"})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	resp := decodeBody[signInResponse](t, rec)
	assert.Equal(t, "ada@example.com", resp.User.Email)

	userID, err := utils.UserIDFromToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, "google-uid-1", userID)

	rec = env.do(t, http.MethodGet, "/profile", resp.Token, nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Ada", decodeBody[models.UserProfile](t, rec).DisplayName)
}

func TestGoogleSignInHandlerProfileFailure(t *testing.T) {
	env := newTestEnv(t)
	env.handler.VerifyIDToken = fakeVerifier
	env.profiles.err = errors.New("mongo down")

	rec := env.do(t, http.MethodPost, "/auth/google", "", googleSignInRequest{IDToken: "good-token"})

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestProfileHandlerNotFound(t *testing.T) {
	env := newTestEnv(t)

	rec := env.do(t, http.MethodGet, "/profile", tokenFor(t, "never-signed-in"), nil)

	assert.Equal(t, http.StatusNotFound, rec.Code)
}
