package utils

import (
	"bytes"
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/raushankrgupta/virtual-closet/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

type fakeStore struct {
	uploads map[string][]byte
	types   map[string]string
}

func newFakeStore() *fakeStore {
	return &fakeStore{uploads: map[string][]byte{}, types: map[string]string{}}
}

func (f *fakeStore) Upload(_ context.Context, file io.Reader, key, contentType string) (string, error) {
	b, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	f.uploads[key] = b
	f.types[key] = contentType
	return key, nil
}

func (f *fakeStore) PresignedURL(_ context.Context, key string) (string, error) {
	if strings.HasPrefix(key, "broken/") {
		return "", errors.New("cannot sign")
	}
	return "https://signed.example/" + key, nil
}

func TestTokenRoundTrip(t *testing.T) {
	config.JWTSecret = "test-secret"
	t.Cleanup(func() { config.JWTSecret = "" })

	token, err := GenerateToken("user-42")
	require.NoError(t, err)

	userID, err := UserIDFromToken(token)
	require.NoError(t, err)
	assert.Equal(t, "user-42", userID)

	_, err = UserIDFromToken(token + "x")
	assert.Error(t, err)

	config.JWTSecret = "other-secret"
	_, err = UserIDFromToken(token)
	assert.Error(t, err)
}

func TestGenerateTokenWithoutSecret(t *testing.T) {
	config.JWTSecret = ""

	_, err := GenerateToken("user-42")

	assert.Error(t, err)
}

func TestPresignImageURL(t *testing.T) {
	store := newFakeStore()
	ctx := context.Background()

	assert.Equal(t, "https://signed.example/wardrobe/a.png", PresignImageURL(ctx, store, "wardrobe/a.png"))
	assert.Equal(t, "https://cdn.example/b.png", PresignImageURL(ctx, store, "https://cdn.example/b.png"))
	assert.Equal(t, "broken/c.png", PresignImageURL(ctx, store, "broken/c.png"))
	assert.Equal(t, "wardrobe/a.png", PresignImageURL(ctx, nil, "wardrobe/a.png"))
	assert.Empty(t, PresignImageURL(ctx, store, ""))
}

func TestObjectKey(t *testing.T) {
	key := ObjectKey("wardrobe/u1/", "https://cdn.example/img/shirt.jpg?w=400")

	assert.True(t, strings.HasPrefix(key, "wardrobe/u1/"))
	assert.True(t, strings.HasSuffix(key, "_shirt.jpg"))
	assert.True(t, strings.HasSuffix(ObjectKey("x", ""), "_image.jpg"))
}

func TestCopyImageToStore(t *testing.T) {
	png := []byte("\x89PNG\r\n\x1a\nrest-of-image")
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path == "/missing.png" {
			http.NotFound(w, r)
			return
		}
		w.Write(png)
	}))
	defer srv.Close()
	store := newFakeStore()

	key, err := CopyImageToStore(context.Background(), store, srv.URL+"/hat.png", "imports")
	require.NoError(t, err)
	assert.True(t, bytes.Equal(png, store.uploads[key]))
	assert.Equal(t, "image/png", store.types[key])

	_, err = CopyImageToStore(context.Background(), store, srv.URL+"/missing.png", "imports")
	assert.Error(t, err)
}

func TestResolveShortenedURL(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/s/abc", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/product/123", http.StatusMovedPermanently)
	})
	mux.HandleFunc("/product/123", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	got, err := ResolveShortenedURL(context.Background(), srv.URL+"/s/abc")

	require.NoError(t, err)
	assert.Equal(t, srv.URL+"/product/123", got)
}

func TestRespondError(t *testing.T) {
	rec := httptest.NewRecorder()
	var logMessage strings.Builder

	RespondError(rec, &logMessage, "Outfit name is required", http.StatusBadRequest)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Outfit name is required"}`, rec.Body.String())
	assert.Equal(t, "Outfit name is required;\n", logMessage.String())
}

func TestLatencyMiddleware(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	handler := LatencyMiddleware(zap.New(core))(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	}))

	handler.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/health", nil))

	require.Equal(t, 1, logs.Len())
	fields := logs.All()[0].ContextMap()
	assert.Equal(t, "/health", fields["path"])
	assert.EqualValues(t, http.StatusTeapot, fields["status"])
}

func TestNewLogger(t *testing.T) {
	logger, err := NewLogger(true, "debug")
	require.NoError(t, err)
	assert.NotNil(t, logger)

	_, err = NewLogger(false, "loud")
	assert.Error(t, err)
}
