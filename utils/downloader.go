package utils

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"net/http"
	"path"
	"strings"
	"time"
)

// MaxImageBytes caps the size of an image copied into storage
const MaxImageBytes = 10 << 20

// CopyImageToStore downloads an image URL and uploads it under folderPrefix.
// It returns the object key.
func CopyImageToStore(ctx context.Context, store ImageStore, imageURL, folderPrefix string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, imageURL, nil)
	if err != nil {
		return "", err
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (macOS) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.114 Safari/537.36")

	client := &http.Client{Timeout: 30 * time.Second}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("bad status: %s", resp.Status)
	}

	bodyBytes, err := io.ReadAll(io.LimitReader(resp.Body, MaxImageBytes+1))
	if err != nil {
		return "", err
	}
	if len(bodyBytes) > MaxImageBytes {
		return "", fmt.Errorf("image larger than %d bytes", MaxImageBytes)
	}

	contentType := resp.Header.Get("Content-Type")
	if contentType == "" {
		contentType = http.DetectContentType(bodyBytes)
	}

	return store.Upload(ctx, bytes.NewReader(bodyBytes), ObjectKey(folderPrefix, imageURL), contentType)
}

// ObjectKey builds a unique storage key from a folder and a file name or URL
func ObjectKey(folderPrefix, name string) string {
	filename := path.Base(name)
	if i := strings.IndexAny(filename, "?#"); i >= 0 {
		filename = filename[:i]
	}
	if filename == "" || filename == "." || filename == "/" || len(filename) > 200 {
		filename = "image.jpg"
	}
	return fmt.Sprintf("%s/%d_%s", strings.TrimRight(folderPrefix, "/"), time.Now().UnixNano(), filename)
}
