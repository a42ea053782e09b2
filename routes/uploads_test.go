package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"testing"

	"lostfound-server/config"
	"lostfound-server/database"
	"lostfound-server/models"
)

func itemFormFields() map[string]string {
	return map[string]string{
		"title":        "Blue backpack",
		"description":  "Left on the bus",
		"category":     "Other",
		"type":         "lost",
		"date":         "2025-06-15",
		"location_lat": "10",
		"location_lng": "10",
	}
}

func storedImagePath(name string) string {
	return filepath.Join(config.AppConfig.Upload.Dir, name)
}

func TestCreateItemWithImages(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	files := []uploadFile{
		{name: "front.jpg", data: []byte("front image bytes")},
		{name: "back.png", data: []byte("back image bytes")},
	}
	w := doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(), files)
	if w.Code != http.StatusCreated {
		t.Fatalf("create with images: expected 201, got %d (%s)", w.Code, w.Body.String())
	}

	var resp struct {
		Data models.Item `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if len(resp.Data.Images) != 2 {
		t.Fatalf("expected 2 stored images, got %d", len(resp.Data.Images))
	}
	for _, name := range resp.Data.Images {
		if _, err := os.Stat(storedImagePath(name)); err != nil {
			t.Errorf("stored image %s missing on disk: %v", name, err)
		}
	}
}

func TestCreateItemImageLimits(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	// One file over the count limit.
	var tooMany []uploadFile
	for i := 0; i <= config.AppConfig.Upload.MaxImageCount; i++ {
		tooMany = append(tooMany, uploadFile{name: fmt.Sprintf("img%d.jpg", i), data: []byte("x")})
	}
	w := doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(), tooMany)
	if w.Code != http.StatusBadRequest {
		t.Errorf("too many images: expected 400, got %d", w.Code)
	}

	// Disallowed extension.
	w = doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(),
		[]uploadFile{{name: "animation.gif", data: []byte("gif bytes")}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad extension: expected 400, got %d", w.Code)
	}

	// Over the per-file size limit.
	oversized := make([]byte, config.AppConfig.Upload.MaxFileSize+1)
	w = doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(),
		[]uploadFile{{name: "huge.jpg", data: oversized}})
	if w.Code != http.StatusBadRequest {
		t.Errorf("oversized image: expected 400, got %d", w.Code)
	}

	// None of the rejected requests may leave an item behind.
	var count int64
	database.DB.Model(&models.Item{}).Count(&count)
	if count != 0 {
		t.Errorf("expected no items after rejected uploads, got %d", count)
	}
}

func TestUpdateItemReplacesImages(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(),
		[]uploadFile{{name: "old.jpg", data: []byte("old image")}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d (%s)", w.Code, w.Body.String())
	}
	var created struct {
		Data models.Item `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)
	if len(created.Data.Images) != 1 {
		t.Fatalf("expected 1 stored image, got %d", len(created.Data.Images))
	}
	oldName := created.Data.Images[0]

	path := fmt.Sprintf("/api/items/%d", created.Data.ID)
	w = doMultipart(t, router, http.MethodPut, path, token, nil,
		[]uploadFile{{name: "new.webp", data: []byte("new image")}})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var updated struct {
		Data models.Item `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &updated)
	if len(updated.Data.Images) != 1 || updated.Data.Images[0] == oldName {
		t.Fatalf("expected a single replacement image, got %v", updated.Data.Images)
	}

	if _, err := os.Stat(storedImagePath(oldName)); !os.IsNotExist(err) {
		t.Errorf("old image %s still on disk", oldName)
	}
	if _, err := os.Stat(storedImagePath(updated.Data.Images[0])); err != nil {
		t.Errorf("new image missing on disk: %v", err)
	}
}

func TestUpdateItemWithoutImagesKeepsExisting(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")

	w := doMultipart(t, router, http.MethodPost, "/api/items", token, itemFormFields(),
		[]uploadFile{{name: "keep.jpg", data: []byte("keep me")}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d", w.Code)
	}
	var created struct {
		Data models.Item `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &created)

	path := fmt.Sprintf("/api/items/%d", created.Data.ID)
	w = doForm(router, http.MethodPut, path, token, url.Values{"title": {"Renamed"}})
	if w.Code != http.StatusOK {
		t.Fatalf("update: expected 200, got %d", w.Code)
	}

	var got models.Item
	database.DB.First(&got, created.Data.ID)
	if len(got.Images) != 1 || got.Images[0] != created.Data.Images[0] {
		t.Errorf("images must survive an update without file parts, got %v", got.Images)
	}
	if _, err := os.Stat(storedImagePath(created.Data.Images[0])); err != nil {
		t.Errorf("image missing on disk after update: %v", err)
	}
}
