package routes

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"lostfound-server/config"
	"lostfound-server/database"
	"lostfound-server/models"
)

// setupRouter wires a fresh in-memory database and the full route surface.
// Rate limiting stays out so tests can hammer the auth endpoints.
func setupRouter(t *testing.T) *gin.Engine {
	t.Helper()

	gin.SetMode(gin.TestMode)
	config.Load()
	config.AppConfig.Upload.Dir = t.TempDir()
	database.DB = database.NewTestDB(t)

	router := gin.New()
	api := router.Group("/api")
	RegisterAuthRoutes(api.Group("/auth"))
	RegisterItemRoutes(api.Group("/items"))
	RegisterClaimRoutes(api.Group("/claims"))
	RegisterNotificationRoutes(api.Group("/notifications"))
	RegisterUserRoutes(api.Group("/users"))

	return router
}

// registerUser creates an account through the API and returns its token.
func registerUser(t *testing.T, router *gin.Engine, name, email string) string {
	t.Helper()

	body := map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": "password123",
		"phone":    "5551234",
	}
	w := doJSON(router, http.MethodPost, "/api/auth/register", "", body)
	if w.Code != http.StatusCreated {
		t.Fatalf("register %s: expected 201, got %d (%s)", email, w.Code, w.Body.String())
	}

	var resp struct {
		Token string `json:"token"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Token == "" {
		t.Fatalf("register %s: empty token", email)
	}
	return resp.Token
}

// promoteToAdmin flips a user's role directly in the database.
func promoteToAdmin(t *testing.T, email string) {
	t.Helper()
	if err := database.DB.Model(&models.User{}).
		Where("email = ?", email).
		Update("role", models.RoleAdmin).Error; err != nil {
		t.Fatalf("promote %s to admin: %v", email, err)
	}
}

// doJSON performs a JSON request against the router.
func doJSON(router *gin.Engine, method, path, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		data, _ := json.Marshal(body)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// doForm performs a form-encoded request, the shape item create/update use.
func doForm(router *gin.Engine, method, path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// uploadFile is one file part of a multipart request.
type uploadFile struct {
	name string
	data []byte
}

// doMultipart performs a multipart/form-data request with image file parts.
func doMultipart(t *testing.T, router *gin.Engine, method, path, token string, fields map[string]string, files []uploadFile) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	for key, value := range fields {
		if err := mw.WriteField(key, value); err != nil {
			t.Fatalf("write field %s: %v", key, err)
		}
	}
	for _, f := range files {
		part, err := mw.CreateFormFile("images", f.name)
		if err != nil {
			t.Fatalf("create file part %s: %v", f.name, err)
		}
		if _, err := part.Write(f.data); err != nil {
			t.Fatalf("write file part %s: %v", f.name, err)
		}
	}
	mw.Close()

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

// currentUserID resolves the user id behind a token via /api/auth/me.
func currentUserID(t *testing.T, router *gin.Engine, token string) uint {
	t.Helper()

	w := doJSON(router, http.MethodGet, "/api/auth/me", token, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("me: expected 200, got %d", w.Code)
	}
	var resp struct {
		Data models.User `json:"data"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	return resp.Data.ID
}
