package routes

import (
	"encoding/json"
	"fmt"
	"net/http"
	"testing"

	"lostfound-server/database"
	"lostfound-server/models"
)

func TestUpdateProfile(t *testing.T) {
	router := setupRouter(t)
	token := registerUser(t, router, "Alice", "alice@example.com")
	userID := currentUserID(t, router, token)

	body := map[string]interface{}{
		"name":          "Alice B",
		"phone":         "555-0100",
		"location_city": "Portland",
	}
	w := doJSON(router, http.MethodPut, "/api/users/profile", token, body)
	if w.Code != http.StatusOK {
		t.Fatalf("update profile: expected 200, got %d (%s)", w.Code, w.Body.String())
	}

	var got models.User
	database.DB.First(&got, userID)
	if got.Name != "Alice B" || got.Phone != "555-0100" || got.LocationCity != "Portland" {
		t.Errorf("profile not updated: %+v", got)
	}
	if got.Role != models.RoleUser {
		t.Errorf("role must not change via profile, got %q", got.Role)
	}
}

func TestAdminUserManagement(t *testing.T) {
	router := setupRouter(t)
	aliceToken := registerUser(t, router, "Alice", "alice@example.com")
	adminToken := registerUser(t, router, "Admin", "admin@example.com")
	promoteToAdmin(t, "admin@example.com")

	aliceID := currentUserID(t, router, aliceToken)

	// Regular users are forbidden from the admin surface.
	w := doJSON(router, http.MethodGet, "/api/users", aliceToken, nil)
	if w.Code != http.StatusForbidden {
		t.Errorf("non-admin list: expected 403, got %d", w.Code)
	}

	w = doJSON(router, http.MethodGet, "/api/users", adminToken, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("admin list: expected 200, got %d", w.Code)
	}
	var resp struct {
		Count int `json:"count"`
	}
	json.Unmarshal(w.Body.Bytes(), &resp)
	if resp.Count != 2 {
		t.Errorf("expected 2 users, got %d", resp.Count)
	}

	path := fmt.Sprintf("/api/users/%d", aliceID)

	w = doJSON(router, http.MethodGet, path, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin get: expected 200, got %d", w.Code)
	}

	// Admins can change roles.
	w = doJSON(router, http.MethodPut, path, adminToken, map[string]string{"role": "admin"})
	if w.Code != http.StatusOK {
		t.Fatalf("admin role change: expected 200, got %d (%s)", w.Code, w.Body.String())
	}
	var got models.User
	database.DB.First(&got, aliceID)
	if got.Role != models.RoleAdmin {
		t.Errorf("expected role admin, got %q", got.Role)
	}

	// Invalid role is rejected.
	w = doJSON(router, http.MethodPut, path, adminToken, map[string]string{"role": "superuser"})
	if w.Code != http.StatusBadRequest {
		t.Errorf("bad role: expected 400, got %d", w.Code)
	}

	w = doJSON(router, http.MethodDelete, path, adminToken, nil)
	if w.Code != http.StatusOK {
		t.Errorf("admin delete: expected 200, got %d", w.Code)
	}
	var count int64
	database.DB.Model(&models.User{}).Where("id = ?", aliceID).Count(&count)
	if count != 0 {
		t.Error("user still present after delete")
	}

	w = doJSON(router, http.MethodGet, "/api/users/99999", adminToken, nil)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing user: expected 404, got %d", w.Code)
	}
}
