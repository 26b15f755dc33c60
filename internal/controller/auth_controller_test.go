package controller

import (
	"net/http"
	"testing"
)

func TestRegisterLoginFlow(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Aisha",
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	if resp.StatusCode != http.StatusCreated {
		t.Fatalf("register status %d, want 201", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["token"] == nil || body["token"] == "" {
		t.Fatal("register response missing token")
	}
	registeredID := body["user"].(map[string]interface{})["id"]

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "secret1",
	}, "")
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("login status %d, want 200", resp.StatusCode)
	}
	body = decodeBody(t, resp)
	if got := body["user"].(map[string]interface{})["id"]; got != registeredID {
		t.Fatalf("login returned user id %v, want %v", got, registeredID)
	}

	resp = doJSON(t, app, http.MethodPost, "/api/auth/login", map[string]interface{}{
		"email":    "a@x.com",
		"password": "wrong-password",
	}, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("wrong password status %d, want 401", resp.StatusCode)
	}
}

func TestRegisterDuplicateEmail(t *testing.T) {
	app := newTestApp(t)

	payload := map[string]interface{}{
		"name":     "Aisha",
		"email":    "a@x.com",
		"password": "secret1",
	}
	doJSON(t, app, http.MethodPost, "/api/auth/register", payload, "")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", payload, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("duplicate register status %d, want 400", resp.StatusCode)
	}
}

func TestRegisterValidation(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodPost, "/api/auth/register", map[string]interface{}{
		"name":     "Aisha",
		"email":    "not-an-email",
		"password": "short",
	}, "")
	if resp.StatusCode != http.StatusBadRequest {
		t.Fatalf("status %d, want 400", resp.StatusCode)
	}

	body := decodeBody(t, resp)
	errs, ok := body["errors"].(map[string]interface{})
	if !ok {
		t.Fatalf("expected field errors, got %v", body)
	}
	if errs["email"] == nil || errs["password"] == nil {
		t.Fatalf("expected email and password errors, got %v", errs)
	}
}

func TestGetMeRequiresToken(t *testing.T) {
	app := newTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/auth/me", nil, "")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401", resp.StatusCode)
	}

	resp = doJSON(t, app, http.MethodGet, "/api/auth/me", nil, "not-a-real-token")
	if resp.StatusCode != http.StatusUnauthorized {
		t.Fatalf("status %d, want 401 for a garbage token", resp.StatusCode)
	}
}

func TestUpdateProfile(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "user")

	resp := doJSON(t, app, http.MethodPatch, "/api/auth/me", map[string]interface{}{
		"name":  "Renamed",
		"phone": "9419000000",
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("status %d, want 200", resp.StatusCode)
	}
	body := decodeBody(t, resp)
	if body["name"] != "Renamed" || body["phone"] != "9419000000" {
		t.Fatalf("profile not updated: %v", body)
	}
}

func TestSavedSearchesLifecycle(t *testing.T) {
	app := newTestApp(t)
	_, token := createUser(t, "user")

	resp := doJSON(t, app, http.MethodPost, "/api/auth/saved-searches", map[string]interface{}{
		"district": "Srinagar",
		"category": "rent",
		"maxPrice": "30000",
	}, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("create status %d, want 200", resp.StatusCode)
	}

	req, _ := http.NewRequest(http.MethodGet, "/api/auth/saved-searches", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	getResp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("get saved searches: %v", err)
	}
	var searches []map[string]interface{}
	if err := jsonDecode(getResp, &searches); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(searches) != 1 || searches[0]["district"] != "Srinagar" {
		t.Fatalf("saved search not persisted: %v", searches)
	}

	id, _ := searches[0]["id"].(string)
	resp = doJSON(t, app, http.MethodDelete, "/api/auth/saved-searches/"+id, nil, token)
	if resp.StatusCode != http.StatusOK {
		t.Fatalf("delete status %d, want 200", resp.StatusCode)
	}

	getResp = doJSON(t, app, http.MethodGet, "/api/auth/saved-searches", nil, token)
	searches = nil
	if err := jsonDecode(getResp, &searches); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(searches) != 0 {
		t.Fatalf("saved search not removed: %v", searches)
	}
}
