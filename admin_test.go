package main

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
)

func adminRequest(a *app, method, target string) *http.Request {
	req := httptest.NewRequest(method, target, nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: a.adminToken})
	return req
}

func TestAdminLogin(t *testing.T) {
	a, r := newTestApp(t)

	w := serve(r, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"wrong"}}))
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("bad login status = %d, want 401", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Invalid credentials") {
		t.Errorf("bad login body missing error")
	}

	w = serve(r, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {"secret"}}))
	if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/dashboard" {
		t.Fatalf("login = %d %q", w.Code, w.Header().Get("Location"))
	}
	var token string
	for _, c := range w.Result().Cookies() {
		if c.Name == adminCookie {
			token = c.Value
			if !c.HttpOnly {
				t.Errorf("admin cookie is not HttpOnly")
			}
		}
	}
	if token != a.adminToken {
		t.Errorf("admin cookie = %q, want session token", token)
	}
}

func TestAdminRoutesRequireAuth(t *testing.T) {
	_, r := newTestApp(t)

	for _, path := range []string{"/admin/dashboard", "/admin/messages", "/admin/visitors", "/admin/api/stats"} {
		w := get(r, path)
		if w.Code != http.StatusFound || w.Header().Get("Location") != "/admin/login" {
			t.Errorf("%s = %d %q, want redirect to login", path, w.Code, w.Header().Get("Location"))
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/admin/dashboard", nil)
	req.AddCookie(&http.Cookie{Name: adminCookie, Value: "forged"})
	if w := serve(r, req); w.Code != http.StatusFound {
		t.Errorf("forged token status = %d, want 302", w.Code)
	}
}

func TestAdminDashboardAndStats(t *testing.T) {
	a, r := newTestApp(t)
	serve(r, postForm("/contact?lang=en", validContact()))

	w := serve(r, adminRequest(a, http.MethodGet, "/admin/dashboard"))
	if w.Code != http.StatusOK {
		t.Fatalf("dashboard status = %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Ayşe Yılmaz") {
		t.Errorf("dashboard does not list the recent message")
	}

	w = serve(r, adminRequest(a, http.MethodGet, "/admin/api/stats"))
	var stats AdminStats
	if err := json.Unmarshal(w.Body.Bytes(), &stats); err != nil {
		t.Fatalf("decode stats: %v", err)
	}
	if stats.TotalMessages != 1 || stats.UnreadMessages != 1 {
		t.Errorf("stats = %+v", stats)
	}

	w = serve(r, adminRequest(a, http.MethodGet, "/admin/export/stats"))
	if !strings.Contains(w.Header().Get("Content-Disposition"), "admin-stats.json") {
		t.Errorf("export missing attachment header")
	}
}

func TestAdminMessageActions(t *testing.T) {
	a, r := newTestApp(t)
	serve(r, postForm("/contact", validContact()))

	messages, err := a.store.ListMessages(context.Background(), 10)
	if err != nil || len(messages) != 1 {
		t.Fatalf("messages = %v, %v", messages, err)
	}
	id := messages[0].ID

	w := serve(r, adminRequest(a, http.MethodGet, "/admin/messages"))
	if w.Code != http.StatusOK || !strings.Contains(w.Body.String(), "Projeniz hakkında konuşalım.") {
		t.Fatalf("messages page = %d", w.Code)
	}

	if w := serve(r, adminRequest(a, http.MethodPost, "/admin/messages/"+id+"/read")); w.Code != http.StatusOK {
		t.Errorf("mark read = %d", w.Code)
	}
	if w := serve(r, adminRequest(a, http.MethodPost, "/admin/messages/nope/read")); w.Code != http.StatusNotFound {
		t.Errorf("mark read missing = %d, want 404", w.Code)
	}

	if w := serve(r, adminRequest(a, http.MethodDelete, "/admin/messages/"+id)); w.Code != http.StatusOK {
		t.Errorf("delete = %d", w.Code)
	}
	if w := serve(r, adminRequest(a, http.MethodDelete, "/admin/messages/"+id)); w.Code != http.StatusNotFound {
		t.Errorf("second delete = %d, want 404", w.Code)
	}
}

func TestAdminFormDeleteRedirects(t *testing.T) {
	a, r := newTestApp(t)
	serve(r, postForm("/contact", validContact()))
	messages, _ := a.store.ListMessages(context.Background(), 10)

	w := serve(r, adminRequest(a, http.MethodPost, "/admin/messages/"+messages[0].ID+"/delete"))
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/admin/messages" {
		t.Errorf("form delete = %d %q", w.Code, w.Header().Get("Location"))
	}
	if remaining, _ := a.store.ListMessages(context.Background(), 10); len(remaining) != 0 {
		t.Errorf("message not deleted")
	}
}

func TestAdminDisabledWithoutPassword(t *testing.T) {
	cfg := testConfig()
	cfg.AdminPassword = ""
	_, r := newTestAppWithConfig(t, cfg)

	if w := get(r, "/admin/login"); w.Code != http.StatusNotFound {
		t.Errorf("admin login status = %d, want 404", w.Code)
	}
	w := serve(r, postForm("/admin/login", url.Values{"username": {"admin"}, "password": {""}}))
	if w.Code != http.StatusNotFound {
		t.Errorf("empty password login status = %d, want 404", w.Code)
	}
}

func TestHashIP(t *testing.T) {
	a, _ := newTestApp(t)

	h := a.hashIP("203.0.113.7")
	if len(h) != 16 {
		t.Errorf("len(hash) = %d, want 16", len(h))
	}
	if h != a.hashIP("203.0.113.7") {
		t.Errorf("hash is not stable")
	}
	if h == a.hashIP("203.0.113.8") {
		t.Errorf("different IPs share a hash")
	}
}
