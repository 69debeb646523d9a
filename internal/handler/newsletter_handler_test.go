package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/storage/memdb"
)

func newJSONContext(t *testing.T, api *API, method, path string, payload any) (*gin.Context, *httptest.ResponseRecorder) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	raw, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("marshal payload: %v", err)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(method, path, bytes.NewReader(raw))
	c.Request.Header.Set("Content-Type", "application/json")
	return c, recorder
}

func TestSubscribeNewsletterStatusMapping(t *testing.T) {
	api := NewAPI(memdb.New(), nil, t.TempDir(), "/uploads")

	c, recorder := newJSONContext(t, api, http.MethodPost, "/api/newsletter/subscribe",
		map[string]string{"email": "reader@example.com"})
	api.SubscribeNewsletter(c)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", recorder.Code, recorder.Body.String())
	}

	// duplicate email
	c, recorder = newJSONContext(t, api, http.MethodPost, "/api/newsletter/subscribe",
		map[string]string{"email": "reader@example.com"})
	api.SubscribeNewsletter(c)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for duplicate, got %d", recorder.Code)
	}

	// malformed email
	c, recorder = newJSONContext(t, api, http.MethodPost, "/api/newsletter/subscribe",
		map[string]string{"email": "not-an-email"})
	api.SubscribeNewsletter(c)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed email, got %d", recorder.Code)
	}
}

func TestUnsubscribeNewsletterStatusMapping(t *testing.T) {
	store := memdb.New()
	api := NewAPI(store, nil, t.TempDir(), "/uploads")

	c, recorder := newJSONContext(t, api, http.MethodPost, "/api/newsletter/subscribe",
		map[string]string{"email": "reader@example.com"})
	api.SubscribeNewsletter(c)
	if recorder.Code != http.StatusCreated {
		t.Fatalf("subscribe: status %d", recorder.Code)
	}

	sub, err := store.SubscriberByEmail("reader@example.com")
	if err != nil {
		t.Fatalf("load subscriber: %v", err)
	}

	c, recorder = newJSONContext(t, api, http.MethodPost, "/api/newsletter/unsubscribe",
		map[string]string{"token": sub.UnsubscribeToken})
	api.UnsubscribeNewsletter(c)
	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", recorder.Code)
	}

	c, recorder = newJSONContext(t, api, http.MethodPost, "/api/newsletter/unsubscribe",
		map[string]string{"token": sub.UnsubscribeToken})
	api.UnsubscribeNewsletter(c)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for spent token, got %d", recorder.Code)
	}
}
