package handler

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/storage/memdb"
)

func TestGetAdvertisementStatusMapping(t *testing.T) {
	gin.SetMode(gin.TestMode)
	api := NewAPI(memdb.New(), nil, t.TempDir(), "/uploads")

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/advertisements/abc", nil)
	c.Params = gin.Params{{Key: "id", Value: "abc"}}
	api.GetAdvertisement(c)
	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for malformed id, got %d", recorder.Code)
	}

	recorder = httptest.NewRecorder()
	c, _ = gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/advertisements/42", nil)
	c.Params = gin.Params{{Key: "id", Value: "42"}}
	api.GetAdvertisement(c)
	if recorder.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for unknown id, got %d", recorder.Code)
	}
}
