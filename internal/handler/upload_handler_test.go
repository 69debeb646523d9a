package handler

import (
	"bytes"
	"encoding/json"
	"image"
	"image/png"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/pressroom/internal/storage/memdb"
)

func newUploadContext(t *testing.T, uploadDir string, filename, contentType string, content []byte) (*gin.Context, *httptest.ResponseRecorder, *API) {
	t.Helper()
	gin.SetMode(gin.TestMode)

	var body bytes.Buffer
	writer := multipart.NewWriter(&body)
	header := textproto.MIMEHeader{}
	header.Set("Content-Disposition", `form-data; name="image"; filename="`+filename+`"`)
	header.Set("Content-Type", contentType)
	part, err := writer.CreatePart(header)
	if err != nil {
		t.Fatalf("create form part: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("write form part: %v", err)
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close form: %v", err)
	}

	recorder := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(recorder)
	c.Request = httptest.NewRequest(http.MethodPost, "/api/upload", &body)
	c.Request.Header.Set("Content-Type", writer.FormDataContentType())

	api := NewAPI(memdb.New(), nil, uploadDir, "/uploads")
	return c, recorder, api
}

func encodePNG(t *testing.T) []byte {
	t.Helper()

	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, 2, 2))); err != nil {
		t.Fatalf("encode png: %v", err)
	}
	return buf.Bytes()
}

func TestUploadImageStoresDecodableImage(t *testing.T) {
	c, recorder, api := newUploadContext(t, t.TempDir(), "cover.png", "image/png", encodePNG(t))

	api.UploadImage(c)

	if recorder.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", recorder.Code, recorder.Body.String())
	}
	var body struct {
		URL string `json:"url"`
	}
	if err := json.Unmarshal(recorder.Body.Bytes(), &body); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if !strings.HasPrefix(body.URL, "/uploads/") || !strings.HasSuffix(body.URL, ".png") {
		t.Fatalf("unexpected url %q", body.URL)
	}
}

func TestUploadImageRejectsNonImageContentType(t *testing.T) {
	c, recorder, api := newUploadContext(t, t.TempDir(), "notes.txt", "text/plain", []byte("hello"))

	api.UploadImage(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", recorder.Code)
	}
}

func TestUploadImageRejectsForgedContentType(t *testing.T) {
	c, recorder, api := newUploadContext(t, t.TempDir(), "fake.png", "image/png", []byte("definitely not a png"))

	api.UploadImage(c)

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for undecodable content, got %d", recorder.Code)
	}
}
