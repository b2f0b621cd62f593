package handler

import (
	"bytes"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"emclicker/internal/app/storage"
	"emclicker/internal/configs"
)

func newUploadDeps(t *testing.T) (*AppDeps, string) {
	t.Helper()

	dir := t.TempDir()
	blobs, err := storage.New(storage.Config{Backend: storage.BackendLocal, LocalDir: dir})
	if err != nil {
		t.Fatalf("storage.New: %v", err)
	}

	return &AppDeps{
		Config: &configs.AppConfig{UploadDir: dir, StorageBackend: storage.BackendLocal},
		Blobs:  blobs,
	}, dir
}

func multipartBody(t *testing.T, field, filename string, content []byte) (*bytes.Buffer, string) {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		t.Fatalf("CreateFormFile: %v", err)
	}
	if _, err := part.Write(content); err != nil {
		t.Fatalf("Write part: %v", err)
	}
	if err := w.Close(); err != nil {
		t.Fatalf("Close writer: %v", err)
	}

	return &buf, w.FormDataContentType()
}

func TestHandleUploadAvatar_StoresFileAndReturnsURL(t *testing.T) {
	deps, dir := newUploadDeps(t)

	content := []byte("not really a png")
	body, contentType := multipartBody(t, "avatar", "me.PNG", content)

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	HandleUploadAvatar(deps)(rr, req)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d: %s", rr.Code, rr.Body.String())
	}

	var out UploadResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if !strings.HasPrefix(out.URL, "/uploads/") {
		t.Fatalf("Expected /uploads/ URL, got %q", out.URL)
	}
	if !strings.HasSuffix(out.URL, ".png") {
		t.Errorf("Expected lowercased extension preserved, got %q", out.URL)
	}

	stored, err := os.ReadFile(filepath.Join(dir, strings.TrimPrefix(out.URL, "/uploads/")))
	if err != nil {
		t.Fatalf("Expected stored file: %v", err)
	}
	if !bytes.Equal(stored, content) {
		t.Error("Stored file content differs from upload")
	}
}

func TestHandleUploadAvatar_UniqueNamesPerUpload(t *testing.T) {
	deps, _ := newUploadDeps(t)

	urls := make(map[string]struct{})
	for i := 0; i < 3; i++ {
		body, contentType := multipartBody(t, "avatar", "same.png", []byte("x"))

		req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
		req.Header.Set("Content-Type", contentType)
		rr := httptest.NewRecorder()

		HandleUploadAvatar(deps)(rr, req)
		if rr.Code != http.StatusOK {
			t.Fatalf("Expected 200, got %d", rr.Code)
		}

		var out UploadResponse
		if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
			t.Fatalf("Unmarshal response: %v", err)
		}
		urls[out.URL] = struct{}{}
	}

	if len(urls) != 3 {
		t.Errorf("Expected 3 distinct URLs for identical uploads, got %d", len(urls))
	}
}

func TestHandleUploadAvatar_MissingFileField(t *testing.T) {
	deps, _ := newUploadDeps(t)

	body, contentType := multipartBody(t, "picture", "me.png", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	HandleUploadAvatar(deps)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Fatalf("Expected 400, got %d", rr.Code)
	}

	var out map[string]string
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if out["error"] == "" {
		t.Error("Expected error field in response body")
	}
}

func TestHandleUploadAvatar_RejectsUnknownExtension(t *testing.T) {
	deps, _ := newUploadDeps(t)

	body, contentType := multipartBody(t, "avatar", "payload.exe", []byte("x"))

	req := httptest.NewRequest(http.MethodPost, "/upload-avatar", body)
	req.Header.Set("Content-Type", contentType)
	rr := httptest.NewRecorder()

	HandleUploadAvatar(deps)(rr, req)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for unknown extension, got %d", rr.Code)
	}
}
