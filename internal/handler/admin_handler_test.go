package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"emclicker/internal/configs"
)

func loginRequest(t *testing.T, body string) *httptest.ResponseRecorder {
	t.Helper()

	deps := &AppDeps{Config: &configs.AppConfig{AdminPass: "hunter2"}}

	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()

	HandleAdminLogin(deps)(rr, req)
	return rr
}

func TestHandleAdminLogin_CorrectPassword(t *testing.T) {
	rr := loginRequest(t, `{"pass":"hunter2"}`)

	if rr.Code != http.StatusOK {
		t.Fatalf("Expected 200, got %d", rr.Code)
	}

	var out AdminLoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if !out.OK {
		t.Error("Expected ok:true")
	}
}

func TestHandleAdminLogin_WrongPassword(t *testing.T) {
	rr := loginRequest(t, `{"pass":"guess"}`)

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("Expected 401, got %d", rr.Code)
	}

	var out AdminLoginResponse
	if err := json.Unmarshal(rr.Body.Bytes(), &out); err != nil {
		t.Fatalf("Unmarshal response: %v", err)
	}
	if out.OK {
		t.Error("Expected ok:false")
	}
}

func TestHandleAdminLogin_MalformedBody(t *testing.T) {
	rr := loginRequest(t, `{"pass":`)

	if rr.Code != http.StatusBadRequest {
		t.Errorf("Expected 400 for malformed JSON, got %d", rr.Code)
	}
}

func TestHandleAdminLogin_WrongContentType(t *testing.T) {
	deps := &AppDeps{Config: &configs.AppConfig{AdminPass: "hunter2"}}

	req := httptest.NewRequest(http.MethodPost, "/admin-login", strings.NewReader("pass=hunter2"))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rr := httptest.NewRecorder()

	HandleAdminLogin(deps)(rr, req)

	if rr.Code != http.StatusUnsupportedMediaType {
		t.Errorf("Expected 415, got %d", rr.Code)
	}
}
