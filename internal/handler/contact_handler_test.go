package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/wesworld/site/internal/service"
)

func postContact(t *testing.T, h *ContactHandler, contentType, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/contact", strings.NewReader(body))
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	rec := httptest.NewRecorder()
	h.Submit(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]any {
	t.Helper()
	var resp map[string]any
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	return resp
}

// ---------------------------------------------------------------------------
// POST /contact tests
// ---------------------------------------------------------------------------

func TestContactHandler_Submit_Success(t *testing.T) {
	var captured service.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			captured = in
			return &service.SubmitResult{Stored: true, EmailSent: true}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "application/json",
		`{"name":"Alice","email":"alice@example.com","message":"Hello!","phone":"0555","service":"SEO"}`)

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	want := service.ContactInput{Name: "Alice", Email: "alice@example.com", Message: "Hello!", Phone: "0555", Service: "SEO"}
	if captured != want {
		t.Errorf("expected %+v, got %+v", want, captured)
	}
	resp := decodeBody(t, rec)
	if resp["ok"] != true {
		t.Errorf("expected ok=true, got %v", resp["ok"])
	}
	if resp["message"] != SubmitSuccessMessage {
		t.Errorf("unexpected message %v", resp["message"])
	}
	if resp["emailSent"] != true {
		t.Errorf("expected emailSent=true, got %v", resp["emailSent"])
	}
}

func TestContactHandler_Submit_EmailSentFalseIsPresent(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postContact(t, h, "application/json", `{"name":"A","email":"a@x.com","message":"hi"}`)

	resp := decodeBody(t, rec)
	v, ok := resp["emailSent"]
	if !ok {
		t.Fatal("expected emailSent field in response")
	}
	if v != false {
		t.Errorf("expected emailSent=false, got %v", v)
	}
}

func TestContactHandler_Submit_FormEncoded(t *testing.T) {
	var captured service.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			captured = in
			return &service.SubmitResult{}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "application/x-www-form-urlencoded", "name=Kofi&email=kofi%40example.com&message=Hi+there")

	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}
	if captured.Name != "Kofi" || captured.Email != "kofi@example.com" || captured.Message != "Hi there" {
		t.Errorf("unexpected input %+v", captured)
	}
}

func TestContactHandler_Submit_CoercesJSONValues(t *testing.T) {
	var captured service.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			captured = in
			return &service.SubmitResult{}, nil
		},
	}
	h := NewContactHandler(mock)

	postContact(t, h, "application/json", `{"name":"A","email":"a@x.com","message":"hi","phone":233555,"service":null}`)

	if captured.Phone != "233555" {
		t.Errorf("expected numeric phone coerced to string, got %q", captured.Phone)
	}
	if captured.Service != "" {
		t.Errorf("expected null service to be empty, got %q", captured.Service)
	}
}

func TestContactHandler_Submit_ValidationError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			return nil, &service.ValidationError{Fields: []string{"email"}}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "application/json", `{"name":"Bob","message":"Hi there"}`)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	resp := decodeBody(t, rec)
	if resp["ok"] != false {
		t.Errorf("expected ok=false, got %v", resp["ok"])
	}
	if resp["message"] != service.GuidanceMessage {
		t.Errorf("expected guidance message, got %v", resp["message"])
	}
}

func TestContactHandler_Submit_InvalidJSON(t *testing.T) {
	called := false
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			called = true
			return &service.SubmitResult{}, nil
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "application/json", "{bad json")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for invalid JSON, got %d", rec.Code)
	}
	if called {
		t.Error("service must not be called for an unreadable body")
	}
}

func TestContactHandler_Submit_UnknownContentTypeHasNoFields(t *testing.T) {
	var captured service.ContactInput
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			captured = in
			return nil, &service.ValidationError{Fields: []string{"name", "email", "message"}}
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "text/plain", "name=A")

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400, got %d", rec.Code)
	}
	if captured != (service.ContactInput{}) {
		t.Errorf("expected empty input, got %+v", captured)
	}
}

// TestContactHandler_Submit_ServiceError verifies that an internal failure returns a generic 500.
func TestContactHandler_Submit_ServiceError(t *testing.T) {
	mock := &mockContactService{
		submitFunc: func(ctx context.Context, in service.ContactInput) (*service.SubmitResult, error) {
			return nil, errors.New("entropy source failed: /dev/urandom")
		},
	}
	h := NewContactHandler(mock)

	rec := postContact(t, h, "application/json", `{"name":"A","email":"a@x.com","message":"hi"}`)

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("expected 500 on service error, got %d", rec.Code)
	}
	if strings.Contains(rec.Body.String(), "urandom") {
		t.Errorf("internal detail leaked: %s", rec.Body.String())
	}
	resp := decodeBody(t, rec)
	if resp["message"] != InternalErrorMessage {
		t.Errorf("expected generic message, got %v", resp["message"])
	}
}

func TestContactHandler_Submit_ContentTypeJSON(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	rec := postContact(t, h, "application/json", `{"name":"A","email":"t@e.com","message":"test"}`)

	if ct := rec.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("expected Content-Type=application/json, got %q", ct)
	}
}

func TestContactHandler_Submit_BodyTooLarge(t *testing.T) {
	h := NewContactHandler(&mockContactService{})

	body := `{"name":"A","email":"a@x.com","message":"` + strings.Repeat("x", maxBodyBytes) + `"}`
	rec := postContact(t, h, "application/json", body)

	if rec.Code != http.StatusBadRequest {
		t.Errorf("expected 400 for oversized body, got %d", rec.Code)
	}
}
