package controller

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/y-ymmt/ikitaitoko-bot/internal/dto"
)

type nopLogger struct{}

func (nopLogger) Debug(string, string, map[string]interface{}) {}
func (nopLogger) Info(string, string, map[string]interface{})  {}
func (nopLogger) Warn(string, string, map[string]interface{})  {}
func (nopLogger) Error(string, string, map[string]interface{}) {}
func (nopLogger) Sync() error                                  { return nil }

type stubWebhookService struct {
	events []*dto.Event
}

func (s *stubWebhookService) HandleEvent(_ context.Context, event *dto.Event) error {
	s.events = append(s.events, event)
	return nil
}

const testChannelSecret = "test-secret"

func newTestApp(service *stubWebhookService) *fiber.App {
	ctrl := NewWebhookController(service, testChannelSecret, nopLogger{})
	app := fiber.New()
	app.Post("/callback", ctrl.Callback)
	app.Get("/health", ctrl.Health)
	return app
}

func signBody(body []byte) string {
	mac := hmac.New(sha256.New, []byte(testChannelSecret))
	mac.Write(body)
	return base64.StdEncoding.EncodeToString(mac.Sum(nil))
}

func callbackRequest(body []byte, signature string) *http.Request {
	req := httptest.NewRequest(http.MethodPost, "/callback", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	if signature != "" {
		req.Header.Set("X-Line-Signature", signature)
	}
	return req
}

func TestCallbackDispatchesSignedEvents(t *testing.T) {
	service := &stubWebhookService{}
	app := newTestApp(service)

	body := []byte(`{"destination":"bot","events":[
		{"type":"message","source":{"type":"user","userId":"U001"},"message":{"type":"text","id":"1","text":"こんにちは"}},
		{"type":"message","source":{"type":"user","userId":"U002"},"message":{"type":"text","id":"2","text":"やあ"}}
	]}`)

	resp, err := app.Test(callbackRequest(body, signBody(body)))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if len(service.events) != 2 {
		t.Fatalf("dispatched %d events, want 2", len(service.events))
	}
	if service.events[0].Source.UserID != "U001" || service.events[1].Source.UserID != "U002" {
		t.Errorf("events dispatched out of order: %+v", service.events)
	}
}

func TestCallbackRejectsBadSignatureWith200(t *testing.T) {
	service := &stubWebhookService{}
	app := newTestApp(service)

	body := []byte(`{"destination":"bot","events":[]}`)

	tests := []struct {
		name      string
		signature string
	}{
		{name: "missing signature", signature: ""},
		{name: "wrong signature", signature: signBody([]byte("other body"))},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := app.Test(callbackRequest(body, tt.signature))
			if err != nil {
				t.Fatalf("app.Test() error: %v", err)
			}
			// Always 200 so the platform does not retry delivery.
			if resp.StatusCode != http.StatusOK {
				t.Errorf("status = %d, want 200", resp.StatusCode)
			}
			if len(service.events) != 0 {
				t.Errorf("events must not be dispatched on signature failure")
			}
		})
	}
}

func TestCallbackMalformedBodyStill200(t *testing.T) {
	service := &stubWebhookService{}
	app := newTestApp(service)

	body := []byte(`{"events":`)
	resp, err := app.Test(callbackRequest(body, signBody(body)))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
	if len(service.events) != 0 {
		t.Error("malformed body must not dispatch events")
	}
}

func TestHealth(t *testing.T) {
	app := newTestApp(&stubWebhookService{})

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/health", nil))
	if err != nil {
		t.Fatalf("app.Test() error: %v", err)
	}
	if resp.StatusCode != http.StatusOK {
		t.Errorf("status = %d, want 200", resp.StatusCode)
	}
}
