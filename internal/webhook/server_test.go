// Package webhook_test exercises the HTTP transport end to end with fake
// collaborators behind the service.
package webhook_test

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"hoardbot/internal/bot"
	"hoardbot/internal/config"
	"hoardbot/internal/database"
	"hoardbot/internal/metadata"
	"hoardbot/internal/ratelimit"
	"hoardbot/internal/webhook"
)

type fakeStore struct {
	userIDByTelegram map[string]string
	userIDByPhone    map[string]string
	pingErr          error
}

func (s *fakeStore) Ping(context.Context) error { return s.pingErr }

func (s *fakeStore) GetUserIDByTelegramID(_ context.Context, id string) (string, error) {
	return s.userIDByTelegram[id], nil
}

func (s *fakeStore) GetUserIDByPhone(_ context.Context, phone string) (string, error) {
	return s.userIDByPhone[phone], nil
}

func (s *fakeStore) ListReadingBookmarks(context.Context, string, int) ([]database.Bookmark, error) {
	return nil, nil
}

func (s *fakeStore) ListRecentBookmarks(context.Context, string, int) ([]database.Bookmark, error) {
	return nil, nil
}

func (s *fakeStore) FindBookmarkByURL(context.Context, string, string) (*database.Bookmark, error) {
	return nil, nil
}

func (s *fakeStore) InsertBookmark(context.Context, *database.Bookmark) error { return nil }

func (s *fakeStore) SearchBookmarksByTag(context.Context, string, string, int) ([]database.Bookmark, error) {
	return nil, nil
}

func (s *fakeStore) SearchBookmarksByText(context.Context, string, string, int) ([]database.Bookmark, error) {
	return nil, nil
}

func (s *fakeStore) RunSQLMaintenance(context.Context) error { return nil }

type fakeAI struct{}

func (fakeAI) Complete(context.Context, string, string) (string, error) {
	return "model reply", nil
}

type fakeFetcher struct{}

func (fakeFetcher) Fetch(context.Context, string) (*metadata.Metadata, error) {
	return nil, errors.New("not configured")
}

type fakeSender struct {
	sent []sentMessage
}

type sentMessage struct {
	to   string
	text string
}

func (s *fakeSender) Send(_ context.Context, to, text string) error {
	s.sent = append(s.sent, sentMessage{to: to, text: text})
	return nil
}

func testServer(t *testing.T, store *fakeStore, limiter *ratelimit.Limiter) (*webhook.Server, *fakeSender) {
	t.Helper()

	if limiter == nil {
		limiter = ratelimit.New(time.Minute, 60)
	}

	cfg := &config.Config{
		Server:   config.ServerConfig{ListenAddr: ":0", ShutdownTimeout: time.Second, MaxMessageChars: 1000},
		AI:       config.AIConfig{ContextBookmarks: 50, AnalysisBookmarks: 100},
		WhatsApp: config.WhatsAppConfig{AccessToken: "token", PhoneNumberID: "123", VerifyToken: "verify-me"},
		Messages: config.DefaultMessages,
	}

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	service := bot.NewService(bot.Deps{
		Logger:  log,
		Config:  cfg,
		Store:   store,
		AI:      fakeAI{},
		Fetcher: fakeFetcher{},
		Limiter: limiter,
	})

	sender := &fakeSender{}
	return webhook.New(log, cfg, service, store, sender), sender
}

func doRequest(t *testing.T, srv *webhook.Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()

	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}

	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeReply(t *testing.T, rec *httptest.ResponseRecorder) string {
	t.Helper()

	var body struct {
		Reply string `json:"reply"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("failed to decode response %q: %v", rec.Body.String(), err)
	}
	return body.Reply
}

func TestWebhookStringMessage(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{userIDByTelegram: map[string]string{"42": "u1"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/webhook", `{"message":"reading list","telegram_id":"42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeReply(t, rec); got != config.DefaultMessages.ReadingListEmpty {
		t.Errorf("reply = %q, want empty reading list message", got)
	}
}

func TestWebhookTelegramShapedMessage(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{userIDByTelegram: map[string]string{"42": "u1"}}, nil)

	body := `{"message":{"text":"reading list","from":{"id":42},"chat":{"id":42}}}`
	rec := doRequest(t, srv, http.MethodPost, "/webhook", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeReply(t, rec); got != config.DefaultMessages.ReadingListEmpty {
		t.Errorf("reply = %q, want empty reading list message", got)
	}
}

func TestWebhookChatIDFallback(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{userIDByTelegram: map[string]string{"42": "u1"}}, nil)

	// Some relays drop the from object and only forward chat.id.
	body := `{"message":{"text":"reading list","chat":{"id":42}}}`
	rec := doRequest(t, srv, http.MethodPost, "/webhook", body)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeReply(t, rec); got != config.DefaultMessages.ReadingListEmpty {
		t.Errorf("reply = %q, want empty reading list message", got)
	}
}

func TestWebhookMissingIdentity(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/webhook", `{"message":"reading list"}`)
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestWebhookUnregisteredSender(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/webhook", `{"message":"reading list","telegram_id":"7"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if got := decodeReply(t, rec); !strings.Contains(got, "Not registered") {
		t.Errorf("reply = %q, want not-registered message", got)
	}
}

func TestWebhookRateLimited(t *testing.T) {
	t.Parallel()

	limiter := ratelimit.New(time.Minute, 1)
	srv, _ := testServer(t, &fakeStore{userIDByTelegram: map[string]string{"42": "u1"}}, limiter)

	body := `{"message":"reading list","telegram_id":"42"}`
	if rec := doRequest(t, srv, http.MethodPost, "/webhook", body); rec.Code != http.StatusOK {
		t.Fatalf("first request status = %d, want 200", rec.Code)
	}

	rec := doRequest(t, srv, http.MethodPost, "/webhook", body)
	if rec.Code != http.StatusTooManyRequests {
		t.Fatalf("status = %d, want 429", rec.Code)
	}
	if got := decodeReply(t, rec); got != config.DefaultMessages.RateLimited {
		t.Errorf("reply = %q, want rate-limited message", got)
	}
}

func TestWebhookBadJSON(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/webhook", `{not json`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestAnalyzeEndpoint(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{userIDByTelegram: map[string]string{"42": "u1"}}, nil)

	rec := doRequest(t, srv, http.MethodPost, "/analyze", `{"telegram_id":"42"}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	// Empty collection short-circuits before the model call.
	if got := decodeReply(t, rec); got != config.DefaultMessages.BoredEmpty {
		t.Errorf("reply = %q, want empty collection message", got)
	}
}

func TestWhatsAppVerification(t *testing.T) {
	t.Parallel()

	srv, _ := testServer(t, &fakeStore{}, nil)

	t.Run("Accepted", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, srv, http.MethodGet,
			"/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=verify-me&hub.challenge=12345", "")
		if rec.Code != http.StatusOK {
			t.Fatalf("status = %d, want 200", rec.Code)
		}
		if rec.Body.String() != "12345" {
			t.Errorf("body = %q, want challenge echoed", rec.Body.String())
		}
	})

	t.Run("Wrong token", func(t *testing.T) {
		t.Parallel()
		rec := doRequest(t, srv, http.MethodGet,
			"/whatsapp/webhook?hub.mode=subscribe&hub.verify_token=wrong&hub.challenge=12345", "")
		if rec.Code != http.StatusForbidden {
			t.Errorf("status = %d, want 403", rec.Code)
		}
	})
}

func TestWhatsAppRelay(t *testing.T) {
	t.Parallel()

	store := &fakeStore{userIDByPhone: map[string]string{"5511999": "u1"}}
	srv, sender := testServer(t, store, nil)

	payload := `{
		"entry": [{
			"changes": [{
				"value": {
					"messages": [{"from": "5511999", "type": "text", "text": {"body": "reading list"}}]
				}
			}]
		}]
	}`
	rec := doRequest(t, srv, http.MethodPost, "/whatsapp/webhook", payload)
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	if len(sender.sent) != 1 {
		t.Fatalf("sent %d messages, want 1", len(sender.sent))
	}
	if sender.sent[0].to != "5511999" {
		t.Errorf("sent to %q, want original sender", sender.sent[0].to)
	}
	if sender.sent[0].text != config.DefaultMessages.ReadingListEmpty {
		t.Errorf("sent text = %q, want empty reading list message", sender.sent[0].text)
	}
}

func TestHealth(t *testing.T) {
	t.Parallel()

	t.Run("Healthy", func(t *testing.T) {
		t.Parallel()
		srv, _ := testServer(t, &fakeStore{}, nil)
		rec := doRequest(t, srv, http.MethodGet, "/health", "")
		if rec.Code != http.StatusOK {
			t.Errorf("status = %d, want 200", rec.Code)
		}
	})

	t.Run("Database down", func(t *testing.T) {
		t.Parallel()
		srv, _ := testServer(t, &fakeStore{pingErr: errors.New("closed")}, nil)
		rec := doRequest(t, srv, http.MethodGet, "/health", "")
		if rec.Code != http.StatusServiceUnavailable {
			t.Errorf("status = %d, want 503", rec.Code)
		}
	})
}
