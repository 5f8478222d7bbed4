package bot

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"hoardbot/internal/intent"
)

// Sentinel errors the transports translate into protocol-level responses.
// Every other failure is absorbed into a user-safe reply string.
var (
	// ErrNoIdentity means the request carried neither a phone number nor a
	// platform id.
	ErrNoIdentity = errors.New("bot: no sender identity")
	// ErrRateLimited means the per-user fixed window is exhausted.
	ErrRateLimited = errors.New("bot: rate limited")
)

const dbTimeout = 5 * time.Second

// Inbound is one normalized chat message. Exactly one of Phone or
// TelegramID identifies the sender.
type Inbound struct {
	Body       string
	Phone      string
	TelegramID string
}

// Service runs the resolve → rate-limit → classify → dispatch pipeline.
type Service struct {
	deps Deps
}

// NewService creates the message-handling service.
func NewService(deps Deps) *Service {
	return &Service{deps: deps}
}

// HandleMessage processes one inbound message and returns the reply text.
// It returns ErrNoIdentity or ErrRateLimited for conditions the transport
// must signal at the protocol level; everything else becomes a reply.
func (s *Service) HandleMessage(ctx context.Context, in Inbound) (string, error) {
	log := s.deps.Logger.With("component", "service")
	msgs := s.deps.Config.Messages

	if in.Phone == "" && in.TelegramID == "" {
		return "", ErrNoIdentity
	}

	body := strings.TrimSpace(in.Body)
	if body == "" {
		return msgs.Help, nil
	}
	if max := s.deps.Config.Server.MaxMessageChars; len(body) > max {
		log.InfoContext(ctx, "Rejecting oversized message", "length", len(body), "max", max)
		return msgs.MessageTooLong, nil
	}

	userID, err := s.resolveIdentity(ctx, in)
	if err != nil {
		log.ErrorContext(ctx, "Identity resolution failed", "error", err)
		return msgs.GeneralError, nil
	}
	if userID == "" {
		key := in.TelegramID
		if key == "" {
			key = in.Phone
		}
		log.InfoContext(ctx, "Unregistered sender", "key", key)
		return fmt.Sprintf(msgs.NotRegistered, key), nil
	}

	if res := s.deps.Limiter.Check(userID); !res.Allowed {
		log.WarnContext(ctx, "Rate limit exceeded", "user_id", userID, "reset_at", res.ResetAt)
		return msgs.RateLimited, ErrRateLimited
	}

	it := intent.Classify(body)
	log.DebugContext(ctx, "Classified message", "kind", it.Kind, "query", it.Query, "url", it.URL)

	return s.Dispatch(ctx, it, userID, body), nil
}

// HandleAnalyze resolves the sender and produces a personality analysis of
// their collection. It shares the identity and rate-limit handling of
// HandleMessage.
func (s *Service) HandleAnalyze(ctx context.Context, in Inbound) (string, error) {
	log := s.deps.Logger.With("component", "service")
	msgs := s.deps.Config.Messages

	if in.Phone == "" && in.TelegramID == "" {
		return "", ErrNoIdentity
	}

	userID, err := s.resolveIdentity(ctx, in)
	if err != nil {
		log.ErrorContext(ctx, "Identity resolution failed", "error", err)
		return msgs.GeneralError, nil
	}
	if userID == "" {
		key := in.TelegramID
		if key == "" {
			key = in.Phone
		}
		return fmt.Sprintf(msgs.NotRegistered, key), nil
	}

	if res := s.deps.Limiter.Check(userID); !res.Allowed {
		return msgs.RateLimited, ErrRateLimited
	}

	return s.Analyze(ctx, userID), nil
}

// resolveIdentity maps the sender key to an internal user id. The platform
// id column is tried before the phone column, so a Telegram id relayed in
// either field still resolves. An empty result means "not registered".
func (s *Service) resolveIdentity(ctx context.Context, in Inbound) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, dbTimeout)
	defer cancel()

	key := in.TelegramID
	if key == "" {
		key = in.Phone
	}

	userID, err := s.deps.Store.GetUserIDByTelegramID(ctx, key)
	if err != nil {
		return "", err
	}
	if userID != "" {
		return userID, nil
	}

	return s.deps.Store.GetUserIDByPhone(ctx, key)
}
