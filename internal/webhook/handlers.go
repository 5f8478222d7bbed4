package webhook

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"hoardbot/internal/bot"
)

// webhookRequest is the inbound chat payload. The message field is either a
// plain string or a Telegram-style object with text and sender id, so it is
// decoded in two passes.
type webhookRequest struct {
	Message    json.RawMessage `json:"message"`
	Phone      string          `json:"phone"`
	TelegramID string          `json:"telegram_id"`
}

// telegramMessage is the nested shape relays forward verbatim from Telegram.
// In private chats from.id and chat.id carry the same value, so either
// identifies the sender.
type telegramMessage struct {
	Text string `json:"text"`
	From struct {
		ID int64 `json:"id"`
	} `json:"from"`
	Chat struct {
		ID int64 `json:"id"`
	} `json:"chat"`
}

// identityRequest carries only a sender identity.
type identityRequest struct {
	Phone      string `json:"phone"`
	TelegramID string `json:"telegram_id"`
}

// handleWebhook processes one chat message and always replies with a JSON
// body containing the reply text. Missing identity is the only 401; an
// exhausted rate limit is a 429 that still carries the reply.
func (s *Server) handleWebhook(c *gin.Context) {
	var req webhookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := bot.Inbound{
		Phone:      req.Phone,
		TelegramID: req.TelegramID,
	}

	// An absent message falls through with an empty body and gets the help
	// reply from the service.
	if len(req.Message) > 0 {
		var text string
		if err := json.Unmarshal(req.Message, &text); err == nil {
			in.Body = text
		} else {
			var tm telegramMessage
			if err := json.Unmarshal(req.Message, &tm); err != nil {
				c.JSON(http.StatusBadRequest, gin.H{"error": "invalid message field"})
				return
			}
			in.Body = tm.Text
			if in.TelegramID == "" {
				id := tm.From.ID
				if id == 0 {
					id = tm.Chat.ID
				}
				if id != 0 {
					in.TelegramID = strconv.FormatInt(id, 10)
				}
			}
		}
	}

	reply, err := s.service.HandleMessage(c.Request.Context(), in)
	s.respond(c, reply, err)
}

// handleAnalyze runs the collection personality analysis for the sender.
func (s *Server) handleAnalyze(c *gin.Context) {
	var req identityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	in := bot.Inbound{
		Phone:      req.Phone,
		TelegramID: req.TelegramID,
	}
	reply, err := s.service.HandleAnalyze(c.Request.Context(), in)
	s.respond(c, reply, err)
}

// respond translates the service sentinels into HTTP status codes. Every
// other outcome is a 200 with the reply text.
func (s *Server) respond(c *gin.Context, reply string, err error) {
	switch {
	case errors.Is(err, bot.ErrNoIdentity):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "missing sender identity"})
	case errors.Is(err, bot.ErrRateLimited):
		c.JSON(http.StatusTooManyRequests, gin.H{"reply": reply})
	default:
		c.JSON(http.StatusOK, gin.H{"reply": reply})
	}
}
