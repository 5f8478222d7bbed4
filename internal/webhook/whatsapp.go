package webhook

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hoardbot/internal/bot"
)

// whatsappPayload is the Cloud API webhook envelope, trimmed to the fields
// the relay reads.
type whatsappPayload struct {
	Entry []struct {
		Changes []struct {
			Value struct {
				Messages []struct {
					From string `json:"from"`
					Type string `json:"type"`
					Text struct {
						Body string `json:"body"`
					} `json:"text"`
				} `json:"messages"`
			} `json:"value"`
		} `json:"changes"`
	} `json:"entry"`
}

// handleWhatsAppVerify answers the Cloud API subscription handshake.
func (s *Server) handleWhatsAppVerify(c *gin.Context) {
	mode := c.Query("hub.mode")
	token := c.Query("hub.verify_token")
	challenge := c.Query("hub.challenge")

	if mode == "subscribe" && token == s.cfg.WhatsApp.VerifyToken {
		c.String(http.StatusOK, challenge)
		return
	}

	s.logger.Warn("WhatsApp verification rejected", "mode", mode)
	c.Status(http.StatusForbidden)
}

// handleWhatsAppMessage relays inbound WhatsApp text messages through the
// service and sends the replies back out. The Cloud API retries anything
// that is not a 200, so every outcome, including relay failures, is
// acknowledged.
func (s *Server) handleWhatsAppMessage(c *gin.Context) {
	var payload whatsappPayload
	if err := c.ShouldBindJSON(&payload); err != nil {
		s.logger.Warn("Unparseable WhatsApp payload", "error", err)
		c.Status(http.StatusOK)
		return
	}

	ctx := c.Request.Context()
	for _, entry := range payload.Entry {
		for _, change := range entry.Changes {
			for _, msg := range change.Value.Messages {
				if msg.Type != "text" || msg.From == "" {
					continue
				}

				reply, err := s.service.HandleMessage(ctx, bot.Inbound{
					Body:  msg.Text.Body,
					Phone: msg.From,
				})
				if err != nil && reply == "" {
					s.logger.Error("WhatsApp message handling failed", "error", err)
					continue
				}

				if err := s.sender.Send(ctx, msg.From, reply); err != nil {
					s.logger.Error("Failed to send WhatsApp reply", "to", msg.From, "error", err)
				}
			}
		}
	}

	c.Status(http.StatusOK)
}
