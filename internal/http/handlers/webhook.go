package handlers

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"io"
	"net/http"
	"os"

	"github.com/gin-gonic/gin"

	"github.com/onmx/studio-backend/internal/http/response"
	"github.com/onmx/studio-backend/internal/pkg/logger"
	"github.com/onmx/studio-backend/internal/services"
)

// WebhookHandler ingests transcoder callbacks. The endpoint is public but
// requests are verified against the shared webhook secret when one is set.
type WebhookHandler struct {
	log          *logger.Logger
	mediaService services.MediaService
	secret       string
}

func NewWebhookHandler(log *logger.Logger, mediaService services.MediaService) *WebhookHandler {
	return &WebhookHandler{
		log:          log.With("handler", "WebhookHandler"),
		mediaService: mediaService,
		secret:       os.Getenv("MUX_WEBHOOK_SECRET"),
	}
}

type transcoderEvent struct {
	Type string `json:"type"`
	Data struct {
		ID          string `json:"id"`
		Status      string `json:"status"`
		Passthrough string `json:"passthrough"`
		PlaybackIDs []struct {
			ID string `json:"id"`
		} `json:"playback_ids"`
	} `json:"data"`
}

func (h *WebhookHandler) Transcoder(c *gin.Context) {
	body, err := io.ReadAll(io.LimitReader(c.Request.Body, 1<<20))
	if err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	if h.secret != "" && !h.verifySignature(c.GetHeader("Mux-Signature"), body) {
		response.RespondError(c, http.StatusUnauthorized, "bad_signature", nil)
		return
	}

	var evt transcoderEvent
	if err := json.Unmarshal(body, &evt); err != nil {
		response.RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}

	playbackID := ""
	if len(evt.Data.PlaybackIDs) > 0 {
		playbackID = evt.Data.PlaybackIDs[0].ID
	}
	if err := h.mediaService.HandleWebhook(c.Request.Context(), evt.Data.ID, evt.Data.Passthrough, evt.Data.Status, playbackID); err != nil {
		h.log.Error("Webhook processing failed", "error", err, "event_type", evt.Type)
		response.RespondServiceError(c, err)
		return
	}
	response.RespondOK(c, gin.H{"status": "accepted"})
}

func (h *WebhookHandler) verifySignature(header string, body []byte) bool {
	if header == "" {
		return false
	}
	mac := hmac.New(sha256.New, []byte(h.secret))
	mac.Write(body)
	want := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(want), []byte(header))
}
