package notify

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/amellouk/souq/internal/domain"
)

// Webhook posts catalog events to a configured URL, fire-and-forget: the
// request never blocks the calling operation and failures are only logged.
type Webhook struct {
	url    string
	client *http.Client
}

func NewWebhook(url string) *Webhook {
	return &Webhook{url: url, client: &http.Client{Timeout: 5 * time.Second}}
}

func (w *Webhook) Notify(_ context.Context, e domain.Event) {
	if w.url == "" {
		return
	}
	go func() {
		body, err := json.Marshal(e)
		if err != nil {
			log.Warn().Err(err).Str("kind", e.Kind).Msg("notification not sent")
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		req, err := http.NewRequestWithContext(ctx, http.MethodPost, w.url, bytes.NewReader(body))
		if err != nil {
			log.Warn().Err(err).Str("kind", e.Kind).Msg("notification not sent")
			return
		}
		req.Header.Set("Content-Type", "application/json")
		resp, err := w.client.Do(req)
		if err != nil {
			log.Warn().Err(err).Str("kind", e.Kind).Msg("notification not sent")
			return
		}
		_ = resp.Body.Close()
	}()
}
