package app

import (
	"fmt"
	"os"
	"strings"

	"github.com/onmx/studio-backend/internal/clients/mux"
	"github.com/onmx/studio-backend/internal/clients/redisbus"
	"github.com/onmx/studio-backend/internal/pkg/logger"
)

type Clients struct {
	Transcoder mux.Client
	MediaBus   redisbus.MediaBus
}

func wireClients(log *logger.Logger) (Clients, error) {
	log.Info("Wiring clients...")

	// Redis is optional in local setups; media events just stay local.
	var bus redisbus.MediaBus
	if strings.TrimSpace(os.Getenv("REDIS_ADDR")) != "" {
		b, err := redisbus.NewMediaBus(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init redis media bus: %w", err)
		}
		bus = b
	}

	// Without transcoder credentials video uploads are rejected at the
	// service layer; image uploads still work.
	var transcoder mux.Client
	if strings.TrimSpace(os.Getenv("MUX_TOKEN_ID")) != "" {
		t, err := mux.NewFromEnv(log)
		if err != nil {
			return Clients{}, fmt.Errorf("init transcoder client: %w", err)
		}
		transcoder = t
	} else {
		log.Warn("MUX_TOKEN_ID not set, video transcoding disabled")
	}

	return Clients{
		Transcoder: transcoder,
		MediaBus:   bus,
	}, nil
}

func (c *Clients) Close() {
	if c == nil {
		return
	}
	if c.MediaBus != nil {
		_ = c.MediaBus.Close()
	}
}
