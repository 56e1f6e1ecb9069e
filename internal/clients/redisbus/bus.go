package redisbus

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"

	"github.com/onmx/studio-backend/internal/pkg/logger"
)

// MediaEvent is one status transition of a media asset, fanned out over
// redis pub/sub so every API instance can push it to its connected editors.
type MediaEvent struct {
	AssetID    uuid.UUID `json:"asset_id"`
	CompanyID  uuid.UUID `json:"company_id"`
	Status     string    `json:"status"`
	PlaybackID string    `json:"playback_id,omitempty"`
	At         time.Time `json:"at"`
}

type MediaBus interface {
	Publish(ctx context.Context, evt MediaEvent) error
	Subscribe(ctx context.Context, onEvent func(evt MediaEvent)) error
	Close() error
}

type mediaBus struct {
	log     *logger.Logger
	rdb     *goredis.Client
	channel string
}

func NewMediaBus(log *logger.Logger) (MediaBus, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	addr := strings.TrimSpace(os.Getenv("REDIS_ADDR"))
	if addr == "" {
		return nil, fmt.Errorf("missing REDIS_ADDR")
	}
	ch := strings.TrimSpace(os.Getenv("REDIS_MEDIA_CHANNEL"))
	if ch == "" {
		ch = "media-events"
	}

	rdb := goredis.NewClient(&goredis.Options{
		Addr:        addr,
		DialTimeout: 5 * time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("redis ping: %w", err)
	}

	return &mediaBus{
		log:     log.With("service", "RedisMediaBus"),
		rdb:     rdb,
		channel: ch,
	}, nil
}

func (b *mediaBus) Publish(ctx context.Context, evt MediaEvent) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("media bus not initialized")
	}
	raw, err := json.Marshal(evt)
	if err != nil {
		return err
	}
	return b.rdb.Publish(ctx, b.channel, raw).Err()
}

func (b *mediaBus) Subscribe(ctx context.Context, onEvent func(evt MediaEvent)) error {
	if b == nil || b.rdb == nil {
		return fmt.Errorf("media bus not initialized")
	}
	if onEvent == nil {
		return fmt.Errorf("onEvent callback required")
	}

	sub := b.rdb.Subscribe(ctx, b.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return fmt.Errorf("redis subscribe: %w", err)
	}

	go func() {
		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				_ = sub.Close()
				return
			case m, ok := <-ch:
				if !ok || m == nil {
					_ = sub.Close()
					return
				}
				var evt MediaEvent
				if err := json.Unmarshal([]byte(m.Payload), &evt); err != nil {
					b.log.Warn("bad media event payload", "error", err)
					continue
				}
				onEvent(evt)
			}
		}
	}()

	return nil
}

func (b *mediaBus) Close() error {
	if b == nil || b.rdb == nil {
		return nil
	}
	return b.rdb.Close()
}
