package feed

import (
	"context"
	"sync"
	"time"

	"stockroom/internal/events"
	"stockroom/internal/models"
	"stockroom/internal/utils/logger"

	"github.com/redis/go-redis/v9"
)

const enabledKey = "stockroom:product-feed:enabled"

// Message is one entry on the product feed.
type Message struct {
	ProductID  uint               `json:"product_id"`
	Name       string             `json:"product_name"`
	Size       models.ProductSize `json:"product_size"`
	ReceivedAt time.Time          `json:"received_at"`
}

// Feed collects product creation events while it is switched on. The
// on/off flag lives in redis so the scheduled jobs can flip it from any
// process.
type Feed struct {
	rdb *redis.Client
	log *logger.Logger

	mu       sync.Mutex
	messages []Message
}

func New(rdb *redis.Client) *Feed {
	return &Feed{
		rdb: rdb,
		log: logger.New("product_feed"),
	}
}

// Subscribe attaches the feed to the product event bus. Call once at
// startup.
func (f *Feed) Subscribe() {
	events.On(events.ProductCreated, f.handleProductCreated)
}

func (f *Feed) handleProductCreated(data interface{}) {
	product, ok := data.(*models.Product)
	if !ok {
		f.log.Warn("unexpected payload on %s: %T", events.ProductCreated, data)
		return
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if !f.Enabled(ctx) {
		return
	}

	f.mu.Lock()
	f.messages = append(f.messages, Message{
		ProductID:  product.ID,
		Name:       product.Name,
		Size:       product.Size,
		ReceivedAt: time.Now().UTC(),
	})
	f.mu.Unlock()
	f.log.Debug("recorded product %q on the feed", product.Name)
}

// Start switches the feed on.
func (f *Feed) Start(ctx context.Context) error {
	if err := f.rdb.Set(ctx, enabledKey, "1", 0).Err(); err != nil {
		return f.log.Error("failed to enable product feed: %v", err)
	}
	f.log.Info("product feed enabled")
	return nil
}

// Stop switches the feed off. Collected messages stay readable.
func (f *Feed) Stop(ctx context.Context) error {
	if err := f.rdb.Set(ctx, enabledKey, "0", 0).Err(); err != nil {
		return f.log.Error("failed to disable product feed: %v", err)
	}
	f.log.Info("product feed disabled")
	return nil
}

// Enabled reports the current flag. A missing key or an unreachable
// redis reads as off.
func (f *Feed) Enabled(ctx context.Context) bool {
	value, err := f.rdb.Get(ctx, enabledKey).Result()
	if err != nil {
		if err != redis.Nil {
			f.log.Warn("failed to read product feed flag: %v", err)
		}
		return false
	}
	return value == "1"
}

// Messages returns a snapshot of everything collected so far.
func (f *Feed) Messages() []Message {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Message, len(f.messages))
	copy(out, f.messages)
	return out
}
