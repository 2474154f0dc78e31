package notify

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"

	"github.com/smartbill/backend/internal/domain/shared"
	"github.com/smartbill/backend/internal/infrastructure/config"
)

// RedisNotifier broadcasts collection-changed signals over Redis pub/sub so
// other terminals sharing the database can re-fetch. Payloads carry only the
// collection name; subscribers fetch current state through the API.
type RedisNotifier struct {
	client        *redis.Client
	channelPrefix string
	logger        *zap.Logger
}

// NewRedisNotifier creates a notifier with its own Redis client and verifies
// the connection.
func NewRedisNotifier(cfg config.RedisConfig, channelPrefix string, logger *zap.Logger) (*RedisNotifier, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     cfg.Addr(),
		Password: cfg.Password,
		DB:       cfg.DB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisNotifierWithClient(client, channelPrefix, logger), nil
}

// NewRedisNotifierWithClient creates a notifier around an existing client
func NewRedisNotifierWithClient(client *redis.Client, channelPrefix string, logger *zap.Logger) *RedisNotifier {
	if channelPrefix == "" {
		channelPrefix = "smartbill"
	}
	return &RedisNotifier{
		client:        client,
		channelPrefix: channelPrefix,
		logger:        logger,
	}
}

// NotifyChanged implements shared.ChangeNotifier
func (n *RedisNotifier) NotifyChanged(ctx context.Context, collection shared.Collection) error {
	channel := n.channel(collection)
	if err := n.client.Publish(ctx, channel, string(collection)).Err(); err != nil {
		return fmt.Errorf("failed to publish change notification: %w", err)
	}
	n.logger.Debug("change notification published",
		zap.String("channel", channel),
	)
	return nil
}

// Subscribe returns a channel of collection names that changed. The caller
// owns the returned PubSub and must Close it to stop delivery.
func (n *RedisNotifier) Subscribe(ctx context.Context, collections ...shared.Collection) (*redis.PubSub, <-chan shared.Collection) {
	channels := make([]string, 0, len(collections))
	for _, c := range collections {
		channels = append(channels, n.channel(c))
	}
	pubsub := n.client.Subscribe(ctx, channels...)

	out := make(chan shared.Collection)
	go func() {
		defer close(out)
		for msg := range pubsub.Channel() {
			select {
			case out <- shared.Collection(msg.Payload):
			case <-ctx.Done():
				return
			}
		}
	}()
	return pubsub, out
}

// Close releases the underlying Redis client
func (n *RedisNotifier) Close() error {
	return n.client.Close()
}

func (n *RedisNotifier) channel(collection shared.Collection) string {
	return fmt.Sprintf("%s:changes:%s", n.channelPrefix, collection)
}

var _ shared.ChangeNotifier = (*RedisNotifier)(nil)
