package service

import (
	"context"
	"encoding/json"
	"log/slog"

	"github.com/redis/go-redis/v9"

	"github.com/makweb/addressapi/internal/domain"
)

// AddressEventChannel is the redis channel address changes are published on.
const AddressEventChannel = "address-events"

type SignalService struct {
	rdb *redis.Client
}

func NewSignalService(redisClient *redis.Client) *SignalService {
	return &SignalService{
		rdb: redisClient,
	}
}

func (s *SignalService) Publish(ctx context.Context, event domain.AddressEvent) error {

	jsonstr, err := json.Marshal(event)
	if err != nil {
		return err
	}

	return s.rdb.Publish(ctx, AddressEventChannel, jsonstr).Err()
}

// Realtime forwards published events to output until ctx is done.
// Malformed messages are skipped.
func (s *SignalService) Realtime(ctx context.Context, output chan<- domain.AddressEvent) error {
	pubsub := s.rdb.Subscribe(ctx, AddressEventChannel)
	defer pubsub.Close()

	// wait for the subscription to be confirmed so no event is missed
	if _, err := pubsub.Receive(ctx); err != nil {
		return err
	}

	messages := pubsub.Channel()
	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-messages:
			if !ok {
				return nil
			}

			var event domain.AddressEvent
			if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
				slog.WarnContext(
					ctx, "Dropping malformed address event",
					slog.String("error", err.Error()),
					slog.String("module", "signal"),
				)
				continue
			}

			select {
			case output <- event:
			case <-ctx.Done():
				return nil
			}
		}
	}
}
