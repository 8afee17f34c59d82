package services

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	EventJournalSubmitted = "journal.submitted"
	EventJournalReviewed  = "journal.reviewed"

	// EventsChannel is the Redis Pub/Sub channel shared by all instances.
	EventsChannel = "ojt:events"

	eventBufferSize = 16
)

// Event is the payload broadcast over Redis and WebSocket.
type Event struct {
	Type      string    `json:"type"`
	JournalID string    `json:"journal_id"`
	UserID    string    `json:"user_id"`
	Date      string    `json:"date,omitempty"`
	Reviewed  bool      `json:"reviewed,omitempty"`
	Remarks   string    `json:"remarks,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

type eventSubscriber struct {
	userID string
	role   models.Role
	ch     chan Event
}

// wants reports whether the subscriber should see the event: admins see
// everything, students only events about their own journals.
func (s *eventSubscriber) wants(e Event) bool {
	return s.role == models.RoleAdmin || s.userID == e.UserID
}

// EventHub fans events out to the connections of this instance. Used on
// its own it is also an in-process Publisher.
type EventHub struct {
	mu   sync.RWMutex
	subs map[*eventSubscriber]struct{}
}

func NewEventHub() *EventHub {
	return &EventHub{subs: make(map[*eventSubscriber]struct{})}
}

// Subscribe registers a listener. The returned func must be called to
// release it; it closes the channel.
func (h *EventHub) Subscribe(userID string, role models.Role) (<-chan Event, func()) {
	sub := &eventSubscriber{
		userID: userID,
		role:   role,
		ch:     make(chan Event, eventBufferSize),
	}

	h.mu.Lock()
	h.subs[sub] = struct{}{}
	h.mu.Unlock()

	var once sync.Once
	return sub.ch, func() {
		once.Do(func() {
			h.mu.Lock()
			delete(h.subs, sub)
			h.mu.Unlock()
			close(sub.ch)
		})
	}
}

// FanOut delivers an event to every interested local subscriber. Slow
// subscribers lose events rather than block the hub.
func (h *EventHub) FanOut(event Event) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	for sub := range h.subs {
		if !sub.wants(event) {
			continue
		}
		select {
		case sub.ch <- event:
		default:
			log.Printf("events: dropping %s for slow subscriber %s", event.Type, sub.userID)
		}
	}
}

// Publish implements Publisher for single-instance deployments.
func (h *EventHub) Publish(_ context.Context, event Event) error {
	h.FanOut(event)
	return nil
}

// RedisEvents publishes events on a Redis channel and feeds everything
// received on it into the local hub, so every instance sees every event.
type RedisEvents struct {
	client *redis.Client
	hub    *EventHub
	once   sync.Once
}

func NewRedisEvents(client *redis.Client, hub *EventHub) *RedisEvents {
	return &RedisEvents{client: client, hub: hub}
}

// Publish sends the event to all instances.
func (r *RedisEvents) Publish(ctx context.Context, event Event) error {
	if event.Timestamp.IsZero() {
		event.Timestamp = time.Now().UTC()
	}
	data, err := json.Marshal(event)
	if err != nil {
		return err
	}
	return r.client.Publish(ctx, EventsChannel, data).Err()
}

// Start runs the shared subscriber until ctx is cancelled. Calling it more
// than once has no effect.
func (r *RedisEvents) Start(ctx context.Context) {
	r.once.Do(func() {
		go r.run(ctx)
	})
}

func (r *RedisEvents) run(ctx context.Context) {
	backoff := time.Second

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		func() {
			pubsub := r.client.Subscribe(ctx, EventsChannel)
			defer pubsub.Close()

			log.Printf("✅ Events subscriber started (channel: %s)", EventsChannel)

			for {
				msg, err := pubsub.ReceiveMessage(ctx)
				if err != nil {
					if ctx.Err() != nil {
						return
					}
					log.Printf("Redis events subscriber error: %v", err)
					time.Sleep(backoff)
					backoff *= 2
					if backoff > 30*time.Second {
						backoff = 30 * time.Second
					}
					return
				}

				backoff = time.Second

				var event Event
				if err := json.Unmarshal([]byte(msg.Payload), &event); err != nil {
					log.Printf("failed to unmarshal event: %v", err)
					continue
				}
				r.hub.FanOut(event)
			}
		}()
	}
}
