package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AnshRaj112/ojt-journal-backend/internal/models"
	"github.com/AnshRaj112/ojt-journal-backend/internal/services"
)

func drain(ch <-chan services.Event) []services.Event {
	var out []services.Event
	for {
		select {
		case e := <-ch:
			out = append(out, e)
		default:
			return out
		}
	}
}

func TestEventHubRouting(t *testing.T) {
	hub := services.NewEventHub()
	adminCh, unsubAdmin := hub.Subscribe("a1", models.RoleAdmin)
	defer unsubAdmin()
	aliceCh, unsubAlice := hub.Subscribe("alice", models.RoleStudent)
	defer unsubAlice()
	bobCh, unsubBob := hub.Subscribe("bob", models.RoleStudent)
	defer unsubBob()

	ctx := context.Background()
	require.NoError(t, hub.Publish(ctx, services.Event{Type: services.EventJournalSubmitted, UserID: "alice"}))
	require.NoError(t, hub.Publish(ctx, services.Event{Type: services.EventJournalReviewed, UserID: "bob"}))

	assert.Len(t, drain(adminCh), 2)

	alice := drain(aliceCh)
	require.Len(t, alice, 1)
	assert.Equal(t, services.EventJournalSubmitted, alice[0].Type)

	bob := drain(bobCh)
	require.Len(t, bob, 1)
	assert.Equal(t, services.EventJournalReviewed, bob[0].Type)
}

func TestEventHubUnsubscribeClosesChannel(t *testing.T) {
	hub := services.NewEventHub()
	ch, unsubscribe := hub.Subscribe("a1", models.RoleAdmin)

	unsubscribe()
	unsubscribe() // idempotent

	_, open := <-ch
	assert.False(t, open)

	// Publishing after unsubscribe must not panic on the closed channel.
	hub.FanOut(services.Event{Type: services.EventJournalSubmitted, UserID: "x"})
}

func TestEventHubDropsForSlowSubscribers(t *testing.T) {
	hub := services.NewEventHub()
	ch, unsubscribe := hub.Subscribe("a1", models.RoleAdmin)
	defer unsubscribe()

	for i := 0; i < 100; i++ {
		hub.FanOut(services.Event{Type: services.EventJournalSubmitted, UserID: "x"})
	}
	got := drain(ch)
	assert.NotEmpty(t, got)
	assert.Less(t, len(got), 100)
}
