package service

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/makweb/addressapi/internal/domain"
)

func newTestSignal(t *testing.T) (*SignalService, *miniredis.Miniredis) {
	t.Helper()
	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })
	return NewSignalService(rdb), mr
}

func TestSignalServicePublish(t *testing.T) {
	s, mr := newTestSignal(t)

	sub := mr.NewSubscriber()
	sub.Subscribe(AddressEventChannel)
	defer sub.Close()

	// miniredis delivers on an unbuffered channel, so PUBLISH blocks until read
	published := make(chan error, 1)
	go func() {
		published <- s.Publish(context.Background(), domain.AddressEvent{Type: domain.EventDeleted, AddressID: 4})
	}()

	select {
	case msg := <-sub.Messages():
		assert.Equal(t, AddressEventChannel, msg.Channel)
		assert.JSONEq(t, `{"type":"deleted","addressId":4}`, msg.Message)
	case <-time.After(time.Second):
		t.Fatal("no message published")
	}
	require.NoError(t, <-published)
}

func TestSignalServiceRealtime(t *testing.T) {
	s, _ := newTestSignal(t)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	output := make(chan domain.AddressEvent)
	done := make(chan error, 1)
	go func() { done <- s.Realtime(ctx, output) }()

	created := domain.Address{AddressID: 1, City: "Utrecht"}

	// keep publishing until the subscriber is attached
	deadline := time.After(2 * time.Second)
	ticker := time.NewTicker(20 * time.Millisecond)
	defer ticker.Stop()

	for {
		select {
		case event := <-output:
			assert.Equal(t, domain.EventCreated, event.Type)
			require.NotNil(t, event.Address)
			assert.Equal(t, "Utrecht", event.Address.City)

			cancel()
			assert.NoError(t, <-done)
			return
		case <-ticker.C:
			require.NoError(t, s.Publish(ctx, domain.AddressEvent{Type: domain.EventCreated, AddressID: 1, Address: &created}))
		case <-deadline:
			t.Fatal("no event received")
		}
	}
}
