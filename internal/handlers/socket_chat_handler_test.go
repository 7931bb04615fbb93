package handlers

import (
	"context"
	"sync"
	"testing"

	"github.com/Amala4/Chat-App/internal/utils"
)

func TestSocketHubTracksClientsPerPair(t *testing.T) {
	sch := NewSocketChatHandler(nil, context.Background(), nil)
	pair := utils.PairKey(1, 2)

	sch.addClientToPair(1, pair, nil)
	sch.addClientToPair(2, pair, nil)
	if got := len(sch.hub.Pairs[pair]); got != 2 {
		t.Fatalf("expected 2 clients on the pair, got %d", got)
	}

	sch.removeClientFromPair(1, pair)
	clients := sch.hub.Pairs[pair]
	if len(clients) != 1 || clients[0].UserId != 2 {
		t.Fatalf("expected only user 2 to remain, got %+v", clients)
	}

	sch.removeClientFromPair(2, pair)
	if _, ok := sch.hub.Pairs[pair]; ok {
		t.Fatalf("expected the empty pair entry to be removed")
	}
}

func TestSocketHubConcurrentJoinAndLeave(t *testing.T) {
	sch := NewSocketChatHandler(nil, context.Background(), nil)

	var wg sync.WaitGroup
	for i := 1; i <= 32; i++ {
		wg.Add(1)
		go func(userId uint) {
			defer wg.Done()
			pair := utils.PairKey(userId, 100)
			sch.addClientToPair(userId, pair, nil)
			sch.removeClientFromPair(userId, pair)
		}(uint(i))
	}
	wg.Wait()

	if got := len(sch.hub.Pairs); got != 0 {
		t.Fatalf("expected an empty hub after everyone left, got %d pairs", got)
	}
}
