package repository

import (
	"context"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type memoryRound struct {
	mu     sync.Mutex
	rounds map[string][]entity.Round
}

// NewMemoryRoundRepository keeps rounds in process memory; used when redis is disabled.
func NewMemoryRoundRepository() RoundRepository {
	return &memoryRound{
		rounds: make(map[string][]entity.Round),
	}
}

func (that *memoryRound) Save(_ context.Context, round *entity.Round) error {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := *round
	stored.Moves = append([]entity.PlayedMove(nil), round.Moves...)
	that.rounds[round.SessionID] = append(that.rounds[round.SessionID], stored)

	return nil
}

func (that *memoryRound) ListBySession(_ context.Context, sessionID string) ([]*entity.Round, error) {
	that.mu.Lock()
	defer that.mu.Unlock()

	stored := that.rounds[sessionID]
	rounds := make([]*entity.Round, len(stored))
	for i := range stored {
		round := stored[i]
		rounds[i] = &round
	}

	return rounds, nil
}
