package player

import (
	"context"
	"fmt"
	"time"

	"golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type automated struct {
	mark entity.Mark
	rng  *rand.Rand
}

// NewRand returns a generator for automated players. A zero seed picks one from the clock.
func NewRand(seed uint64) *rand.Rand {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano()) //nolint: gosec // it's ok, the clock is positive
	}

	return rand.New(rand.NewSource(seed))
}

func NewAutomated(mark entity.Mark, rng *rand.Rand) Player {
	return &automated{
		mark: mark,
		rng:  rng,
	}
}

func (that *automated) Mark() entity.Mark {
	return that.mark
}

// NextMove samples random cells until it hits an empty one.
func (that *automated) NextMove(ctx context.Context, board *entity.Board) (entity.Move, error) {
	if err := ctx.Err(); err != nil {
		return entity.Move{}, fmt.Errorf("move cancelled: %w", err)
	}

	if board.IsFull() {
		return entity.Move{}, apperror.ErrNoAvailableMoves
	}

	size := board.Size()
	for {
		row, col := that.rng.Intn(size), that.rng.Intn(size)
		if board.IsValidMove(row, col) {
			return entity.Move{Row: row, Col: col}, nil
		}
	}
}
