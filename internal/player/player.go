package player

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

const (
	KindHuman    = "human"
	KindComputer = "computer"
)

// Player produces moves for one mark. Every returned move is valid on the board it was given.
type Player interface {
	Mark() entity.Mark
	NextMove(ctx context.Context, board *entity.Board) (entity.Move, error)
}

// ParseMove reads a one-indexed "row,col" pair into a zero-indexed move.
// It only checks the format; bounds are the board's business.
func ParseMove(raw string) (entity.Move, error) {
	parts := strings.Split(strings.TrimSpace(raw), ",")
	if len(parts) != 2 {
		return entity.Move{}, fmt.Errorf("%w: expected row,col but got %q", apperror.ErrMalformedInput, raw)
	}

	row, err := strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: row %q is not a number", apperror.ErrMalformedInput, parts[0])
	}

	col, err := strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil {
		return entity.Move{}, fmt.Errorf("%w: column %q is not a number", apperror.ErrMalformedInput, parts[1])
	}

	return entity.Move{Row: row - 1, Col: col - 1}, nil
}
