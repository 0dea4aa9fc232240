package player

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// MoveSource supplies raw move text for a human and hears back about rejected attempts.
type MoveSource interface {
	ReadMove(ctx context.Context, mark entity.Mark) (string, error)
	Reject(mark entity.Mark, err error)
}

type human struct {
	logger *slog.Logger
	mark   entity.Mark
	source MoveSource
}

func NewHuman(logger *slog.Logger, mark entity.Mark, source MoveSource) Player {
	return &human{
		logger: logger.With("component", "human", "mark", string(mark)),
		mark:   mark,
		source: source,
	}
}

func (that *human) Mark() entity.Mark {
	return that.mark
}

// NextMove keeps asking the source until it produces a valid move. Only a read failure is returned.
func (that *human) NextMove(ctx context.Context, board *entity.Board) (entity.Move, error) {
	for {
		raw, err := that.source.ReadMove(ctx, that.mark)
		if err != nil {
			return entity.Move{}, fmt.Errorf("failed to read move: %w", err)
		}

		move, err := ParseMove(raw)
		if err == nil {
			err = checkMove(board, move)
		}

		if err != nil {
			that.logger.Debug("move rejected", "input", raw, "error", err)
			that.source.Reject(that.mark, err)

			continue
		}

		return move, nil
	}
}

func checkMove(board *entity.Board, move entity.Move) error {
	if !board.InBounds(move.Row, move.Col) {
		return fmt.Errorf("%w: %s on a %dx%d board", apperror.ErrOutOfRange, move, board.Size(), board.Size())
	}

	if !board.IsValidMove(move.Row, move.Col) {
		return fmt.Errorf("%w: %s", apperror.ErrCellOccupied, move)
	}

	return nil
}
