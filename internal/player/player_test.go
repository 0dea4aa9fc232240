package player

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

type mockMoveSource struct {
	mock.Mock
}

func (that *mockMoveSource) ReadMove(ctx context.Context, mark entity.Mark) (string, error) {
	args := that.Called(ctx, mark)
	return args.String(0), args.Error(1)
}

func (that *mockMoveSource) Reject(mark entity.Mark, err error) {
	that.Called(mark, err)
}

func errorIs(target error) interface{} {
	return mock.MatchedBy(func(err error) bool {
		return errors.Is(err, target)
	})
}

func discardLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func TestParseMove(t *testing.T) {
	t.Run("Converts one-indexed input", func(t *testing.T) {
		cases := map[string]entity.Move{
			"1,1":       {Row: 0, Col: 0},
			"3,2":       {Row: 2, Col: 1},
			" 2 , 3 \n": {Row: 1, Col: 2},
			"4,4":       {Row: 3, Col: 3},
		}

		for raw, expected := range cases {
			move, err := ParseMove(raw)
			require.NoError(t, err, raw)
			assert.Equal(t, expected, move, raw)
		}
	})

	t.Run("Rejects malformed input", func(t *testing.T) {
		for _, raw := range []string{"a,b", "1", "", "1,2,3", "1;2", "x,1", "1,"} {
			_, err := ParseMove(raw)
			assert.ErrorIs(t, err, apperror.ErrMalformedInput, raw)
		}
	})
}

func TestHuman_NextMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Returns the first valid move", func(t *testing.T) {
		// Given: a source answering "2,2"
		source := &mockMoveSource{}
		source.On("ReadMove", ctx, entity.MarkX).Return("2,2", nil).Once()
		board, err := entity.NewBoard(3)
		require.NoError(t, err)

		// When: the human is asked for a move
		move, err := NewHuman(discardLogger(), entity.MarkX, source).NextMove(ctx, board)

		// Then: the zero-indexed center is returned
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
		source.AssertExpectations(t)
	})

	t.Run("Re-prompts on an out of range move", func(t *testing.T) {
		// Given: "4,4" on a 3x3 board followed by a valid answer
		source := &mockMoveSource{}
		source.On("ReadMove", ctx, entity.MarkO).Return("4,4", nil).Once()
		source.On("Reject", entity.MarkO, errorIs(apperror.ErrOutOfRange)).Once()
		source.On("ReadMove", ctx, entity.MarkO).Return("3,3", nil).Once()
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		before := board.Snapshot()

		// When: the human is asked for a move
		move, err := NewHuman(discardLogger(), entity.MarkO, source).NextMove(ctx, board)

		// Then: the second answer wins and the board is untouched
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 2, Col: 2}, move)
		assert.Equal(t, before, board.Snapshot())
		source.AssertExpectations(t)
	})

	t.Run("Re-prompts on malformed input", func(t *testing.T) {
		source := &mockMoveSource{}
		source.On("ReadMove", ctx, entity.MarkX).Return("a,b", nil).Once()
		source.On("ReadMove", ctx, entity.MarkX).Return("1", nil).Once()
		source.On("Reject", entity.MarkX, errorIs(apperror.ErrMalformedInput)).Twice()
		source.On("ReadMove", ctx, entity.MarkX).Return("1,3", nil).Once()
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		before := board.Snapshot()

		move, err := NewHuman(discardLogger(), entity.MarkX, source).NextMove(ctx, board)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 2}, move)
		assert.Equal(t, before, board.Snapshot())
		source.AssertExpectations(t)
	})

	t.Run("Re-prompts on an occupied cell", func(t *testing.T) {
		source := &mockMoveSource{}
		source.On("ReadMove", ctx, entity.MarkX).Return("1,1", nil).Once()
		source.On("Reject", entity.MarkX, errorIs(apperror.ErrCellOccupied)).Once()
		source.On("ReadMove", ctx, entity.MarkX).Return("1,2", nil).Once()
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		require.NoError(t, board.Place(entity.Move{Row: 0, Col: 0}, entity.MarkO))

		move, err := NewHuman(discardLogger(), entity.MarkX, source).NextMove(ctx, board)

		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 0, Col: 1}, move)
		source.AssertExpectations(t)
	})

	t.Run("Returns read failures", func(t *testing.T) {
		source := &mockMoveSource{}
		source.On("ReadMove", ctx, entity.MarkX).Return("", io.EOF).Once()
		board, err := entity.NewBoard(3)
		require.NoError(t, err)

		_, err = NewHuman(discardLogger(), entity.MarkX, source).NextMove(ctx, board)

		require.ErrorIs(t, err, io.EOF)
		source.AssertNotCalled(t, "Reject", mock.Anything, mock.Anything)
	})
}

func TestAutomated_NextMove(t *testing.T) {
	ctx := context.Background()

	t.Run("Always picks a valid cell", func(t *testing.T) {
		// Given: a board with a single empty cell
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		for i := 0; i < 9; i++ {
			if i == 5 {
				continue
			}
			require.NoError(t, board.Place(entity.Move{Row: i / 3, Col: i % 3}, entity.MarkX))
		}

		// When: the automated player moves
		move, err := NewAutomated(entity.MarkO, NewRand(7)).NextMove(ctx, board)

		// Then: it finds the last empty cell
		require.NoError(t, err)
		assert.Equal(t, entity.Move{Row: 1, Col: 2}, move)
	})

	t.Run("Reaches every empty cell", func(t *testing.T) {
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		bot := NewAutomated(entity.MarkX, NewRand(42))

		seen := make(map[entity.Move]bool)
		for n := 0; n < 500; n++ {
			move, err := bot.NextMove(ctx, board)
			require.NoError(t, err)
			require.True(t, board.IsValidMove(move.Row, move.Col))
			seen[move] = true
		}

		assert.Len(t, seen, 9)
	})

	t.Run("Same seed gives the same moves", func(t *testing.T) {
		board, err := entity.NewBoard(5)
		require.NoError(t, err)
		first := NewAutomated(entity.MarkX, NewRand(99))
		second := NewAutomated(entity.MarkX, NewRand(99))

		for n := 0; n < 10; n++ {
			a, err := first.NextMove(ctx, board)
			require.NoError(t, err)
			b, err := second.NextMove(ctx, board)
			require.NoError(t, err)
			assert.Equal(t, a, b)
		}
	})

	t.Run("Full board has no moves", func(t *testing.T) {
		board, err := entity.NewBoard(1)
		require.NoError(t, err)
		require.NoError(t, board.Place(entity.Move{}, entity.MarkX))

		_, err = NewAutomated(entity.MarkO, NewRand(1)).NextMove(ctx, board)

		require.ErrorIs(t, err, apperror.ErrNoAvailableMoves)
	})

	t.Run("Cancelled context", func(t *testing.T) {
		board, err := entity.NewBoard(3)
		require.NoError(t, err)
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		_, err = NewAutomated(entity.MarkO, NewRand(1)).NextMove(cancelled, board)

		require.ErrorIs(t, err, context.Canceled)
	})
}
