package console

import (
	"bytes"
	"context"
	"io"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
)

func newConsole(input string) (*Console, *bytes.Buffer) {
	out := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	return New(logger, strings.NewReader(input), out), out
}

func TestRenderBoard(t *testing.T) {
	// Given: a partly played 3x3 board
	board, err := entity.NewBoard(3)
	require.NoError(t, err)
	require.NoError(t, board.Place(entity.Move{Row: 0, Col: 0}, entity.MarkX))
	require.NoError(t, board.Place(entity.Move{Row: 1, Col: 1}, entity.MarkO))
	require.NoError(t, board.Place(entity.Move{Row: 2, Col: 2}, entity.MarkX))

	// When: it is rendered
	out := &bytes.Buffer{}
	RenderBoard(out, board.Snapshot())

	// Then: rows and dividers match the board width
	expected := "" +
		" X |   |  \n" +
		"---+---+---\n" +
		"   | O |  \n" +
		"---+---+---\n" +
		"   |   | X\n"
	assert.Equal(t, expected, out.String())
}

func TestRenderBoard_SingleCell(t *testing.T) {
	out := &bytes.Buffer{}
	RenderBoard(out, [][]entity.Mark{{entity.MarkO}})

	assert.Equal(t, " O\n", out.String())
}

func TestConsole_ReadMove(t *testing.T) {
	t.Run("Reads lines in order then EOF", func(t *testing.T) {
		c, out := newConsole("1,1\n2,2")

		first, err := c.ReadMove(context.Background(), entity.MarkX)
		require.NoError(t, err)
		second, err := c.ReadMove(context.Background(), entity.MarkX)
		require.NoError(t, err)
		_, err = c.ReadMove(context.Background(), entity.MarkX)

		assert.Equal(t, "1,1", first)
		assert.Equal(t, "2,2", second)
		require.ErrorIs(t, err, io.EOF)
		assert.Contains(t, out.String(), "Enter a valid move (row,col): ")
	})

	t.Run("Stops waiting when the context ends", func(t *testing.T) {
		// Given: an input that never produces a line
		reader, writer := io.Pipe()
		defer writer.Close()
		c := New(slog.New(slog.NewTextHandler(io.Discard, nil)), reader, io.Discard)

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		// When: a move is read
		_, err := c.ReadMove(ctx, entity.MarkX)

		// Then: the read is abandoned
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestConsole_HumanInput(t *testing.T) {
	// Given: malformed input, an out-of-range move, then a valid one
	c, out := newConsole("a,b\n1\n4,4\n2,2\n")
	board, err := entity.NewBoard(3)
	require.NoError(t, err)
	human := player.NewHuman(slog.New(slog.NewTextHandler(io.Discard, nil)), entity.MarkX, c)

	// When: the human moves through the console
	move, err := human.NextMove(context.Background(), board)

	// Then: only the valid move comes back and each rejection was explained
	require.NoError(t, err)
	assert.Equal(t, entity.Move{Row: 1, Col: 1}, move)
	assert.Equal(t, 2, strings.Count(out.String(), "Invalid input."))
	assert.Equal(t, 1, strings.Count(out.String(), "off the board"))
	assert.True(t, board.IsValidMove(1, 1))
}

func TestConsole_Reject(t *testing.T) {
	c, out := newConsole("")

	c.Reject(entity.MarkX, apperror.ErrCellOccupied)
	c.Reject(entity.MarkX, apperror.ErrIllegalMove)

	assert.Contains(t, out.String(), "already taken")
	assert.Contains(t, out.String(), "Invalid move.\n")
}

func TestConsole_PromptReplay(t *testing.T) {
	t.Run("Asks again until y or n", func(t *testing.T) {
		c, out := newConsole("maybe\nY\n")

		again, err := c.PromptReplay(context.Background())

		require.NoError(t, err)
		assert.True(t, again)
		assert.Equal(t, 1, strings.Count(out.String(), "Invalid input. Try again."))
	})

	t.Run("No ends the session", func(t *testing.T) {
		c, _ := newConsole(" n \n")

		again, err := c.PromptReplay(context.Background())

		require.NoError(t, err)
		assert.False(t, again)
	})

	t.Run("Closed input is an error", func(t *testing.T) {
		c, _ := newConsole("")

		_, err := c.PromptReplay(context.Background())

		require.ErrorIs(t, err, io.EOF)
	})
}

func TestConsole_Announce(t *testing.T) {
	board, err := entity.NewBoard(2)
	require.NoError(t, err)

	t.Run("Winner", func(t *testing.T) {
		c, out := newConsole("")

		c.Announce(board, game.Outcome{Status: entity.StatusWon, Winner: entity.MarkO})

		assert.Contains(t, out.String(), "Player O wins!")
	})

	t.Run("Draw", func(t *testing.T) {
		c, out := newConsole("")

		c.Announce(board, game.Outcome{Status: entity.StatusDraw})

		assert.Contains(t, out.String(), "The game ends in a draw!")
	})
}

func TestConsole_Farewell(t *testing.T) {
	c, out := newConsole("")
	score := entity.NewScoreboard(entity.MarkX, entity.MarkO)
	score.Record(&entity.Round{Status: entity.StatusWon, Winner: entity.MarkX})
	score.Record(&entity.Round{Status: entity.StatusDraw})

	c.Farewell(score)

	assert.Contains(t, out.String(), "Rounds played: 2 (X wins: 1, O wins: 0, draws: 1)")
	assert.Contains(t, out.String(), "Thanks for playing!")
}
