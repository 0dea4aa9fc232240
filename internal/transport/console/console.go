package console

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
)

type line struct {
	text string
	err  error
}

// Console is the terminal front end: it reads moves and replay answers and renders the game.
type Console struct {
	logger *slog.Logger

	in    io.Reader
	out   io.Writer
	lines chan line
	once  sync.Once
}

func New(logger *slog.Logger, in io.Reader, out io.Writer) *Console {
	return &Console{
		logger: logger.With("component", "console"),
		in:     in,
		out:    out,
		lines:  make(chan line),
	}
}

func (that *Console) Welcome(size, winLength int) {
	fmt.Fprintln(that.out, "Welcome to Tic Tac Toe!")
	fmt.Fprintf(that.out, "Get %d in a row on a %dx%d board.\n", winLength, size, size)
}

func (that *Console) TurnStarted(board *entity.Board, mark entity.Mark) {
	RenderBoard(that.out, board.Snapshot())
	fmt.Fprintf(that.out, "\nPlayer %s's turn:\n", mark)
}

func (that *Console) MovePlayed(_ *entity.Board, mark entity.Mark, move entity.Move) {
	fmt.Fprintf(that.out, "Player %s chooses: %s\n", mark, move)
}

// ReadMove prompts for and returns one line of move input.
func (that *Console) ReadMove(ctx context.Context, _ entity.Mark) (string, error) {
	fmt.Fprint(that.out, "Enter a valid move (row,col): ")

	return that.readLine(ctx)
}

func (that *Console) Reject(_ entity.Mark, err error) {
	switch {
	case errors.Is(err, apperror.ErrMalformedInput):
		fmt.Fprintln(that.out, "Invalid input. Please enter numbers for row and column, like 1,2.")
	case errors.Is(err, apperror.ErrOutOfRange):
		fmt.Fprintln(that.out, "Invalid move. That cell is off the board.")
	case errors.Is(err, apperror.ErrCellOccupied):
		fmt.Fprintln(that.out, "Invalid move. That cell is already taken.")
	default:
		fmt.Fprintln(that.out, "Invalid move.")
	}
}

func (that *Console) Announce(board *entity.Board, outcome game.Outcome) {
	RenderBoard(that.out, board.Snapshot())

	switch outcome.Status {
	case entity.StatusWon:
		fmt.Fprintf(that.out, "Player %s wins!\n", outcome.Winner)
	case entity.StatusDraw:
		fmt.Fprintln(that.out, "The game ends in a draw!")
	}
}

// PromptReplay asks until the answer is y or n.
func (that *Console) PromptReplay(ctx context.Context) (bool, error) {
	for {
		fmt.Fprint(that.out, "Would you like to play again? (y/n): ")

		answer, err := that.readLine(ctx)
		if err != nil {
			return false, err
		}

		switch strings.ToLower(strings.TrimSpace(answer)) {
		case "y", "yes":
			return true, nil
		case "n", "no":
			return false, nil
		default:
			fmt.Fprintln(that.out, "Invalid input. Try again.")
		}
	}
}

func (that *Console) Farewell(score *entity.Scoreboard) {
	parts := make([]string, 0, len(score.Marks)+1)
	for _, mark := range score.Marks {
		parts = append(parts, fmt.Sprintf("%s wins: %d", mark, score.Wins[mark]))
	}
	parts = append(parts, fmt.Sprintf("draws: %d", score.Draws))

	fmt.Fprintf(that.out, "Rounds played: %d (%s)\n", score.Rounds, strings.Join(parts, ", "))
	fmt.Fprintln(that.out, "Thanks for playing!")
}

// readLine waits for the next input line or for ctx to end, whichever comes first.
func (that *Console) readLine(ctx context.Context) (string, error) {
	that.once.Do(func() {
		go that.scan()
	})

	select {
	case <-ctx.Done():
		return "", fmt.Errorf("input aborted: %w", ctx.Err())
	case l, ok := <-that.lines:
		if !ok {
			return "", io.EOF
		}

		return l.text, l.err
	}
}

func (that *Console) scan() {
	defer close(that.lines)

	scanner := bufio.NewScanner(that.in)
	for scanner.Scan() {
		that.lines <- line{text: scanner.Text()}
	}

	if err := scanner.Err(); err != nil {
		that.logger.Error("failed to read input", "error", err)
		that.lines <- line{err: fmt.Errorf("failed to read input: %w", err)}
	}
}

// RenderBoard writes one line per row with " |" between cells and "---+" separators between rows.
func RenderBoard(w io.Writer, rows [][]entity.Mark) {
	size := len(rows)

	var sb strings.Builder
	for i, row := range rows {
		for j, cell := range row {
			if cell == entity.EmptyCell {
				cell = " "
			}

			sb.WriteString(" " + string(cell))
			if j < size-1 {
				sb.WriteString(" |")
			}
		}
		sb.WriteString("\n")

		if i < size-1 {
			sb.WriteString(strings.Repeat("---+", size-1) + "---\n")
		}
	}

	fmt.Fprint(w, sb.String())
}
