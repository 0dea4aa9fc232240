package game

import (
	"context"
	"errors"
	"fmt"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

var errMissingPlayer = errors.New("both players are required")

type player interface {
	Mark() entity.Mark
	NextMove(ctx context.Context, board *entity.Board) (entity.Move, error)
}

// Observer is notified around every turn, typically to render the board.
type Observer interface {
	TurnStarted(board *entity.Board, mark entity.Mark)
	MovePlayed(board *entity.Board, mark entity.Mark, move entity.Move)
}

// Outcome is the state of a round: in progress, won by Winner, or drawn.
type Outcome struct {
	Status string
	Winner entity.Mark
}

func (that Outcome) IsFinished() bool {
	return that.Status == entity.StatusWon || that.Status == entity.StatusDraw
}

// Game is one board shared by two players taking turns. Player one always opens a round.
type Game struct {
	board   *entity.Board
	players [2]player
	current int
	rule    WinRule
	outcome Outcome
	moves   []entity.PlayedMove
}

func New(board *entity.Board, first, second player, rule WinRule) (*Game, error) {
	if board == nil {
		return nil, fmt.Errorf("%w: board is required", apperror.ErrInvalidConfig)
	}

	if first == nil || second == nil {
		return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, errMissingPlayer)
	}

	if rule.Length < 1 || rule.Length > board.Size() {
		return nil, fmt.Errorf("%w: win length %d must be between 1 and board size %d",
			apperror.ErrInvalidConfig, rule.Length, board.Size())
	}

	for _, p := range []player{first, second} {
		if err := p.Mark().Validate(); err != nil {
			return nil, fmt.Errorf("%w: %w", apperror.ErrInvalidConfig, err)
		}
	}

	if first.Mark() == second.Mark() {
		return nil, fmt.Errorf("%w: both players use mark %q", apperror.ErrInvalidConfig, string(first.Mark()))
	}

	return &Game{
		board:   board,
		players: [2]player{first, second},
		rule:    rule,
		outcome: Outcome{Status: entity.StatusInProgress},
	}, nil
}

func (that *Game) Board() *entity.Board {
	return that.board
}

func (that *Game) Rule() WinRule {
	return that.rule
}

func (that *Game) Outcome() Outcome {
	return that.outcome
}

// Marks lists the players' marks in turn order.
func (that *Game) Marks() []entity.Mark {
	return []entity.Mark{that.players[0].Mark(), that.players[1].Mark()}
}

// CurrentMark is the mark of the player to move; it is empty once the round is over.
func (that *Game) CurrentMark() entity.Mark {
	if that.outcome.IsFinished() {
		return entity.EmptyCell
	}

	return that.players[that.current].Mark()
}

// Moves returns the placements of the current round in play order.
func (that *Game) Moves() []entity.PlayedMove {
	moves := make([]entity.PlayedMove, len(that.moves))
	copy(moves, that.moves)

	return moves
}

// Play runs turns until the round is won or drawn.
func (that *Game) Play(ctx context.Context, observer Observer) (Outcome, error) {
	for !that.outcome.IsFinished() {
		if err := ctx.Err(); err != nil {
			return that.outcome, fmt.Errorf("round interrupted: %w", err)
		}

		mark := that.CurrentMark()
		if observer != nil {
			observer.TurnStarted(that.board, mark)
		}

		move, err := that.playTurn(ctx)
		if err != nil {
			return that.outcome, err
		}

		if observer != nil {
			observer.MovePlayed(that.board, mark, move)
		}
	}

	return that.outcome, nil
}

// PlayTurn asks the current player for a move and applies it.
func (that *Game) PlayTurn(ctx context.Context) (Outcome, error) {
	if _, err := that.playTurn(ctx); err != nil {
		return that.outcome, err
	}

	return that.outcome, nil
}

func (that *Game) playTurn(ctx context.Context) (entity.Move, error) {
	if that.outcome.IsFinished() {
		return entity.Move{}, apperror.ErrRoundFinished
	}

	current := that.players[that.current]

	move, err := current.NextMove(ctx, that.board)
	if err != nil {
		return entity.Move{}, fmt.Errorf("player %s failed to move: %w", current.Mark(), err)
	}

	if err = that.MakeMove(current.Mark(), move); err != nil {
		return entity.Move{}, err
	}

	return move, nil
}

// MakeMove places mark at move for the player whose turn it is and advances the round.
func (that *Game) MakeMove(mark entity.Mark, move entity.Move) error {
	if that.outcome.IsFinished() {
		return apperror.ErrRoundFinished
	}

	if that.players[that.current].Mark() != mark {
		return apperror.ErrNotYourTurn
	}

	if err := that.board.Place(move, mark); err != nil {
		return fmt.Errorf("failed to make move: %w", err)
	}

	that.moves = append(that.moves, entity.PlayedMove{Mark: mark, Move: move})

	switch {
	case CheckWin(that.board, move, mark, that.rule):
		that.outcome = Outcome{Status: entity.StatusWon, Winner: mark}
	case that.board.IsFull():
		that.outcome = Outcome{Status: entity.StatusDraw}
	default:
		that.current = 1 - that.current
	}

	return nil
}

// Reset clears the board for a new round with player one to move.
func (that *Game) Reset() {
	that.board.Reset()
	that.current = 0
	that.outcome = Outcome{Status: entity.StatusInProgress}
	that.moves = nil
}
