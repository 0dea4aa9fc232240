package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
)

type State int

const (
	StatePlayingRound State = iota
	StateAwaitingReplayDecision
	StateFinished
)

func (that State) String() string {
	switch that {
	case StatePlayingRound:
		return "playing_round"
	case StateAwaitingReplayDecision:
		return "awaiting_replay_decision"
	case StateFinished:
		return "finished"
	default:
		return fmt.Sprintf("state(%d)", int(that))
	}
}

// Output is everything a session shows to or asks of the people at the table.
type Output interface {
	game.Observer

	Announce(board *entity.Board, outcome game.Outcome)
	PromptReplay(ctx context.Context) (bool, error)
}

type roundRepo interface {
	Save(ctx context.Context, round *entity.Round) error
}

// Session plays rounds of one game until the players decline a replay.
type Session struct {
	logger *slog.Logger

	id     string
	game   *game.Game
	output Output
	rounds roundRepo
	now    func() time.Time

	state State
	score *entity.Scoreboard
}

func NewSession(logger *slog.Logger, id string, g *game.Game, output Output, rounds roundRepo) *Session {
	return &Session{
		logger: logger.With("component", "session", "session_id", id),
		id:     id,
		game:   g,
		output: output,
		rounds: rounds,
		now:    time.Now,
		state:  StatePlayingRound,
		score:  entity.NewScoreboard(g.Marks()...),
	}
}

func (that *Session) ID() string {
	return that.id
}

func (that *Session) State() State {
	return that.state
}

// Score returns the tally of finished rounds so far.
func (that *Session) Score() *entity.Scoreboard {
	return that.score
}

// Run drives the session until it finishes or fails.
func (that *Session) Run(ctx context.Context) error {
	for that.state != StateFinished {
		if err := that.step(ctx); err != nil {
			return err
		}
	}

	that.logger.Info("session finished", "rounds", that.score.Rounds, "draws", that.score.Draws)

	return nil
}

func (that *Session) step(ctx context.Context) error {
	switch that.state {
	case StatePlayingRound:
		if err := that.playRound(ctx); err != nil {
			return err
		}
		that.state = StateAwaitingReplayDecision

	case StateAwaitingReplayDecision:
		again, err := that.output.PromptReplay(ctx)
		if err != nil {
			return fmt.Errorf("failed to read replay decision: %w", err)
		}

		if !again {
			that.state = StateFinished
			return nil
		}

		that.game.Reset()
		that.state = StatePlayingRound

	case StateFinished:
	}

	return nil
}

func (that *Session) playRound(ctx context.Context) error {
	number := that.score.Rounds + 1
	log := that.logger.With("round", number)
	log.Info("round started")

	outcome, err := that.game.Play(ctx, that.output)
	if err != nil {
		return fmt.Errorf("round %d failed: %w", number, err)
	}

	that.output.Announce(that.game.Board(), outcome)

	round := &entity.Round{
		SessionID:  that.id,
		Number:     number,
		BoardSize:  that.game.Board().Size(),
		WinLength:  that.game.Rule().Length,
		Status:     outcome.Status,
		Winner:     outcome.Winner,
		Moves:      that.game.Moves(),
		FinishedAt: that.now().UTC(),
	}
	that.score.Record(round)

	log.Info("round finished", "status", outcome.Status, "winner", string(outcome.Winner), "moves", len(round.Moves))

	// the round log is informational; a failed write never stops play
	if err = that.rounds.Save(ctx, round); err != nil {
		log.Error("failed to save round", "error", err)
	}

	return nil
}
