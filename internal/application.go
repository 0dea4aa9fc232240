package application

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/google/uuid"
	exprand "golang.org/x/exp/rand"

	"github.com/rocketscienceinc/tictactoe-engine/internal/config"
	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
	"github.com/rocketscienceinc/tictactoe-engine/internal/game"
	"github.com/rocketscienceinc/tictactoe-engine/internal/player"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository"
	"github.com/rocketscienceinc/tictactoe-engine/internal/repository/storage"
	"github.com/rocketscienceinc/tictactoe-engine/internal/transport/console"
	"github.com/rocketscienceinc/tictactoe-engine/internal/usecase"
)

var ErrAddrNotFound = errors.New("redis address string is empty")

// RunApp - plays a console session until the players stop, input ends or the process is signalled.
func RunApp(logger *slog.Logger, conf *config.Config, in io.Reader, out io.Writer) error {
	log := logger.With("component", "app")

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	rounds, closeRounds, err := newRoundRepository(ctx, log, conf)
	if err != nil {
		return err
	}
	defer closeRounds()

	term := console.New(logger, in, out)

	g, err := newGame(logger, conf, term)
	if err != nil {
		return fmt.Errorf("could not set up game: %w", err)
	}

	session := usecase.NewSession(logger, uuid.NewString(), g, term, rounds)
	log.Info("session started",
		"session_id", session.ID(),
		"board_size", g.Board().Size(),
		"win_length", g.Rule().Length,
	)

	term.Welcome(g.Board().Size(), g.Rule().Length)

	if err = session.Run(ctx); err != nil {
		if !errors.Is(err, context.Canceled) && !errors.Is(err, io.EOF) {
			return fmt.Errorf("session failed: %w", err)
		}

		log.Info("session interrupted", "reason", err)
	}

	term.Farewell(session.Score())

	return nil
}

func newGame(logger *slog.Logger, conf *config.Config, term *console.Console) (*game.Game, error) {
	board, err := entity.NewBoard(conf.Game.BoardSize)
	if err != nil {
		return nil, err
	}

	rng := player.NewRand(conf.Game.Seed)
	first := newPlayer(logger, conf.Players.First, term, rng)
	second := newPlayer(logger, conf.Players.Second, term, rng)

	rule := game.WinRule{
		Length:       conf.Game.EffectiveWinLength(),
		AllDiagonals: conf.Game.AllDiagonals,
	}

	return game.New(board, first, second, rule)
}

func newPlayer(logger *slog.Logger, conf config.Player, term *console.Console, rng *exprand.Rand) player.Player {
	mark := entity.Mark(conf.Mark)

	if conf.Kind == player.KindComputer {
		return player.NewAutomated(mark, rng)
	}

	return player.NewHuman(logger, mark, term)
}

// newRoundRepository picks redis when enabled and the in-memory log otherwise.
func newRoundRepository(ctx context.Context, log *slog.Logger, conf *config.Config) (repository.RoundRepository, func(), error) {
	if !conf.Redis.Enabled {
		return repository.NewMemoryRoundRepository(), func() {}, nil
	}

	if conf.Redis.Host == "" || conf.Redis.Port == "" {
		return nil, nil, ErrAddrNotFound
	}

	client, err := storage.New(ctx, conf.Redis.GetRedisAddr())
	if err != nil {
		return nil, nil, fmt.Errorf("could not connect to redis storage: %w", err)
	}

	closeFn := func() {
		if err := client.Close(); err != nil {
			log.Error("could not close redis storage", "error", err)
		}
	}

	return repository.NewRoundRepository(client, conf.Redis.RoundTTL), closeFn, nil
}
