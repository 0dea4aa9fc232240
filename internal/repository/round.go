package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/rocketscienceinc/tictactoe-engine/internal/entity"
)

// RoundRepository keeps the log of finished rounds per session.
type RoundRepository interface {
	Save(ctx context.Context, round *entity.Round) error
	ListBySession(ctx context.Context, sessionID string) ([]*entity.Round, error)
}

type dbRound struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRoundRepository stores rounds in a redis list per session. The list expires ttl after
// the last write; a zero ttl keeps it forever.
func NewRoundRepository(client *redis.Client, ttl time.Duration) RoundRepository {
	return &dbRound{
		client: client,
		ttl:    ttl,
	}
}

func roundsKey(sessionID string) string {
	return "session:" + sessionID + ":rounds"
}

func (that *dbRound) Save(ctx context.Context, round *entity.Round) error {
	roundJSON, err := json.Marshal(round)
	if err != nil {
		return fmt.Errorf("could not marshal round: %w", err)
	}

	key := roundsKey(round.SessionID)

	_, err = that.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.RPush(ctx, key, roundJSON)
		if that.ttl > 0 {
			pipe.Expire(ctx, key, that.ttl)
		}

		return nil
	})
	if err != nil {
		return fmt.Errorf("failed to save round: %w", err)
	}

	return nil
}

func (that *dbRound) ListBySession(ctx context.Context, sessionID string) ([]*entity.Round, error) {
	response, err := that.client.LRange(ctx, roundsKey(sessionID), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list rounds: %w", err)
	}

	rounds := make([]*entity.Round, 0, len(response))
	for _, item := range response {
		var round entity.Round
		if err = json.Unmarshal([]byte(item), &round); err != nil {
			return nil, fmt.Errorf("failed to unmarshal round: %w", err)
		}

		rounds = append(rounds, &round)
	}

	return rounds, nil
}
