package entity

import "time"

const (
	StatusInProgress = "in_progress"
	StatusWon        = "won"
	StatusDraw       = "draw"
)

// PlayedMove is one placement in a round, in play order.
type PlayedMove struct {
	Mark Mark `json:"mark"`
	Move Move `json:"move"`
}

// Round is the record of a finished round within a session.
type Round struct {
	SessionID  string       `json:"session_id"`
	Number     int          `json:"number"`
	BoardSize  int          `json:"board_size"`
	WinLength  int          `json:"win_length"`
	Status     string       `json:"status"`
	Winner     Mark         `json:"winner,omitempty"`
	Moves      []PlayedMove `json:"moves"`
	FinishedAt time.Time    `json:"finished_at"`
}

func (that *Round) IsDraw() bool {
	return that.Status == StatusDraw
}
