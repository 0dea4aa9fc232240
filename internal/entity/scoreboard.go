package entity

// Scoreboard tallies finished rounds of a session.
type Scoreboard struct {
	Marks  []Mark       `json:"marks"`
	Wins   map[Mark]int `json:"wins"`
	Draws  int          `json:"draws"`
	Rounds int          `json:"rounds"`
}

func NewScoreboard(marks ...Mark) *Scoreboard {
	wins := make(map[Mark]int, len(marks))
	for _, mark := range marks {
		wins[mark] = 0
	}

	return &Scoreboard{
		Marks: marks,
		Wins:  wins,
	}
}

func (that *Scoreboard) Record(round *Round) {
	that.Rounds++

	switch round.Status {
	case StatusWon:
		that.Wins[round.Winner]++
	case StatusDraw:
		that.Draws++
	}
}
