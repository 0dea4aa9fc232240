package game

import "github.com/rocketscienceinc/tictactoe-engine/internal/entity"

// WinRule describes what counts as a winning line.
type WinRule struct {
	// Length is the number of consecutive marks needed, 1 <= Length <= board size.
	Length int
	// AllDiagonals scans every diagonal through the move instead of only the two principal ones.
	AllDiagonals bool
}

type axis struct {
	dRow, dCol int
}

var (
	horizontal   = axis{dRow: 0, dCol: 1}
	vertical     = axis{dRow: 1, dCol: 0}
	mainDiagonal = axis{dRow: 1, dCol: 1}
	antiDiagonal = axis{dRow: 1, dCol: -1}
)

// CheckWin reports whether the mark at move completes a run of at least rule.Length
// identical marks through that cell.
func CheckWin(board *entity.Board, move entity.Move, mark entity.Mark, rule WinRule) bool {
	if mark == entity.EmptyCell {
		return false
	}

	if current, ok := board.At(move.Row, move.Col); !ok || current != mark {
		return false
	}

	for _, a := range axesThrough(board.Size(), move, rule.AllDiagonals) {
		if runLength(board, move, mark, a) >= rule.Length {
			return true
		}
	}

	return false
}

func axesThrough(size int, move entity.Move, allDiagonals bool) []axis {
	axes := []axis{horizontal, vertical}

	if allDiagonals || move.Row == move.Col {
		axes = append(axes, mainDiagonal)
	}

	if allDiagonals || move.Row+move.Col == size-1 {
		axes = append(axes, antiDiagonal)
	}

	return axes
}

// runLength counts the move cell plus matching marks on both sides of it along a.
func runLength(board *entity.Board, move entity.Move, mark entity.Mark, a axis) int {
	count := 1
	count += scan(board, move, mark, a.dRow, a.dCol)
	count += scan(board, move, mark, -a.dRow, -a.dCol)

	return count
}

func scan(board *entity.Board, move entity.Move, mark entity.Mark, dRow, dCol int) int {
	count := 0

	row, col := move.Row+dRow, move.Col+dCol
	for {
		current, ok := board.At(row, col)
		if !ok || current != mark {
			return count
		}

		count++
		row += dRow
		col += dCol
	}
}
