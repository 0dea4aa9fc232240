package entity

import (
	"fmt"
	"unicode"
	"unicode/utf8"

	"github.com/rocketscienceinc/tictactoe-engine/internal/apperror"
)

const (
	MarkX Mark = "X"
	MarkO Mark = "O"

	EmptyCell Mark = ""
)

// Mark is the symbol a player puts on the board.
type Mark string

// Validate checks that the mark is a single visible character.
func (that Mark) Validate() error {
	if utf8.RuneCountInString(string(that)) != 1 {
		return fmt.Errorf("%w: %q must be a single character", apperror.ErrInvalidMark, string(that))
	}

	r, _ := utf8.DecodeRuneInString(string(that))
	if unicode.IsSpace(r) || !unicode.IsPrint(r) {
		return fmt.Errorf("%w: %q is not printable", apperror.ErrInvalidMark, string(that))
	}

	return nil
}

// Move is a zero-indexed board coordinate.
type Move struct {
	Row int `json:"row"`
	Col int `json:"col"`
}

// String renders the move the way players type it, one-indexed.
func (that Move) String() string {
	return fmt.Sprintf("(%d,%d)", that.Row+1, that.Col+1)
}

// Board is a square grid of marks.
type Board struct {
	size   int
	cells  []Mark
	filled int
}

func NewBoard(size int) (*Board, error) {
	if size < 1 {
		return nil, fmt.Errorf("%w: board size %d must be positive", apperror.ErrInvalidConfig, size)
	}

	return &Board{
		size:  size,
		cells: make([]Mark, size*size),
	}, nil
}

func (that *Board) Size() int {
	return that.size
}

func (that *Board) InBounds(row, col int) bool {
	return row >= 0 && row < that.size && col >= 0 && col < that.size
}

func (that *Board) IsEmpty(row, col int) (bool, error) {
	if !that.InBounds(row, col) {
		return false, fmt.Errorf("%w: (%d,%d) on a %dx%d board", apperror.ErrOutOfRange, row, col, that.size, that.size)
	}

	return that.cells[that.index(row, col)] == EmptyCell, nil
}

// IsValidMove reports whether a mark could be placed at (row, col). It never mutates the board.
func (that *Board) IsValidMove(row, col int) bool {
	return that.InBounds(row, col) && that.cells[that.index(row, col)] == EmptyCell
}

// At returns the mark at (row, col); ok is false outside the board.
func (that *Board) At(row, col int) (Mark, bool) {
	if !that.InBounds(row, col) {
		return EmptyCell, false
	}

	return that.cells[that.index(row, col)], true
}

func (that *Board) Place(move Move, mark Mark) error {
	if mark == EmptyCell {
		return fmt.Errorf("%w: %w: cannot place an empty mark", apperror.ErrIllegalMove, apperror.ErrInvalidMark)
	}

	empty, err := that.IsEmpty(move.Row, move.Col)
	if err != nil {
		return fmt.Errorf("%w: %w", apperror.ErrIllegalMove, err)
	}

	if !empty {
		return fmt.Errorf("%w: %w: %s", apperror.ErrIllegalMove, apperror.ErrCellOccupied, move)
	}

	that.cells[that.index(move.Row, move.Col)] = mark
	that.filled++

	return nil
}

func (that *Board) IsFull() bool {
	return that.filled == len(that.cells)
}

// Reset empties every cell, keeping the size.
func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}
	that.filled = 0
}

// Snapshot returns a copy of the grid, row by row.
func (that *Board) Snapshot() [][]Mark {
	rows := make([][]Mark, that.size)
	for r := range rows {
		rows[r] = make([]Mark, that.size)
		copy(rows[r], that.cells[r*that.size:(r+1)*that.size])
	}

	return rows
}

func (that *Board) index(row, col int) int {
	return row*that.size + col
}
