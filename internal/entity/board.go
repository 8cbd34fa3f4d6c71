package entity

import (
	"fmt"
	"strings"

	"github.com/rocketscienceinc/tictactoe-ai/internal/apperror"
)

// Mark is the content of a single board cell.
type Mark string

const (
	PlayerX   Mark = "X"
	PlayerO   Mark = "O"
	PlayerTie Mark = "-"

	EmptyCell Mark = ""
)

const (
	BoardSize  = 3
	CellsCount = BoardSize * BoardSize
)

var WinCombos = [8][3]int{
	{0, 1, 2},
	{3, 4, 5},
	{6, 7, 8},
	{0, 3, 6},
	{1, 4, 7},
	{2, 5, 8},
	{0, 4, 8},
	{2, 4, 6},
}

// IsPlayer reports whether the mark is X or O.
func (that Mark) IsPlayer() bool {
	return that == PlayerX || that == PlayerO
}

// Opponent returns the other player's mark, or EmptyCell for non-player marks.
func (that Mark) Opponent() Mark {
	switch that {
	case PlayerX:
		return PlayerO
	case PlayerO:
		return PlayerX
	default:
		return EmptyCell
	}
}

// Board is a 3x3 grid stored row-major. It has value semantics: assigning
// or passing a Board copies every cell.
type Board struct {
	cells [CellsCount]Mark
}

func NewBoard() Board {
	return Board{}
}

// BoardOf builds a board from row-major cells, used by tests and fixtures.
func BoardOf(cells [CellsCount]Mark) Board {
	return Board{cells: cells}
}

// Position maps (row, col) to a cell index.
func Position(row, col int) int {
	return row*BoardSize + col
}

// RowCol maps a cell index to (row, col).
func RowCol(position int) (int, int) {
	return position / BoardSize, position % BoardSize
}

func isValidPosition(position int) bool {
	if position < 0 {
		return false
	}

	row, col := RowCol(position)

	return row < BoardSize && col < BoardSize
}

func (that *Board) Reset() {
	for i := range that.cells {
		that.cells[i] = EmptyCell
	}
}

// MakeMove places mark at position when the position is on the board and
// the cell is empty. It reports whether the board was changed.
func (that *Board) MakeMove(position int, mark Mark) bool {
	if !mark.IsPlayer() || !isValidPosition(position) {
		return false
	}

	if that.cells[position] != EmptyCell {
		return false
	}

	that.cells[position] = mark

	return true
}

func (that Board) GetCell(position int) (Mark, error) {
	if !isValidPosition(position) {
		return EmptyCell, fmt.Errorf("%w: cell %d", apperror.ErrInvalidCell, position)
	}

	return that.cells[position], nil
}

// CheckWinner returns the mark that completes a winning line, or EmptyCell.
func (that Board) CheckWinner() Mark {
	for _, combo := range WinCombos {
		a, b, c := that.cells[combo[0]], that.cells[combo[1]], that.cells[combo[2]]
		if a != EmptyCell && a == b && b == c {
			return a
		}
	}

	return EmptyCell
}

func (that Board) IsFull() bool {
	for _, cell := range that.cells {
		if cell == EmptyCell {
			return false
		}
	}

	return true
}

// GetAvailableMoves lists empty positions in ascending order.
func (that Board) GetAvailableMoves() []int {
	moves := make([]int, 0, CellsCount)
	for i, cell := range that.cells {
		if cell == EmptyCell {
			moves = append(moves, i)
		}
	}

	return moves
}

func (that Board) Clone() Board {
	return that
}

// Cells returns a copy of the row-major cells.
func (that Board) Cells() [CellsCount]Mark {
	return that.cells
}

func (that Board) String() string {
	var sb strings.Builder

	for row := 0; row < BoardSize; row++ {
		if row > 0 {
			sb.WriteString("\n---+---+---\n")
		}

		for col := 0; col < BoardSize; col++ {
			if col > 0 {
				sb.WriteString("|")
			}

			cell := that.cells[Position(row, col)]
			if cell == EmptyCell {
				fmt.Fprintf(&sb, " %d ", Position(row, col))
				continue
			}

			fmt.Fprintf(&sb, " %s ", cell)
		}
	}

	return sb.String()
}
