package board

import "fmt"

// NumTiles is the number of tiles on the board.
const NumTiles = 64

// NumTilesPerRow is the number of tiles on a row or a column.
const NumTilesPerRow = 8

// NoCoordinate marks the absence of a coordinate.
const NoCoordinate = -1

// Coordinates run row-major from a8 (0) to h1 (63).
// Row 0 is Black's back rank; column 0 is the a-file.
var (
	FirstColumn   = columnMask(0)
	SecondColumn  = columnMask(1)
	SeventhColumn = columnMask(6)
	EighthColumn  = columnMask(7)

	FirstRow   = rowMask(0)
	SecondRow  = rowMask(1)
	SeventhRow = rowMask(6)
	EighthRow  = rowMask(7)
)

func columnMask(column int) [NumTiles]bool {
	var mask [NumTiles]bool
	for c := column; c < NumTiles; c += NumTilesPerRow {
		mask[c] = true
	}
	return mask
}

func rowMask(row int) [NumTiles]bool {
	var mask [NumTiles]bool
	for c := row * NumTilesPerRow; c < (row+1)*NumTilesPerRow; c++ {
		mask[c] = true
	}
	return mask
}

// IsValidTileCoordinate returns true if c addresses a tile on the board.
func IsValidTileCoordinate(c int) bool {
	return c >= 0 && c < NumTiles
}

// Column returns the column of c (0=a, 7=h).
func Column(c int) int {
	return c % NumTilesPerRow
}

// Row returns the row of c (0 is the eighth rank).
func Row(c int) int {
	return c / NumTilesPerRow
}

// NewCoordinate creates a coordinate from a column and a row.
func NewCoordinate(column, row int) int {
	return row*NumTilesPerRow + column
}

// AlgebraicNotation returns the algebraic name of c (e.g. "e2").
func AlgebraicNotation(c int) string {
	if !IsValidTileCoordinate(c) {
		return "-"
	}
	return fmt.Sprintf("%c%c", 'a'+Column(c), '8'-Row(c))
}

// CoordinateAt parses an algebraic square name (e.g. "e2") into a coordinate.
func CoordinateAt(s string) (int, error) {
	if len(s) != 2 {
		return NoCoordinate, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}

	column := int(s[0]) - 'a'
	rank := int(s[1]) - '1'

	if column < 0 || column > 7 || rank < 0 || rank > 7 {
		return NoCoordinate, fmt.Errorf("%w: %q", ErrInvalidCoordinate, s)
	}

	return NewCoordinate(column, 7-rank), nil
}
