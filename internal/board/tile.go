package board

// Tile is one cell of the board, either empty or holding exactly one piece.
type Tile struct {
	coordinate int
	piece      Piece
	occupied   bool
}

// emptyTiles holds the 64 shared empty tiles. It is filled at package
// initialisation and only read afterwards.
var emptyTiles = createAllPossibleEmptyTiles()

func createAllPossibleEmptyTiles() [NumTiles]*Tile {
	var tiles [NumTiles]*Tile
	for c := 0; c < NumTiles; c++ {
		tiles[c] = &Tile{coordinate: c}
	}
	return tiles
}

// newTile returns a fresh occupied tile, or the pooled empty tile when piece is nil.
func newTile(coordinate int, piece *Piece) *Tile {
	if piece == nil {
		return emptyTiles[coordinate]
	}
	return &Tile{coordinate: coordinate, piece: *piece, occupied: true}
}

// Coordinate returns the tile coordinate.
func (t *Tile) Coordinate() int { return t.coordinate }

// IsOccupied returns true if a piece stands on the tile.
func (t *Tile) IsOccupied() bool { return t.occupied }

// Piece returns the piece on the tile and whether there is one.
func (t *Tile) Piece() (Piece, bool) { return t.piece, t.occupied }

// String returns "-" for an empty tile, otherwise the piece letter.
func (t *Tile) String() string {
	if !t.occupied {
		return "-"
	}
	return t.piece.String()
}
