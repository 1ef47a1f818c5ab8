package board

// Candidate offsets per piece kind, in coordinate units.
var (
	knightOffsets    = [...]int{-17, -15, -10, -6, 6, 10, 15, 17}
	kingOffsets      = [...]int{-9, -8, -7, -1, 1, 7, 8, 9}
	bishopDirections = [...]int{-9, -7, 7, 9}
	rookDirections   = [...]int{-8, -1, 1, 8}
	queenDirections  = [...]int{-9, -8, -7, -1, 1, 7, 8, 9}
	pawnOffsets      = [...]int{8, 16, 7, 9}
)

// edgeTable records, for every source coordinate, which offsets of a piece
// kind land on the board without wrapping onto another row.
type edgeTable struct {
	offsets []int
	allowed [NumTiles]uint8
}

func newEdgeTable(offsets []int, excluded func(c, offset int) bool) *edgeTable {
	t := &edgeTable{offsets: offsets}
	for c := 0; c < NumTiles; c++ {
		for i, offset := range offsets {
			if !excluded(c, offset) && IsValidTileCoordinate(c+offset) {
				t.allowed[c] |= 1 << i
			}
		}
	}
	return t
}

// allows reports whether offsets[i] may be applied from c.
func (t *edgeTable) allows(c, i int) bool {
	return t.allowed[c]&(1<<i) != 0
}

func knightExclusion(c, offset int) bool {
	switch {
	case FirstColumn[c] && (offset == -17 || offset == -10 || offset == 6 || offset == 15):
		return true
	case SecondColumn[c] && (offset == -10 || offset == 6):
		return true
	case SeventhColumn[c] && (offset == -6 || offset == 10):
		return true
	case EighthColumn[c] && (offset == -15 || offset == -6 || offset == 10 || offset == 17):
		return true
	}
	return false
}

// kingExclusion also covers the queen, the bishop, the rook and pawn captures:
// every one-step offset that changes column by one.
func kingExclusion(c, offset int) bool {
	switch {
	case FirstColumn[c] && (offset == -9 || offset == -1 || offset == 7):
		return true
	case EighthColumn[c] && (offset == -7 || offset == 1 || offset == 9):
		return true
	}
	return false
}

var (
	knightTable = newEdgeTable(knightOffsets[:], knightExclusion)
	kingTable   = newEdgeTable(kingOffsets[:], kingExclusion)
	bishopTable = newEdgeTable(bishopDirections[:], kingExclusion)
	rookTable   = newEdgeTable(rookDirections[:], kingExclusion)
	queenTable  = newEdgeTable(queenDirections[:], kingExclusion)

	// Capture offsets are scaled by the alliance direction.
	pawnAttackTables = [2]*edgeTable{
		White: newEdgeTable([]int{7 * White.Direction(), 9 * White.Direction()}, kingExclusion),
		Black: newEdgeTable([]int{7 * Black.Direction(), 9 * Black.Direction()}, kingExclusion),
	}
)

// stepMoves generates the moves of a piece that jumps by fixed offsets.
func (p Piece) stepMoves(b *Board, t *edgeTable) []Move {
	var moves []Move
	for i, offset := range t.offsets {
		if !t.allows(p.position, i) {
			continue
		}
		destination := p.position + offset
		tile := b.tiles[destination]
		if !tile.occupied {
			moves = append(moves, NewMajorMove(b, p, destination))
		} else if tile.piece.alliance != p.alliance {
			moves = append(moves, NewAttackMove(b, p, destination, tile.piece))
		}
	}
	return moves
}

// slideMoves walks every direction one step at a time until the edge or the
// first occupied tile, which is captured if hostile.
func (p Piece) slideMoves(b *Board, t *edgeTable) []Move {
	var moves []Move
	for i, offset := range t.offsets {
		c := p.position
		for t.allows(c, i) {
			c += offset
			tile := b.tiles[c]
			if !tile.occupied {
				moves = append(moves, NewMajorMove(b, p, c))
				continue
			}
			if tile.piece.alliance != p.alliance {
				moves = append(moves, NewAttackMove(b, p, c, tile.piece))
			}
			break
		}
	}
	return moves
}

func (p Piece) pawnMoves(b *Board) []Move {
	var moves []Move
	direction := p.alliance.Direction()

	// Pushes.
	for _, offset := range pawnOffsets[:2] {
		destination := p.position + direction*offset
		if !IsValidTileCoordinate(destination) {
			continue
		}
		switch offset {
		case 8:
			if !b.tiles[destination].occupied {
				moves = append(moves, NewPawnMove(b, p, destination))
			}
		case 16:
			if !p.firstMove || !p.alliance.PawnStartRow(p.position) {
				continue
			}
			behind := p.position + direction*8
			if !b.tiles[behind].occupied && !b.tiles[destination].occupied {
				moves = append(moves, NewPawnJump(b, p, destination))
			}
		}
	}

	// Captures, including en passant onto the square the jumped pawn passed.
	t := pawnAttackTables[p.alliance]
	for i, offset := range t.offsets {
		if !t.allows(p.position, i) {
			continue
		}
		destination := p.position + offset
		tile := b.tiles[destination]
		if tile.occupied {
			if tile.piece.alliance != p.alliance {
				moves = append(moves, NewPawnAttackMove(b, p, destination, tile.piece))
			}
			continue
		}
		if ep, ok := b.EnPassantPawn(); ok && ep.alliance != p.alliance && ep.position == destination-direction*8 {
			moves = append(moves, NewPawnEnPassantAttackMove(b, p, destination, ep))
		}
	}

	return moves
}

type castleRule struct {
	kind            MoveKind
	king            int
	kingDestination int
	rookStart       int
	rookDestination int
	between         []int
}

var castleRules = [2][]castleRule{
	White: {
		{KindKingSideCastle, 60, 62, 63, 61, []int{61, 62}},
		{KindQueenSideCastle, 60, 58, 56, 59, []int{59, 58, 57}},
	},
	Black: {
		{KindKingSideCastle, 4, 6, 7, 5, []int{5, 6}},
		{KindQueenSideCastle, 4, 2, 0, 3, []int{3, 2, 1}},
	},
}

// castleMoves requires an unmoved king and rook with empty tiles between them.
// Whether the king passes through attacked tiles is left to the caller.
func (p Piece) castleMoves(b *Board) []Move {
	if !p.firstMove {
		return nil
	}

	var moves []Move
	for _, r := range castleRules[p.alliance] {
		if p.position != r.king {
			continue
		}
		rook, ok := b.tiles[r.rookStart].Piece()
		if !ok || !rook.kind.IsRook() || rook.alliance != p.alliance || !rook.firstMove {
			continue
		}
		if anyOccupied(b, r.between) {
			continue
		}
		moves = append(moves, newCastleMove(r.kind, b, p, r.kingDestination, rook, r.rookStart, r.rookDestination))
	}
	return moves
}

func anyOccupied(b *Board, coordinates []int) bool {
	for _, c := range coordinates {
		if b.tiles[c].occupied {
			return true
		}
	}
	return false
}
