package board

// Zobrist hash keys for board hashing.
// Uses PRNG with fixed seed for reproducibility.
var (
	zobristPiece      [2][6][NumTiles]uint64 // [Alliance][PieceType][Coordinate]
	zobristPawnStart  [NumTiles]uint64       // XOR for an unmoved pawn that may still jump
	zobristCastling   [4]uint64              // One per castleCorners entry
	zobristEnPassant  [NumTilesPerRow]uint64 // One per column
	zobristSideToMove uint64                 // XOR when black to move
)

func init() {
	initZobrist()
}

// Simple PRNG for reproducible Zobrist keys
type prng struct {
	state uint64
}

func newPRNG(seed uint64) *prng {
	return &prng{state: seed}
}

// xorshift64* algorithm
func (p *prng) next() uint64 {
	p.state ^= p.state >> 12
	p.state ^= p.state << 25
	p.state ^= p.state >> 27
	return p.state * 0x2545F4914F6CDD1D
}

func initZobrist() {
	rng := newPRNG(0x98F107A2BEEF1234)

	for a := White; a <= Black; a++ {
		for pt := Pawn; pt <= King; pt++ {
			for c := 0; c < NumTiles; c++ {
				zobristPiece[a][pt][c] = rng.next()
			}
		}
	}

	for c := 0; c < NumTiles; c++ {
		zobristPawnStart[c] = rng.next()
	}

	for i := range zobristCastling {
		zobristCastling[i] = rng.next()
	}

	for column := 0; column < NumTilesPerRow; column++ {
		zobristEnPassant[column] = rng.next()
	}

	zobristSideToMove = rng.next()
}

// computeHash computes the Zobrist key of the board from scratch.
// First-move flags only count where they change the moves: castling pairs
// and pawns still able to jump. Other pieces hash the same moved or not.
func (b *Board) computeHash() uint64 {
	var hash uint64

	for _, pieces := range b.pieces {
		for _, p := range pieces {
			hash ^= zobristPiece[p.alliance][p.kind][p.position]
			if p.kind == Pawn && p.firstMove && p.alliance.PawnStartRow(p.position) {
				hash ^= zobristPawnStart[p.position]
			}
		}
	}

	for i, ok := range b.castlingRights() {
		if ok {
			hash ^= zobristCastling[i]
		}
	}

	if b.nextMoveMaker == Black {
		hash ^= zobristSideToMove
	}

	if b.enPassantPawn != nil {
		hash ^= zobristEnPassant[Column(b.enPassantPawn.position)]
	}

	return hash
}
