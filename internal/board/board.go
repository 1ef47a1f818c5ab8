package board

import (
	"fmt"
	"slices"
	"strings"
	"sync"
)

// Board is an immutable snapshot of a chess position.
// It is created by a Builder and never changes afterwards, so it can be
// shared freely between goroutines.
type Board struct {
	tiles         [NumTiles]*Tile
	pieces        [2][]Piece
	nextMoveMaker Alliance
	enPassantPawn *Piece
	hash          uint64

	movesOnce [2]sync.Once
	moves     [2][]Move
}

// Tile returns the tile at coordinate c. Callers pass validated coordinates.
func (b *Board) Tile(c int) *Tile {
	return b.tiles[c]
}

// NextMoveMaker returns the side to move.
func (b *Board) NextMoveMaker() Alliance {
	return b.nextMoveMaker
}

// ActivePieces returns the pieces of alliance a ordered by coordinate.
func (b *Board) ActivePieces(a Alliance) []Piece {
	return slices.Clone(b.pieces[a])
}

// EnPassantPawn returns the pawn that just made a double push, if any.
func (b *Board) EnPassantPawn() (Piece, bool) {
	if b.enPassantPawn == nil {
		return Piece{}, false
	}
	return *b.enPassantPawn, true
}

// Hash returns the Zobrist key of the board.
func (b *Board) Hash() uint64 {
	return b.hash
}

// LegalMoves returns the pseudo-legal moves of every active piece of alliance a.
// The list is computed once per board.
func (b *Board) LegalMoves(a Alliance) []Move {
	b.movesOnce[a].Do(func() {
		var moves []Move
		for _, p := range b.pieces[a] {
			moves = append(moves, p.CalculateLegalMoves(b)...)
		}
		b.moves[a] = moves
	})
	return slices.Clone(b.moves[a])
}

// CurrentPlayerMoves returns the pseudo-legal moves of the side to move.
func (b *Board) CurrentPlayerMoves() []Move {
	return b.LegalMoves(b.nextMoveMaker)
}

// AllLegalMoves returns the pseudo-legal moves of both sides, White first.
func (b *Board) AllLegalMoves() []Move {
	return append(b.LegalMoves(White), b.LegalMoves(Black)...)
}

// String renders the board as eight rows of tile labels.
func (b *Board) String() string {
	var sb strings.Builder
	for c := 0; c < NumTiles; c++ {
		sb.WriteString(fmt.Sprintf("%3s", b.tiles[c]))
		if (c+1)%NumTilesPerRow == 0 {
			sb.WriteByte('\n')
		}
	}
	return sb.String()
}

// Builder stages the contents of a Board. It is consumed by Build and must
// not be used afterwards; a Builder belongs to the goroutine that created it.
type Builder struct {
	config        map[int]Piece
	nextMoveMaker Alliance
	enPassantPawn *Piece
	consumed      bool
	err           error
}

// NewBuilder creates an empty builder with White to move.
func NewBuilder() *Builder {
	return &Builder{config: make(map[int]Piece)}
}

// SetPiece stages p on its own coordinate, replacing whatever was staged there.
func (bd *Builder) SetPiece(p Piece) *Builder {
	if bd.consumed {
		return bd
	}
	if !IsValidTileCoordinate(p.position) {
		if bd.err == nil {
			bd.err = fmt.Errorf("%w: %d", ErrInvalidCoordinate, p.position)
		}
		return bd
	}
	bd.config[p.position] = p
	return bd
}

// SetMoveMaker sets the side to move.
func (bd *Builder) SetMoveMaker(a Alliance) *Builder {
	bd.nextMoveMaker = a
	return bd
}

// SetEnPassantPawn records the pawn that just made a double push.
func (bd *Builder) SetEnPassantPawn(p Piece) *Builder {
	bd.enPassantPawn = &p
	return bd
}

// Build freezes the staged contents into a Board. Unset coordinates become empty tiles.
func (bd *Builder) Build() (*Board, error) {
	if bd.consumed {
		return nil, ErrBuilderConsumed
	}
	bd.consumed = true
	config := bd.config
	bd.config = nil

	if bd.err != nil {
		return nil, bd.err
	}

	b := &Board{nextMoveMaker: bd.nextMoveMaker}
	var kings [2]int
	for c := 0; c < NumTiles; c++ {
		p, ok := config[c]
		if !ok {
			b.tiles[c] = newTile(c, nil)
			continue
		}
		b.tiles[c] = newTile(c, &p)
		b.pieces[p.alliance] = append(b.pieces[p.alliance], p)
		if p.kind.IsKing() {
			kings[p.alliance]++
		}
	}

	for _, a := range []Alliance{White, Black} {
		if kings[a] > 1 {
			return nil, fmt.Errorf("%w: %s has %d", ErrDuplicateKing, a, kings[a])
		}
	}

	if bd.enPassantPawn != nil {
		ep := *bd.enPassantPawn
		staged, ok := config[ep.position]
		if ep.kind != Pawn || !ok || staged != ep {
			return nil, fmt.Errorf("%w: %s on %s", ErrInvalidEnPassant, ep, AlgebraicNotation(ep.position))
		}
		b.enPassantPawn = &ep
	}

	b.hash = b.computeHash()
	return b, nil
}

var backRank = [NumTilesPerRow]PieceType{Rook, Knight, Bishop, Queen, King, Bishop, Knight, Rook}

// NewStandardBoard returns the initial chess position with White to move.
func NewStandardBoard() *Board {
	bd := NewBuilder()
	for column, kind := range backRank {
		bd.SetPiece(NewPiece(kind, Black, NewCoordinate(column, 0)))
		bd.SetPiece(NewPiece(Pawn, Black, NewCoordinate(column, 1)))
		bd.SetPiece(NewPiece(Pawn, White, NewCoordinate(column, 6)))
		bd.SetPiece(NewPiece(kind, White, NewCoordinate(column, 7)))
	}
	bd.SetMoveMaker(White)

	b, err := bd.Build()
	if err != nil {
		panic(err)
	}
	return b
}
