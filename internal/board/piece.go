package board

import "strings"

// PieceType is the kind of a chess piece.
type PieceType uint8

const (
	Pawn PieceType = iota
	Knight
	Bishop
	Rook
	Queen
	King
	NoPieceType PieceType = 6
)

// String returns the display symbol of the piece type (uppercase).
func (pt PieceType) String() string {
	if pt >= NoPieceType {
		return " "
	}
	return string("PNBRQK"[pt])
}

// IsKing returns true for the king.
func (pt PieceType) IsKing() bool {
	return pt == King
}

// IsRook returns true for the rook.
func (pt PieceType) IsRook() bool {
	return pt == Rook
}

// Piece is an immutable chess piece on a coordinate.
// Moving a piece never changes it; execution builds a new Piece at the destination.
type Piece struct {
	kind      PieceType
	alliance  Alliance
	position  int
	firstMove bool
}

// NewPiece creates a piece that has not moved yet.
func NewPiece(kind PieceType, alliance Alliance, position int) Piece {
	return Piece{kind: kind, alliance: alliance, position: position, firstMove: true}
}

// NewMovedPiece creates a piece that has already moved.
func NewMovedPiece(kind PieceType, alliance Alliance, position int) Piece {
	return Piece{kind: kind, alliance: alliance, position: position}
}

// Type returns the piece type.
func (p Piece) Type() PieceType { return p.kind }

// Alliance returns the side the piece belongs to.
func (p Piece) Alliance() Alliance { return p.alliance }

// Position returns the coordinate the piece stands on.
func (p Piece) Position() int { return p.position }

// IsFirstMove returns true if the piece has not moved yet.
func (p Piece) IsFirstMove() bool { return p.firstMove }

// String returns the piece letter, uppercase for White and lowercase for Black.
func (p Piece) String() string {
	if p.alliance == Black {
		return strings.ToLower(p.kind.String())
	}
	return p.kind.String()
}

// moveTo returns the post-move value of p: same kind and alliance, new position, moved.
func (p Piece) moveTo(destination int) Piece {
	return NewMovedPiece(p.kind, p.alliance, destination)
}

// CalculateLegalMoves returns the pseudo-legal moves of p on board b.
// King safety is not considered.
func (p Piece) CalculateLegalMoves(b *Board) []Move {
	switch p.kind {
	case Pawn:
		return p.pawnMoves(b)
	case Knight:
		return p.stepMoves(b, knightTable)
	case Bishop:
		return p.slideMoves(b, bishopTable)
	case Rook:
		return p.slideMoves(b, rookTable)
	case Queen:
		return p.slideMoves(b, queenTable)
	case King:
		return append(p.stepMoves(b, kingTable), p.castleMoves(b)...)
	default:
		return nil
	}
}
