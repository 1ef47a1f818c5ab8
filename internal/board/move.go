package board

import "fmt"

// MoveKind tags the variant of a Move.
type MoveKind uint8

const (
	KindMajor MoveKind = iota
	KindAttack
	KindPawn
	KindPawnJump
	KindPawnAttack
	KindPawnEnPassantAttack
	KindKingSideCastle
	KindQueenSideCastle
	KindNull
)

var moveKindNames = [...]string{
	KindMajor:               "MajorMove",
	KindAttack:              "AttackMove",
	KindPawn:                "PawnMove",
	KindPawnJump:            "PawnJump",
	KindPawnAttack:          "PawnAttackMove",
	KindPawnEnPassantAttack: "PawnEnPassantAttackMove",
	KindKingSideCastle:      "KingSideCastleMove",
	KindQueenSideCastle:     "QueenSideCastleMove",
	KindNull:                "NullMove",
}

// String returns the variant name.
func (k MoveKind) String() string {
	if int(k) < len(moveKindNames) {
		return moveKindNames[k]
	}
	return fmt.Sprintf("MoveKind(%d)", k)
}

// Move is a pseudo-legal transition from the board it was generated on.
// The board is always the pre-move snapshot; moves are never reused across boards.
type Move struct {
	kind        MoveKind
	board       *Board
	movedPiece  Piece
	destination int

	// attackedPiece is set for the attack kinds.
	attackedPiece Piece

	// Castling payload.
	castleRook            Piece
	castleRookStart       int
	castleRookDestination int

	// promotion is NoPieceType unless a pawn reaches the far row.
	promotion PieceType
}

// NullMove is the sentinel returned when no move matches. Executing it fails.
var NullMove = Move{
	kind:                  KindNull,
	destination:           NoCoordinate,
	castleRookStart:       NoCoordinate,
	castleRookDestination: NoCoordinate,
	promotion:             NoPieceType,
}

func newMove(kind MoveKind, b *Board, moved Piece, destination int) Move {
	return Move{
		kind:                  kind,
		board:                 b,
		movedPiece:            moved,
		destination:           destination,
		castleRookStart:       NoCoordinate,
		castleRookDestination: NoCoordinate,
		promotion:             NoPieceType,
	}
}

// NewMajorMove creates a non-capturing move of a non-pawn piece.
func NewMajorMove(b *Board, moved Piece, destination int) Move {
	return newMove(KindMajor, b, moved, destination)
}

// NewAttackMove creates a capture by a non-pawn piece.
func NewAttackMove(b *Board, moved Piece, destination int, attacked Piece) Move {
	m := newMove(KindAttack, b, moved, destination)
	m.attackedPiece = attacked
	return m
}

// NewPawnMove creates a single pawn push.
func NewPawnMove(b *Board, moved Piece, destination int) Move {
	return newMove(KindPawn, b, moved, destination).withPromotion()
}

// NewPawnJump creates a double pawn push.
func NewPawnJump(b *Board, moved Piece, destination int) Move {
	return newMove(KindPawnJump, b, moved, destination)
}

// NewPawnAttackMove creates a diagonal pawn capture.
func NewPawnAttackMove(b *Board, moved Piece, destination int, attacked Piece) Move {
	m := newMove(KindPawnAttack, b, moved, destination)
	m.attackedPiece = attacked
	return m.withPromotion()
}

// NewPawnEnPassantAttackMove creates an en passant capture of attacked, which
// stands beside the moving pawn rather than on the destination.
func NewPawnEnPassantAttackMove(b *Board, moved Piece, destination int, attacked Piece) Move {
	m := newMove(KindPawnEnPassantAttack, b, moved, destination)
	m.attackedPiece = attacked
	return m
}

// NewKingSideCastleMove creates a king side castle moving rook from rookStart to rookDestination.
func NewKingSideCastleMove(b *Board, king Piece, destination int, rook Piece, rookStart, rookDestination int) Move {
	return newCastleMove(KindKingSideCastle, b, king, destination, rook, rookStart, rookDestination)
}

// NewQueenSideCastleMove creates a queen side castle moving rook from rookStart to rookDestination.
func NewQueenSideCastleMove(b *Board, king Piece, destination int, rook Piece, rookStart, rookDestination int) Move {
	return newCastleMove(KindQueenSideCastle, b, king, destination, rook, rookStart, rookDestination)
}

func newCastleMove(kind MoveKind, b *Board, king Piece, destination int, rook Piece, rookStart, rookDestination int) Move {
	m := newMove(kind, b, king, destination)
	m.castleRook = rook
	m.castleRookStart = rookStart
	m.castleRookDestination = rookDestination
	return m
}

// withPromotion queens a pawn that reaches its promotion row.
func (m Move) withPromotion() Move {
	if m.movedPiece.alliance.PromotionRow(m.destination) {
		m.promotion = Queen
	}
	return m
}

// Kind returns the variant tag.
func (m Move) Kind() MoveKind { return m.kind }

// Board returns the snapshot the move was generated on (nil for NullMove).
func (m Move) Board() *Board { return m.board }

// MovedPiece returns the piece being moved, as it stands before the move.
func (m Move) MovedPiece() Piece { return m.movedPiece }

// CurrentCoordinate returns the origin of the move.
func (m Move) CurrentCoordinate() int {
	if m.kind == KindNull {
		return NoCoordinate
	}
	return m.movedPiece.position
}

// DestinationCoordinate returns the destination of the moved piece.
func (m Move) DestinationCoordinate() int { return m.destination }

// IsNull returns true for the sentinel.
func (m Move) IsNull() bool { return m.kind == KindNull }

// IsAttack returns true if the move captures a piece.
func (m Move) IsAttack() bool {
	switch m.kind {
	case KindAttack, KindPawnAttack, KindPawnEnPassantAttack:
		return true
	default:
		return false
	}
}

// IsCastlingMove returns true for both castles.
func (m Move) IsCastlingMove() bool {
	return m.kind == KindKingSideCastle || m.kind == KindQueenSideCastle
}

// AttackedPiece returns the captured piece of an attack.
func (m Move) AttackedPiece() (Piece, bool) {
	if !m.IsAttack() {
		return Piece{}, false
	}
	return m.attackedPiece, true
}

// CastleRook returns the rook of a castle with its start and destination coordinates.
func (m Move) CastleRook() (rook Piece, start, destination int, ok bool) {
	if !m.IsCastlingMove() {
		return Piece{}, NoCoordinate, NoCoordinate, false
	}
	return m.castleRook, m.castleRookStart, m.castleRookDestination, true
}

// Promotion returns the piece type a pawn is promoted to, if any.
func (m Move) Promotion() (PieceType, bool) {
	return m.promotion, m.promotion != NoPieceType
}

// MoveKey holds the fields move equality is defined over. The source board
// and the variant are not part of it, so an AttackMove equals a
// PawnAttackMove with the same fields.
type MoveKey struct {
	Destination int
	MovedPiece  Piece
	Attack      bool
	Attacked    Piece
}

// Key returns the comparable identity of m, suitable as a map key.
func (m Move) Key() MoveKey {
	k := MoveKey{Destination: m.destination, MovedPiece: m.movedPiece}
	if m.IsAttack() {
		k.Attack = true
		k.Attacked = m.attackedPiece
	}
	return k
}

// Equal reports whether m and other have the same Key.
func (m Move) Equal(other Move) bool {
	return m.Key() == other.Key()
}

// Execute builds the board that results from playing m.
// The moving side's pieces are copied except the moved piece (and the castling
// rook), the opponent's pieces are copied except a captured one, and the side
// to move flips.
func (m Move) Execute() (*Board, error) {
	if m.kind == KindNull || m.board == nil {
		return nil, ErrNullMove
	}

	mover := m.movedPiece.alliance
	castling := m.IsCastlingMove()
	attack := m.IsAttack()

	bd := NewBuilder()
	for _, p := range m.board.pieces[mover] {
		if p == m.movedPiece || (castling && p == m.castleRook) {
			continue
		}
		bd.SetPiece(p)
	}
	for _, p := range m.board.pieces[mover.Opponent()] {
		if attack && p == m.attackedPiece {
			continue
		}
		bd.SetPiece(p)
	}

	moved := m.movedPiece.moveTo(m.destination)
	if m.promotion != NoPieceType {
		moved = NewMovedPiece(m.promotion, mover, m.destination)
	}
	bd.SetPiece(moved)

	if castling {
		bd.SetPiece(m.castleRook.moveTo(m.castleRookDestination))
	}
	if m.kind == KindPawnJump {
		bd.SetEnPassantPawn(moved)
	}
	bd.SetMoveMaker(m.board.nextMoveMaker.Opponent())

	return bd.Build()
}

// String returns the display label of the move.
func (m Move) String() string {
	var s string
	switch m.kind {
	case KindNull:
		return "0000"
	case KindKingSideCastle:
		return "0-0"
	case KindQueenSideCastle:
		return "0-0-0"
	case KindMajor:
		s = m.movedPiece.kind.String() + AlgebraicNotation(m.destination)
	case KindAttack:
		s = m.movedPiece.kind.String() + "x" + AlgebraicNotation(m.destination)
	case KindPawn, KindPawnJump:
		s = AlgebraicNotation(m.destination)
	case KindPawnAttack, KindPawnEnPassantAttack:
		s = AlgebraicNotation(m.movedPiece.position)[:1] + "x" + AlgebraicNotation(m.destination)
	}
	if m.promotion != NoPieceType {
		s += "=" + m.promotion.String()
	}
	return s
}

// UCI returns the coordinate form of the move (e.g. "e2e4", "e7e8q").
func (m Move) UCI() string {
	if m.kind == KindNull {
		return "0000"
	}
	s := AlgebraicNotation(m.movedPiece.position) + AlgebraicNotation(m.destination)
	if m.promotion != NoPieceType {
		s += string("pnbrqk"[m.promotion])
	}
	return s
}

// CreateMove returns the move of the side to move going from one coordinate
// to another, or NullMove when there is none.
func CreateMove(b *Board, from, to int) Move {
	for _, m := range b.CurrentPlayerMoves() {
		if m.CurrentCoordinate() == from && m.DestinationCoordinate() == to {
			return m
		}
	}
	return NullMove
}

// CreateMoveFromUCI parses a coordinate move such as "e2e4" and looks it up
// with CreateMove. Only queen promotions exist, so a promotion suffix must be "q".
func CreateMoveFromUCI(b *Board, s string) (Move, error) {
	if len(s) != 4 && len(s) != 5 {
		return NullMove, fmt.Errorf("invalid move string: %q", s)
	}

	from, err := CoordinateAt(s[0:2])
	if err != nil {
		return NullMove, err
	}
	to, err := CoordinateAt(s[2:4])
	if err != nil {
		return NullMove, err
	}
	if len(s) == 5 && s[4] != 'q' && s[4] != 'Q' {
		return NullMove, fmt.Errorf("unsupported promotion piece: %c", s[4])
	}

	return CreateMove(b, from, to), nil
}
