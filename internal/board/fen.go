package board

import (
	"fmt"
	"strconv"
	"strings"
)

// StartFEN is the FEN string for the starting position.
const StartFEN = "rnbqkbnr/pppppppp/8/8/8/8/PPPPPPPP/RNBQKBNR w KQkq - 0 1"

// castling corners: FEN letter, alliance, rook start.
var castleCorners = []struct {
	letter    byte
	alliance  Alliance
	rookStart int
}{
	{'K', White, 63},
	{'Q', White, 56},
	{'k', Black, 7},
	{'q', Black, 0},
}

var kingStart = [2]int{White: 60, Black: 4}

var enPassantTargetRow = [2]int{White: 2, Black: 5}

// ParseFEN parses a FEN string and returns the Board it describes.
// Castling rights become first-move flags of kings and rooks; the clocks are ignored.
func ParseFEN(fen string) (*Board, error) {
	parts := strings.Fields(fen)
	if len(parts) < 4 {
		return nil, fmt.Errorf("%w: need at least 4 fields, got %d", ErrInvalidFEN, len(parts))
	}

	var placement [NumTiles]*Piece
	if err := parsePiecePlacement(&placement, parts[0]); err != nil {
		return nil, err
	}

	var side Alliance
	switch parts[1] {
	case "w":
		side = White
	case "b":
		side = Black
	default:
		return nil, fmt.Errorf("%w: invalid side to move: %s", ErrInvalidFEN, parts[1])
	}

	if err := applyCastlingRights(&placement, parts[2]); err != nil {
		return nil, err
	}

	bd := NewBuilder().SetMoveMaker(side)
	var kings [2]int
	for _, p := range placement {
		if p == nil {
			continue
		}
		if p.kind == King {
			kings[p.alliance]++
		}
		bd.SetPiece(*p)
	}

	if kings[White] != 1 {
		return nil, fmt.Errorf("%w: white must have exactly one king", ErrInvalidFEN)
	}
	if kings[Black] != 1 {
		return nil, fmt.Errorf("%w: black must have exactly one king", ErrInvalidFEN)
	}

	if parts[3] != "-" {
		target, err := CoordinateAt(parts[3])
		if err != nil {
			return nil, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		// The target is the square the pawn skipped: rank 6 with White to
		// move, rank 3 with Black to move.
		if Row(target) != enPassantTargetRow[side] {
			return nil, fmt.Errorf("%w: en passant square %s on the wrong rank", ErrInvalidFEN, parts[3])
		}
		pawnAt := target - 8*side.Direction()
		if !IsValidTileCoordinate(pawnAt) {
			return nil, fmt.Errorf("%w: invalid en passant square: %s", ErrInvalidFEN, parts[3])
		}
		p := placement[pawnAt]
		if p == nil || p.kind != Pawn || p.alliance == side {
			return nil, fmt.Errorf("%w: no pawn passed %s", ErrInvalidFEN, parts[3])
		}
		bd.SetEnPassantPawn(*p)
	}

	b, err := bd.Build()
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidFEN, err)
	}
	return b, nil
}

// parsePiecePlacement parses the piece placement section of a FEN string.
func parsePiecePlacement(placement *[NumTiles]*Piece, field string) error {
	rows := strings.Split(field, "/")
	if len(rows) != NumTilesPerRow {
		return fmt.Errorf("%w: need 8 ranks, got %d", ErrInvalidFEN, len(rows))
	}

	for row, rowStr := range rows {
		column := 0

		for _, ch := range rowStr {
			if column > 7 {
				return fmt.Errorf("%w: too many squares in rank %d", ErrInvalidFEN, 8-row)
			}

			if ch >= '1' && ch <= '8' {
				column += int(ch - '0')
				continue
			}

			kind, alliance, ok := pieceFromChar(byte(ch))
			if !ok {
				return fmt.Errorf("%w: invalid piece character: %c", ErrInvalidFEN, ch)
			}
			c := NewCoordinate(column, row)
			if kind == Pawn && (FirstRow[c] || EighthRow[c]) {
				return fmt.Errorf("%w: pawn on %s", ErrInvalidFEN, AlgebraicNotation(c))
			}
			p := NewMovedPiece(kind, alliance, c)
			p.firstMove = onStartSquare(p)
			placement[c] = &p
			column++
		}

		if column != 8 {
			return fmt.Errorf("%w: invalid number of squares in rank %d: got %d", ErrInvalidFEN, 8-row, column)
		}
	}

	return nil
}

// onStartSquare reports whether a pawn, knight, bishop or queen stands where
// it starts in the initial position. Kings and rooks follow the castling field.
func onStartSquare(p Piece) bool {
	switch p.kind {
	case Pawn:
		return p.alliance.PawnStartRow(p.position)
	case King, Rook:
		return false
	}
	homeRow := 0
	if p.alliance == White {
		homeRow = 7
	}
	return Row(p.position) == homeRow && backRank[Column(p.position)] == p.kind
}

// applyCastlingRights marks the kings and rooks named by the castling field as unmoved.
func applyCastlingRights(placement *[NumTiles]*Piece, field string) error {
	if field == "-" {
		return nil
	}

	for i := 0; i < len(field); i++ {
		found := false
		for _, corner := range castleCorners {
			if corner.letter != field[i] {
				continue
			}
			found = true
			king := placement[kingStart[corner.alliance]]
			rook := placement[corner.rookStart]
			if king == nil || king.kind != King || king.alliance != corner.alliance {
				continue
			}
			if rook == nil || rook.kind != Rook || rook.alliance != corner.alliance {
				continue
			}
			king.firstMove = true
			rook.firstMove = true
		}
		if !found {
			return fmt.Errorf("%w: invalid castling character: %c", ErrInvalidFEN, field[i])
		}
	}

	return nil
}

func pieceFromChar(ch byte) (PieceType, Alliance, bool) {
	alliance := White
	if ch >= 'a' && ch <= 'z' {
		alliance = Black
		ch -= 'a' - 'A'
	}
	i := strings.IndexByte("PNBRQK", ch)
	if i < 0 {
		return NoPieceType, White, false
	}
	return PieceType(i), alliance, true
}

// FEN returns the FEN representation of the board. Move clocks are not tracked
// and are always written as "0 1".
func (b *Board) FEN() string {
	var sb strings.Builder

	// Piece placement
	for row := 0; row < NumTilesPerRow; row++ {
		empty := 0
		for column := 0; column < NumTilesPerRow; column++ {
			tile := b.tiles[NewCoordinate(column, row)]
			if !tile.occupied {
				empty++
				continue
			}
			if empty > 0 {
				sb.WriteString(strconv.Itoa(empty))
				empty = 0
			}
			sb.WriteString(tile.piece.String())
		}
		if empty > 0 {
			sb.WriteString(strconv.Itoa(empty))
		}
		if row < NumTilesPerRow-1 {
			sb.WriteByte('/')
		}
	}

	// Side to move
	sb.WriteByte(' ')
	if b.nextMoveMaker == White {
		sb.WriteByte('w')
	} else {
		sb.WriteByte('b')
	}

	// Castling rights
	sb.WriteByte(' ')
	sb.WriteString(b.castlingField())

	// En passant
	sb.WriteByte(' ')
	if b.enPassantPawn != nil {
		sb.WriteString(AlgebraicNotation(b.enPassantPawn.position - 8*b.enPassantPawn.alliance.Direction()))
	} else {
		sb.WriteByte('-')
	}

	sb.WriteString(" 0 1")
	return sb.String()
}

func (b *Board) castlingField() string {
	s := ""
	for i, ok := range b.castlingRights() {
		if ok {
			s += string(castleCorners[i].letter)
		}
	}
	if s == "" {
		return "-"
	}
	return s
}

// castlingRights reports, per castleCorners entry, whether the king and the
// rook of that corner are both unmoved on their start squares.
func (b *Board) castlingRights() [4]bool {
	var rights [4]bool
	for i, corner := range castleCorners {
		king, ok := b.tiles[kingStart[corner.alliance]].Piece()
		if !ok || king.kind != King || king.alliance != corner.alliance || !king.firstMove {
			continue
		}
		rook, ok := b.tiles[corner.rookStart].Piece()
		if !ok || rook.kind != Rook || rook.alliance != corner.alliance || !rook.firstMove {
			continue
		}
		rights[i] = true
	}
	return rights
}
