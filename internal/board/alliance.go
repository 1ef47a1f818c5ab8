package board

// Alliance is the side a piece belongs to.
type Alliance uint8

const (
	White Alliance = iota
	Black
)

// Direction returns the row step of a forward move for the alliance.
// Coordinate 0 is a8, so White advances towards lower coordinates.
func (a Alliance) Direction() int {
	if a == White {
		return -1
	}
	return 1
}

// Opponent returns the other alliance.
func (a Alliance) Opponent() Alliance {
	return a ^ 1
}

// IsWhite returns true for White.
func (a Alliance) IsWhite() bool {
	return a == White
}

// IsBlack returns true for Black.
func (a Alliance) IsBlack() bool {
	return a == Black
}

// PawnStartRow reports whether coordinate c is on the row this alliance's pawns start on.
func (a Alliance) PawnStartRow(c int) bool {
	if a == White {
		return SeventhRow[c]
	}
	return SecondRow[c]
}

// PromotionRow reports whether coordinate c is on the row this alliance's pawns promote on.
func (a Alliance) PromotionRow(c int) bool {
	if a == White {
		return FirstRow[c]
	}
	return EighthRow[c]
}

// String returns the alliance name.
func (a Alliance) String() string {
	switch a {
	case White:
		return "White"
	case Black:
		return "Black"
	default:
		return "NoAlliance"
	}
}

// ChoosePlayer returns white or black depending on the alliance.
// Callers that model players use it to map a side to its player role.
func ChoosePlayer[P any](a Alliance, white, black P) P {
	if a == White {
		return white
	}
	return black
}
