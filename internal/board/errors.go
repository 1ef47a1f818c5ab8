package board

import "errors"

var (
	ErrNullMove          = errors.New("cannot execute the null move")
	ErrBuilderConsumed   = errors.New("builder already consumed")
	ErrInvalidEnPassant  = errors.New("en passant pawn is not on the board")
	ErrDuplicateKing     = errors.New("alliance has more than one king")
	ErrInvalidCoordinate = errors.New("invalid tile coordinate")
	ErrInvalidFEN        = errors.New("invalid FEN")
)
