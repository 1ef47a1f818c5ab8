package main

import (
	"errors"
	"testing"

	"github.com/hailam/chesscore/internal/board"
)

func TestStartBoard(t *testing.T) {
	b, err := startBoard("")
	if err != nil {
		t.Fatalf("startBoard: %v", err)
	}
	if b.FEN() != board.StartFEN {
		t.Errorf("default board = %q, want %q", b.FEN(), board.StartFEN)
	}

	fen := "4k3/8/8/8/8/8/8/4K2R w K - 0 1"
	b, err = startBoard(fen)
	if err != nil {
		t.Fatalf("startBoard(%q): %v", fen, err)
	}
	if b.FEN() != fen {
		t.Errorf("board = %q, want %q", b.FEN(), fen)
	}

	if _, err := startBoard("not a fen"); !errors.Is(err, board.ErrInvalidFEN) {
		t.Errorf("error = %v, want ErrInvalidFEN", err)
	}
}
