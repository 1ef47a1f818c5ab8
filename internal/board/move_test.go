package board

import (
	"errors"
	"testing"
)

// play applies coordinate moves from b and fails on the first one that does not exist.
func play(t *testing.T, b *Board, moves ...string) *Board {
	t.Helper()
	for _, s := range moves {
		m, err := CreateMoveFromUCI(b, s)
		if err != nil {
			t.Fatalf("CreateMoveFromUCI(%q): %v", s, err)
		}
		if m.IsNull() {
			t.Fatalf("%s is not a move on\n%s", s, b)
		}
		next, err := m.Execute()
		if err != nil {
			t.Fatalf("Execute(%s): %v", s, err)
		}
		b = next
	}
	return b
}

func TestNullMoveNeverExecutes(t *testing.T) {
	b, err := NullMove.Execute()
	if !errors.Is(err, ErrNullMove) {
		t.Errorf("error = %v, want ErrNullMove", err)
	}
	if b != nil {
		t.Error("NullMove produced a board")
	}

	m := CreateMove(NewStandardBoard(), 52, 20)
	if !m.IsNull() {
		t.Fatalf("e2e6 = %v, want NullMove", m)
	}
	if _, err := m.Execute(); !errors.Is(err, ErrNullMove) {
		t.Errorf("executing a failed lookup: %v", err)
	}
	if m.String() != "0000" || m.CurrentCoordinate() != NoCoordinate {
		t.Errorf("NullMove label/origin = %q/%d", m, m.CurrentCoordinate())
	}
}

func TestExecuteEveryGeneratedMove(t *testing.T) {
	fens := []string{
		StartFEN,
		"r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 w kq - 0 1",
		"r3k2r/Pppp1ppp/1b3nbN/nP6/BBP1P3/q4N2/Pp1P2PP/R2Q1RK1 b kq - 0 1",
		"rnbqkbnr/ppp1p1pp/8/3pPp2/8/8/PPPP1PPP/RNBQKBNR w KQkq f6 0 1",
	}

	for _, fen := range fens {
		b := mustParseFEN(t, fen)
		mover := b.NextMoveMaker()
		for _, m := range b.CurrentPlayerMoves() {
			next, err := m.Execute()
			if err != nil {
				t.Fatalf("%s on %q: %v", m.UCI(), fen, err)
			}

			if next.NextMoveMaker() != mover.Opponent() {
				t.Errorf("%s: side to move did not flip", m.UCI())
			}

			p, ok := next.Tile(m.DestinationCoordinate()).Piece()
			if !ok {
				t.Fatalf("%s: destination is empty", m.UCI())
			}
			wantKind := m.MovedPiece().Type()
			if promo, ok := m.Promotion(); ok {
				wantKind = promo
			}
			if p.Type() != wantKind || p.Alliance() != mover || p.IsFirstMove() || p.Position() != m.DestinationCoordinate() {
				t.Errorf("%s: destination holds %v", m.UCI(), p)
			}

			if next.Tile(m.CurrentCoordinate()).IsOccupied() {
				t.Errorf("%s: origin still occupied", m.UCI())
			}

			wantOpp := len(b.ActivePieces(mover.Opponent()))
			if m.IsAttack() {
				wantOpp--
			}
			if got := len(next.ActivePieces(mover.Opponent())); got != wantOpp {
				t.Errorf("%s: opponent has %d pieces, want %d", m.UCI(), got, wantOpp)
			}
			if got, want := len(next.ActivePieces(mover)), len(b.ActivePieces(mover)); got != want {
				t.Errorf("%s: mover has %d pieces, want %d", m.UCI(), got, want)
			}

			_, hasEP := next.EnPassantPawn()
			if hasEP != (m.Kind() == KindPawnJump) {
				t.Errorf("%s: en passant pawn recorded = %v", m.UCI(), hasEP)
			}
		}
	}
}

func TestExecuteLeavesSourceBoardUntouched(t *testing.T) {
	b := NewStandardBoard()
	before := b.FEN()
	hash := b.Hash()
	for _, m := range b.CurrentPlayerMoves() {
		if _, err := m.Execute(); err != nil {
			t.Fatalf("Execute: %v", err)
		}
		if m.Board() != b {
			t.Errorf("%s does not reference its source board", m.UCI())
		}
	}
	if b.FEN() != before || b.Hash() != hash {
		t.Error("executing moves changed the source board")
	}
}

func TestEnPassant(t *testing.T) {
	b := play(t, NewStandardBoard(), "e2e4", "a7a6", "e4e5", "d7d5")

	ep, ok := b.EnPassantPawn()
	if !ok || ep.Position() != 27 || ep.Alliance() != Black {
		t.Fatalf("en passant pawn = %v on %d (ok %v)", ep, ep.Position(), ok)
	}

	m, err := CreateMoveFromUCI(b, "e5d6")
	if err != nil {
		t.Fatal(err)
	}
	if m.Kind() != KindPawnEnPassantAttack {
		t.Fatalf("e5d6 = %v, want PawnEnPassantAttackMove", m.Kind())
	}
	if m.String() != "exd6" {
		t.Errorf("label = %q, want exd6", m)
	}

	next, err := m.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	if next.Tile(27).IsOccupied() {
		t.Error("captured pawn is still on d5")
	}
	if p, _ := next.Tile(19).Piece(); p.Type() != Pawn || p.Alliance() != White {
		t.Errorf("d6 holds %v", p)
	}
	if n := len(next.ActivePieces(Black)); n != 15 {
		t.Errorf("black has %d pieces, want 15", n)
	}
	if _, ok := next.EnPassantPawn(); ok {
		t.Error("en passant pawn survived a capture")
	}
}

func TestEnPassantOnlyRightAfterTheJump(t *testing.T) {
	b := play(t, NewStandardBoard(), "e2e4", "a7a6", "e4e5", "d7d5", "b1c3", "a6a5")
	if m, _ := CreateMoveFromUCI(b, "e5d6"); !m.IsNull() {
		t.Errorf("late en passant generated: %v", m.Kind())
	}
}

func TestPromotion(t *testing.T) {
	pawn := NewMovedPiece(Pawn, White, 8)
	b := buildBoard(t, White, pawn, NewMovedPiece(King, White, 60), NewMovedPiece(King, Black, 4), NewMovedPiece(Rook, Black, 1))

	push := CreateMove(b, 8, 0)
	if promo, ok := push.Promotion(); !ok || promo != Queen {
		t.Fatalf("a7a8 promotion = %v, %v", promo, ok)
	}
	if push.String() != "a8=Q" || push.UCI() != "a7a8q" {
		t.Errorf("labels = %q/%q", push, push.UCI())
	}

	capture := CreateMove(b, 8, 1)
	if capture.Kind() != KindPawnAttack || capture.String() != "axb8=Q" {
		t.Errorf("a7xb8 = %v %q", capture.Kind(), capture)
	}

	next, err := capture.Execute()
	if err != nil {
		t.Fatalf("Execute: %v", err)
	}
	q, _ := next.Tile(1).Piece()
	if q.Type() != Queen || q.Alliance() != White {
		t.Errorf("b8 holds %v, want Q", q)
	}
	if m, err := CreateMoveFromUCI(b, "a7a8n"); err == nil {
		t.Errorf("underpromotion accepted: %v", m)
	}
}

func TestBlackPromotion(t *testing.T) {
	pawn := NewMovedPiece(Pawn, Black, 55)
	b := buildBoard(t, Black, pawn, NewMovedPiece(King, White, 56), NewMovedPiece(King, Black, 4))
	m := CreateMove(b, 55, 63)
	if promo, ok := m.Promotion(); !ok || promo != Queen {
		t.Fatalf("h2h1 promotion = %v, %v", promo, ok)
	}
	next, err := m.Execute()
	if err != nil {
		t.Fatal(err)
	}
	if p, _ := next.Tile(63).Piece(); p.String() != "q" {
		t.Errorf("h1 holds %q, want q", p)
	}
}

func TestMoveEquality(t *testing.T) {
	b := NewStandardBoard()
	mover := NewMovedPiece(Pawn, White, 36)
	victim := NewMovedPiece(Knight, Black, 27)

	attack := NewAttackMove(b, mover, 27, victim)
	pawnAttack := NewPawnAttackMove(b, mover, 27, victim)
	if !attack.Equal(pawnAttack) || attack.Key() != pawnAttack.Key() {
		t.Error("AttackMove and PawnAttackMove with the same fields differ")
	}

	other := NewAttackMove(b, mover, 27, NewMovedPiece(Bishop, Black, 27))
	if attack.Equal(other) {
		t.Error("different captured pieces compare equal")
	}

	major := NewMajorMove(b, mover, 27)
	if major.Equal(attack) || attack.Equal(major) {
		t.Error("a non-capture equals a capture")
	}

	// The source board is not part of the identity.
	elsewhere := NewMajorMove(mustParseFEN(t, "4k3/8/8/8/8/8/8/4K3 w - - 0 1"), mover, 27)
	if !major.Equal(elsewhere) {
		t.Error("moves from different boards with the same fields differ")
	}

	seen := map[MoveKey]bool{attack.Key(): true}
	if !seen[pawnAttack.Key()] {
		t.Error("Key is not usable as a map key")
	}
}

func TestMoveLabels(t *testing.T) {
	b := mustParseFEN(t, "r3k2r/p1ppqpb1/bn2pnp1/3PN3/1p2P3/2N2Q1p/PPPBBPPP/R3K2R w KQkq - 0 1")
	tests := []struct {
		uci  string
		want string
	}{
		{"e1g1", "0-0"},
		{"e1c1", "0-0-0"},
		{"c3b1", "Nb1"},
		{"e5f7", "Nxf7"},
		{"a2a3", "a3"},
		{"a2a4", "a4"},
		{"d5e6", "dxe6"},
		{"f3h3", "Qxh3"},
	}

	for _, tc := range tests {
		m, err := CreateMoveFromUCI(b, tc.uci)
		if err != nil {
			t.Fatalf("%s: %v", tc.uci, err)
		}
		if m.IsNull() {
			t.Fatalf("%s not generated", tc.uci)
		}
		if m.String() != tc.want {
			t.Errorf("%s label = %q, want %q", tc.uci, m, tc.want)
		}
		if m.UCI() != tc.uci {
			t.Errorf("UCI() = %q, want %q", m.UCI(), tc.uci)
		}
	}
}

func TestCreateMoveOnlyForSideToMove(t *testing.T) {
	b := NewStandardBoard()
	if m := CreateMove(b, 12, 20); !m.IsNull() {
		t.Errorf("black e7e6 on White's turn = %v", m)
	}
	if m := CreateMove(b, 52, 36); m.Kind() != KindPawnJump {
		t.Errorf("e2e4 = %v, want PawnJump", m.Kind())
	}
	if _, err := CreateMoveFromUCI(b, "e2"); err == nil {
		t.Error("short move string accepted")
	}
	if _, err := CreateMoveFromUCI(b, "z2e4"); !errors.Is(err, ErrInvalidCoordinate) {
		t.Errorf("bad square error = %v", err)
	}
}
