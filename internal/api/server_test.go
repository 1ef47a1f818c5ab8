package api

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/gofiber/fiber/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
)

func newTestApp() *fiber.App {
	return New(Config{
		Counter:   &perft.Counter{Workers: 2},
		LogOutput: io.Discard,
	})
}

func do(t *testing.T, app *fiber.App, req *http.Request, wantStatus int, out any) {
	t.Helper()
	resp, err := app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		t.Fatalf("reading body: %v", err)
	}
	if resp.StatusCode != wantStatus {
		t.Fatalf("status = %d, want %d (body %s)", resp.StatusCode, wantStatus, body)
	}
	if out != nil {
		if err := json.Unmarshal(body, out); err != nil {
			t.Fatalf("decoding %s: %v", body, err)
		}
	}
}

func postMove(fen, move string) *http.Request {
	body, _ := json.Marshal(moveRequest{FEN: fen, Move: move})
	req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader(string(body)))
	req.Header.Set("Content-Type", "application/json")
	return req
}

func TestGetBoardStart(t *testing.T) {
	app := newTestApp()

	var view boardView
	do(t, app, httptest.NewRequest(http.MethodGet, "/api/board", nil), fiber.StatusOK, &view)

	if view.FEN != board.StartFEN {
		t.Errorf("fen = %q", view.FEN)
	}
	if view.SideToMove != "White" {
		t.Errorf("sideToMove = %q", view.SideToMove)
	}
	if len(view.Moves) != 20 {
		t.Fatalf("%d moves, want 20", len(view.Moves))
	}

	found := false
	for _, m := range view.Moves {
		if m.UCI == "e2e4" {
			found = true
			if m.Label != "e4" || m.Kind != "PawnJump" {
				t.Errorf("e2e4 = %+v", m)
			}
		}
	}
	if !found {
		t.Error("e2e4 missing")
	}
}

func TestGetBoardInvalidFEN(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodGet, "/api/board?fen="+url.QueryEscape("8/8/8 w - -"), nil)

	var body map[string]string
	do(t, app, req, fiber.StatusBadRequest, &body)
	if body["error"] == "" {
		t.Error("error message missing")
	}
}

func TestPostMove(t *testing.T) {
	app := newTestApp()

	var view boardView
	do(t, app, postMove("", "g1f3"), fiber.StatusOK, &view)

	if view.Label != "Nf3" {
		t.Errorf("label = %q, want Nf3", view.Label)
	}
	if view.SideToMove != "Black" {
		t.Errorf("sideToMove = %q, want Black", view.SideToMove)
	}
	want := "rnbqkbnr/pppppppp/8/8/8/5N2/PPPPPPPP/RNBQKB1R b KQkq - 0 1"
	if view.FEN != want {
		t.Errorf("fen = %q, want %q", view.FEN, want)
	}
}

func TestPostMoveErrors(t *testing.T) {
	app := newTestApp()

	tests := []struct {
		name   string
		fen    string
		move   string
		status int
	}{
		{"bad syntax", "", "e2", fiber.StatusBadRequest},
		{"bad square", "", "e2e9", fiber.StatusBadRequest},
		{"bad fen", "nonsense", "e2e4", fiber.StatusBadRequest},
		{"no such move", "", "e2e5", fiber.StatusUnprocessableEntity},
		{"out of turn", "", "e7e5", fiber.StatusUnprocessableEntity},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			do(t, app, postMove(tc.fen, tc.move), tc.status, nil)
		})
	}
}

func TestPostMoveBadBody(t *testing.T) {
	app := newTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/move", strings.NewReader("{"))
	req.Header.Set("Content-Type", "application/json")
	do(t, app, req, fiber.StatusBadRequest, nil)
}

func TestGetPerft(t *testing.T) {
	app := newTestApp()

	var body struct {
		Depth int    `json:"depth"`
		Nodes uint64 `json:"nodes"`
	}
	do(t, app, httptest.NewRequest(http.MethodGet, "/api/perft?depth=2", nil), fiber.StatusOK, &body)
	if body.Nodes != 400 {
		t.Errorf("nodes = %d, want 400", body.Nodes)
	}

	do(t, app, httptest.NewRequest(http.MethodGet, "/api/perft?depth=9", nil), fiber.StatusBadRequest, nil)
}

func TestRequestID(t *testing.T) {
	app := newTestApp()

	resp, err := app.Test(httptest.NewRequest(http.MethodGet, "/api/perft?depth=0", nil), -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if resp.Header.Get(fiber.HeaderXRequestID) == "" {
		t.Error("response has no request id")
	}

	req := httptest.NewRequest(http.MethodGet, "/api/perft?depth=0", nil)
	req.Header.Set(fiber.HeaderXRequestID, "abc")
	resp, err = app.Test(req, -1)
	if err != nil {
		t.Fatalf("app.Test: %v", err)
	}
	if got := resp.Header.Get(fiber.HeaderXRequestID); got != "abc" {
		t.Errorf("request id = %q, want abc", got)
	}
}

func TestWebSocketRequiresUpgrade(t *testing.T) {
	app := newTestApp()
	do(t, app, httptest.NewRequest(http.MethodGet, "/ws/divide", nil), fiber.StatusUpgradeRequired, nil)
}
