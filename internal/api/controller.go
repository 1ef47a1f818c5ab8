package api

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"log"
	"slices"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/websocket/v2"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
)

type controller struct {
	counter  *perft.Counter
	maxDepth int
}

func newController(counter *perft.Counter, maxDepth int) *controller {
	return &controller{counter: counter, maxDepth: maxDepth}
}

type moveView struct {
	UCI   string `json:"uci"`
	Label string `json:"label"`
	Kind  string `json:"kind"`
}

type boardView struct {
	FEN        string     `json:"fen"`
	Board      string     `json:"board"`
	SideToMove string     `json:"sideToMove"`
	Label      string     `json:"label,omitempty"`
	Moves      []moveView `json:"moves,omitempty"`
}

type moveRequest struct {
	FEN  string `json:"fen"`
	Move string `json:"move"`
}

type divideRequest struct {
	FEN   string `json:"fen"`
	Depth int    `json:"depth"`
}

type divideMessage struct {
	Type  string `json:"type"`
	Move  string `json:"move,omitempty"`
	Nodes uint64 `json:"nodes"`
}

type errorMessage struct {
	Type  string `json:"type"`
	Error string `json:"error"`
}

func newBoardView(b *board.Board) boardView {
	return boardView{
		FEN:        b.FEN(),
		Board:      b.String(),
		SideToMove: b.NextMoveMaker().String(),
	}
}

// loadBoard parses fen, or returns the starting board when it is empty.
func loadBoard(fen string) (*board.Board, error) {
	if fen == "" {
		return board.NewStandardBoard(), nil
	}
	b, err := board.ParseFEN(fen)
	if err != nil {
		return nil, fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	return b, nil
}

func (ctrl *controller) checkDepth(depth int) error {
	if depth < 0 || depth > ctrl.maxDepth {
		return fiber.NewError(fiber.StatusBadRequest,
			fmt.Sprintf("depth must be between 0 and %d", ctrl.maxDepth))
	}
	return nil
}

// GetBoard describes a position and the moves available to its side to move.
func (ctrl *controller) GetBoard(c *fiber.Ctx) error {
	b, err := loadBoard(c.Query("fen"))
	if err != nil {
		return err
	}

	view := newBoardView(b)
	for _, m := range b.CurrentPlayerMoves() {
		view.Moves = append(view.Moves, moveView{
			UCI:   m.UCI(),
			Label: m.String(),
			Kind:  m.Kind().String(),
		})
	}
	slices.SortFunc(view.Moves, func(x, y moveView) int {
		return cmp.Compare(x.UCI, y.UCI)
	})
	return c.JSON(view)
}

// PostMove plays one move and returns the resulting position.
func (ctrl *controller) PostMove(c *fiber.Ctx) error {
	var req moveRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}

	b, err := loadBoard(req.FEN)
	if err != nil {
		return err
	}

	m, err := board.CreateMoveFromUCI(b, req.Move)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if m.IsNull() {
		return fiber.NewError(fiber.StatusUnprocessableEntity,
			fmt.Sprintf("no %s move %s", b.NextMoveMaker(), req.Move))
	}

	next, err := m.Execute()
	if err != nil {
		return err
	}

	view := newBoardView(next)
	view.Label = m.String()
	return c.JSON(view)
}

// GetPerft counts leaf nodes below a position.
func (ctrl *controller) GetPerft(c *fiber.Ctx) error {
	b, err := loadBoard(c.Query("fen"))
	if err != nil {
		return err
	}

	depth := c.QueryInt("depth", 1)
	if err := ctrl.checkDepth(depth); err != nil {
		return err
	}

	nodes, err := ctrl.counter.Count(c.UserContext(), b, depth)
	if err != nil {
		return err
	}

	return c.JSON(fiber.Map{
		"depth": depth,
		"nodes": nodes,
	})
}

// StreamDivide answers each {fen, depth} request with one message per root
// move followed by the total.
func (ctrl *controller) StreamDivide(c *websocket.Conn) {
	defer c.Close()

	for {
		var req divideRequest
		if err := c.ReadJSON(&req); err != nil {
			if !websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Printf("divide: read error: %v", err)
			}
			return
		}

		if err := ctrl.divide(c, req); err != nil {
			if err := c.WriteJSON(errorMessage{Type: "error", Error: err.Error()}); err != nil {
				log.Printf("divide: write error: %v", err)
				return
			}
		}
	}
}

func (ctrl *controller) divide(c *websocket.Conn, req divideRequest) error {
	b, err := loadBoard(req.FEN)
	if err != nil {
		return err
	}
	if err := ctrl.checkDepth(req.Depth); err != nil {
		return err
	}
	if req.Depth == 0 {
		return errors.New("depth must be at least 1")
	}

	divide, err := ctrl.counter.Divide(context.Background(), b, req.Depth)
	if err != nil {
		return err
	}

	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	slices.Sort(moves)

	var total uint64
	for _, m := range moves {
		total += divide[m]
		if err := c.WriteJSON(divideMessage{Type: "move", Move: m, Nodes: divide[m]}); err != nil {
			return err
		}
	}
	return c.WriteJSON(divideMessage{Type: "total", Nodes: total})
}
