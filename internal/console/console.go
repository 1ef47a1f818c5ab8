// Package console implements a line-oriented front end to the rules core.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"slices"
	"strconv"
	"strings"
	"time"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/perft"
)

// Console reads commands from one stream and writes results to another.
type Console struct {
	in      io.Reader
	out     io.Writer
	counter *perft.Counter

	// Every board reached so far; the last one is current. Boards are
	// immutable, so undo only drops the tail.
	history []*board.Board
}

// New creates a console positioned at the standard starting board.
func New(in io.Reader, out io.Writer, counter *perft.Counter) *Console {
	if counter == nil {
		counter = perft.NewCounter()
	}
	return &Console{
		in:      in,
		out:     out,
		counter: counter,
		history: []*board.Board{board.NewStandardBoard()},
	}
}

// Board returns the current board.
func (c *Console) Board() *board.Board {
	return c.history[len(c.history)-1]
}

// SetBoard replaces the history with a single board.
func (c *Console) SetBoard(b *board.Board) {
	c.history = []*board.Board{b}
}

// Run processes commands until "quit", end of input or cancellation of ctx.
func (c *Console) Run(ctx context.Context) error {
	scanner := bufio.NewScanner(c.in)

	for scanner.Scan() {
		if err := ctx.Err(); err != nil {
			return err
		}

		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}

		parts := strings.Fields(line)
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "new":
			c.SetBoard(board.NewStandardBoard())
			c.handleShow()
		case "fen":
			c.handleFEN(args)
		case "show", "d":
			c.handleShow()
		case "moves":
			c.handleMoves()
		case "move":
			c.handleMove(args)
		case "undo":
			c.handleUndo()
		case "perft":
			c.handlePerft(ctx, args)
		case "divide":
			c.handleDivide(ctx, args)
		case "help":
			c.handleHelp()
		case "quit":
			return nil
		default:
			fmt.Fprintf(c.out, "unknown command: %s (try \"help\")\n", cmd)
		}
	}
	return scanner.Err()
}

func (c *Console) handleHelp() {
	fmt.Fprintln(c.out, "commands:")
	fmt.Fprintln(c.out, "  new            reset to the starting position")
	fmt.Fprintln(c.out, "  fen <FEN>      load a position")
	fmt.Fprintln(c.out, "  show           print the board")
	fmt.Fprintln(c.out, "  moves          list moves for the side to move")
	fmt.Fprintln(c.out, "  move <uci>     play a move, e.g. move e2e4")
	fmt.Fprintln(c.out, "  undo           take back the last move")
	fmt.Fprintln(c.out, "  perft <depth>  count leaf nodes")
	fmt.Fprintln(c.out, "  divide <depth> count leaf nodes per root move")
	fmt.Fprintln(c.out, "  quit           exit")
}

func (c *Console) handleFEN(args []string) {
	if len(args) == 0 {
		fmt.Fprintln(c.out, c.Board().FEN())
		return
	}

	b, err := board.ParseFEN(strings.Join(args, " "))
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	c.SetBoard(b)
	c.handleShow()
}

func (c *Console) handleShow() {
	b := c.Board()
	fmt.Fprint(c.out, b.String())
	fmt.Fprintf(c.out, "FEN: %s\n", b.FEN())
	fmt.Fprintf(c.out, "Side to move: %s\n", b.NextMoveMaker())
}

func (c *Console) handleMoves() {
	moves := c.Board().CurrentPlayerMoves()
	labels := make([]string, 0, len(moves))
	for _, m := range moves {
		labels = append(labels, fmt.Sprintf("%s %s", m.UCI(), m))
	}
	slices.Sort(labels)

	for _, l := range labels {
		fmt.Fprintln(c.out, l)
	}
	fmt.Fprintf(c.out, "%d moves\n", len(moves))
}

func (c *Console) handleMove(args []string) {
	if len(args) != 1 {
		fmt.Fprintln(c.out, "usage: move <uci>")
		return
	}

	m, err := board.CreateMoveFromUCI(c.Board(), args[0])
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	if m.IsNull() {
		fmt.Fprintf(c.out, "no such move: %s\n", args[0])
		return
	}

	next, err := m.Execute()
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	c.history = append(c.history, next)
	fmt.Fprintf(c.out, "played %s\n", m)
}

func (c *Console) handleUndo() {
	if len(c.history) == 1 {
		fmt.Fprintln(c.out, "nothing to undo")
		return
	}
	c.history = c.history[:len(c.history)-1]
	fmt.Fprintf(c.out, "Side to move: %s\n", c.Board().NextMoveMaker())
}

func parseDepth(args []string) (int, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("missing depth")
	}
	depth, err := strconv.Atoi(args[0])
	if err != nil || depth < 0 {
		return 0, fmt.Errorf("invalid depth: %q", args[0])
	}
	return depth, nil
}

func (c *Console) handlePerft(ctx context.Context, args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}

	start := time.Now()
	nodes, err := c.counter.Count(ctx, c.Board(), depth)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	elapsed := time.Since(start)

	fmt.Fprintf(c.out, "Nodes: %d\n", nodes)
	fmt.Fprintf(c.out, "Time: %v\n", elapsed)
	if elapsed > 0 {
		nps := float64(nodes) / elapsed.Seconds()
		fmt.Fprintf(c.out, "NPS: %.0f\n", nps)
	}
}

func (c *Console) handleDivide(ctx context.Context, args []string) {
	depth, err := parseDepth(args)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}
	if depth == 0 {
		fmt.Fprintln(c.out, "error: divide needs a depth of at least 1")
		return
	}

	divide, err := c.counter.Divide(ctx, c.Board(), depth)
	if err != nil {
		fmt.Fprintf(c.out, "error: %v\n", err)
		return
	}

	moves := make([]string, 0, len(divide))
	for m := range divide {
		moves = append(moves, m)
	}
	slices.Sort(moves)

	var total uint64
	for _, m := range moves {
		fmt.Fprintf(c.out, "%s: %d\n", m, divide[m])
		total += divide[m]
	}
	fmt.Fprintf(c.out, "Total: %d\n", total)
}
