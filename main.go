// chesscore - an interactive console for the chess rules core
package main

import (
	"context"
	"flag"
	"log"
	"os"
	"os/signal"
	"runtime"
	"runtime/pprof"

	"github.com/hailam/chesscore/internal/board"
	"github.com/hailam/chesscore/internal/console"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	fen        = flag.String("fen", "", "start from this FEN instead of the standard position")
	cacheDir   = flag.String("cache", "", "perft cache directory (default: platform cache dir)")
	noCache    = flag.Bool("nocache", false, "disable the perft cache")
	workers    = flag.Int("workers", runtime.NumCPU(), "goroutines used by perft")
	cpuprofile = flag.String("cpuprofile", "", "write cpu profile to file")
)

// startBoard returns the position named by -fen, or the standard one.
func startBoard(fen string) (*board.Board, error) {
	if fen == "" {
		return board.NewStandardBoard(), nil
	}
	return board.ParseFEN(fen)
}

func main() {
	flag.Parse()

	// Before anything that needs cleanup: log.Fatal skips deferred calls.
	start, err := startBoard(*fen)
	if err != nil {
		log.Fatal(err)
	}

	profilePath := *cpuprofile
	if profilePath == "" {
		profilePath = os.Getenv("CPUPROFILE")
	}
	if profilePath != "" {
		f, err := os.Create(profilePath)
		if err != nil {
			log.Fatal("could not create CPU profile: ", err)
		}
		defer f.Close()
		if err := pprof.StartCPUProfile(f); err != nil {
			log.Fatal("could not start CPU profile: ", err)
		}
		defer pprof.StopCPUProfile()
		log.Printf("CPU profiling enabled, writing to %s", profilePath)
	}

	counter := &perft.Counter{Workers: *workers}
	if !*noCache {
		dir := *cacheDir
		if dir == "" {
			dir = os.Getenv("CHESSCORE_CACHE")
		}
		cache, err := storage.Open(dir)
		if err != nil {
			log.Printf("Warning: perft cache disabled: %v", err)
		} else {
			defer cache.Close()
			counter.Cache = cache
		}
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	c := console.New(os.Stdin, os.Stdout, counter)
	c.SetBoard(start)

	if err := c.Run(ctx); err != nil && ctx.Err() == nil {
		log.Printf("console: %v", err)
	}
}
