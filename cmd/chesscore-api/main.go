package main

import (
	"flag"
	"log"
	"os"
	"runtime"

	"github.com/hailam/chesscore/internal/api"
	"github.com/hailam/chesscore/internal/perft"
	"github.com/hailam/chesscore/internal/storage"
)

var (
	addr     = flag.String("addr", "", "listen address (default :3000)")
	origins  = flag.String("origins", "*", "allowed CORS origins")
	cacheDir = flag.String("cache", "", "perft cache directory (default: platform cache dir)")
	noCache  = flag.Bool("nocache", false, "disable the perft cache")
	workers  = flag.Int("workers", runtime.NumCPU(), "goroutines used per perft request")
	maxDepth = flag.Int("maxdepth", api.DefaultMaxPerftDepth, "deepest perft a request may ask for")
)

// envOr returns the flag value, falling back to the environment and then def.
func envOr(value, key, def string) string {
	if value != "" {
		return value
	}
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func main() {
	flag.Parse()

	counter := &perft.Counter{Workers: *workers}
	if !*noCache {
		cache, err := storage.Open(envOr(*cacheDir, "CHESSCORE_CACHE", ""))
		if err != nil {
			log.Printf("Warning: perft cache disabled: %v", err)
		} else {
			defer cache.Close()
			counter.Cache = cache
		}
	}

	app := api.New(api.Config{
		Counter:       counter,
		AllowOrigins:  *origins,
		MaxPerftDepth: *maxDepth,
	})

	listen := envOr(*addr, "CHESSCORE_ADDR", ":3000")
	log.Printf("chesscore api listening on %s", listen)
	log.Fatal(app.Listen(listen))
}
