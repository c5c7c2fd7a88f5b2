package benchmark

import (
	"fmt"
	"math"
	"os"
	"runtime/pprof"
	"strings"
	"sync/atomic"
	"time"

	pipe "github.com/fogfactory/signalpipe"
	"github.com/panjf2000/ants/v2"
	"github.com/samber/lo"
)

// Config defines the shape of the profiled pipe graph.
type Config struct {
	Fanout   int // Number of pipes extending each pipe
	Depth    int // Number of extension levels under the root pipe
	Sends    int // Number of signals sent into the root pipe
	PoolSize int // Number of concurrent senders. 0 sends from the current goroutine
}

// Report defines the outcome of a profiling run.
type Report struct {
	File      string // Profile file name
	Delivered int64  // Signals counted by the leaves
	Expected  int64  // Sends*Fanout^Depth
	Duration  time.Duration
}

// Profile generates a profile file. It will be outputted as pipe_{date}_f{fanout}_d{depth}_p{poolSize}.prof, and its
// name is returned in the report.
//
// The root pipe is extended Fanout times on each of the Depth levels, each extension adding one to the value. Every
// leaf counts what it receives, so a run delivers Sends*Fanout^Depth signals.
//
// use pprof to read the file (go install github.com/google/pprof@latest).
func Profile(cfg Config, logger pipe.Logger) (Report, error) {
	// Profile file
	f, err := os.Create(fmt.Sprintf("pipe_%s_f%d_d%d_p%d.prof",
		strings.ReplaceAll(time.Now().Truncate(time.Second).Format(time.DateTime), " ", "-"),
		cfg.Fanout, cfg.Depth, cfg.PoolSize))
	if err != nil {
		return Report{}, err
	}
	defer f.Close()

	var pool *ants.Pool
	if cfg.PoolSize > 0 {
		if pool, err = ants.NewPool(cfg.PoolSize); err != nil {
			return Report{}, err
		}
		defer pool.Release()
	}

	// Init graph
	var delivered atomic.Int64
	root := pipe.New(pipe.Log[int](logger, "profile signal"))
	build(root, cfg.Fanout, cfg.Depth, &delivered)

	expected := int64(cfg.Sends) * int64(math.Pow(float64(cfg.Fanout), float64(cfg.Depth)))
	logger.Debug("profile graph built", "fanout", cfg.Fanout, "depth", cfg.Depth, "expected", expected)

	// Start profiling
	start := time.Now()
	if err := pprof.StartCPUProfile(f); err != nil {
		return Report{}, err
	}
	err = pipe.FeedPool(pool, lo.SliceToChannel(cfg.PoolSize, lo.Range(cfg.Sends)), root.Send)
	pprof.StopCPUProfile()
	if err != nil {
		return Report{}, err
	}

	// Call pprof on a file
	// pprof -http=:8080 $file
	return Report{
		File:      f.Name(),
		Delivered: delivered.Load(),
		Expected:  expected,
		Duration:  time.Since(start),
	}, nil
}

// build extends p fanout times, recursively, and counts signals reaching the leaves.
func build(p *pipe.Pipe[int], fanout, depth int, delivered *atomic.Int64) {
	if depth == 0 {
		p.Connect(func(args ...int) { delivered.Add(1) })
		return
	}
	for i := 0; i < fanout; i++ {
		build(p.Extend(pipe.Map(func(v int) int { return v + 1 })), fanout, depth-1, delivered)
	}
}
