package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sync"
	"time"

	"github.com/krisalay/pagesim"
	"github.com/krisalay/pagesim/config"
	"github.com/krisalay/pagesim/engine"
	"github.com/krisalay/pagesim/eviction"
	"github.com/krisalay/pagesim/reference"
	"github.com/krisalay/pagesim/types"
)

// ================= BENCHMARK =================

func main() {
	ctx := context.Background()

	fmt.Println("\n================ PAGE REPLACEMENT BENCHMARK =================")

	// ---------------- Benchmark Config ----------------
	const (
		frames     = 64
		refLength  = 100000
		maxPage    = 512
		goroutines = 8
		runsPerG   = 20
	)

	fmt.Println("CONFIG")
	fmt.Println("---------------------------------")
	fmt.Println("Frames        :", frames)
	fmt.Println("Reference Len :", refLength)
	fmt.Println("Max Page      :", maxPage)
	fmt.Println("Goroutines    :", goroutines)
	fmt.Println("Runs/Goroutine:", runsPerG)
	fmt.Println("---------------------------------")

	// ---------------- Reference String ----------------
	refs, err := reference.RandomLoader{Length: refLength, MaxPage: maxPage, Seed: 42}.Load(ctx)
	if err != nil {
		fmt.Println("failed to generate references:", err)
		os.Exit(1)
	}

	// ---------------- Simulator ----------------
	cfg := config.Default()
	cfg.Frames = frames
	cfg.Parallel = true

	counters := &engine.Counters{}
	sim, err := pagesim.New(cfg,
		engine.WithMetrics(counters),
		engine.WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil))),
	)
	if err != nil {
		fmt.Println("failed to create simulator:", err)
		os.Exit(1)
	}
	defer sim.Close()

	// ---------------- Warmup ----------------
	fmt.Println("Warming up...")
	cmp, err := sim.Compare(ctx, refs)
	if err != nil {
		fmt.Println("warmup failed:", err)
		os.Exit(1)
	}
	for _, r := range cmp.Results {
		fmt.Printf("  %-8s faults=%-7d efficiency=%s\n", r.Result.Policy, r.Result.Faults, r.EfficiencyLabel())
	}
	fmt.Println("Warmup complete.")

	// ---------------- Load Test ----------------
	fmt.Println("\n================ RESULTS =================")
	for _, pt := range eviction.AllPolicyTypes() {
		duration := runConcurrent(ctx, sim, pt, refs, goroutines, runsPerG)
		totalRefs := goroutines * runsPerG * len(refs)

		fmt.Printf("%-8s Total Time : %v\n", pt, duration)
		fmt.Printf("%-8s Throughput : %.2f refs/sec\n", pt, float64(totalRefs)/duration.Seconds())
	}
	fmt.Println("=========================================")
	fmt.Println("Metrics :", counters.String())
}

func runConcurrent(ctx context.Context, sim *pagesim.Simulator, pt eviction.PolicyType, refs []types.Page, goroutines, runs int) time.Duration {
	start := time.Now()

	wg := sync.WaitGroup{}
	wg.Add(goroutines)
	for i := 0; i < goroutines; i++ {
		go func() {
			defer wg.Done()
			for j := 0; j < runs; j++ {
				if _, err := sim.Run(ctx, pt, refs); err != nil {
					fmt.Println("run failed:", err)
					return
				}
			}
		}()
	}
	wg.Wait()

	return time.Since(start)
}
