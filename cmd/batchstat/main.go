package main

import (
	"flag"
	"fmt"
	"math/rand"
	"os"
	"strings"
	"time"

	"github.com/djeday123/nmtdata/dataset"
	"github.com/djeday123/nmtdata/vocab"
)

// ============================================================================
// batchstat — Load parallel corpora and report one epoch of batching
//
// Runs the full pipeline (load, shuffle, shard, sort, pack, shuffle batches)
// without training anything, so batching parameters can be tuned up front.
//
// Usage:
//   go run cmd/batchstat/main.go -corpora train.en,train.de -vocabs vocab.en,vocab.de
//   go run cmd/batchstat/main.go -corpora train.en,train.de -vocabs vocab.en,vocab.de -policy tokens -capacity 4096
// ============================================================================

func main() {
	corpora := flag.String("corpora", "", "Comma-separated corpus files, one per side")
	vocabs := flag.String("vocabs", "", "Comma-separated vocabulary files, one per side")
	shardSize := flag.Int("shard", 500000, "Examples per shard (0 = single shard)")
	capacity := flag.Int("capacity", 4096, "Batch capacity")
	policy := flag.String("policy", "tokens", "Capacity policy: sentences or tokens")
	maxLength := flag.Int("max-length", 100, "Drop examples longer than this on any side (0 = keep all)")
	seed := flag.Int64("seed", 0, "Random seed (0 = time-based)")
	verbose := flag.Bool("v", false, "Verbose (per-shard statistics)")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `batchstat — Report one epoch of dynamic batching over parallel corpora

Usage:
  go run cmd/batchstat/main.go -corpora train.en,train.de -vocabs vocab.en,vocab.de

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *corpora == "" || *vocabs == "" {
		flag.Usage()
		os.Exit(1)
	}
	paths := strings.Split(*corpora, ",")
	vocPaths := strings.Split(*vocabs, ",")
	if len(paths) != len(vocPaths) {
		fmt.Fprintf(os.Stderr, "Error: %d corpora but %d vocabularies\n", len(paths), len(vocPaths))
		os.Exit(1)
	}

	vocs := make([]*vocab.Vocab, len(vocPaths))
	for i, p := range vocPaths {
		v, err := vocab.Load(p)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		vocs[i] = v
	}

	cfg := dataset.Config{
		ShardSize:      *shardSize,
		BatchCapacity:  *capacity,
		CapacityPolicy: *policy,
		MaxLength:      *maxLength,
		Verbose:        *verbose,
	}

	start := time.Now()
	ds, err := dataset.New(paths, vocs, cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	loadTime := time.Since(start)

	fmt.Printf("=== Corpus ===\n")
	for _, s := range ds.Stats() {
		fmt.Printf("%-30s %8d lines %10d tokens %8d OOVs (%.2f%%)\n",
			s.Path, s.Examples, s.Tokens, s.Unknown, 100*s.UnknownRate())
	}
	fmt.Printf("Loaded in %v\n\n", loadTime.Truncate(time.Millisecond))

	if *seed == 0 {
		*seed = time.Now().UnixNano()
	}
	rng := rand.New(rand.NewSource(*seed))

	start = time.Now()
	epoch, err := ds.Epoch(rng)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	batches := 0
	examples := 0
	padded := 0 // token slots including padding, across all sides
	used := 0   // token slots actually occupied
	minBatch, maxBatch := -1, 0
	for {
		b, ok := epoch.Next()
		if !ok {
			break
		}
		batches++
		examples += b.Size()
		if minBatch < 0 || b.Size() < minBatch {
			minBatch = b.Size()
		}
		maxBatch = max(maxBatch, b.Size())
		for _, seqs := range b.Sides {
			width := 0
			for _, seq := range seqs {
				width = max(width, len(seq))
				used += len(seq)
			}
			padded += width * len(seqs)
		}
	}
	epochTime := time.Since(start)

	fmt.Printf("=== Epoch (seed %d) ===\n", *seed)
	fmt.Printf("Batches:   %d\n", batches)
	fmt.Printf("Examples:  %d of %d (%d dropped by max-length)\n", examples, ds.Len(), ds.Len()-examples)
	if batches > 0 {
		fmt.Printf("Batch size: min %d, avg %.1f, max %d\n", minBatch, float64(examples)/float64(batches), maxBatch)
	}
	if padded > 0 {
		fmt.Printf("Padding:   %.1f%% of %d token slots\n", 100*float64(padded-used)/float64(padded), padded)
	}
	fmt.Printf("Time:      %v\n", epochTime.Truncate(time.Millisecond))
}
