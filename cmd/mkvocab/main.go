package main

import (
	"bufio"
	"flag"
	"fmt"
	"os"
	"sort"
	"strings"
	"time"

	"github.com/djeday123/nmtdata/vocab"
)

// ============================================================================
// mkvocab — Build a vocabulary file from whitespace-tokenized corpora
//
// Writes the four reserved markers first (<pad> <unk> <bos> <eos>, ids 0-3),
// then tokens by descending frequency, capped at -max-size. The output is
// directly loadable with vocab.Load.
//
// Usage:
//   go run cmd/mkvocab/main.go -input train.en -output vocab.en -max-size 32000
//   go run cmd/mkvocab/main.go -input train.en,extra.en -output vocab.en
// ============================================================================

func main() {
	input := flag.String("input", "", "Comma-separated tokenized corpus files")
	output := flag.String("output", "", "Output vocabulary file")
	maxSize := flag.Int("max-size", 32000, "Maximum vocabulary size, markers included (0 = unlimited)")
	minFreq := flag.Int("min-freq", 1, "Drop tokens seen fewer times than this")

	flag.Usage = func() {
		fmt.Fprintf(os.Stderr, `mkvocab — Build a vocabulary file from tokenized corpora

Usage:
  go run cmd/mkvocab/main.go -input train.en -output vocab.en -max-size 32000

Flags:
`)
		flag.PrintDefaults()
	}
	flag.Parse()

	if *input == "" || *output == "" {
		flag.Usage()
		os.Exit(1)
	}

	start := time.Now()
	counts := make(map[string]int)
	lines := 0
	for _, path := range strings.Split(*input, ",") {
		f, err := os.Open(path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error opening %s: %v\n", path, err)
			os.Exit(1)
		}
		scanner := bufio.NewScanner(f)
		scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
		for scanner.Scan() {
			for _, tok := range strings.Fields(scanner.Text()) {
				counts[tok]++
			}
			lines++
		}
		if err := scanner.Err(); err != nil {
			fmt.Fprintf(os.Stderr, "Error reading %s: %v\n", path, err)
			os.Exit(1)
		}
		f.Close()
	}

	// The markers get their reserved slots up front; a corpus that happens
	// to contain them literally must not duplicate them.
	markers := []string{vocab.PadToken, vocab.UnkToken, vocab.BosToken, vocab.EosToken}
	for _, m := range markers {
		delete(counts, m)
	}

	tokens := make([]string, 0, len(counts))
	for tok, c := range counts {
		if c >= *minFreq {
			tokens = append(tokens, tok)
		}
	}
	// Descending frequency, ties broken alphabetically so output is stable.
	sort.Slice(tokens, func(i, j int) bool {
		if counts[tokens[i]] != counts[tokens[j]] {
			return counts[tokens[i]] > counts[tokens[j]]
		}
		return tokens[i] < tokens[j]
	})
	if *maxSize > 0 {
		limit := max(*maxSize-len(markers), 0)
		if len(tokens) > limit {
			tokens = tokens[:limit]
		}
	}

	out, err := os.Create(*output)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error creating %s: %v\n", *output, err)
		os.Exit(1)
	}
	defer out.Close()
	writer := bufio.NewWriter(out)
	defer writer.Flush()

	for _, m := range markers {
		fmt.Fprintln(writer, m)
	}
	for _, tok := range tokens {
		fmt.Fprintln(writer, tok)
	}

	fmt.Printf("=== Done ===\n")
	fmt.Printf("Lines:   %d\n", lines)
	fmt.Printf("Types:   %d distinct tokens\n", len(counts))
	fmt.Printf("Vocab:   %d entries (markers included) -> %s\n", len(tokens)+len(markers), *output)
	fmt.Printf("Time:    %v\n", time.Since(start).Truncate(time.Millisecond))
}
