package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/djeday123/nmtdata/batch"
	"github.com/djeday123/nmtdata/vocab"
)

// Config holds the batching parameters of a Dataset.
type Config struct {
	// ShardSize: examples per shard. 0 means the whole corpus is one shard.
	ShardSize int `json:"shard_size"`
	// BatchCapacity: batch budget, interpreted by CapacityPolicy.
	BatchCapacity int `json:"batch_capacity"`
	// CapacityPolicy: "sentences" caps examples per batch, "tokens" caps the
	// padded token footprint per batch.
	CapacityPolicy string `json:"capacity_policy"`
	// MaxLength: examples longer than this on any side are dropped.
	// 0 disables the filter.
	MaxLength int `json:"max_length"`
	// Verbose: print load and epoch statistics to stdout.
	Verbose bool `json:"verbose"`
}

// DefaultConfig returns the batching parameters used for NMT training runs.
func DefaultConfig() Config {
	return Config{
		ShardSize:      500000,
		BatchCapacity:  4096,
		CapacityPolicy: "tokens",
		MaxLength:      100,
		Verbose:        false,
	}
}

// SideStats reports per-side corpus statistics gathered at load time.
type SideStats struct {
	Path     string
	Examples int
	Tokens   int
	Unknown  int
}

// UnknownRate returns the fraction of tokens mapped to <unk>.
func (s SideStats) UnknownRate() float64 {
	if s.Tokens == 0 {
		return 0
	}
	return float64(s.Unknown) / float64(s.Tokens)
}

// Dataset holds N aligned corpus sides fully mapped to vocabulary ids.
// Line i of side 0 is aligned with line i of every other side. The data is
// read-only after New; iteration happens through Epoch.
type Dataset struct {
	cfg    Config
	policy batch.Policy

	sides [][][]int // sides[n][pos] = vocabulary ids of example pos on side n
	bos   []int     // per-side begin marker id
	eos   []int     // per-side end marker id
	stats []SideStats
}

// New loads N aligned corpus files through their vocabularies. paths[n] is
// read line by line, each line split on whitespace and mapped through
// vocabs[n] (markers are not added at this stage; Epoch adds them when a
// batch is yielded). All sides must have the same number of lines.
func New(paths []string, vocabs []*vocab.Vocab, cfg Config) (*Dataset, error) {
	if len(paths) == 0 {
		return nil, fmt.Errorf("dataset: no corpus files")
	}
	if len(paths) != len(vocabs) {
		return nil, fmt.Errorf("dataset: %d corpus files but %d vocabularies", len(paths), len(vocabs))
	}
	policy, err := batch.ParsePolicy(cfg.CapacityPolicy)
	if err != nil {
		return nil, err
	}
	if cfg.BatchCapacity <= 0 {
		return nil, fmt.Errorf("dataset: batch capacity must be > 0, got %d", cfg.BatchCapacity)
	}

	d := &Dataset{
		cfg:    cfg,
		policy: policy,
		sides:  make([][][]int, len(paths)),
		bos:    make([]int, len(paths)),
		eos:    make([]int, len(paths)),
		stats:  make([]SideStats, len(paths)),
	}
	for n, path := range paths {
		voc := vocabs[n]
		d.bos[n] = vocab.BosID
		d.eos[n] = vocab.EosID

		examples, stats, err := loadSide(path, voc)
		if err != nil {
			return nil, err
		}
		d.sides[n] = examples
		d.stats[n] = stats
		if cfg.Verbose {
			fmt.Printf("read corpus: %d lines, %d tokens, %d OOVs (%.2f%%) from %s\n",
				stats.Examples, stats.Tokens, stats.Unknown, 100*stats.UnknownRate(), path)
		}
		if len(d.sides[n]) != len(d.sides[0]) {
			return nil, fmt.Errorf("dataset: non-parallel corpus: %s has %d lines, %s has %d",
				paths[n], len(d.sides[n]), paths[0], len(d.sides[0]))
		}
	}
	return d, nil
}

// loadSide reads one corpus file and maps every token to its id.
func loadSide(path string, voc *vocab.Vocab) ([][]int, SideStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, SideStats{}, fmt.Errorf("dataset: cannot read %s: %w", path, err)
	}
	defer f.Close()

	stats := SideStats{Path: path}
	var examples [][]int

	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 1024*1024), 16*1024*1024)
	for scanner.Scan() {
		fields := strings.Fields(scanner.Text())
		ids := make([]int, len(fields))
		for i, tok := range fields {
			id := voc.ID(tok)
			ids[i] = id
			if id == vocab.UnkID {
				stats.Unknown++
			}
		}
		stats.Tokens += len(ids)
		examples = append(examples, ids)
	}
	if err := scanner.Err(); err != nil {
		return nil, SideStats{}, fmt.Errorf("dataset: reading %s: %w", path, err)
	}
	stats.Examples = len(examples)
	return examples, stats, nil
}

// Sides returns the number of parallel corpus sides.
func (d *Dataset) Sides() int {
	return len(d.sides)
}

// Len returns the number of aligned examples.
func (d *Dataset) Len() int {
	if len(d.sides) == 0 {
		return 0
	}
	return len(d.sides[0])
}

// Stats returns the per-side statistics gathered at load time.
func (d *Dataset) Stats() []SideStats {
	return d.stats
}

// Config returns the batching parameters the dataset was built with.
func (d *Dataset) Config() Config {
	return d.cfg
}
