package dataset

import (
	"fmt"
	"math/rand"
	"sort"

	"github.com/djeday123/nmtdata/batch"
)

// Epoch is one lazily evaluated training pass over a Dataset:
//
//	shuffle all positions -> shard -> per shard: filter by length, sort by
//	side-0 length, greedily pack into batches, shuffle batch order -> yield.
//
// Each call to Dataset.Epoch reshuffles, so two passes visit the corpus in
// different batch orders; determinism across runs comes from seeding the
// injected rand.Rand. An Epoch is not safe for concurrent use.
type Epoch struct {
	d   *Dataset
	rng *rand.Rand
	acc *batch.Accumulator

	shards  [][]int // permuted positions, chunked to ShardSize
	shard   int     // next shard to pack
	pending [][]int // packed batches of the current shard, shuffled
}

// Epoch begins a fresh pass over the dataset. The rand source drives the
// corpus shuffle and the per-shard batch shuffle; the dataset never seeds
// one itself, so pass rand.New(rand.NewSource(seed)) for reproducible runs.
func (d *Dataset) Epoch(rng *rand.Rand) (*Epoch, error) {
	n := d.Len()
	if n == 0 {
		return nil, fmt.Errorf("dataset: empty dataset")
	}

	pos := make([]int, n)
	for i := range pos {
		pos[i] = i
	}
	rng.Shuffle(n, func(i, j int) {
		pos[i], pos[j] = pos[j], pos[i]
	})

	shardSize := d.cfg.ShardSize
	if shardSize <= 0 {
		shardSize = n
	}
	var shards [][]int
	for i := 0; i < n; i += shardSize {
		shards = append(shards, pos[i:min(i+shardSize, n)])
	}
	if d.cfg.Verbose {
		fmt.Printf("shuffled dataset (%d examples) into %d shards\n", n, len(shards))
	}

	return &Epoch{
		d:      d,
		rng:    rng,
		acc:    batch.NewAccumulator(d.cfg.BatchCapacity, d.policy),
		shards: shards,
	}, nil
}

// Next yields the next batch of the pass, or ok=false once the pass is
// exhausted. Shards are packed on demand, one at a time.
func (e *Epoch) Next() (*batch.Batch, bool) {
	for len(e.pending) == 0 {
		if e.shard == len(e.shards) {
			return nil, false
		}
		e.pending = e.packShard(e.shards[e.shard])
		e.shard++
	}
	positions := e.pending[0]
	e.pending = e.pending[1:]
	return e.wrap(positions), true
}

// packShard filters, sorts and packs one shard, returning the finalized
// batches (position lists) in randomized order.
func (e *Epoch) packShard(shard []int) [][]int {
	d := e.d

	// Drop examples over MaxLength on any side; remember side-0 lengths.
	kept := make([]int, 0, len(shard))
	lens := make([]int, 0, len(shard))
	for _, pos := range shard {
		if d.cfg.MaxLength > 0 {
			maxl := 0
			for n := range d.sides {
				maxl = max(maxl, len(d.sides[n][pos]))
			}
			if maxl > d.cfg.MaxLength {
				continue
			}
		}
		kept = append(kept, pos)
		lens = append(lens, len(d.sides[0][pos]))
	}

	// Shorter examples first keeps padding waste low inside a batch; the
	// stable sort keeps the shuffle order among equal lengths.
	order := make([]int, len(kept))
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(i, j int) bool {
		return lens[order[i]] < lens[order[j]]
	})

	// Greedy packing. +2 reserves room for the bos/eos markers.
	var batches [][]int
	e.acc.Reset(len(d.sides))
	cand := make([]int, len(d.sides))
	for _, i := range order {
		pos := kept[i]
		for n := range d.sides {
			cand[n] = len(d.sides[n][pos]) + 2
		}
		if !e.acc.Add(pos, cand) {
			if e.acc.Size() > 0 {
				batches = append(batches, snapshot(e.acc))
				e.acc.Reset(len(d.sides))
			}
			if !e.acc.Add(pos, cand) {
				// A lone example over the token budget still ships, as an
				// oversized singleton batch.
				e.acc.ForceAdd(pos, cand)
			}
		}
	}
	if e.acc.Size() > 0 {
		batches = append(batches, snapshot(e.acc))
		e.acc.Reset(len(d.sides))
	}

	e.rng.Shuffle(len(batches), func(i, j int) {
		batches[i], batches[j] = batches[j], batches[i]
	})
	if d.cfg.Verbose {
		fmt.Printf("built shard %d/%d: %d examples, %d batches\n",
			e.shard+1, len(e.shards), len(kept), len(batches))
	}
	return batches
}

// wrap builds the final per-side id sequences of a batch, each wrapped as
// [bos, ids..., eos].
func (e *Epoch) wrap(positions []int) *batch.Batch {
	d := e.d
	sides := make([][][]int, len(d.sides))
	for n := range d.sides {
		seqs := make([][]int, len(positions))
		for i, pos := range positions {
			ids := d.sides[n][pos]
			seq := make([]int, 0, len(ids)+2)
			seq = append(seq, d.bos[n])
			seq = append(seq, ids...)
			seq = append(seq, d.eos[n])
			seqs[i] = seq
		}
		sides[n] = seqs
	}
	return &batch.Batch{Positions: positions, Sides: sides}
}

// snapshot copies the accumulator's positions so the accumulator can be
// reset and reused.
func snapshot(acc *batch.Accumulator) []int {
	return append([]int(nil), acc.Positions()...)
}
