package batch

import "fmt"

// Policy selects how an Accumulator charges batch capacity.
type Policy int

const (
	// Sentences caps the number of examples per batch.
	Sentences Policy = iota
	// Tokens caps the padded token footprint per batch: on every side,
	// max-length-so-far times batch-size-so-far must stay within capacity.
	Tokens
)

// ParsePolicy converts the configuration string to a Policy.
func ParsePolicy(s string) (Policy, error) {
	switch s {
	case "sentences":
		return Sentences, nil
	case "tokens":
		return Tokens, nil
	}
	return 0, fmt.Errorf("batch: bad capacity policy %q (want \"sentences\" or \"tokens\")", s)
}

func (p Policy) String() string {
	switch p {
	case Sentences:
		return "sentences"
	case Tokens:
		return "tokens"
	}
	return fmt.Sprintf("Policy(%d)", int(p))
}

// Accumulator packs example positions into one in-progress batch. It is
// created once and reused: Reset clears it between batches and shards
// without reallocating. Not safe for concurrent use; give each shard
// worker its own Accumulator if packing is ever parallelized.
type Accumulator struct {
	capacity int
	policy   Policy

	positions []int
	maxLens   []int // running per-side maximum length
}

// NewAccumulator creates an empty accumulator with the given capacity.
// Call Reset before the first Add.
func NewAccumulator(capacity int, policy Policy) *Accumulator {
	return &Accumulator{capacity: capacity, policy: policy}
}

// Reset clears all accepted positions and zeroes the per-side maxima for a
// corpus with the given number of sides. Valid in any state.
func (a *Accumulator) Reset(sides int) {
	a.positions = a.positions[:0]
	if cap(a.maxLens) < sides {
		a.maxLens = make([]int, sides)
		return
	}
	a.maxLens = a.maxLens[:sides]
	for i := range a.maxLens {
		a.maxLens[i] = 0
	}
}

// Add tries to fit one more example into the batch. lens holds one entry per
// side and must already include any per-example overhead the caller wants
// charged against the capacity (the dataset passes raw length + 2 for the
// bos/eos markers).
//
// Under the Tokens policy the example is rejected when, on any side,
// max(maxLens[i], lens[i]) * (Size()+1) would exceed the capacity; the side
// that rejects is not necessarily the one that grew. Under Sentences the
// example is rejected only when the batch already holds capacity examples.
// A rejected Add leaves the accumulator unchanged.
func (a *Accumulator) Add(pos int, lens []int) bool {
	if a.policy == Tokens {
		for i, l := range lens {
			if max(a.maxLens[i], l)*(len(a.positions)+1) > a.capacity {
				return false
			}
		}
	} else if len(a.positions) == a.capacity {
		return false
	}
	a.accept(pos, lens)
	return true
}

// ForceAdd appends the example regardless of capacity. The dataset uses it
// after a flush when a lone example exceeds the token budget by itself, so
// the example still ships as an oversized singleton batch instead of being
// dropped.
func (a *Accumulator) ForceAdd(pos int, lens []int) {
	a.accept(pos, lens)
}

func (a *Accumulator) accept(pos int, lens []int) {
	a.positions = append(a.positions, pos)
	for i, l := range lens {
		a.maxLens[i] = max(a.maxLens[i], l)
	}
}

// Size returns the number of accepted examples (sentences, not tokens).
func (a *Accumulator) Size() int {
	return len(a.positions)
}

// Positions returns the accepted example positions. The slice is owned by
// the accumulator and only valid until the next Reset; callers that keep a
// finalized batch must copy it.
func (a *Accumulator) Positions() []int {
	return a.positions
}
