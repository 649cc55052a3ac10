// Package collate turns the ragged id sequences of a finalized batch into
// the fixed-shape padded matrices a training loop feeds to a model.
package collate

import (
	"fmt"

	"gorgonia.org/tensor"

	"github.com/djeday123/nmtdata/batch"
	"github.com/djeday123/nmtdata/vocab"
)

// Side pads one side of a batch into a (batch, maxLen) int64 matrix.
// Sequences shorter than the longest one are right-padded with vocab.PadID.
func Side(seqs [][]int) (*tensor.Dense, error) {
	if len(seqs) == 0 {
		return nil, fmt.Errorf("collate: empty batch side")
	}
	maxLen := 0
	for _, seq := range seqs {
		maxLen = max(maxLen, len(seq))
	}

	data := make([]int64, len(seqs)*maxLen)
	for i := range data {
		data[i] = vocab.PadID
	}
	for i, seq := range seqs {
		row := data[i*maxLen:]
		for j, id := range seq {
			row[j] = int64(id)
		}
	}
	return tensor.New(tensor.WithShape(len(seqs), maxLen), tensor.WithBacking(data)), nil
}

// Batch pads every side of a batch, returning one matrix per side. Sides
// are padded independently, so their widths usually differ.
func Batch(b *batch.Batch) ([]*tensor.Dense, error) {
	out := make([]*tensor.Dense, len(b.Sides))
	for n, seqs := range b.Sides {
		t, err := Side(seqs)
		if err != nil {
			return nil, fmt.Errorf("collate: side %d: %w", n, err)
		}
		out[n] = t
	}
	return out, nil
}
