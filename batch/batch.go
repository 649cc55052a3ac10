package batch

// Batch is one finalized mini-batch as yielded by a dataset epoch.
//
// Positions holds the original example positions, for bookkeeping and
// debugging. Sides holds, per corpus side, one id sequence per example in
// the same order, already wrapped as [bos, ids..., eos]. Sequences are not
// padded; converting them to fixed-shape arrays with the pad id is the
// consumer's job (see the collate package).
type Batch struct {
	Positions []int
	Sides     [][][]int
}

// Size returns the number of examples in the batch.
func (b *Batch) Size() int {
	return len(b.Positions)
}
