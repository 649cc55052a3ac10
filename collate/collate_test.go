package collate

import (
	"testing"

	"github.com/djeday123/nmtdata/batch"
	"github.com/djeday123/nmtdata/vocab"
)

func TestSide(t *testing.T) {
	seqs := [][]int{
		{2, 4, 5, 3},
		{2, 4, 3},
	}
	d, err := Side(seqs)
	if err != nil {
		t.Fatalf("Side() failed: %v", err)
	}

	shape := d.Shape()
	if len(shape) != 2 || shape[0] != 2 || shape[1] != 4 {
		t.Fatalf("Shape() = %v, want (2, 4)", shape)
	}

	data := d.Data().([]int64)
	want := []int64{
		2, 4, 5, 3,
		2, 4, 3, vocab.PadID,
	}
	for i := range want {
		if data[i] != want[i] {
			t.Fatalf("data = %v, want %v", data, want)
		}
	}
}

func TestSideEmpty(t *testing.T) {
	if _, err := Side(nil); err == nil {
		t.Error("Side() of an empty batch should fail")
	}
}

func TestBatch(t *testing.T) {
	bt := &batch.Batch{
		Positions: []int{1, 0},
		Sides: [][][]int{
			{{2, 4, 3}, {2, 4, 5, 3}},
			{{2, 6, 3}, {2, 6, 3}},
		},
	}
	out, err := Batch(bt)
	if err != nil {
		t.Fatalf("Batch() failed: %v", err)
	}
	if len(out) != 2 {
		t.Fatalf("got %d sides, want 2", len(out))
	}
	// Sides pad independently: side 0 is 4 wide, side 1 only 3.
	if got := out[0].Shape()[1]; got != 4 {
		t.Errorf("side 0 width = %d, want 4", got)
	}
	if got := out[1].Shape()[1]; got != 3 {
		t.Errorf("side 1 width = %d, want 3", got)
	}
}
