package vocab

import (
	"os"
	"path/filepath"
	"testing"
)

func validTokens() []string {
	return []string{"<pad>", "<unk>", "<bos>", "<eos>", "a", "b"}
}

func TestNew(t *testing.T) {
	v, err := New(validTokens())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if v.Size() != 6 {
		t.Errorf("Size() = %d, want 6", v.Size())
	}
}

func TestNewRejectsBadMarkers(t *testing.T) {
	cases := []struct {
		name   string
		tokens []string
	}{
		{"empty", nil},
		{"too few entries", []string{"<pad>", "<unk>"}},
		{"missing pad", []string{"<unk>", "<bos>", "<eos>", "a"}},
		{"wrong order", []string{"<unk>", "<pad>", "<bos>", "<eos>"}},
		{"marker displaced", []string{"<pad>", "<unk>", "<bos>", "a", "<eos>"}},
	}
	for _, tc := range cases {
		if _, err := New(tc.tokens); err == nil {
			t.Errorf("New(%s) should have failed", tc.name)
		}
	}
}

func TestID(t *testing.T) {
	v, err := New(validTokens())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := v.ID("a"); got != 4 {
		t.Errorf("ID(a) = %d, want 4", got)
	}
	if got := v.ID("<bos>"); got != BosID {
		t.Errorf("ID(<bos>) = %d, want %d", got, BosID)
	}
	// Lookup is total: unknown strings map to UnkID.
	if got := v.ID("zzz"); got != UnkID {
		t.Errorf("ID(zzz) = %d, want %d", got, UnkID)
	}
}

func TestToken(t *testing.T) {
	v, err := New(validTokens())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if got := v.Token(5); got != "b" {
		t.Errorf("Token(5) = %q, want \"b\"", got)
	}
	if got := v.Token(PadID); got != PadToken {
		t.Errorf("Token(PadID) = %q, want %q", got, PadToken)
	}
}

func TestContains(t *testing.T) {
	v, err := New(validTokens())
	if err != nil {
		t.Fatalf("New() failed: %v", err)
	}
	if !v.ContainsID(0) || !v.ContainsID(5) {
		t.Error("ContainsID should accept in-range ids")
	}
	if v.ContainsID(-1) || v.ContainsID(6) {
		t.Error("ContainsID should reject out-of-range ids")
	}
	if !v.ContainsToken("a") {
		t.Error("ContainsToken(a) should be true")
	}
	if v.ContainsToken("zzz") {
		t.Error("ContainsToken(zzz) should be false")
	}
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vocab.txt")
	content := "<pad>\n<unk>\n<bos>\n<eos>\nhello\nworld\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	v, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}
	if v.Size() != 6 {
		t.Errorf("Size() = %d, want 6", v.Size())
	}
	if got := v.ID("world"); got != 5 {
		t.Errorf("ID(world) = %d, want 5", got)
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load() of a missing file should fail")
	}
}
