package vocab

import (
	"bufio"
	"fmt"
	"os"
)

// ============================================================================
// Vocabulary layout (shared across all corpus sides):
//
//   0:  <pad>   padding
//   1:  <unk>   unknown token
//   2:  <bos>   begin of sequence
//   3:  <eos>   end of sequence
//   4+: corpus tokens, one id per vocabulary file line
//
// The position of a token in the vocabulary file IS its id, so the four
// markers must be the first four lines of every vocabulary file.
// ============================================================================

const (
	PadID = 0
	UnkID = 1
	BosID = 2
	EosID = 3
)

const (
	PadToken = "<pad>"
	UnkToken = "<unk>"
	BosToken = "<bos>"
	EosToken = "<eos>"
)

// Vocab is an immutable string<->id mapping for one side of a parallel
// corpus. Build it once with New or Load; it is read-only afterwards.
type Vocab struct {
	idToTok []string
	tokToID map[string]int
}

// New builds a vocabulary from an ordered list of distinct token strings.
// The first four entries must be exactly <pad>, <unk>, <bos>, <eos>.
func New(tokens []string) (*Vocab, error) {
	v := &Vocab{
		idToTok: tokens,
		tokToID: make(map[string]int, len(tokens)),
	}
	for i, tok := range tokens {
		v.tokToID[tok] = i
	}
	markers := []struct {
		tok string
		id  int
	}{
		{PadToken, PadID},
		{UnkToken, UnkID},
		{BosToken, BosID},
		{EosToken, EosID},
	}
	for _, m := range markers {
		id, ok := v.tokToID[m.tok]
		if !ok {
			return nil, fmt.Errorf("vocab: %s must exist with id=%d, not found", m.tok, m.id)
		}
		if id != m.id {
			return nil, fmt.Errorf("vocab: %s must exist with id=%d, found id=%d", m.tok, m.id, id)
		}
	}
	return v, nil
}

// Load reads a vocabulary file, one token per line.
func Load(path string) (*Vocab, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("vocab: cannot read %s: %w", path, err)
	}
	defer f.Close()

	var tokens []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		tokens = append(tokens, scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("vocab: reading %s: %w", path, err)
	}
	return New(tokens)
}

// Size returns the total number of entries, markers included.
func (v *Vocab) Size() int {
	return len(v.idToTok)
}

// ID returns the id of a token, or UnkID if the token is not present.
// The lookup is total; it never fails.
func (v *Vocab) ID(token string) int {
	if id, ok := v.tokToID[token]; ok {
		return id
	}
	return UnkID
}

// Token returns the string at the given id. Callers must only pass ids
// produced by this vocabulary (see ContainsID); out-of-range ids panic.
func (v *Vocab) Token(id int) string {
	return v.idToTok[id]
}

// ContainsID reports whether id falls inside the vocabulary range.
func (v *Vocab) ContainsID(id int) bool {
	return id >= 0 && id < len(v.idToTok)
}

// ContainsToken reports whether the exact token string is present.
func (v *Vocab) ContainsToken(token string) bool {
	_, ok := v.tokToID[token]
	return ok
}
