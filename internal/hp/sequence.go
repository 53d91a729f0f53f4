package hp

import (
	"fmt"
	"unicode"
)

// Class partitions residues for the energy model. Only hydrophobic
// residues contribute to contact energy; anything outside the two-letter
// alphabet is carried along as ClassOther and rendered verbatim.
type Class int

const (
	Hydrophobic Class = iota
	Polar
	Other
)

// Sequence is an immutable residue chain shared read-only by every
// conformation of a run. 'H' marks hydrophobic and 'P' polar residues;
// the legacy 'B' (black) and 'W' (white) spellings are accepted and
// normalized on parse.
type Sequence struct {
	classes []Class
	runes   []rune
}

func Parse(s string) (Sequence, error) {
	runes := []rune(s)
	if len(runes) < 2 {
		return Sequence{}, fmt.Errorf("sequence must have at least 2 residues, got %d", len(runes))
	}
	seq := Sequence{
		classes: make([]Class, len(runes)),
		runes:   make([]rune, len(runes)),
	}
	for i, r := range runes {
		switch unicode.ToUpper(r) {
		case 'H', 'B':
			seq.classes[i] = Hydrophobic
			seq.runes[i] = 'H'
		case 'P', 'W':
			seq.classes[i] = Polar
			seq.runes[i] = 'P'
		default:
			seq.classes[i] = Other
			seq.runes[i] = r
		}
	}
	return seq, nil
}

func (s Sequence) Len() int {
	return len(s.classes)
}

func (s Sequence) Class(i int) Class {
	return s.classes[i]
}

func (s Sequence) Hydrophobic(i int) bool {
	return s.classes[i] == Hydrophobic
}

// Rune returns the display rune for residue i: 'H', 'P', or the original
// rune for ClassOther residues.
func (s Sequence) Rune(i int) rune {
	return s.runes[i]
}

func (s Sequence) String() string {
	return string(s.runes)
}

// CountHydrophobic reports how many residues can participate in contacts.
func (s Sequence) CountHydrophobic() int {
	n := 0
	for _, c := range s.classes {
		if c == Hydrophobic {
			n++
		}
	}
	return n
}
