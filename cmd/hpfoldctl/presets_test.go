package main

import (
	"testing"

	"hpfold/internal/hp"
)

func TestPresetsParseAndAreHonest(t *testing.T) {
	for _, preset := range sequencePresets {
		seq, err := hp.Parse(preset.Residues)
		if err != nil {
			t.Fatalf("preset %s: %v", preset.Name, err)
		}
		if preset.OptimalEnergy >= 0 {
			t.Fatalf("preset %s has non-negative optimal energy %d", preset.Name, preset.OptimalEnergy)
		}
		if seq.CountHydrophobic() < 2 {
			t.Fatalf("preset %s cannot form any contact", preset.Name)
		}
	}
}

func TestResolveSequence(t *testing.T) {
	residues, optimal, ok := resolveSequence("HP64")
	if !ok || optimal != -42 || len(residues) != 64 {
		t.Fatalf("preset lookup failed: ok=%v optimal=%d len=%d", ok, optimal, len(residues))
	}

	raw, _, ok := resolveSequence("HPPH")
	if ok || raw != "HPPH" {
		t.Fatalf("raw sequence mishandled: ok=%v raw=%s", ok, raw)
	}
}
