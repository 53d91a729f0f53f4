package main

import "strings"

// SequencePreset is a named benchmark instance with its best known
// contact energy on the 2D square lattice.
type SequencePreset struct {
	Name          string
	Residues      string
	OptimalEnergy int
}

var sequencePresets = []SequencePreset{
	{Name: "hp20", Residues: "HPHPPHHPHPPHPHHPPHPH", OptimalEnergy: -9},
	{Name: "hp24", Residues: "HHPPHPPHPPHPPHPPHPPHPPHH", OptimalEnergy: -9},
	{Name: "hp25", Residues: "HHPHHPPHHHHPPHHHHPPHHHHPP", OptimalEnergy: -8},
	{Name: "hp36", Residues: "PPPHHPPHHPPPPPHHHHHHHPPHHPPPPHHPPHPP", OptimalEnergy: -14},
	{Name: "hp48", Residues: "PPHPPHHPPHHPPPPPHHHHHHHHHHPPPPPPHHPPHHPPHPPHHHHH", OptimalEnergy: -23},
	{Name: "hp50", Residues: "HHPHPHPHPHHHHPHPPPHPPPHPPPPHPPPHPPPHPHHHHPHPHPHPHH", OptimalEnergy: -21},
	{Name: "hp60", Residues: "PPHHHPHHHHHHHHPPPHHHHHHHHHHPHPPPHHHHHHHHHHHHPPPPHHHHHHPHHPHP", OptimalEnergy: -34},
	{Name: "hp64", Residues: "HHHHHHHHHHHHPHPHPPHHPPHHPPHPPHHPPHHPPHPPHHPPHHPPHPHPHHHHHHHHHHHH", OptimalEnergy: -42},
	{Name: "hp85", Residues: "HHHHPPPPPHHHHHHHHHHHHPPPPPPHHHHHHHHHHHPPPPHHHHHHHHHHHHPPPHHHHHHHHHHHHPPPPPPHHPHHPPHP", OptimalEnergy: -52},
}

// resolveSequence maps a preset name to its residues and optimal
// energy; any other argument is treated as a raw residue string.
func resolveSequence(arg string) (residues string, optimal int, isPreset bool) {
	lower := strings.ToLower(arg)
	for _, preset := range sequencePresets {
		if preset.Name == lower {
			return preset.Residues, preset.OptimalEnergy, true
		}
	}
	return arg, 0, false
}

func presetNames() []string {
	names := make([]string, len(sequencePresets))
	for i, preset := range sequencePresets {
		names[i] = preset.Name
	}
	return names
}
