package evo

import (
	"errors"
	"fmt"
	"math/rand"

	"hpfold/internal/fold"
	"hpfold/internal/hp"
)

var (
	ErrSequenceTooShort = errors.New("sequence has no turn loci; no admissible population exists")
	ErrInitBudget       = errors.New("initialization attempt budget exhausted")
)

const (
	DefaultTournamentSize = 3
	DefaultSeedRetries    = 1_000_000

	// Admission attempts per member before initialization gives up. A
	// sequence whose foldings never score below zero (for example one
	// with fewer than two hydrophobic residues) would otherwise loop
	// forever.
	initAttemptsPerMember = 1000
)

// Config carries the genetic parameters of one population.
type Config struct {
	Size           int
	MutationProb   float64
	CrossoverProb  float64
	TournamentSize int // 0 selects DefaultTournamentSize
	SeedRetries    int // 0 selects DefaultSeedRetries
}

func (c *Config) normalize() error {
	if c.Size <= 0 {
		return fmt.Errorf("population size must be > 0, got %d", c.Size)
	}
	if c.MutationProb < 0 || c.MutationProb > 1 {
		return fmt.Errorf("mutation probability must be in [0, 1], got %g", c.MutationProb)
	}
	if c.CrossoverProb < 0 || c.CrossoverProb > 1 {
		return fmt.Errorf("crossover probability must be in [0, 1], got %g", c.CrossoverProb)
	}
	if c.TournamentSize == 0 {
		c.TournamentSize = DefaultTournamentSize
	}
	if c.TournamentSize < 1 || c.TournamentSize > c.Size {
		return fmt.Errorf("tournament size must be in [1, %d], got %d", c.Size, c.TournamentSize)
	}
	if c.SeedRetries == 0 {
		c.SeedRetries = DefaultSeedRetries
	}
	if c.SeedRetries < 0 {
		return fmt.Errorf("seed retries must be >= 0, got %d", c.SeedRetries)
	}
	return nil
}

// Population is a fixed-size collection of valid, pairwise-distinct
// conformations of one sequence. Members are replaced in place by
// elitist offspring; the size never changes after construction.
type Population struct {
	cfg     Config
	seq     hp.Sequence
	rng     *rand.Rand
	counter *fold.Counter

	members []fold.Conformation
	// seen indexes encodings already registered this run. Displaced
	// members release their key only when no current member still holds
	// an identical encoding.
	seen     map[string]struct{}
	admitted int
	fittest  int
}

// NewPopulation seeds cfg.Size random valid conformations of seq,
// skipping zero-fitness walks and duplicate encodings. Every randomized
// choice draws from rng; fitness evaluations are charged to counter.
func NewPopulation(cfg Config, seq hp.Sequence, rng *rand.Rand, counter *fold.Counter) (*Population, error) {
	if err := cfg.normalize(); err != nil {
		return nil, err
	}
	if seq.Len() <= 2 {
		return nil, fmt.Errorf("sequence %q: %w", seq.String(), ErrSequenceTooShort)
	}

	p := &Population{
		cfg:     cfg,
		seq:     seq,
		rng:     rng,
		counter: counter,
		members: make([]fold.Conformation, 0, cfg.Size),
		seen:    make(map[string]struct{}, cfg.Size),
	}

	budget := cfg.Size * initAttemptsPerMember
	for attempts := 0; len(p.members) < cfg.Size; attempts++ {
		if attempts >= budget {
			return nil, fmt.Errorf("sequence %q after %d attempts: %w", seq.String(), attempts, ErrInitBudget)
		}
		candidate, err := fold.Seed(seq, rng, cfg.SeedRetries)
		if err != nil {
			return nil, err
		}
		candidate.Score(counter)
		if candidate.Fitness == 0 {
			continue
		}
		key := candidate.EncodingString()
		if _, dup := p.seen[key]; dup {
			continue
		}
		p.seen[key] = struct{}{}
		p.admitted++
		p.members = append(p.members, candidate)
	}

	for i := range p.members {
		if p.members[i].Fitness < p.members[p.fittest].Fitness {
			p.fittest = i
		}
	}
	return p, nil
}

// Step runs one generation: tournament parent selection gated by the
// crossover probability, two complementary children, mutation, and
// elitist in-place replacement. The population size is invariant.
func (p *Population) Step() {
	parent1 := p.tournament()
	if p.cfg.CrossoverProb < p.rng.Float64() {
		return
	}
	parent2 := p.tournament()
	if p.cfg.CrossoverProb < p.rng.Float64() {
		return
	}

	child1 := fold.Crossover(p.members[parent1], p.members[parent2], p.rng)
	child2 := fold.Crossover(p.members[parent2], p.members[parent1], p.rng)

	p.admit(child1, parent1, parent2)
	p.admit(child2, parent2, parent1)

	if p.members[parent1].Fitness < p.members[p.fittest].Fitness {
		p.fittest = parent1
	}
	if p.members[parent2].Fitness < p.members[p.fittest].Fitness {
		p.fittest = parent2
	}
}

// admit mutates and evaluates a crossover child, then lets it displace
// a strictly worse parent: the child's own parent slot first, the other
// parent as fallback. Invalid and duplicate children are dropped.
func (p *Population) admit(child fold.Conformation, own, other int) {
	child.Mutate(p.cfg.MutationProb, p.rng)
	child.Refresh()
	if !child.Valid {
		return
	}
	child.Score(p.counter)

	key := child.EncodingString()
	if _, dup := p.seen[key]; dup {
		return
	}
	p.seen[key] = struct{}{}
	p.admitted++

	if child.Fitness < p.members[own].Fitness {
		p.replace(own, child)
	} else if child.Fitness < p.members[other].Fitness {
		p.replace(other, child)
	}
}

func (p *Population) replace(idx int, child fold.Conformation) {
	displaced := p.members[idx].EncodingString()
	p.members[idx] = child
	// Re-derive membership before releasing the key; another member may
	// still hold an identical encoding.
	if !p.holdsEncoding(displaced) {
		delete(p.seen, displaced)
	}
}

func (p *Population) holdsEncoding(key string) bool {
	for i := range p.members {
		if p.members[i].EncodingString() == key {
			return true
		}
	}
	return false
}

// tournament samples cfg.TournamentSize distinct members uniformly and
// returns the index of the one with the lowest fitness.
func (p *Population) tournament() int {
	drawn := make(map[int]struct{}, p.cfg.TournamentSize)
	best := -1
	for len(drawn) < p.cfg.TournamentSize {
		idx := p.rng.Intn(len(p.members))
		if _, dup := drawn[idx]; dup {
			continue
		}
		drawn[idx] = struct{}{}
		if best < 0 || p.members[idx].Fitness < p.members[best].Fitness {
			best = idx
		}
	}
	return best
}

// Fittest returns a copy of the best member currently in the population.
func (p *Population) Fittest() fold.Conformation {
	return p.members[p.fittest].Clone()
}

func (p *Population) Size() int {
	return len(p.members)
}

// MemberAt returns a copy of member i for reporting and tests.
func (p *Population) MemberAt(i int) fold.Conformation {
	return p.members[i].Clone()
}

// UniqueAdmitted counts the distinct encodings registered since
// initialization began, the diversity metric benchmark runs report.
func (p *Population) UniqueAdmitted() int {
	return p.admitted
}

func (p *Population) Sequence() hp.Sequence {
	return p.seq
}

func (p *Population) Params() Config {
	return p.cfg
}
