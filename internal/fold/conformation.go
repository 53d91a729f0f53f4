package fold

import (
	"errors"
	"fmt"
	"math/rand"

	"hpfold/internal/hp"
)

// Turn is one relative direction symbol of the genotype.
type Turn int8

const (
	Left    Turn = -1
	Forward Turn = 0
	Right   Turn = 1
)

// Point is a square-lattice cell.
type Point struct {
	X int `json:"x"`
	Y int `json:"y"`
}

// repairMutationRate drives the seeding repair loop toward a
// self-avoiding walk.
const repairMutationRate = 0.1

// ErrSeedBudget is returned when the seeding repair loop exhausts its
// retry budget without producing a valid conformation.
var ErrSeedBudget = errors.New("seed retry budget exhausted")

// Conformation is one individual: the turn encoding (genotype), the
// lattice walk derived from it (phenotype), and its evaluation state.
// Positions, Valid, and Fitness are pure functions of Encoding; callers
// must Refresh after changing the encoding and Score before reading
// Fitness.
type Conformation struct {
	Seq        hp.Sequence
	Encoding   []Turn
	Positions  []Point
	Valid      bool
	Fitness    int
	Generation int
}

// New builds an all-Forward conformation for seq with positions and
// validity computed. The encoding has Seq.Len()-2 loci; residues 0 and 1
// are anchored at (0,0) and (0,1).
func New(seq hp.Sequence) Conformation {
	c := Conformation{
		Seq:       seq,
		Encoding:  make([]Turn, max(seq.Len()-2, 0)),
		Positions: make([]Point, seq.Len()),
	}
	c.Refresh()
	return c
}

// Seed draws a uniform random encoding and repairs it with low-rate
// mutation until the walk is self-avoiding. retryLimit caps the repair
// loop so pathological sequences fail with ErrSeedBudget instead of
// hanging.
func Seed(seq hp.Sequence, rng *rand.Rand, retryLimit int) (Conformation, error) {
	c := New(seq)
	c.Randomize(rng)
	for attempt := 0; !c.Valid; attempt++ {
		if attempt >= retryLimit {
			return Conformation{}, fmt.Errorf("sequence %s: %w after %d attempts", seq, ErrSeedBudget, retryLimit)
		}
		c.Mutate(repairMutationRate, rng)
		c.Refresh()
	}
	return c, nil
}

// Randomize resamples every locus i.i.d. uniformly and refreshes the
// phenotype.
func (c *Conformation) Randomize(rng *rand.Rand) {
	for i := range c.Encoding {
		c.Encoding[i] = randomTurn(rng)
	}
	c.Refresh()
}

// Mutate resamples each locus independently with probability p.
// Self-transitions are allowed. The phenotype is left stale; callers
// must Refresh.
func (c *Conformation) Mutate(p float64, rng *rand.Rand) {
	for i := range c.Encoding {
		if rng.Float64() <= p {
			c.Encoding[i] = randomTurn(rng)
		}
	}
}

// Crossover produces the single-breakpoint child taking a's loci before
// the breakpoint and b's from it onward. Calling with swapped parents
// yields the complementary child. The child is refreshed but not scored.
func Crossover(a, b Conformation, rng *rand.Rand) Conformation {
	child := New(a.Seq)
	child.Generation = (a.Generation+b.Generation)/2 + 1
	cut := 0
	if len(child.Encoding) > 0 {
		cut = rng.Intn(len(child.Encoding))
	}
	copy(child.Encoding[:cut], a.Encoding[:cut])
	copy(child.Encoding[cut:], b.Encoding[cut:])
	child.Refresh()
	return child
}

// Refresh recomputes Positions from Encoding and rechecks
// self-avoidance. Fitness is left untouched; Score it separately.
func (c *Conformation) Refresh() {
	c.recomputePositions()
	seen := make(map[Point]struct{}, len(c.Positions))
	c.Valid = true
	for _, p := range c.Positions {
		if _, dup := seen[p]; dup {
			c.Valid = false
			return
		}
		seen[p] = struct{}{}
	}
}

// Score computes the contact energy: -1 for every hydrophobic pair
// (i, j) with j >= i+2 at Manhattan distance 1. Chain neighbors are
// always adjacent and never count. Each call counts as exactly one
// evaluation.
func (c *Conformation) Score(counter *Counter) {
	counter.Inc()
	fitness := 0
	for i := 0; i < len(c.Positions); i++ {
		if !c.Seq.Hydrophobic(i) {
			continue
		}
		for j := i + 2; j < len(c.Positions); j++ {
			if !c.Seq.Hydrophobic(j) {
				continue
			}
			if manhattan(c.Positions[i], c.Positions[j]) == 1 {
				fitness--
			}
		}
	}
	c.Fitness = fitness
}

// Clone returns a deep copy so that slices are never shared between
// population members.
func (c Conformation) Clone() Conformation {
	out := c
	out.Encoding = append([]Turn(nil), c.Encoding...)
	out.Positions = append([]Point(nil), c.Positions...)
	return out
}

// EncodingString renders the genotype over the {L, F, R} alphabet. It
// doubles as the uniqueness key within a population.
func (c Conformation) EncodingString() string {
	buf := make([]byte, len(c.Encoding))
	for i, t := range c.Encoding {
		switch t {
		case Forward:
			buf[i] = 'F'
		case Left:
			buf[i] = 'L'
		case Right:
			buf[i] = 'R'
		default:
			buf[i] = '?'
		}
	}
	return string(buf)
}

// ParseEncoding reads an {L, F, R} string back into turn symbols.
func ParseEncoding(s string) ([]Turn, error) {
	turns := make([]Turn, len(s))
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case 'F', 'f':
			turns[i] = Forward
		case 'L', 'l':
			turns[i] = Left
		case 'R', 'r':
			turns[i] = Right
		default:
			return nil, fmt.Errorf("invalid turn symbol %q at index %d", s[i], i)
		}
	}
	return turns, nil
}

// recomputePositions walks the lattice from the fixed anchors (0,0) and
// (0,1) with initial heading up, turning per encoding symbol.
func (c *Conformation) recomputePositions() {
	c.Positions = c.Positions[:0]
	x, y := 0, 0
	c.Positions = append(c.Positions, Point{x, y})
	y = 1
	c.Positions = append(c.Positions, Point{x, y})

	dx, dy := 0, 1
	for _, t := range c.Encoding {
		switch t {
		case Left:
			dx, dy = -dy, dx
		case Right:
			dx, dy = dy, -dx
		}
		x += dx
		y += dy
		c.Positions = append(c.Positions, Point{x, y})
	}
}

func randomTurn(rng *rand.Rand) Turn {
	return Turn(rng.Intn(3) - 1)
}

func manhattan(a, b Point) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
