package fold

import (
	"math/rand"
	"strings"
	"testing"

	"hpfold/internal/hp"
)

func mustSeq(t *testing.T, s string) hp.Sequence {
	t.Helper()
	seq, err := hp.Parse(s)
	if err != nil {
		t.Fatalf("parse %q: %v", s, err)
	}
	return seq
}

func TestReconstructionIsDeterministic(t *testing.T) {
	seq := mustSeq(t, "HPHPPHHPHPPHPHH")
	c := New(seq)
	rng := rand.New(rand.NewSource(7))
	c.Randomize(rng)

	first := append([]Point(nil), c.Positions...)
	c.Refresh()
	if len(c.Positions) != seq.Len() {
		t.Fatalf("position count: got=%d want=%d", len(c.Positions), seq.Len())
	}
	for i, p := range c.Positions {
		if p != first[i] {
			t.Fatalf("position %d changed between reconstructions: %v vs %v", i, p, first[i])
		}
	}
}

func TestAnchorsAndHeadings(t *testing.T) {
	seq := mustSeq(t, "HHHHH")
	c := New(seq)
	c.Encoding = []Turn{Left, Forward, Right}
	c.Refresh()

	want := []Point{{0, 0}, {0, 1}, {-1, 1}, {-2, 1}, {-2, 2}}
	for i, p := range c.Positions {
		if p != want[i] {
			t.Fatalf("position %d: got=%v want=%v", i, p, want[i])
		}
	}
	if !c.Valid {
		t.Fatal("expected valid walk")
	}
}

func TestAllLeftWalkSelfIntersects(t *testing.T) {
	seq := mustSeq(t, "HPHPPH")
	c := New(seq)
	for i := range c.Encoding {
		c.Encoding[i] = Left
	}
	c.Refresh()
	if c.Valid {
		t.Fatal("closed loop must be rejected as self-intersecting")
	}
}

func TestStraightWalkHasZeroFitness(t *testing.T) {
	var counter Counter
	for _, s := range []string{"HH", "HHHH", "HPHPPHHPHPPHPHH"} {
		c := New(mustSeq(t, s))
		if !c.Valid {
			t.Fatalf("straight walk of %q should be valid", s)
		}
		c.Score(&counter)
		if c.Fitness != 0 {
			t.Fatalf("straight walk of %q: fitness=%d want=0", s, c.Fitness)
		}
	}
	if counter.Total() != 3 {
		t.Fatalf("each Score call must count one evaluation, counted %d", counter.Total())
	}
}

func TestSingleContactScoresMinusOne(t *testing.T) {
	// H(0,0) P(0,1) P(1,1) H(1,0): the two hydrophobic ends meet across
	// a non-chain bond.
	c := New(mustSeq(t, "HPPH"))
	c.Encoding = []Turn{Right, Right}
	c.Refresh()
	if !c.Valid {
		t.Fatal("expected valid U-turn walk")
	}
	var counter Counter
	c.Score(&counter)
	if c.Fitness != -1 {
		t.Fatalf("fitness=%d want=-1", c.Fitness)
	}
}

func TestFitnessMatchesBruteForce(t *testing.T) {
	seq := mustSeq(t, "HHPHHPPHHPPHHHHH")
	rng := rand.New(rand.NewSource(11))
	var counter Counter
	for trial := 0; trial < 50; trial++ {
		c, err := Seed(seq, rng, 100000)
		if err != nil {
			t.Fatalf("seed: %v", err)
		}
		c.Score(&counter)

		want := 0
		for i := 0; i < seq.Len(); i++ {
			for j := i + 2; j < seq.Len(); j++ {
				if seq.Hydrophobic(i) && seq.Hydrophobic(j) && manhattan(c.Positions[i], c.Positions[j]) == 1 {
					want--
				}
			}
		}
		if c.Fitness != want {
			t.Fatalf("trial %d: fitness=%d brute force=%d", trial, c.Fitness, want)
		}
		if c.Fitness > 0 {
			t.Fatalf("fitness must never be positive, got %d", c.Fitness)
		}
	}
}

func TestCrossoverComplement(t *testing.T) {
	seq := mustSeq(t, "HPHPPHHPHPPHPHH")

	a := New(seq)
	b := New(seq)
	for i := range a.Encoding {
		a.Encoding[i] = Left
		b.Encoding[i] = Right
	}
	a.Generation = 3
	b.Generation = 4

	childAB := Crossover(a, b, rand.New(rand.NewSource(99)))
	childBA := Crossover(b, a, rand.New(rand.NewSource(99)))

	if len(childAB.Encoding) != len(a.Encoding) || len(childBA.Encoding) != len(a.Encoding) {
		t.Fatal("child encoding length must equal parent length")
	}
	if childAB.Generation != 4 || childBA.Generation != 4 {
		t.Fatalf("child generation: got %d/%d want 4", childAB.Generation, childBA.Generation)
	}

	// With the same breakpoint, the two children partition the loci
	// between the parents in complementary fashion.
	for i := range childAB.Encoding {
		pair := [2]Turn{childAB.Encoding[i], childBA.Encoding[i]}
		if pair != [2]Turn{Left, Right} && pair != [2]Turn{Right, Left} {
			t.Fatalf("locus %d not complementary: %v", i, pair)
		}
	}
}

func TestMutateZeroProbabilityIsIdentity(t *testing.T) {
	seq := mustSeq(t, "HPPHHPPH")
	c := New(seq)
	rng := rand.New(rand.NewSource(5))
	c.Randomize(rng)
	before := c.EncodingString()
	c.Mutate(0, rng)
	c.Refresh()
	if c.EncodingString() != before {
		t.Fatal("p=0 mutation changed the encoding")
	}
}

func TestSeedProducesValidWalks(t *testing.T) {
	seq := mustSeq(t, "HHHHHHHHHHHHPHPHPPHHPPHHPPHPPHHPPHHPPHPP")
	rng := rand.New(rand.NewSource(42))
	for i := 0; i < 10; i++ {
		c, err := Seed(seq, rng, 1000000)
		if err != nil {
			t.Fatalf("seed %d: %v", i, err)
		}
		if !c.Valid {
			t.Fatal("seeded conformation must be valid")
		}
		seen := make(map[Point]struct{}, len(c.Positions))
		for _, p := range c.Positions {
			if _, dup := seen[p]; dup {
				t.Fatalf("duplicate lattice cell %v in valid conformation", p)
			}
			seen[p] = struct{}{}
		}
	}
}

func TestEncodingStringRoundTrip(t *testing.T) {
	seq := mustSeq(t, "HPHPPHHPH")
	c := New(seq)
	rng := rand.New(rand.NewSource(9))
	c.Randomize(rng)

	turns, err := ParseEncoding(c.EncodingString())
	if err != nil {
		t.Fatalf("parse encoding: %v", err)
	}
	for i, tn := range turns {
		if tn != c.Encoding[i] {
			t.Fatalf("locus %d: got=%d want=%d", i, tn, c.Encoding[i])
		}
	}

	if _, err := ParseEncoding("FLX"); err == nil {
		t.Fatal("expected error for invalid turn symbol")
	}
}

func TestCloneDoesNotAlias(t *testing.T) {
	c := New(mustSeq(t, "HPPH"))
	clone := c.Clone()
	clone.Encoding[0] = Right
	if c.Encoding[0] == Right {
		t.Fatal("clone shares encoding storage with original")
	}
}

func TestRenderGrid(t *testing.T) {
	c := New(mustSeq(t, "HPPH"))
	c.Encoding = []Turn{Right, Right}
	c.Refresh()

	want := strings.Join([]string{
		"P-P",
		"| |",
		"H H",
	}, "\n") + "\n"
	if got := c.Render(); got != want {
		t.Fatalf("unexpected rendering:\n%q\nwant:\n%q", got, want)
	}
}
