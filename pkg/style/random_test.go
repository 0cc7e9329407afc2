package style

import (
	"slices"
	"testing"
)

func TestRandomDeterministic(t *testing.T) {
	a, b := NewRand(7), NewRand(7)
	for range 50 {
		sa, err := Random(a, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		sb, err := Random(b, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if sa != sb {
			t.Fatalf("same seed produced %v and %v", sa, sb)
		}
	}
}

func TestRandomCandidates(t *testing.T) {
	rng := NewRand(1)
	colors := []string{"red", "#0f0", "rgb(0,0,255)"}
	sizes := []float64{3, 9}
	for range 100 {
		s, err := Random(rng, colors, sizes)
		if err != nil {
			t.Fatal(err)
		}
		if !slices.Contains(colors, s.Source) {
			t.Errorf("color %q not among candidates", s.Source)
		}
		if !slices.Contains(sizes, s.Size) {
			t.Errorf("size %v not among candidates", s.Size)
		}
	}
}

func TestRandomDefaults(t *testing.T) {
	rng := NewRand(3)
	for range 100 {
		s, err := Random(rng, nil, nil)
		if err != nil {
			t.Fatal(err)
		}
		if !IsNamed(s.Source) {
			t.Errorf("default color %q is not a catalog name", s.Source)
		}
		if s.Size < 5 || s.Size > 20 {
			t.Errorf("default size %v out of 5..20", s.Size)
		}
	}
}

func TestRandomInvalidCandidate(t *testing.T) {
	if _, err := Random(NewRand(1), []string{"nope"}, nil); err == nil {
		t.Error("Random with invalid color candidate expected error")
	}
	if _, err := Random(NewRand(1), nil, []float64{-1}); err == nil {
		t.Error("Random with invalid size candidate expected error")
	}
}

func TestRandomRGB(t *testing.T) {
	rng := NewRand(9)
	for range 50 {
		token := RandomRGB(rng)
		if _, err := ParseColor(token); err != nil {
			t.Errorf("RandomRGB produced unparsable %q: %v", token, err)
		}
	}
}
