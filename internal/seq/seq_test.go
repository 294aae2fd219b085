package seq

import "testing"

func TestSequenceDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	for i := 0; i < 1000; i++ {
		if x, y := a.Uint64(), b.Uint64(); x != y {
			t.Fatalf("draw %d differs: %d vs %d", i, x, y)
		}
	}
}

func TestSequenceSeedsDiffer(t *testing.T) {
	a := New(1)
	b := New(2)
	same := 0
	for i := 0; i < 100; i++ {
		if a.Uint64() == b.Uint64() {
			same++
		}
	}
	if same == 100 {
		t.Error("different seeds produced identical streams")
	}
}

func TestSequenceRange(t *testing.T) {
	s := New(7)
	tests := []struct {
		name   string
		lo, hi float64
	}{
		{name: "unit", lo: 0, hi: 1},
		{name: "negative", lo: -5, hi: -2},
		{name: "narrow", lo: 0.5, hi: 0.5000001},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for i := 0; i < 500; i++ {
				v := s.Range(tt.lo, tt.hi)
				if v < tt.lo || v >= tt.hi {
					t.Fatalf("Range(%v, %v) = %v, out of bounds", tt.lo, tt.hi, v)
				}
			}
		})
	}

	if got := s.Range(3, 3); got != 3 {
		t.Errorf("Range(3, 3) = %v, want 3", got)
	}
}

func TestSequenceJitter(t *testing.T) {
	s := New(9)
	for i := 0; i < 500; i++ {
		if v := s.Jitter(2); v < -2 || v >= 2 {
			t.Fatalf("Jitter(2) = %v, out of bounds", v)
		}
	}
}

func TestSequenceSplitDeterministic(t *testing.T) {
	a := New(42)
	b := New(42)
	ca1, ca2 := a.Split(), a.Split()
	cb1, cb2 := b.Split(), b.Split()

	for i := 0; i < 100; i++ {
		if ca1.Uint64() != cb1.Uint64() {
			t.Fatal("first children diverged")
		}
		if ca2.Uint64() != cb2.Uint64() {
			t.Fatal("second children diverged")
		}
	}
}
