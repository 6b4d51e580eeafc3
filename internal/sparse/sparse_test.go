package sparse

import "testing"

func TestSet_InsertContains(t *testing.T) {
	s := NewSet(16)

	if s.Len() != 0 {
		t.Fatalf("new set has %d members", s.Len())
	}
	s.Insert(3)
	s.Insert(7)
	s.Insert(3) // duplicate

	if s.Len() != 2 {
		t.Errorf("Len = %d, want 2", s.Len())
	}
	for _, v := range []uint32{3, 7} {
		if !s.Contains(v) {
			t.Errorf("Contains(%d) = false", v)
		}
	}
	for _, v := range []uint32{0, 4, 15} {
		if s.Contains(v) {
			t.Errorf("Contains(%d) = true", v)
		}
	}
}

func TestSet_ContainsOutOfRange(t *testing.T) {
	s := NewSet(4)
	s.Insert(0)

	if s.Contains(4) || s.Contains(1000) {
		t.Error("Contains accepted a value beyond the capacity")
	}
}

func TestSet_ValuesInsertionOrder(t *testing.T) {
	s := NewSet(8)
	order := []uint32{5, 2, 7, 0}
	for _, v := range order {
		s.Insert(v)
	}

	got := s.Values()
	if len(got) != len(order) {
		t.Fatalf("Values has %d elements, want %d", len(got), len(order))
	}
	for i, v := range order {
		if got[i] != v {
			t.Errorf("Values[%d] = %d, want %d", i, got[i], v)
		}
	}
}

func TestSet_Clear(t *testing.T) {
	s := NewSet(8)
	s.Insert(1)
	s.Insert(2)
	s.Clear()

	if s.Len() != 0 {
		t.Errorf("Len after Clear = %d", s.Len())
	}
	if s.Contains(1) {
		t.Error("cleared member still present")
	}

	// Stale sparse slots must not resurrect members.
	s.Insert(2)
	if s.Contains(1) {
		t.Error("uninserted member present after reuse")
	}
	if !s.Contains(2) {
		t.Error("reinserted member missing")
	}
}

func TestSet_WorklistGrowth(t *testing.T) {
	// The ε-closure indexes Values while inserting; appended members must
	// be visible through the growing slice.
	s := NewSet(32)
	s.Insert(0)
	for i := 0; i < s.Len(); i++ {
		v := s.Values()[i]
		if v+1 < 32 {
			s.Insert(v + 1)
		}
	}
	if s.Len() != 32 {
		t.Errorf("worklist visited %d members, want 32", s.Len())
	}
}
