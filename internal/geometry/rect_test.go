package geometry

import "testing"

func TestRect_MaxEdges(t *testing.T) {
	r := RectAt(2, 3, 10, 20)
	if r.MaxX() != 12 {
		t.Errorf("MaxX: got %g, want 12", r.MaxX())
	}
	if r.MaxY() != 23 {
		t.Errorf("MaxY: got %g, want 23", r.MaxY())
	}
}

func TestRect_IsPointVisible(t *testing.T) {
	r := RectAt(2, 3, 10, 20)

	tests := []struct {
		name string
		p    Point
		want bool
	}{
		{"interior", Pt(5, 10), true},
		{"origin corner is inside", Pt(2, 3), true},
		{"max corner is outside", Pt(12, 23), false},
		{"right edge is outside", Pt(12, 10), false},
		{"bottom edge is outside", Pt(5, 23), false},
		{"left of origin", Pt(1.9, 10), false},
		{"above origin", Pt(5, 2.9), false},
		{"just inside max", Pt(11.9, 22.9), true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsPointVisible(tt.p); got != tt.want {
				t.Errorf("IsPointVisible(%v): got %v, want %v", tt.p, got, tt.want)
			}
		})
	}
}

func TestRect_IsRectVisible(t *testing.T) {
	r := RectAt(0, 0, 10, 10)

	tests := []struct {
		name  string
		other Rect
		want  bool
	}{
		{"itself", RectAt(0, 0, 10, 10), true},
		{"strict sub-rect", RectAt(2, 2, 4, 4), true},
		{"touching max edges", RectAt(5, 5, 5, 5), true},
		{"overhangs right", RectAt(5, 5, 6, 4), false},
		{"overhangs bottom", RectAt(5, 5, 4, 6), false},
		{"origin outside", RectAt(-1, 0, 4, 4), false},
		{"fully outside", RectAt(20, 20, 2, 2), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := r.IsRectVisible(tt.other); got != tt.want {
				t.Errorf("IsRectVisible(%v): got %v, want %v", tt.other, got, tt.want)
			}
		})
	}
}

func TestRect_IterPoint(t *testing.T) {
	r := RectAt(1, 1, 2, 3)

	tests := []struct {
		name string
		p    Point
		want Point
		ok   bool
	}{
		{"advances down the column", Pt(1, 1), Pt(1, 2), true},
		{"mid column", Pt(1, 2), Pt(1, 3), true},
		{"wraps to next column", Pt(1, 3), Pt(2, 1), true},
		{"last cell exhausts", Pt(2, 3), Point{}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := r.IterPoint(tt.p)
			if ok != tt.ok || got != tt.want {
				t.Errorf("IterPoint(%v): got %v, %v, want %v, %v", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestRect_IterPoint_VisitsEveryCellOnce(t *testing.T) {
	r := RectAt(0, 0, 3, 4)

	seen := map[Point]bool{r.Origin: true}
	p := r.Origin
	for {
		next, ok := r.IterPoint(p)
		if !ok {
			break
		}
		if seen[next] {
			t.Fatalf("IterPoint revisited %v", next)
		}
		seen[next] = true
		p = next
	}

	if len(seen) != 12 {
		t.Errorf("visited %d cells, want 12", len(seen))
	}
}

func TestRect_ScaledRounded(t *testing.T) {
	r := RectAt(1, 2, 3, 4).Scaled(2)
	if r != RectAt(2, 4, 6, 8) {
		t.Errorf("Scaled: got %v", r)
	}
	rr := RectAt(1.4, 2.6, 3.5, 4.4).Rounded()
	if rr != RectAt(1, 3, 4, 4) {
		t.Errorf("Rounded: got %v", rr)
	}
}
