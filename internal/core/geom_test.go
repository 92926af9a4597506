package core

import "testing"

func TestBoxIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 15, 10, 10),
			expected: false,
		},
		{
			name:     "touching horizontal (no overlap)",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "feet on a top edge (no overlap)",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(0, 10, 10, 10),
			expected: false,
		},
		{
			name:     "contained box",
			a:        NewBox(0, 0, 20, 20),
			b:        NewBox(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "sub-pixel overlap",
			a:        NewBox(0, 0, 10, 10),
			b:        NewBox(9.5, 9.5, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() is not symmetric")
			}
		})
	}
}

func TestBoxEdges(t *testing.T) {
	b := NewBox(5, 10, 20, 15.5)

	if b.Right() != 25 {
		t.Errorf("Right() = %v, expected 25", b.Right())
	}
	if b.Bottom() != 25.5 {
		t.Errorf("Bottom() = %v, expected 25.5", b.Bottom())
	}
}

func TestVec(t *testing.T) {
	v := Vec{X: 1, Y: 2}.Add(Vec{X: 3, Y: -4})
	if v != (Vec{X: 4, Y: -2}) {
		t.Errorf("Add = %+v", v)
	}
	if d := v.Sub(Vec{X: 4, Y: -2}); d != (Vec{}) {
		t.Errorf("Sub = %+v", d)
	}
}

func TestRectEdges(t *testing.T) {
	r := NewRect(5, 10, 20, 15)

	if r.Right() != 25 {
		t.Errorf("Right() = %d, expected 25", r.Right())
	}
	if r.Bottom() != 25 {
		t.Errorf("Bottom() = %d, expected 25", r.Bottom())
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestLerp(t *testing.T) {
	if got := Lerp(-100, -20, 0.5); got != -60 {
		t.Errorf("Lerp midpoint = %v, expected -60", got)
	}
	if got := Lerp(3, 7, 0); got != 3 {
		t.Errorf("Lerp(0) = %v", got)
	}
	if !NearlyEqual(Lerp(3, 7, 1), 7, 1e-12) {
		t.Error("Lerp(1) should reach the upper bound")
	}
}
