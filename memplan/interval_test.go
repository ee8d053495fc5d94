package memplan

import "testing"

func TestLiveInterval_Intersects_ClosedEndpoints(t *testing.T) {
	v1 := &Value{Name: "a", Dims: []int64{1}, DType: DTypeInt8}
	v2 := &Value{Name: "b", Dims: []int64{1}, DType: DTypeInt8}

	cases := []struct {
		name string
		a, b *LiveInterval
		want bool
	}{
		{"overlapping ranges", &LiveInterval{v1, 0, 2}, &LiveInterval{v2, 1, 3}, true},
		{"shared endpoint counts", &LiveInterval{v1, 1, 3}, &LiveInterval{v2, 3, 4}, true},
		{"disjoint ranges", &LiveInterval{v1, 0, 2}, &LiveInterval{v2, 3, 4}, false},
		{"contained range", &LiveInterval{v1, 0, 5}, &LiveInterval{v2, 2, 3}, true},
		{"single-point ranges equal", &LiveInterval{v1, 2, 2}, &LiveInterval{v2, 2, 2}, true},
		{"single-point ranges apart", &LiveInterval{v1, 2, 2}, &LiveInterval{v2, 3, 3}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tc.a, tc.b, got, tc.want)
			}
			// intersection is symmetric
			if got := tc.b.Intersects(tc.a); got != tc.want {
				t.Errorf("%v.Intersects(%v) = %v, want %v", tc.b, tc.a, got, tc.want)
			}
		})
	}
}
