package model

import "testing"

func TestSeriesKey_String(t *testing.T) {
	tests := []struct {
		name string
		key  SeriesKey
		want string
	}{
		{
			name: "test.labelled.key",
			key: SeriesKey{Name: "realtime", Labels: Labels{
				{Name: "panel", Value: "cpu"},
				{Name: "env", Value: "dev"},
			}},
			want: "realtime{env=dev,panel=cpu}",
		},
		{
			name: "test.bare.key",
			key:  SeriesKey{Name: "realtime", Labels: Labels{}},
			want: "realtime{}",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.key.String(); got != tt.want {
				t.Errorf("String() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSeriesKey_Fingerprint(t *testing.T) {
	k1 := &SeriesKey{Name: "realtime", Labels: Labels{{Name: "env", Value: "dev"}, {Name: "panel", Value: "cpu"}}}
	k2 := &SeriesKey{Name: "realtime", Labels: Labels{{Name: "panel", Value: "cpu"}, {Name: "env", Value: "dev"}}}
	if k1.Fingerprint() != k2.Fingerprint() {
		t.Errorf("label order should not change fingerprint: %v != %v", k1.Fingerprint(), k2.Fingerprint())
	}

	k3 := &SeriesKey{Name: "realtime", Labels: Labels{{Name: "panel", Value: "mem"}}}
	if k1.Fingerprint() == k3.Fingerprint() {
		t.Errorf("different labels should not collide: %v", k1.Fingerprint())
	}
}

func TestSamples_Projections(t *testing.T) {
	s := Samples{{X: 0, Y: 5}, {X: 1, Y: 42}}
	xs, ys := s.Xs(), s.Ys()
	if len(xs) != 2 || xs[1] != 1 || ys[1] != 42 {
		t.Errorf("Xs/Ys = %v %v", xs, ys)
	}

	c := s.Clone()
	c[0].Y = 99
	if s[0].Y != 5 {
		t.Error("Clone should not share the backing array")
	}
	if Samples(nil).Clone() != nil {
		t.Error("Clone(nil) should stay nil")
	}
}
