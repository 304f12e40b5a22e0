package particle

import (
	"math"
	"math/rand"
	"testing"
)

// TestEvaluateKeyframes_Linear tests linear interpolation
func TestEvaluateKeyframes_Linear(t *testing.T) {
	keyframes := []Keyframe{
		{Time: 0, Value: 0},
		{Time: 2, Value: 100},
	}

	tests := []struct {
		name string
		t    float64
		want float64
	}{
		{"Start", 0.0, 0},
		{"Quarter", 0.5, 25},
		{"Half", 1.0, 50},
		{"End", 2.0, 100},
		{"Past end holds last value", 3.0, 100},
		{"Before start holds first value", -1.0, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := EvaluateKeyframes(keyframes, tt.t, Linear)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("EvaluateKeyframes(t=%v) = %v, want %v", tt.t, got, tt.want)
			}
		})
	}
}

// TestEvaluateKeyframes_HoldThenFade 模拟粒子的透明度曲线：保持后淡出
func TestEvaluateKeyframes_HoldThenFade(t *testing.T) {
	curve := Curve{
		Keyframes:     []Keyframe{{Time: 0, Value: 1}, {Time: 1.5, Value: 1}, {Time: 2.0, Value: 0}},
		Interpolation: Linear,
	}

	tests := []struct {
		age  float64
		want float64
	}{
		{0, 1},
		{1.0, 1},
		{1.5, 1},
		{1.75, 0.5},
		{2.0, 0},
		{2.5, 0},
	}

	for _, tt := range tests {
		got := curve.Sample(tt.age)
		if math.Abs(got-tt.want) > 0.0001 {
			t.Errorf("Sample(%v) = %v, want %v", tt.age, got, tt.want)
		}
	}
}

func TestEvaluateKeyframes_EdgeCases(t *testing.T) {
	t.Run("Empty keyframes", func(t *testing.T) {
		if got := EvaluateKeyframes(nil, 0.5, Linear); got != 0 {
			t.Errorf("EvaluateKeyframes(empty) = %v, want 0", got)
		}
	})

	t.Run("Single keyframe", func(t *testing.T) {
		got := EvaluateKeyframes([]Keyframe{{Time: 0, Value: 42}}, 0.5, Linear)
		if got != 42 {
			t.Errorf("EvaluateKeyframes(single) = %v, want 42", got)
		}
	})

	t.Run("Zero-length segment jumps to next value", func(t *testing.T) {
		kf := []Keyframe{{Time: 0, Value: 0}, {Time: 1, Value: 5}, {Time: 1, Value: 9}}
		if got := EvaluateKeyframes(kf, 1, Linear); got != 5 {
			t.Errorf("EvaluateKeyframes(t=1) = %v, want 5", got)
		}
	})
}

func TestEvaluateKeyframes_Interpolations(t *testing.T) {
	keyframes := []Keyframe{{Time: 0, Value: 0}, {Time: 1, Value: 100}}

	tests := []struct {
		interp Interpolation
		want   float64
	}{
		{Linear, 50},
		{EaseOut, 75},
		{Interpolation("UnknownMode"), 50},
	}

	for _, tt := range tests {
		t.Run(string(tt.interp), func(t *testing.T) {
			got := EvaluateKeyframes(keyframes, 0.5, tt.interp)
			if math.Abs(got-tt.want) > 0.0001 {
				t.Errorf("EvaluateKeyframes(%s, t=0.5) = %v, want %v", tt.interp, got, tt.want)
			}
		})
	}
}

func TestRandomInRange(t *testing.T) {
	rng := rand.New(rand.NewSource(1))

	t.Run("Basic range", func(t *testing.T) {
		for i := 0; i < 1000; i++ {
			got := RandomInRange(rng, -200, 200)
			if got < -200 || got > 200 {
				t.Fatalf("RandomInRange(-200, 200) = %v, out of range", got)
			}
		}
	})

	t.Run("Inverted range returns min", func(t *testing.T) {
		if got := RandomInRange(rng, 20, 10); got != 20 {
			t.Errorf("RandomInRange(20, 10) = %v, want 20", got)
		}
	})

	t.Run("Nil rng", func(t *testing.T) {
		got := RandomInRange(nil, 0.3, 0.5)
		if got < 0.3 || got > 0.5 {
			t.Errorf("RandomInRange(nil, 0.3, 0.5) = %v, out of range", got)
		}
	})
}

func TestRandomIntInRange_CoversBounds(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	seen := map[int]bool{}
	for i := 0; i < 2000; i++ {
		n := RandomIntInRange(rng, 15, 20)
		if n < 15 || n > 20 {
			t.Fatalf("RandomIntInRange(15, 20) = %d, out of range", n)
		}
		seen[n] = true
	}
	for n := 15; n <= 20; n++ {
		if !seen[n] {
			t.Errorf("value %d never produced", n)
		}
	}
}
