package similarity

import (
	"math"
	"testing"
)

func almostEqual(a, b float64) bool {
	return math.Abs(a-b) < 1e-9
}

func TestRatioIdentity(t *testing.T) {
	for _, s := range []string{"x", "Deep Learning for X", "résumé", "a b c"} {
		if got := Ratio(s, s); !almostEqual(got, 1.0) {
			t.Errorf("Ratio(%q, %q) = %f, want 1.0", s, s, got)
		}
	}
}

func TestRatioEmpty(t *testing.T) {
	if got := Ratio("", ""); !almostEqual(got, 1.0) {
		t.Errorf("Ratio of two empty strings = %f, want 1.0", got)
	}
	if got := Ratio("attention", ""); !almostEqual(got, 0.0) {
		t.Errorf(`Ratio("attention", "") = %f, want 0.0`, got)
	}
	if got := Ratio("", "attention"); !almostEqual(got, 0.0) {
		t.Errorf(`Ratio("", "attention") = %f, want 0.0`, got)
	}
}

func TestRatioSymmetric(t *testing.T) {
	pairs := [][2]string{
		{"Deep Lerning for X", "Deep Learning for X"},
		{"neural networks", "nueral netwroks"},
		{"completely", "different"},
	}
	for _, p := range pairs {
		ab, ba := Ratio(p[0], p[1]), Ratio(p[1], p[0])
		if !almostEqual(ab, ba) {
			t.Errorf("Ratio not symmetric for %q/%q: %f vs %f", p[0], p[1], ab, ba)
		}
	}
}

func TestRatioSmallEdits(t *testing.T) {
	tests := []struct {
		name string
		a, b string
	}{
		{"typo", "Deep Lerning for X", "Deep Learning for X"},
		{"case change", "ATTENTION IS ALL YOU NEED", "attention is all you need"},
		{"middle initial", "John A. Smith", "John Smith"},
		{"hyphenation", "state-of-the-art methods", "state of the art methods"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Ratio(tt.a, tt.b); got < 0.8 {
				t.Errorf("Ratio(%q, %q) = %f, want >= 0.8", tt.a, tt.b, got)
			}
		})
	}
}

func TestRatioDisjoint(t *testing.T) {
	if got := Ratio("quantum chromodynamics", "marketing survey methods"); got > 0.4 {
		t.Errorf("disjoint strings scored %f, want near 0", got)
	}
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"lowercase", "Deep Learning", "deep learning"},
		{"punctuation", "GANs: a survey!", "gans a survey"},
		{"whitespace", "  a \t b\n c ", "a b c"},
		{"accents", "Schrödinger's café", "schrodinger s cafe"},
		{"latex accent", `Schr{\"o}dinger`, "schrodinger"},
		{"latex command", `\emph{Deep} Learning`, "deep learning"},
		{"math mode", "$O(n^2)$ algorithms", "o n 2 algorithms"},
		{"nbsp tilde", "Smith~et~al", "smith et al"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Normalize(tt.in); got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}
