// Package texttest provides a deterministic text measurer for tests.
package texttest

import (
	"unicode/utf8"

	"toybrowser/pkg/text"
)

// Fixed measures every rune as half the font size wide, with an ascent of
// 0.8 and a descent of 0.2 times the size. Bold adds one pixel per rune.
type Fixed struct {
	// Resolved counts Resolve calls per handle.
	Resolved map[text.Font]int
}

func New() *Fixed {
	return &Fixed{Resolved: make(map[text.Font]int)}
}

func (m *Fixed) Resolve(size int, weight text.Weight, slant text.Slant) text.Font {
	if size < 1 {
		size = 1
	}
	f := text.Font{Size: size, Weight: weight, Slant: slant}
	m.Resolved[f]++
	return f
}

func (m *Fixed) Measure(f text.Font, s string) float64 {
	perRune := float64(f.Size) / 2
	if f.Weight == text.Bold {
		perRune++
	}
	return perRune * float64(utf8.RuneCountInString(s))
}

func (m *Fixed) Metrics(f text.Font) text.Metrics {
	size := float64(f.Size)
	return text.Metrics{Ascent: size * 0.8, Descent: size * 0.2, Linespace: size}
}
