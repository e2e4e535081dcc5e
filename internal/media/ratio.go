package media

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Ratio is a width:height aspect ratio reduced to lowest terms.
type Ratio struct {
	W int
	H int
}

// DefaultRatio is used for embeds that do not declare a ratio.
var DefaultRatio = Ratio{W: 16, H: 9}

// ErrInvalidRatio is returned for ratios that are not two positive integers.
var ErrInvalidRatio = errors.New("media: invalid aspect ratio")

// ParseRatio accepts "W / H", "W/H" and "W:H".
func ParseRatio(s string) (Ratio, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return Ratio{}, nil
	}
	sep := "/"
	if !strings.Contains(s, sep) {
		sep = ":"
	}
	w, h, ok := strings.Cut(s, sep)
	if !ok {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	wi, err := strconv.Atoi(strings.TrimSpace(w))
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	hi, err := strconv.Atoi(strings.TrimSpace(h))
	if err != nil {
		return Ratio{}, fmt.Errorf("%w: %q", ErrInvalidRatio, s)
	}
	return NewRatio(wi, hi)
}

// NewRatio builds a normalised ratio.
func NewRatio(w, h int) (Ratio, error) {
	if w <= 0 || h <= 0 {
		return Ratio{}, fmt.Errorf("%w: %d / %d", ErrInvalidRatio, w, h)
	}
	g := gcd(w, h)
	return Ratio{W: w / g, H: h / g}, nil
}

// IsZero reports whether the ratio was never set.
func (r Ratio) IsZero() bool { return r.W == 0 || r.H == 0 }

// String renders the ratio in CSS aspect-ratio syntax.
func (r Ratio) String() string {
	if r.IsZero() {
		r = DefaultRatio
	}
	return strconv.Itoa(r.W) + " / " + strconv.Itoa(r.H)
}

func gcd(a, b int) int {
	for b != 0 {
		a, b = b, a%b
	}
	return a
}
