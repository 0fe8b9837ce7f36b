// Package rating computes NFL passer rating from a passing stat line.
//
// The default formula is the unclamped variant: each of the four components
// is left as computed, so a
// single week can rate below 0 or above 158.3. Options.Clamp applies the
// official NFL bounds of [0, 2.375] per component.
package rating

import (
	"errors"
	"fmt"
	"math"
)

const componentMax = 2.375

var (
	ErrInvalidInput = errors.New("invalid passing line")
	// ErrZeroAttempts is returned instead of a division by zero.
	ErrZeroAttempts = fmt.Errorf("%w: zero attempts", ErrInvalidInput)
)

// StatLine is one player's passing totals for a game or week.
type StatLine struct {
	Attempts      int `json:"attempts"`
	Completions   int `json:"completions"`
	Yards         int `json:"yards"`
	Touchdowns    int `json:"touchdowns"`
	Interceptions int `json:"interceptions"`
}

// Options selects the unclamped formula (zero value) or the official one,
// which limits each component to [0, 2.375].
type Options struct {
	Clamp bool
}

// Components holds the four per-attempt terms before averaging.
type Components struct {
	Completion   float64 `json:"completion"`
	Yards        float64 `json:"yards"`
	Touchdown    float64 `json:"touchdown"`
	Interception float64 `json:"interception"`
}

func (c Components) Rating() float64 {
	return ((c.Completion + c.Yards + c.Touchdown + c.Interception) / 6) * 100
}

func (c Components) clamped() Components {
	return Components{
		Completion:   clamp(c.Completion),
		Yards:        clamp(c.Yards),
		Touchdown:    clamp(c.Touchdown),
		Interception: clamp(c.Interception),
	}
}

// ComputeComponents returns the four terms for line, clamped when opts.Clamp
// is set.
func ComputeComponents(line StatLine, opts Options) (Components, error) {
	if line.Attempts == 0 {
		return Components{}, ErrZeroAttempts
	}
	if line.Attempts < 0 {
		return Components{}, fmt.Errorf("%w: negative attempts %d", ErrInvalidInput, line.Attempts)
	}
	att := float64(line.Attempts)
	c := Components{
		Completion:   (float64(line.Completions)/att - 0.3) * 5,
		Yards:        (float64(line.Yards)/att - 3.0) * 0.25,
		Touchdown:    (float64(line.Touchdowns) / att) * 20,
		Interception: componentMax - (25 * float64(line.Interceptions) / att),
	}
	if opts.Clamp {
		c = c.clamped()
	}
	return c, nil
}

// Compute returns the passer rating for line. Zero attempts give
// ErrZeroAttempts and negative attempts ErrInvalidInput; the result is never
// NaN or infinite.
func Compute(line StatLine, opts Options) (float64, error) {
	c, err := ComputeComponents(line, opts)
	if err != nil {
		return 0, err
	}
	return c.Rating(), nil
}

// CompletionPct is 100 * completions / attempts.
func CompletionPct(completions, attempts int) (float64, error) {
	if attempts == 0 {
		return 0, ErrZeroAttempts
	}
	if attempts < 0 {
		return 0, fmt.Errorf("%w: negative attempts %d", ErrInvalidInput, attempts)
	}
	return 100 * float64(completions) / float64(attempts), nil
}

func clamp(v float64) float64 {
	return math.Max(0, math.Min(componentMax, v))
}
