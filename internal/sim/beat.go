package sim

import (
	"fmt"
	"math/big"
	"strconv"
	"strings"
)

// TicksPerBeat is the minimum beat resolution, a 192nd of a whole note.
// Every stored Beat is an exact multiple of this tick.
const TicksPerBeat = 192

// Beat is a position in musical time, stored as a count of 1/192-beat
// ticks. Comparison and equality are exact integer operations.
type Beat int64

// WholeBeat returns the beat at n whole beats.
func WholeBeat(n int64) Beat {
	return Beat(n * TicksPerBeat)
}

// Tick returns the smallest representable beat duration.
func Tick() Beat {
	return 1
}

// BeatFromString parses a decimal beat value and quantizes it to the
// nearest tick, rounding halves away from zero.
func BeatFromString(s string) (Beat, error) {
	r, ok := new(big.Rat).SetString(strings.TrimSpace(s))
	if !ok {
		return 0, fmt.Errorf("invalid beat value %q", s)
	}
	r.Mul(r, big.NewRat(TicksPerBeat, 1))
	num := new(big.Int).Lsh(r.Num(), 1)
	den := r.Denom()
	if num.Sign() >= 0 {
		num.Add(num, den)
	} else {
		num.Sub(num, den)
	}
	num.Quo(num, new(big.Int).Lsh(den, 1))
	return Beat(num.Int64()), nil
}

// String renders the beat as a decimal with up to three places,
// trailing zeros trimmed. One tick renders as "0.005", which parses
// back to exactly one tick.
func (b Beat) String() string {
	t := int64(b)
	neg := t < 0
	if neg {
		t = -t
	}
	whole := t / TicksPerBeat
	milli := ((t%TicksPerBeat)*1000 + TicksPerBeat/2) / TicksPerBeat
	if milli == 1000 {
		whole++
		milli = 0
	}
	out := strconv.FormatInt(whole, 10)
	if milli != 0 {
		out += strings.TrimRight(fmt.Sprintf(".%03d", milli), "0")
	}
	if neg {
		out = "-" + out
	}
	return out
}
