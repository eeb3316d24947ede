package structure

import (
	"time"

	"swing-trading-bot/internal/interfaces"
	"swing-trading-bot/internal/types"
)

// detector state machine. A run of two same-colored candles is treated as
// confirmation that the prior extremum held: two down candles nominate a
// weak high, and the weak high hardens into a Strong High once a later
// two-candle up-run fails to exceed it. Lows mirror the logic. Confirmed
// kinds alternate by construction because the confirming transitions are
// the only emitting ones and each flips the side being looked for.
type state int

const (
	lookingHigh state = iota
	awaitHigh
	lookingLow
	awaitLow
)

// candidate is a weak (unconfirmed) extremum. Mutable while awaiting
// confirmation: a better extremum replaces it.
type candidate struct {
	time  time.Time
	price float64
}

// Detector consumes a bar stream sequentially and emits confirmed
// Strong High / Strong Low structure points. Not safe for concurrent
// use and not restartable; the scan is inherently sequential.
type Detector struct {
	state  state
	run    types.Run
	cand   *candidate
	points []types.StructurePoint

	// last two bars seen, for 2-run candidates and the 3-bar window
	prev1, prev2 types.Bar
	idx          int
}

func NewDetector() *Detector {
	return &Detector{state: lookingHigh}
}

// Step feeds one bar and returns the structure point confirmed by it,
// if any. At most one transition fires per bar.
func (d *Detector) Step(bar types.Bar) *types.StructurePoint {
	i := d.idx
	d.idx++

	color := ColorOf(bar)
	if color == types.NoColor {
		// Malformed bar: reset run counters and drop any pending candidate.
		// Without a candidate the await states have nothing to confirm, so
		// fall back to looking for a fresh nomination.
		d.run = types.Run{}
		d.cand = nil
		if d.state == awaitHigh {
			d.state = lookingHigh
		} else if d.state == awaitLow {
			d.state = lookingLow
		}
		d.push(bar)
		return nil
	}
	d.run = UpdateRun(d.run, color)

	var emitted *types.StructurePoint
	switch d.state {
	case lookingHigh:
		if color == types.Down && d.run.Length == 2 {
			d.cand = higherOfTwo(d.prev1, bar)
			d.state = awaitHigh
		}

	case awaitHigh:
		if color == types.Up && d.run.Length == 2 {
			if bar.High < d.cand.price {
				emitted = d.confirm(types.StrongHigh)
				d.state = lookingLow
			} else if i >= 2 {
				d.raiseCandidate(bar)
			}
		} else if color == types.Down && d.run.Length == 2 && i >= 2 {
			d.raiseCandidate(bar)
		}

	case lookingLow:
		if color == types.Up && d.run.Length == 2 {
			d.cand = lowerOfTwo(d.prev1, bar)
			d.state = awaitLow
		}

	case awaitLow:
		if color == types.Down && d.run.Length == 2 {
			if bar.Low > d.cand.price {
				emitted = d.confirm(types.StrongLow)
				d.state = lookingHigh
			} else if i >= 2 {
				d.lowerCandidate(bar)
			}
		} else if color == types.Up && d.run.Length == 2 && i >= 2 {
			d.lowerCandidate(bar)
		}
	}

	d.push(bar)
	return emitted
}

// Points returns all structure points confirmed so far, in order.
func (d *Detector) Points() []types.StructurePoint {
	return d.points
}

// Detect runs a fresh scan over the whole source.
func Detect(src interfaces.BarSource) ([]types.StructurePoint, error) {
	d := NewDetector()
	for i := 0; i < src.Len(); i++ {
		bar, err := src.At(i)
		if err != nil {
			return nil, err
		}
		d.Step(bar)
	}
	return d.Points(), nil
}

func (d *Detector) confirm(kind types.StructureKind) *types.StructurePoint {
	pt := types.StructurePoint{Kind: kind, Time: d.cand.time, Price: d.cand.price}
	d.points = append(d.points, pt)
	d.cand = nil
	return &pt
}

// raiseCandidate replaces the pending weak high when the 3-bar window
// ending at cur holds a strictly higher high.
func (d *Detector) raiseCandidate(cur types.Bar) {
	if w := windowMaxHigh(d.prev2, d.prev1, cur); w.price > d.cand.price {
		d.cand = w
	}
}

// lowerCandidate replaces the pending weak low when the 3-bar window
// ending at cur holds a strictly lower low.
func (d *Detector) lowerCandidate(cur types.Bar) {
	if w := windowMinLow(d.prev2, d.prev1, cur); w.price < d.cand.price {
		d.cand = w
	}
}

func (d *Detector) push(bar types.Bar) {
	d.prev2 = d.prev1
	d.prev1 = bar
}

// higherOfTwo picks the bar with the higher high out of a 2-run;
// ties go to the later bar.
func higherOfTwo(prev, cur types.Bar) *candidate {
	if cur.High >= prev.High {
		return &candidate{time: cur.Timestamp, price: cur.High}
	}
	return &candidate{time: prev.Timestamp, price: prev.High}
}

// lowerOfTwo picks the bar with the lower low out of a 2-run;
// ties go to the later bar.
func lowerOfTwo(prev, cur types.Bar) *candidate {
	if cur.Low <= prev.Low {
		return &candidate{time: cur.Timestamp, price: cur.Low}
	}
	return &candidate{time: prev.Timestamp, price: prev.Low}
}

// windowMaxHigh returns the extremum of the 3-bar window; the earliest
// bar wins ties.
func windowMaxHigh(bars ...types.Bar) *candidate {
	best := &candidate{time: bars[0].Timestamp, price: bars[0].High}
	for _, b := range bars[1:] {
		if b.High > best.price {
			best = &candidate{time: b.Timestamp, price: b.High}
		}
	}
	return best
}

// windowMinLow mirrors windowMaxHigh for lows.
func windowMinLow(bars ...types.Bar) *candidate {
	best := &candidate{time: bars[0].Timestamp, price: bars[0].Low}
	for _, b := range bars[1:] {
		if b.Low < best.price {
			best = &candidate{time: b.Timestamp, price: b.Low}
		}
	}
	return best
}
