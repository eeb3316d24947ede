package marketdata

import (
	"errors"
	"fmt"

	"swing-trading-bot/internal/interfaces"
	"swing-trading-bot/internal/types"
)

var (
	// ErrIndexOutOfRange is returned for bar lookups past available history.
	ErrIndexOutOfRange = errors.New("bar index out of range")
	// ErrDataUnavailable is returned when an upstream bar fetch fails.
	ErrDataUnavailable = errors.New("bar data unavailable")
)

// Slice is an in-memory bar source. It backs backtests and tests and is
// what the remote and CSV loaders produce.
type Slice struct {
	bars      []types.Bar
	timeFrame types.TimeFrame
}

func NewSlice(bars []types.Bar, tf types.TimeFrame) *Slice {
	return &Slice{bars: bars, timeFrame: tf}
}

func (s *Slice) Len() int { return len(s.bars) }

func (s *Slice) At(i int) (types.Bar, error) {
	if i < 0 || i >= len(s.bars) {
		return types.Bar{}, fmt.Errorf("%w: %d (len %d)", ErrIndexOutOfRange, i, len(s.bars))
	}
	return s.bars[i], nil
}

func (s *Slice) TimeFrame() types.TimeFrame { return s.timeFrame }

// Bars returns the backing bar slice. Callers must not mutate it.
func (s *Slice) Bars() []types.Bar { return s.bars }

// Closes extracts the closing-price series of a source.
func Closes(src interfaces.BarSource) ([]float64, error) {
	out := make([]float64, src.Len())
	for i := range out {
		bar, err := src.At(i)
		if err != nil {
			return nil, err
		}
		out[i] = bar.Close
	}
	return out, nil
}
