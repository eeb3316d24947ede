package interfaces

import (
	"swing-trading-bot/internal/types"
)

// BarSource supplies an ordered, 0-indexed, random-access sequence of bars
// with a fixed length known up front.
type BarSource interface {
	Len() int
	At(i int) (types.Bar, error)
	TimeFrame() types.TimeFrame
}
