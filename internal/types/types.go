package types

import "time"

// Bar is one OHLCV candle. Bars are immutable; their identity for indexing
// purposes is the position in the source sequence, not the timestamp.
type Bar struct {
	Timestamp                      time.Time
	Open, High, Low, Close, Volume float64
}

// CandleColor is the derived direction of a bar.
type CandleColor int

const (
	NoColor CandleColor = iota
	Up
	Down
)

func (c CandleColor) String() string {
	switch c {
	case Up:
		return "up"
	case Down:
		return "down"
	}
	return "none"
}

// Run tracks the current streak of same-colored bars.
type Run struct {
	Color  CandleColor
	Length int
}

type OrderType string

const (
	Long  OrderType = "long"
	Short OrderType = "short"
)

type PositionKind string

const (
	Basic    PositionKind = "basic"
	StopLoss PositionKind = "stop_loss"
)

type BotAction string

const (
	Buy  BotAction = "BUY"
	Sell BotAction = "SELL"
	Hold BotAction = "HOLD"
	Skip BotAction = "SKIP"
)

type TimeFrame string

const (
	OneMinute      TimeFrame = "1Min"
	FiveMinutes    TimeFrame = "5Min"
	FifteenMinutes TimeFrame = "15Min"
	OneHour        TimeFrame = "1H"
	FourHours      TimeFrame = "4H"
	OneDay         TimeFrame = "1D"
	OneMonth       TimeFrame = "1M"
)

// StructureKind tags a confirmed market-structure point.
type StructureKind string

const (
	StrongHigh StructureKind = "Strong High"
	StrongLow  StructureKind = "Strong Low"
)

// StructurePoint is a confirmed swing extremum. Immutable once emitted.
type StructurePoint struct {
	Kind  StructureKind `json:"type"`
	Time  time.Time     `json:"time"`
	Price float64       `json:"price"`
}

// TradeRecord is one executed bot action in chronological order.
type TradeRecord struct {
	Type  BotAction `json:"type"`
	Index int       `json:"idx"`
	Price float64   `json:"price"`
}

const (
	// SmallestInvest is the minimum position size the ledger accepts.
	SmallestInvest = 0.01
	// InvestLimit caps the total invested assets of a simulation.
	InvestLimit = 10000
)
