package structure

import (
	"math"

	"swing-trading-bot/internal/types"
)

// ColorOf derives a bar's direction from close vs open. A doji
// (close == open) counts as Down. Bars with NaN open/close have no color.
func ColorOf(bar types.Bar) types.CandleColor {
	if math.IsNaN(bar.Open) || math.IsNaN(bar.Close) {
		return types.NoColor
	}
	if bar.Close > bar.Open {
		return types.Up
	}
	return types.Down
}

// UpdateRun advances the streak of same-colored bars: same color extends
// the run, a different color starts a fresh run of length 1. NoColor
// clears the run entirely.
func UpdateRun(run types.Run, color types.CandleColor) types.Run {
	if color == types.NoColor {
		return types.Run{}
	}
	if color == run.Color {
		run.Length++
		return run
	}
	return types.Run{Color: color, Length: 1}
}
