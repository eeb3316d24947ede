package export

import (
	"bytes"
	"fmt"
	"math"

	"swing-trading-bot/internal/types"
)

// ChartOptions controls the rendered candlestick chart.
type ChartOptions struct {
	Width  int
	Height int
	Title  string
}

const (
	marginLeft   = 50.0
	marginTop    = 30.0
	marginRight  = 30.0
	marginBottom = 40.0
)

// CandlestickSVG renders bars as a candlestick chart with the confirmed
// structure points marked: triangles at each Strong High/Low and a
// polyline connecting them. The output is a self-contained SVG document.
func CandlestickSVG(bars []types.Bar, points []types.StructurePoint, opts ChartOptions) []byte {
	if opts.Width <= 0 {
		opts.Width = 1400
	}
	if opts.Height <= 0 {
		opts.Height = 600
	}
	var b bytes.Buffer
	fmt.Fprintf(&b, "<svg xmlns='http://www.w3.org/2000/svg' width='%d' height='%d' viewBox='0 0 %d %d'>",
		opts.Width, opts.Height, opts.Width, opts.Height)
	b.WriteString("<rect width='100%' height='100%' fill='#0b0f17'/>")
	if opts.Title != "" {
		fmt.Fprintf(&b, "<text x='%d' y='20' fill='#c9d4e3' font-size='14'>%s</text>", opts.Width/2-60, opts.Title)
	}

	if len(bars) == 0 {
		b.WriteString("</svg>")
		return b.Bytes()
	}

	lo, hi := priceRange(bars)
	plotW := float64(opts.Width) - marginLeft - marginRight
	plotH := float64(opts.Height) - marginTop - marginBottom
	xStep := plotW / float64(len(bars))
	candleW := xStep * 0.7

	x := func(i int) float64 { return marginLeft + (float64(i)+0.5)*xStep }
	y := func(price float64) float64 {
		return marginTop + plotH - (price-lo)/(hi-lo+1e-9)*plotH
	}

	// candles
	for i, bar := range bars {
		color := "#2bbf6a"
		if bar.Close <= bar.Open {
			color = "#e5484d"
		}
		cx := x(i)
		fmt.Fprintf(&b, "<line x1='%.2f' y1='%.2f' x2='%.2f' y2='%.2f' stroke='%s' stroke-width='1'/>",
			cx, y(bar.High), cx, y(bar.Low), color)
		top := math.Max(bar.Open, bar.Close)
		bot := math.Min(bar.Open, bar.Close)
		fmt.Fprintf(&b, "<rect x='%.2f' y='%.2f' width='%.2f' height='%.2f' fill='%s'/>",
			cx-candleW/2, y(top), candleW, math.Max(y(bot)-y(top), 1), color)
	}

	// structure polyline + markers
	timeToX := barTimeIndex(bars)
	if len(points) > 1 {
		b.WriteString("<polyline fill='none' stroke='#59a6ff' stroke-width='1.5' points='")
		for i, pt := range points {
			if i > 0 {
				b.WriteByte(' ')
			}
			fmt.Fprintf(&b, "%.2f,%.2f", x(timeToX[pt.Time.UnixNano()]), y(pt.Price))
		}
		b.WriteString("'/>")
	}
	for _, pt := range points {
		cx, cy := x(timeToX[pt.Time.UnixNano()]), y(pt.Price)
		if pt.Kind == types.StrongHigh {
			fmt.Fprintf(&b, "<path d='M%.2f %.2f l6 10 h-12 z' fill='#2bbf6a'/>", cx, cy-12)
		} else {
			fmt.Fprintf(&b, "<path d='M%.2f %.2f l6 -10 h-12 z' fill='#e5484d'/>", cx, cy+12)
		}
	}

	b.WriteString("</svg>")
	return b.Bytes()
}

func priceRange(bars []types.Bar) (lo, hi float64) {
	lo, hi = bars[0].Low, bars[0].High
	for _, bar := range bars[1:] {
		if bar.Low < lo {
			lo = bar.Low
		}
		if bar.High > hi {
			hi = bar.High
		}
	}
	return lo, hi
}

func barTimeIndex(bars []types.Bar) map[int64]int {
	idx := make(map[int64]int, len(bars))
	for i, bar := range bars {
		idx[bar.Timestamp.UnixNano()] = i
	}
	return idx
}
