package marketdata

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"

	"swing-trading-bot/internal/types"
)

// csv column order: timestamp,open,high,low,close,volume
const csvColumns = 6

// LoadCSV reads a bar series from a local CSV export. The first row is
// expected to be a header and is skipped.
func LoadCSV(path string, tf types.TimeFrame) (*Slice, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = csvColumns

	// header
	if _, err := r.Read(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	var bars []types.Bar
	for line := 2; ; line++ {
		rec, err := r.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDataUnavailable, err)
		}
		bar, err := parseCSVBar(rec)
		if err != nil {
			return nil, fmt.Errorf("%w: line %d: %v", ErrDataUnavailable, line, err)
		}
		bars = append(bars, bar)
	}
	return NewSlice(bars, tf), nil
}

func parseCSVBar(rec []string) (types.Bar, error) {
	ts, err := parseTimestamp(rec[0])
	if err != nil {
		return types.Bar{}, err
	}
	vals := make([]float64, csvColumns-1)
	for i := 1; i < csvColumns; i++ {
		v, err := strconv.ParseFloat(rec[i], 64)
		if err != nil {
			return types.Bar{}, err
		}
		vals[i-1] = v
	}
	return types.Bar{
		Timestamp: ts,
		Open:      vals[0],
		High:      vals[1],
		Low:       vals[2],
		Close:     vals[3],
		Volume:    vals[4],
	}, nil
}

func parseTimestamp(s string) (time.Time, error) {
	for _, layout := range []string{time.RFC3339, "2006-01-02 15:04:05", "2006-01-02"} {
		if t, err := time.Parse(layout, s); err == nil {
			return t, nil
		}
	}
	return time.Time{}, fmt.Errorf("unparseable timestamp %q", s)
}
