package marketdata

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"os"
	"strconv"
	"time"

	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/types"
)

const DefaultEndpoint = "https://data.alpaca.markets/v1beta3/crypto/us/bars"

// Params describes one remote bar request.
type Params struct {
	Symbol    string
	TimeFrame types.TimeFrame
	Start     time.Time
	End       time.Time
	Limit     int
}

// Client fetches OHLCV bars from the Alpaca crypto data API. No keys are
// required for crypto data; if APCA env credentials are present they are
// forwarded. Fetched series are cached per request for the process lifetime.
type Client struct {
	endpoint string
	http     *http.Client
	cache    *barCache
}

func NewClient(endpoint string) *Client {
	if endpoint == "" {
		endpoint = DefaultEndpoint
	}
	return &Client{
		endpoint: endpoint,
		http:     &http.Client{Timeout: 30 * time.Second},
		cache:    newBarCache(),
	}
}

type alpacaBar struct {
	T time.Time `json:"t"`
	O float64   `json:"o"`
	H float64   `json:"h"`
	L float64   `json:"l"`
	C float64   `json:"c"`
	V float64   `json:"v"`
}

type alpacaBarsResponse struct {
	Bars          map[string][]alpacaBar `json:"bars"`
	NextPageToken *string                `json:"next_page_token"`
}

// Fetch retrieves the full bar series for the request, following
// next_page_token pagination, and returns it as an in-memory source.
func (c *Client) Fetch(ctx context.Context, p Params) (*Slice, error) {
	if p.Limit <= 0 {
		p.Limit = 1000
	}
	key := cacheKey(p)
	if bars, ok := c.cache.get(key); ok {
		logger.Debug(ctx, "Bar cache hit", "symbol", p.Symbol, "count", len(bars))
		return NewSlice(bars, p.TimeFrame), nil
	}

	var (
		bars      []types.Bar
		pageToken string
	)
	for {
		page, next, err := c.fetchPage(ctx, p, pageToken)
		if err != nil {
			return nil, err
		}
		bars = append(bars, page...)
		if next == "" {
			break
		}
		pageToken = next
	}

	logger.Info(ctx, "Bars fetched",
		"symbol", p.Symbol,
		"timeframe", string(p.TimeFrame),
		"count", len(bars),
	)
	c.cache.put(key, bars)
	return NewSlice(bars, p.TimeFrame), nil
}

func (c *Client) fetchPage(ctx context.Context, p Params, pageToken string) ([]types.Bar, string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.buildURL(p, pageToken), nil)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	if key := os.Getenv("APCA_API_KEY_ID"); key != "" {
		req.Header.Set("APCA-API-KEY-ID", key)
		req.Header.Set("APCA-API-SECRET-KEY", os.Getenv("APCA_API_SECRET_KEY"))
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, "", fmt.Errorf("%w: unexpected status %d", ErrDataUnavailable, resp.StatusCode)
	}

	var payload alpacaBarsResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, "", fmt.Errorf("%w: %v", ErrDataUnavailable, err)
	}

	raw := payload.Bars[p.Symbol]
	bars := make([]types.Bar, 0, len(raw))
	for _, b := range raw {
		bars = append(bars, types.Bar{
			Timestamp: b.T,
			Open:      b.O,
			High:      b.H,
			Low:       b.L,
			Close:     b.C,
			Volume:    b.V,
		})
	}

	next := ""
	if payload.NextPageToken != nil {
		next = *payload.NextPageToken
	}
	return bars, next, nil
}

func (c *Client) buildURL(p Params, pageToken string) string {
	q := url.Values{}
	q.Set("limit", strconv.Itoa(p.Limit))
	q.Set("timeframe", string(p.TimeFrame))
	q.Set("symbols", p.Symbol)
	q.Set("start", p.Start.Format("2006-01-02"))
	q.Set("end", p.End.Format("2006-01-02"))
	if pageToken != "" {
		q.Set("page_token", pageToken)
	}
	return c.endpoint + "?" + q.Encode()
}

func cacheKey(p Params) string {
	return p.Symbol + "|" + string(p.TimeFrame) + "|" +
		p.Start.Format("2006-01-02") + "|" + p.End.Format("2006-01-02")
}
