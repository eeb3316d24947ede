package marketdata

import (
	"sync"

	"swing-trading-bot/internal/types"
)

// barCache keeps fetched bar series keyed by request so repeated runs in
// one process reuse the same history.
type barCache struct {
	series map[string][]types.Bar
	mu     sync.RWMutex
}

func newBarCache() *barCache {
	return &barCache{series: make(map[string][]types.Bar)}
}

func (bc *barCache) get(key string) ([]types.Bar, bool) {
	bc.mu.RLock()
	defer bc.mu.RUnlock()

	bars, ok := bc.series[key]
	return bars, ok
}

func (bc *barCache) put(key string, bars []types.Bar) {
	bc.mu.Lock()
	defer bc.mu.Unlock()

	bc.series[key] = bars
}
