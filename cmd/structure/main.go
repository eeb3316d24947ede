package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"swing-trading-bot/internal/export"
	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/marketdata"
	"swing-trading-bot/internal/store"
	"swing-trading-bot/internal/structure"
	"swing-trading-bot/internal/trace"

	"github.com/joho/godotenv"
)

func must(err error) {
	if err != nil {
		log.Fatal(err)
	}
}

func main() {
	_ = godotenv.Load()
	cfgPath := flag.String("config", "config.yaml", "path to config file")
	flag.Parse()

	cfg, err := store.LoadConfig(*cfgPath)
	must(err)
	must(logger.Init())
	must(trace.Init())

	ctx := context.Background()
	defer trace.Shutdown(ctx)

	src, err := loadBars(ctx, cfg)
	must(err)
	logger.Info(ctx, "Bars loaded", "symbol", cfg.Symbol, "bars", src.Len())

	points, err := structure.Detect(src)
	must(err)

	b, err := json.MarshalIndent(points, "", "  ")
	must(err)
	fmt.Println(string(b))

	svg := export.CandlestickSVG(src.Bars(), points, export.ChartOptions{
		Width:  cfg.Chart.Width,
		Height: cfg.Chart.Height,
		Title:  fmt.Sprintf("%s %s", cfg.Symbol, cfg.Timeframe),
	})
	must(os.WriteFile(cfg.Chart.Output, svg, 0o644))
	logger.Info(ctx, "Chart written", "path", cfg.Chart.Output, "points", len(points))
}

func loadBars(ctx context.Context, cfg *store.Config) (*marketdata.Slice, error) {
	if cfg.Data.Source == "csv" {
		return marketdata.LoadCSV(cfg.Data.CSVPath, cfg.TimeFrame())
	}
	start, err := cfg.StartTime()
	if err != nil {
		return nil, err
	}
	end, err := cfg.EndTime()
	if err != nil {
		return nil, err
	}
	client := marketdata.NewClient(cfg.Data.Endpoint)
	return client.Fetch(ctx, marketdata.Params{
		Symbol:    cfg.Symbol,
		TimeFrame: cfg.TimeFrame(),
		Start:     start,
		End:       end,
		Limit:     cfg.Data.Limit,
	})
}
