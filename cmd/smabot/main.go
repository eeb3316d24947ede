package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log"
	"os"

	"swing-trading-bot/internal/bot"
	"swing-trading-bot/internal/bot/botobs"
	"swing-trading-bot/internal/logger"
	"swing-trading-bot/internal/marketdata"
	"swing-trading-bot/internal/report"
	"swing-trading-bot/internal/store"
	"swing-trading-bot/internal/trace"
	"swing-trading-bot/internal/tradelog"

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
	reportPath := flag.String("report", "backtest.csv", "path for the backtest summary CSV")
	flag.Parse()

	cfg, err := store.LoadConfig(*cfgPath)
	must(err)
	must(logger.Init())
	must(trace.Init())

	ctx := context.Background()
	defer trace.Shutdown(ctx)

	if v := os.Getenv("TRADER_LOG_RETENTION_DAYS"); v != "" {
		var n int
		fmt.Sscanf(v, "%d", &n)
		_ = tradelog.CompressOlder(n)
	}

	src, err := loadBars(ctx, cfg)
	must(err)
	logger.Info(ctx, "Bars loaded", "symbol", cfg.Symbol, "bars", src.Len())

	sma, err := bot.NewSMABot(src, bot.Config{
		Name:            "sma-crossover",
		Symbol:          cfg.Symbol,
		ShortWindow:     cfg.Bot.ShortWindow,
		LongWindow:      cfg.Bot.LongWindow,
		StopLossPercent: cfg.Bot.StopLossPercent,
		Amount:          cfg.Bot.Amount,
		Balance:         cfg.Sim.Balance,
		Limit:           cfg.Sim.Limit,
		TaxRate:         cfg.Sim.TaxRate,
	})
	must(err)

	history, total, err := botobs.Wrap(sma).Run(ctx)
	must(err)

	b, err := json.MarshalIndent(history, "", "  ")
	must(err)
	fmt.Println(string(b))
	fmt.Printf("net P/L: %.2f\n", total)

	profits := sma.Management().Evaluate()
	must(report.WriteCSV(*reportPath, sma.Positions(), profits))
	logger.Info(ctx, "Backtest report written",
		"path", *reportPath, "trades", len(history), "net", total)
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
