package store

import (
	"errors"
	"fmt"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"swing-trading-bot/internal/types"
)

type Config struct {
	Symbol    string `yaml:"symbol"`
	Timeframe string `yaml:"timeframe"`
	Start     string `yaml:"start"`
	End       string `yaml:"end"`
	Data      struct {
		Source   string `yaml:"source"` // remote | csv
		Endpoint string `yaml:"endpoint"`
		CSVPath  string `yaml:"csv_path"`
		Limit    int    `yaml:"limit"`
	} `yaml:"data"`
	Bot struct {
		ShortWindow     int     `yaml:"short_window"`
		LongWindow      int     `yaml:"long_window"`
		StopLossPercent float64 `yaml:"stop_loss_percent"`
		Amount          float64 `yaml:"amount"`
	} `yaml:"bot"`
	Sim struct {
		Balance float64 `yaml:"balance"`
		Limit   float64 `yaml:"limit"`
		TaxRate float64 `yaml:"tax_rate"`
	} `yaml:"sim"`
	Chart struct {
		Width  int    `yaml:"width"`
		Height int    `yaml:"height"`
		Output string `yaml:"output"`
	} `yaml:"chart"`
}

var validTimeframes = map[string]bool{
	string(types.OneMinute):      true,
	string(types.FiveMinutes):    true,
	string(types.FifteenMinutes): true,
	string(types.OneHour):        true,
	string(types.FourHours):      true,
	string(types.OneDay):         true,
	string(types.OneMonth):       true,
}

func (c *Config) Validate() error {
	if c.Symbol == "" {
		return errors.New("symbol cannot be empty")
	}
	if !validTimeframes[c.Timeframe] {
		return fmt.Errorf("invalid timeframe '%s'", c.Timeframe)
	}
	if c.Data.Source != "remote" && c.Data.Source != "csv" {
		return fmt.Errorf("invalid data.source '%s': must be 'remote' or 'csv'", c.Data.Source)
	}
	if c.Data.Source == "csv" && c.Data.CSVPath == "" {
		return errors.New("data.csv_path cannot be empty when data.source is 'csv'")
	}
	if _, err := c.StartTime(); err != nil {
		return fmt.Errorf("invalid start date '%s'", c.Start)
	}
	if _, err := c.EndTime(); err != nil {
		return fmt.Errorf("invalid end date '%s'", c.End)
	}
	if c.Bot.ShortWindow <= 0 || c.Bot.LongWindow <= 0 {
		return errors.New("bot window sizes must be positive")
	}
	if c.Bot.ShortWindow >= c.Bot.LongWindow {
		return fmt.Errorf("bot.short_window (%d) must be less than bot.long_window (%d)", c.Bot.ShortWindow, c.Bot.LongWindow)
	}
	if c.Bot.StopLossPercent <= 0 || c.Bot.StopLossPercent >= 100 {
		return fmt.Errorf("bot.stop_loss_percent must be between 0 and 100, got %.2f", c.Bot.StopLossPercent)
	}
	if c.Bot.Amount <= 0 {
		return fmt.Errorf("bot.amount must be positive, got %.4f", c.Bot.Amount)
	}
	if c.Sim.TaxRate < 0 || c.Sim.TaxRate > 1 {
		return fmt.Errorf("sim.tax_rate must be between 0 and 1, got %.2f", c.Sim.TaxRate)
	}
	return nil
}

func (c *Config) StartTime() (time.Time, error) {
	return time.Parse("2006-01-02", c.Start)
}

func (c *Config) EndTime() (time.Time, error) {
	return time.Parse("2006-01-02", c.End)
}

func (c *Config) TimeFrame() types.TimeFrame {
	return types.TimeFrame(c.Timeframe)
}

func LoadConfig(path string) (*Config, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, err
	}
	applyDefaults(&cfg)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func applyDefaults(c *Config) {
	if c.Data.Endpoint == "" {
		c.Data.Endpoint = "https://data.alpaca.markets/v1beta3/crypto/us/bars"
	}
	if c.Data.Source == "" {
		c.Data.Source = "remote"
	}
	if c.Data.Limit == 0 {
		c.Data.Limit = 1000
	}
	if c.Bot.ShortWindow == 0 {
		c.Bot.ShortWindow = 40
	}
	if c.Bot.LongWindow == 0 {
		c.Bot.LongWindow = 100
	}
	if c.Bot.StopLossPercent == 0 {
		c.Bot.StopLossPercent = 5.0
	}
	if c.Bot.Amount == 0 {
		c.Bot.Amount = 1.0
	}
	if c.Sim.Balance == 0 {
		c.Sim.Balance = 200
	}
	if c.Sim.Limit == 0 {
		c.Sim.Limit = types.InvestLimit
	}
	if c.Chart.Width == 0 {
		c.Chart.Width = 1400
	}
	if c.Chart.Height == 0 {
		c.Chart.Height = 600
	}
	if c.Chart.Output == "" {
		c.Chart.Output = "structure.svg"
	}
}
