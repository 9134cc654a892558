package config

import (
	"errors"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	configFilePathENV = "CONFIG_FILE"
	tokenTelegramENV  = "TELEGRAM_TOKEN"
	databaseDSN       = "DATABASE_DSN"
)

type Config struct {
	Telegram struct {
		Token  string `mapstructure:"token"`
		ChatID int64  `mapstructure:"chat_id"`
	} `mapstructure:"telegram"`
	DB     string `mapstructure:"db_dsn"`
	Jaeger struct {
		Host string `mapstructure:"host"`
		Port int    `mapstructure:"port"`
	} `mapstructure:"jaeger"`

	Scan     ScanConfig     `mapstructure:"scan"`
	Universe UniverseConfig `mapstructure:"universe"`
	Risk     RiskConfig     `mapstructure:"risk"`
	Plan     PlanConfig     `mapstructure:"plan"`
	Macro    MacroConfig    `mapstructure:"macro"`
	Network  NetworkConfig  `mapstructure:"network"`
}

type ScanConfig struct {
	Interval       time.Duration `mapstructure:"interval"`
	CandleInterval string        `mapstructure:"candle_interval"`
	CandleLimit    int           `mapstructure:"candle_limit"`
	Concurrency    int           `mapstructure:"concurrency"`
	PumpThreshold  float64       `mapstructure:"pump_threshold"` // доля за один интервал, 0.03 = 3%
	RSIMin         float64       `mapstructure:"rsi_min"`
	RSIPeriod      int           `mapstructure:"rsi_period"`
	PivotLookback  int           `mapstructure:"pivot_lookback"`
	ClusterTol     float64       `mapstructure:"cluster_tolerance"`
	MaxLevels      int           `mapstructure:"max_levels"`
	Cooldown       time.Duration `mapstructure:"cooldown"`
}

type UniverseConfig struct {
	RefreshInterval time.Duration `mapstructure:"refresh_interval"`
	Backoff         time.Duration `mapstructure:"backoff"`
	QuoteAsset      string        `mapstructure:"quote_asset"`
	SeedFile        string        `mapstructure:"seed_file"`
}

type RiskConfig struct {
	DepositUSD       float64       `mapstructure:"deposit_usd"`
	RiskBps          float64       `mapstructure:"risk_bps"`
	RiskBpsFallback  float64       `mapstructure:"risk_bps_fallback"`
	MinNotionalUSD   float64       `mapstructure:"min_notional_usd"`
	MarginCapBps     float64       `mapstructure:"margin_cap_bps"`
	MaxOpenTotal     int           `mapstructure:"max_open_total"`
	MaxOpenPerSymbol int           `mapstructure:"max_open_per_symbol"`
	OpenTradeTTL     time.Duration `mapstructure:"open_trade_ttl"`
}

type PlanConfig struct {
	EntryMode        string  `mapstructure:"entry_mode"` // breakout | retest
	StopMode         string  `mapstructure:"stop_mode"`  // swing | volatility
	EntryOffsetRatio float64 `mapstructure:"entry_offset_ratio"`
	StopBufferRatio  float64 `mapstructure:"stop_buffer_ratio"`
	RRMultiple       float64 `mapstructure:"rr_multiple"`
	ATRPeriod        int     `mapstructure:"atr_period"`
	ATRMultiplier    float64 `mapstructure:"atr_multiplier"`
}

type MacroConfig struct {
	Symbol    string  `mapstructure:"symbol"`
	Interval  string  `mapstructure:"interval"`
	MaxChange float64 `mapstructure:"max_change"` // |изменение| выше — тик пропускаем целиком
}

type NetworkConfig struct {
	BaseURL   string        `mapstructure:"base_url"`
	WSBaseURL string        `mapstructure:"ws_base_url"`
	Timeout   time.Duration `mapstructure:"timeout"`
}

func NewConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath(".")

	setDefaults(v)

	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	configName := os.Getenv(configFilePathENV)
	if configName == "" {
		configName = "values_local"
	}
	v.SetConfigName(strings.TrimSuffix(configName, ".yaml"))
	if err := v.ReadInConfig(); err != nil {
		// без файла живём на дефолтах и env
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, err
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	if token := os.Getenv(tokenTelegramENV); token != "" {
		cfg.Telegram.Token = token
	}
	if dsn := os.Getenv(databaseDSN); dsn != "" {
		cfg.DB = dsn
	}

	return cfg, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("scan.interval", time.Minute)
	v.SetDefault("scan.candle_interval", "1m")
	v.SetDefault("scan.candle_limit", 60)
	v.SetDefault("scan.concurrency", 8)
	v.SetDefault("scan.pump_threshold", 0.03)
	v.SetDefault("scan.rsi_min", 70.0)
	v.SetDefault("scan.rsi_period", 14)
	v.SetDefault("scan.pivot_lookback", 3)
	v.SetDefault("scan.cluster_tolerance", 0.002)
	v.SetDefault("scan.max_levels", 6)
	v.SetDefault("scan.cooldown", 30*time.Minute)

	v.SetDefault("universe.refresh_interval", 24*time.Hour)
	v.SetDefault("universe.backoff", 5*time.Minute)
	v.SetDefault("universe.quote_asset", "USDT")
	v.SetDefault("universe.seed_file", "configs/seed_symbols.yaml")

	v.SetDefault("risk.deposit_usd", 1000.0)
	v.SetDefault("risk.risk_bps", 10.0)
	v.SetDefault("risk.risk_bps_fallback", 100.0)
	v.SetDefault("risk.min_notional_usd", 5.0)
	v.SetDefault("risk.margin_cap_bps", 5000.0)
	v.SetDefault("risk.max_open_total", 10)
	v.SetDefault("risk.max_open_per_symbol", 1)
	v.SetDefault("risk.open_trade_ttl", 4*time.Hour)

	v.SetDefault("plan.entry_mode", "breakout")
	v.SetDefault("plan.stop_mode", "swing")
	v.SetDefault("plan.entry_offset_ratio", 0.001)
	v.SetDefault("plan.stop_buffer_ratio", 0.002)
	v.SetDefault("plan.rr_multiple", 2.5)
	v.SetDefault("plan.atr_period", 14)
	v.SetDefault("plan.atr_multiplier", 1.5)

	v.SetDefault("macro.symbol", "BTCUSDT")
	v.SetDefault("macro.interval", "1h")
	v.SetDefault("macro.max_change", 0.02)

	v.SetDefault("network.base_url", "https://api.binance.com")
	v.SetDefault("network.ws_base_url", "wss://stream.binance.com:9443/ws")
	v.SetDefault("network.timeout", 10*time.Second)

	v.SetDefault("jaeger.host", "")
	v.SetDefault("jaeger.port", 6831)
}
