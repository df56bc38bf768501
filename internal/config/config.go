package config

import (
	"strings"

	"github.com/joho/godotenv"
	"github.com/rotisserie/eris"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// EnvPrefix prefixes every environment override, e.g. RECOUVREMENT_LIMITS_MAX_RATE.
const EnvPrefix = "RECOUVREMENT"

// Config holds the calculator settings.
type Config struct {
	Limits  LimitsConfig  `yaml:"limits" mapstructure:"limits"`
	Calc    CalcConfig    `yaml:"calc" mapstructure:"calc"`
	Tariffs TariffsConfig `yaml:"tariffs" mapstructure:"tariffs"`
	Log     LogConfig     `yaml:"log" mapstructure:"log"`
	OTel    OTelConfig    `yaml:"otel" mapstructure:"otel"`
}

// LimitsConfig bounds the inputs accepted by the tools.
type LimitsConfig struct {
	MaxPrincipal float64 `yaml:"max_principal" mapstructure:"max_principal"`
	MaxRate      float64 `yaml:"max_rate" mapstructure:"max_rate"`
	MaxYears     int     `yaml:"max_years" mapstructure:"max_years"`
}

// CalcConfig holds calculation defaults applied when a request is silent.
type CalcConfig struct {
	RoundAmounts bool `yaml:"round_amounts" mapstructure:"round_amounts"`
}

// TariffsConfig points at an optional YAML file overriding the built-in tables.
type TariffsConfig struct {
	File string `yaml:"file" mapstructure:"file"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level" mapstructure:"level"`
	Format string `yaml:"format" mapstructure:"format"`
}

// OTelConfig configures trace export.
type OTelConfig struct {
	Endpoint    string `yaml:"endpoint" mapstructure:"endpoint"`
	ServiceName string `yaml:"service_name" mapstructure:"service_name"`
}

// LoadConfig reads .env, recouvrement.yaml and the environment, in that order of precedence.
func LoadConfig() (*Config, error) {
	// .env is optional
	_ = godotenv.Load()

	v := viper.New()

	v.SetConfigName("recouvrement")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("limits.max_principal", 1e12)
	v.SetDefault("limits.max_rate", 200.0)
	v.SetDefault("limits.max_years", 100)
	v.SetDefault("calc.round_amounts", true)
	v.SetDefault("tariffs.file", "")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("otel.endpoint", "")
	v.SetDefault("otel.service_name", "mcp-recouvrement")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, eris.Wrap(err, "config: read file")
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, eris.Wrap(err, "config: unmarshal")
	}

	return &cfg, nil
}

// InitLogger builds the global zap logger from cfg.
func InitLogger(cfg LogConfig) error {
	var zapCfg zap.Config
	if cfg.Format == "console" {
		zapCfg = zap.NewDevelopmentConfig()
	} else {
		zapCfg = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return eris.Wrap(err, "config: parse log level")
	}
	zapCfg.Level.SetLevel(level)

	logger, err := zapCfg.Build()
	if err != nil {
		return eris.Wrap(err, "config: build logger")
	}
	zap.ReplaceGlobals(logger)

	return nil
}
