package config

import (
	"fmt"
	"time"

	"github.com/kelseyhightower/envconfig"
)

// -----------------------------------------------------------------------------
// Environment variable configuration guidelines:
// - required: Values that differ between environments (port, DB connection,
//   chain endpoints, secrets)
// - default: Values common across all environments (intervals, caps, timeouts)
// -----------------------------------------------------------------------------

type Config struct {
	Server   ServerConfig
	DB       DBConfig
	CORS     CORSConfig
	Log      LogConfig
	JWT      JWTConfig
	Chain    ChainConfig
	ZenoPay  ZenoPayConfig
	Issuance IssuanceConfig
}

type ServerConfig struct {
	Port string `envconfig:"PORT" required:"true"`
}

type DBConfig struct {
	Host     string `envconfig:"DB_HOST" default:"localhost"`
	Port     string `envconfig:"DB_PORT" default:"5432"`
	User     string `envconfig:"DB_USER" required:"true"`
	Password string `envconfig:"DB_PASSWORD" required:"true"`
	DBName   string `envconfig:"DB_NAME" required:"true"`
	SSLMode  string `envconfig:"DB_SSL_MODE" default:"disable"`
}

type CORSConfig struct {
	AllowOrigins     []string      `envconfig:"CORS_ALLOW_ORIGINS" default:"http://localhost:3000"`
	AllowMethods     []string      `envconfig:"CORS_ALLOW_METHODS" default:"GET,POST,PUT,PATCH,DELETE,OPTIONS"`
	AllowHeaders     []string      `envconfig:"CORS_ALLOW_HEADERS" default:"Origin,Content-Type,Accept,Authorization,Idempotency-Key"`
	ExposeHeaders    []string      `envconfig:"CORS_EXPOSE_HEADERS" default:"Content-Length"`
	AllowCredentials bool          `envconfig:"CORS_ALLOW_CREDENTIALS" default:"true"`
	MaxAge           time.Duration `envconfig:"CORS_MAX_AGE" default:"12h"`
}

type LogConfig struct {
	Level      string `envconfig:"LOG_LEVEL" default:"info"`
	TimeFormat string `envconfig:"LOG_TIME_FORMAT" default:"2006-01-02 15:04:05.000"`
}

type JWTConfig struct {
	Secret   string        `envconfig:"JWT_SECRET" required:"true"`
	Duration time.Duration `envconfig:"JWT_DURATION" default:"24h"`
}

// ChainConfig describes the EVM endpoint and the nTZS token contract.
type ChainConfig struct {
	RPCURL           string        `envconfig:"CHAIN_RPC_URL" required:"true"`
	ChainID          int64         `envconfig:"CHAIN_ID" required:"true"`
	TokenContract    string        `envconfig:"TOKEN_CONTRACT" required:"true"`
	MinterPrivateKey string        `envconfig:"MINTER_PRIVATE_KEY" required:"true"`
	SafeAddress      string        `envconfig:"SAFE_ADDRESS" required:"true"`
	TokenDecimals    int           `envconfig:"TOKEN_DECIMALS" default:"18"`
	Confirmations    uint64        `envconfig:"CHAIN_CONFIRMATIONS" default:"1"`
	ReceiptTimeout   time.Duration `envconfig:"CHAIN_RECEIPT_TIMEOUT" default:"90s"`
}

type ZenoPayConfig struct {
	BaseURL       string        `envconfig:"ZENOPAY_BASE_URL" default:"https://zenoapi.com/api/payments"`
	APIKey        string        `envconfig:"ZENOPAY_API_KEY" required:"true"`
	WebhookSecret string        `envconfig:"ZENOPAY_WEBHOOK_SECRET" required:"true"`
	WebhookURL    string        `envconfig:"ZENOPAY_WEBHOOK_URL" default:""`
	Timeout       time.Duration `envconfig:"ZENOPAY_TIMEOUT" default:"15s"`
}

// IssuanceConfig holds the pipeline tuning knobs. Amounts are whole TZS.
type IssuanceConfig struct {
	DailyCapTZS       int64         `envconfig:"DAILY_CAP_TZS" default:"100000000"`
	SafeMintThreshold int64         `envconfig:"SAFE_MINT_THRESHOLD_TZS" default:"9000"`
	MintBatchSize     int           `envconfig:"MINT_BATCH_SIZE" default:"10"`
	MintTickInterval  time.Duration `envconfig:"MINT_TICK_INTERVAL" default:"1m"`
	MintTickBudget    time.Duration `envconfig:"MINT_TICK_BUDGET" default:"50s"`
	ReconcileGrace    time.Duration `envconfig:"RECONCILE_GRACE" default:"30s"`
	ReconcileBatch    int           `envconfig:"RECONCILE_BATCH_SIZE" default:"25"`
}

func (c *DBConfig) BuildDSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%s/%s?sslmode=%s",
		c.User, c.Password, c.Host, c.Port, c.DBName, c.SSLMode,
	)
}

func LoadConfig() (Config, error) {
	var cfg Config
	err := envconfig.Process("", &cfg)
	if err != nil {
		return Config{}, fmt.Errorf("failed to process env config: %w", err)
	}
	return cfg, nil
}

func NewTestConfig() Config {
	return Config{
		Server: ServerConfig{
			Port: "8889",
		},
		DB: DBConfig{
			Host:     "localhost",
			Port:     "15433",
			User:     "test",
			Password: "test",
			DBName:   "test_db",
			SSLMode:  "disable",
		},
		Log: LogConfig{
			Level:      "error",
			TimeFormat: "2006-01-02 15:04:05.000",
		},
		JWT: JWTConfig{
			Secret:   "test-secret",
			Duration: time.Hour,
		},
		Chain: ChainConfig{
			RPCURL:        "http://localhost:8545",
			ChainID:       31337,
			TokenContract: "0x0000000000000000000000000000000000001001",
			SafeAddress:   "0x0000000000000000000000000000000000001002",
			TokenDecimals: 18,
			Confirmations: 1,
		},
		Issuance: IssuanceConfig{
			DailyCapTZS:       100_000_000,
			SafeMintThreshold: 9000,
			MintBatchSize:     10,
			MintTickInterval:  time.Minute,
			MintTickBudget:    50 * time.Second,
			ReconcileGrace:    30 * time.Second,
			ReconcileBatch:    25,
		},
	}
}
