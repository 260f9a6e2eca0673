package config

import (
	"encoding/hex"
	"fmt"

	"github.com/caarlos0/env/v11"
)

// Config holds every secret and tunable the service needs. Loaded once in
// main and injected; nothing else reads the environment.
type Config struct {
	Port        string `env:"PORT" envDefault:"8080"`
	DatabaseURL string `env:"DATABASE_URL,required"`

	MidtransServerKey string `env:"MIDTRANS_SERVER_KEY,required"`
	ResendAPIKey      string `env:"RESEND_API_KEY,required"`

	// 256-bit AES key, hex encoded (64 chars).
	EncryptionKey string `env:"ENCRYPTION_KEY,required"`

	JWTSecret     string `env:"JWT_SECRET" envDefault:"dev-secret-please-change"`
	AdminPassword string `env:"ADMIN_PASSWORD,required"`

	// Operator mailbox that receives the new-order alert.
	AdminEmail string `env:"ADMIN_ALERT_EMAIL" envDefault:"gostickerhub1@gmail.com"`

	// Public base URL used for payment redirect targets and email links.
	SiteURL string `env:"SITE_URL" envDefault:"http://localhost:3000"`
}

func Load() (*Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return nil, err
	}
	if raw, err := hex.DecodeString(cfg.EncryptionKey); err != nil || len(raw) != 32 {
		return nil, fmt.Errorf("ENCRYPTION_KEY must be 64 hex chars (32 bytes)")
	}
	return &cfg, nil
}
