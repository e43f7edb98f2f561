package config

import (
	"testing"
	"time"
)

func TestCanonicalizeEnvKey_UsesExistingCamelCaseKeys(t *testing.T) {
	existing := map[string]any{
		"postgres": map[string]any{
			"sslMode": "disable",
			"master": map[string]any{
				"userName": "user",
			},
		},
		"breedCatalog": map[string]any{
			"apiKey":   "",
			"cacheTTL": "12h",
		},
		"secretKey": map[string]any{
			"access": "",
		},
	}

	tests := []struct {
		envKey string
		want   string
	}{
		{envKey: "POSTGRES_SSLMODE", want: "postgres.sslMode"},
		{envKey: "POSTGRES_MASTER_USERNAME", want: "postgres.master.userName"},
		{envKey: "BREEDCATALOG_APIKEY", want: "breedCatalog.apiKey"},
		{envKey: "BREEDCATALOG_CACHETTL", want: "breedCatalog.cacheTTL"},
		{envKey: "SECRETKEY_ACCESS", want: "secretKey.access"},
		{envKey: "NEW_FEATURE_FLAG", want: "new.feature.flag"},
	}

	for _, tt := range tests {
		t.Run(tt.envKey, func(t *testing.T) {
			if got := canonicalizeEnvKey(tt.envKey, existing); got != tt.want {
				t.Fatalf("canonicalizeEnvKey(%q) = %q, want %q", tt.envKey, got, tt.want)
			}
		})
	}
}

func TestApplyDefaults_FillsMissingSections(t *testing.T) {
	cfg := &Config{}

	applyDefaults(cfg)

	if cfg.HTTP.MaxRequestBodySize != defaultMaxRequestBodySize {
		t.Fatalf("MaxRequestBodySize = %q, want %q", cfg.HTTP.MaxRequestBodySize, defaultMaxRequestBodySize)
	}
	if cfg.Auth.MinPasswordLength != 6 {
		t.Fatalf("MinPasswordLength = %d, want 6", cfg.Auth.MinPasswordLength)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("TokenTTL = %s, want 24h", cfg.Auth.TokenTTL)
	}
	if cfg.BreedCatalog.BaseURL != defaultBreedCatalogURL {
		t.Fatalf("BreedCatalog.BaseURL = %q", cfg.BreedCatalog.BaseURL)
	}
}

func TestApplyDefaults_KeepsExplicitValues(t *testing.T) {
	cfg := &Config{
		Auth: &AuthConfig{BcryptCost: 4, TokenTTL: time.Minute, MinPasswordLength: 10},
	}

	applyDefaults(cfg)

	if cfg.Auth.BcryptCost != 4 || cfg.Auth.TokenTTL != time.Minute || cfg.Auth.MinPasswordLength != 10 {
		t.Fatalf("explicit auth config overwritten: %+v", cfg.Auth)
	}
}

func TestValidate(t *testing.T) {
	valid := func() *Config {
		cfg := &Config{}
		cfg.SecretKey.Access = "s3cret"
		applyDefaults(cfg)

		return cfg
	}

	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr bool
	}{
		{name: "defaults with a secret", mutate: func(*Config) {}},
		{name: "missing secret", mutate: func(cfg *Config) { cfg.SecretKey.Access = " " }, wantErr: true},
		{name: "bcrypt cost too low", mutate: func(cfg *Config) { cfg.Auth.BcryptCost = 3 }, wantErr: true},
		{name: "bcrypt cost too high", mutate: func(cfg *Config) { cfg.Auth.BcryptCost = 32 }, wantErr: true},
		{name: "negative token ttl", mutate: func(cfg *Config) { cfg.Auth.TokenTTL = -time.Second }, wantErr: true},
		{name: "lowercase qr level", mutate: func(cfg *Config) { cfg.QRCode = &QRCodeConfig{ErrorCorrectionLevel: "q"} }},
		{name: "unknown qr level", mutate: func(cfg *Config) { cfg.QRCode = &QRCodeConfig{ErrorCorrectionLevel: "X"} }, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := valid()
			tt.mutate(cfg)

			err := cfg.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
