package config

import (
	"os"
	"strings"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	// Verify defaults
	if cfg.Server.Host != "0.0.0.0" {
		t.Errorf("Server.Host = %q, want %q", cfg.Server.Host, "0.0.0.0")
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 8080)
	}
	if cfg.Import.AutoMapDistance != 2 {
		t.Errorf("Import.AutoMapDistance = %d, want %d", cfg.Import.AutoMapDistance, 2)
	}
	if cfg.Import.SampleSize != 3 {
		t.Errorf("Import.SampleSize = %d, want %d", cfg.Import.SampleSize, 3)
	}
	if cfg.Import.MaxRows != 100 {
		t.Errorf("Import.MaxRows = %d, want %d", cfg.Import.MaxRows, 100)
	}
	if cfg.Import.MaxFileSize != 10485760 {
		t.Errorf("Import.MaxFileSize = %d, want %d", cfg.Import.MaxFileSize, 10485760)
	}
	if !cfg.Import.AutoMapHeaders {
		t.Error("Import.AutoMapHeaders should default to true")
	}
	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 30*time.Minute)
	}
	if cfg.Rate.RequestsPerMinute != 100 {
		t.Errorf("Rate.RequestsPerMinute = %d, want %d", cfg.Rate.RequestsPerMinute, 100)
	}
}

func TestLoad_OverrideDefaults(t *testing.T) {
	os.Setenv("SERVER_PORT", "9090")
	os.Setenv("IMPORT_AUTO_MAP_DISTANCE", "0")
	os.Setenv("IMPORT_ALLOW_CUSTOM_FIELDS", "false")
	os.Setenv("LOG_LEVEL", "debug")
	defer func() {
		os.Unsetenv("SERVER_PORT")
		os.Unsetenv("IMPORT_AUTO_MAP_DISTANCE")
		os.Unsetenv("IMPORT_ALLOW_CUSTOM_FIELDS")
		os.Unsetenv("LOG_LEVEL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.Port != 9090 {
		t.Errorf("Server.Port = %d, want %d", cfg.Server.Port, 9090)
	}
	if cfg.Import.AutoMapDistance != 0 {
		t.Errorf("Import.AutoMapDistance = %d, want %d", cfg.Import.AutoMapDistance, 0)
	}
	if cfg.Import.AllowCustomFields {
		t.Error("Import.AllowCustomFields should be overridden to false")
	}
	if cfg.Logging.Level != "debug" {
		t.Errorf("Logging.Level = %q, want %q", cfg.Logging.Level, "debug")
	}
}

func TestLoad_Duration(t *testing.T) {
	os.Setenv("SERVER_READ_TIMEOUT", "45s")
	os.Setenv("SESSION_TTL", "1h30m")
	defer func() {
		os.Unsetenv("SERVER_READ_TIMEOUT")
		os.Unsetenv("SESSION_TTL")
	}()

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Server.ReadTimeout != 45*time.Second {
		t.Errorf("Server.ReadTimeout = %v, want %v", cfg.Server.ReadTimeout, 45*time.Second)
	}
	if cfg.Session.TTL != 90*time.Minute {
		t.Errorf("Session.TTL = %v, want %v", cfg.Session.TTL, 90*time.Minute)
	}
}

func TestLoad_InvalidValue(t *testing.T) {
	os.Setenv("SERVER_PORT", "not-a-number")
	defer os.Unsetenv("SERVER_PORT")

	_, err := Load()
	if err == nil {
		t.Fatal("Load() expected error for non-numeric SERVER_PORT")
	}
}

func TestValidate_InvalidPort(t *testing.T) {
	cfg := validConfig()
	cfg.Server.Port = 99999

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid port")
	}
	if !strings.Contains(err.Error(), "SERVER_PORT") {
		t.Errorf("error should mention SERVER_PORT: %v", err)
	}
}

func TestValidate_NegativeDistance(t *testing.T) {
	cfg := validConfig()
	cfg.Import.AutoMapDistance = -1

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for negative distance")
	}
	if !strings.Contains(err.Error(), "IMPORT_AUTO_MAP_DISTANCE") {
		t.Errorf("error should mention IMPORT_AUTO_MAP_DISTANCE: %v", err)
	}
}

func TestValidate_InvalidLogLevel(t *testing.T) {
	cfg := validConfig()
	cfg.Logging.Level = "verbose"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error for invalid log level")
	}
	if !strings.Contains(err.Error(), "LOG_LEVEL") {
		t.Errorf("error should mention LOG_LEVEL: %v", err)
	}
}

func TestValidate_RateLimitDisabled(t *testing.T) {
	cfg := validConfig()
	cfg.Rate.Enabled = false
	cfg.Rate.RequestsPerMinute = 0

	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error = %v, want nil when rate limiting disabled", err)
	}
}

func TestValidate_APIKeyRequiredButEmpty(t *testing.T) {
	cfg := validConfig()
	cfg.Security.RequireAPIKey = true

	err := cfg.Validate()
	if err == nil {
		t.Fatal("Validate() expected error when auth enabled without keys")
	}
	if !strings.Contains(err.Error(), "API_KEYS") {
		t.Errorf("error should mention API_KEYS: %v", err)
	}
}

func TestLoad_CommaSeparatedSlice(t *testing.T) {
	os.Setenv("TRUSTED_PROXIES", "10.0.0.0/8, 172.16.0.0/12 , 192.168.0.0/16")
	defer os.Unsetenv("TRUSTED_PROXIES")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	expected := []string{"10.0.0.0/8", "172.16.0.0/12", "192.168.0.0/16"}
	if len(cfg.Security.TrustedProxies) != len(expected) {
		t.Fatalf("TrustedProxies length = %d, want %d", len(cfg.Security.TrustedProxies), len(expected))
	}
	for i, v := range expected {
		if cfg.Security.TrustedProxies[i] != v {
			t.Errorf("TrustedProxies[%d] = %q, want %q", i, cfg.Security.TrustedProxies[i], v)
		}
	}
}

func TestConfigString_MasksAPIKeys(t *testing.T) {
	cfg := validConfig()
	cfg.Security.APIKeys = []string{"super-secret-key"}

	str := cfg.String()
	if strings.Contains(str, "super-secret-key") {
		t.Error("String() should not include API key values")
	}
	if !strings.Contains(str, "[1 keys]") {
		t.Errorf("String() should report key count, got %q", str)
	}
}

func TestServerAddr(t *testing.T) {
	tests := []struct {
		host string
		port int
		want string
	}{
		{"", 8080, ":8080"},
		{"0.0.0.0", 8080, "0.0.0.0:8080"},
		{"127.0.0.1", 3000, "127.0.0.1:3000"},
		{"localhost", 443, "localhost:443"},
	}

	for _, tt := range tests {
		cfg := &ServerConfig{Host: tt.host, Port: tt.port}
		got := cfg.Addr()
		if got != tt.want {
			t.Errorf("Addr() with host=%q, port=%d = %q, want %q", tt.host, tt.port, got, tt.want)
		}
	}
}

func validConfig() *Config {
	return &Config{
		Server: ServerConfig{Port: 8080, ShutdownTimeout: time.Second},
		Import: ImportConfig{
			AutoMapDistance: 2,
			SampleSize:      3,
			MaxRows:         100,
			MaxFileSize:     1,
		},
		Session: SessionConfig{TTL: time.Minute, MaxActive: 10},
		Rate:    RateLimitConfig{Enabled: true, RequestsPerMinute: 100},
		Logging: LoggingConfig{Level: "info", Format: "text"},
	}
}
