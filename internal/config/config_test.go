package config

import (
	"testing"
	"time"

	"github.com/riskibarqy/nfl-projections/internal/platform/logging"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("APP_ENV", "")
	t.Setenv("ROLLING_WINDOW", "")
	t.Setenv("DATA_DIR", "")
	t.Setenv("LOG_FORMAT", "")
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "false")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.AppEnv != EnvDev {
		t.Fatalf("unexpected AppEnv: %q", cfg.AppEnv)
	}
	if cfg.RollingWindow != 3 {
		t.Fatalf("unexpected RollingWindow: %d", cfg.RollingWindow)
	}
	if cfg.DataDir != "./data" {
		t.Fatalf("unexpected DataDir: %q", cfg.DataDir)
	}
	if cfg.RawCacheMaxAge != 24*time.Hour {
		t.Fatalf("unexpected RawCacheMaxAge: %s", cfg.RawCacheMaxAge)
	}
	if cfg.LogFormat != logging.FormatJSON {
		t.Fatalf("unexpected LogFormat: %q", cfg.LogFormat)
	}
	if cfg.PyroscopeAppName != cfg.ServiceName {
		t.Fatalf("expected PyroscopeAppName to default to ServiceName, got %q", cfg.PyroscopeAppName)
	}
}

func TestLoad_AppEnvValidation(t *testing.T) {
	t.Setenv("APP_ENV", "invalid")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for invalid APP_ENV")
	}
}

func TestLoad_RollingWindowBounds(t *testing.T) {
	for _, value := range []string{"0", "18", "three"} {
		t.Run(value, func(t *testing.T) {
			t.Setenv("APP_ENV", EnvDev)
			t.Setenv("ROLLING_WINDOW", value)
			if _, err := Load(); err == nil {
				t.Fatalf("expected error for ROLLING_WINDOW=%s", value)
			}
		})
	}
}

func TestLoad_PlayerStatsURLNeedsSeasonPlaceholder(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("NFLVERSE_PLAYER_STATS_URL", "https://example.com/stats.csv")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error for player stats url without placeholder")
	}

	t.Setenv("NFLVERSE_PLAYER_STATS_URL", "https://example.com/stats_%d.csv")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NflversePlayerStatsURL != "https://example.com/stats_%d.csv" {
		t.Fatalf("unexpected NflversePlayerStatsURL: %q", cfg.NflversePlayerStatsURL)
	}
}

func TestLoad_UptraceRequiresDSNWhenEnabled(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when UPTRACE_ENABLED=true without UPTRACE_DSN")
	}
}

func TestLoad_UptraceDSNFromOTLPHeaders(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "true")
	t.Setenv("UPTRACE_DSN", "")
	t.Setenv("OTEL_EXPORTER_OTLP_HEADERS", "uptrace-dsn='https://token@api.uptrace.dev/1'")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.UptraceDSN != "https://token@api.uptrace.dev/1" {
		t.Fatalf("unexpected UptraceDSN: %q", cfg.UptraceDSN)
	}
}

func TestLoad_PyroscopeRequiresServerAddress(t *testing.T) {
	t.Setenv("APP_ENV", EnvDev)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("PYROSCOPE_ENABLED", "true")
	t.Setenv("PYROSCOPE_SERVER_ADDRESS", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when PYROSCOPE_ENABLED=true without PYROSCOPE_SERVER_ADDRESS")
	}
}

func TestLoad_PostgresRequiresExplicitURLInProd(t *testing.T) {
	t.Setenv("APP_ENV", EnvProd)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("POSTGRES_ENABLED", "true")
	t.Setenv("DB_URL", "")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error when POSTGRES_ENABLED=true without DB_URL in prod")
	}
}

func TestLoad_NflverseSettings(t *testing.T) {
	t.Setenv("APP_ENV", EnvStage)
	t.Setenv("UPTRACE_ENABLED", "false")
	t.Setenv("NFLVERSE_TIMEOUT", "45s")
	t.Setenv("NFLVERSE_MAX_RETRIES", "4")
	t.Setenv("NFLVERSE_CIRCUIT_FAILURE_COUNT", "0")

	if _, err := Load(); err == nil {
		t.Fatalf("expected error for NFLVERSE_CIRCUIT_FAILURE_COUNT=0")
	}

	t.Setenv("NFLVERSE_CIRCUIT_FAILURE_COUNT", "3")
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}
	if cfg.NflverseTimeout != 45*time.Second || cfg.NflverseMaxRetries != 4 || cfg.NflverseCircuitFailureCount != 3 {
		t.Fatalf("unexpected nflverse config: %+v", cfg)
	}
}
