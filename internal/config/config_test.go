package config

import (
	"os"
	"reflect"
	"strings"
	"testing"
	"time"
)

// --- MustLoad ---

func TestMustLoad_PanicsOnInvalidConfig(t *testing.T) {
	t.Setenv("LOG_LEVEL", "verbose") // invalid -> Load() error
	defer func() {
		if r := recover(); r == nil {
			t.Fatalf("MustLoad should panic on invalid config")
		}
	}()
	_ = MustLoad()
}

func TestMustLoad_Success_NoPanic(t *testing.T) {
	defer func() {
		if r := recover(); r != nil {
			t.Fatalf("MustLoad should not panic on valid defaults, got: %v", r)
		}
	}()
	cfg := MustLoad()
	if cfg.APIBasePath == "" {
		t.Fatalf("unexpected empty config from MustLoad")
	}
}

// --- Load defaults ---

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}
	if cfg.Host != "" || cfg.Port != "5000" {
		t.Fatalf("listen defaults unexpected: host=%q port=%q", cfg.Host, cfg.Port)
	}
	if cfg.Addr() != ":5000" {
		t.Fatalf("Addr() = %q, want :5000", cfg.Addr())
	}
	if cfg.APIBasePath != "/" {
		t.Fatalf("API_BASE_PATH default expected '/', got %q", cfg.APIBasePath)
	}
	if cfg.DB.Driver != "sqlite" || cfg.DB.Path != "music.db" {
		t.Fatalf("db defaults unexpected: %+v", cfg.DB)
	}
	if cfg.RateRPS != 0 || cfg.RateBurst != 20 {
		t.Fatalf("rate defaults unexpected: rps=%v burst=%d", cfg.RateRPS, cfg.RateBurst)
	}
	if cfg.MaxBodyBytes != 1<<20 || cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("limits unexpected: %+v", cfg)
	}
	if !cfg.LogRedact || cfg.TrustedProxies != nil {
		t.Fatalf("logging/proxy defaults unexpected: %+v", cfg)
	}
	if cfg.OTEL.ServiceName != "open-music-api" {
		t.Fatalf("otel service default unexpected: %q", cfg.OTEL.ServiceName)
	}
}

// --- Load success + normalization + parsing ---

func TestLoad_Success_Overrides(t *testing.T) {
	// Server timeouts / sizes (valid)
	t.Setenv("HOST", " 127.0.0.1 ")
	t.Setenv("PORT", "8088")
	t.Setenv("READ_TIMEOUT", "2s")
	t.Setenv("READ_HEADER_TIMEOUT", "1s")
	t.Setenv("WRITE_TIMEOUT", "3s")
	t.Setenv("IDLE_TIMEOUT", "4s")
	t.Setenv("SHUTDOWN_TIMEOUT", "5s")
	t.Setenv("MAX_HEADER_BYTES", "8192")
	t.Setenv("MAX_BODY_BYTES", "2048")
	t.Setenv("GIN_MODE", "weird") // will normalize to "release"
	t.Setenv("TRUSTED_PROXIES", " 10.0.0.0/8 , , 127.0.0.1 ")

	// Logging / Docs
	t.Setenv("LOG_LEVEL", "warning") // will normalize to "warn"
	t.Setenv("LOG_PRETTY", "yes")
	t.Setenv("LOG_REDACT", "off")
	t.Setenv("SWAGGER_ENABLED", "on")
	t.Setenv("API_BASE_PATH", "api/v1/") // no leading slash + trailing slash -> "/api/v1"

	// Storage
	t.Setenv("DB_DRIVER", "POSTGRES")
	t.Setenv("DATABASE_URL", "postgres://u:p@db:5432/music")

	// Rate limiting (use invalids for parse to fall back to defaults)
	t.Setenv("RATE_RPS", "x")      // -> default 0
	t.Setenv("RATE_BURST", "nope") // -> default 20

	// Web protection
	t.Setenv("ENABLE_HSTS", "TRUE")
	t.Setenv("HSTS_MAX_AGE", "24h")

	// Idempotency
	t.Setenv("IDEMPOTENCY_TTL", "48h")

	// OTEL
	t.Setenv("OTEL_ENABLED", "1")
	t.Setenv("OTEL_EXPORTER_OTLP_ENDPOINT", "otel:4317")
	t.Setenv("OTEL_EXPORTER_OTLP_INSECURE", "0")
	t.Setenv("OTEL_SERVICE_NAME", "svc")
	t.Setenv("OTEL_TRACES_SAMPLER_ARG", "0.75")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	// Server
	if cfg.Host != "127.0.0.1" ||
		cfg.Port != "8088" ||
		cfg.ReadTimeout != 2*time.Second ||
		cfg.ReadHeaderTimeout != 1*time.Second ||
		cfg.WriteTimeout != 3*time.Second ||
		cfg.IdleTimeout != 4*time.Second ||
		cfg.ShutdownTimeout != 5*time.Second ||
		cfg.MaxHeaderBytes != 8192 ||
		cfg.MaxBodyBytes != 2048 ||
		cfg.GinMode != "release" {
		t.Fatalf("server fields unexpected: %+v", cfg)
	}
	if cfg.Addr() != "127.0.0.1:8088" {
		t.Fatalf("Addr() = %q", cfg.Addr())
	}
	if !reflect.DeepEqual(cfg.TrustedProxies, []string{"10.0.0.0/8", "127.0.0.1"}) {
		t.Fatalf("trusted proxies unexpected: %#v", cfg.TrustedProxies)
	}

	// Logging / Docs
	if cfg.LogLevel != "warn" || !cfg.LogPretty || cfg.LogRedact || !cfg.SwaggerEnabled || cfg.APIBasePath != "/api/v1" {
		t.Fatalf("logging/docs unexpected: %+v", cfg)
	}

	// Storage
	if cfg.DB.Driver != "postgres" || cfg.DB.URL != "postgres://u:p@db:5432/music" {
		t.Fatalf("db unexpected: %+v", cfg.DB)
	}

	// Rate limiting (parse fallback to defaults)
	if cfg.RateRPS != 0 || cfg.RateBurst != 20 {
		t.Fatalf("rate limiting unexpected: %+v", cfg)
	}

	// Web protection
	if !cfg.Security.EnableHSTS || cfg.Security.HSTSMaxAge != 24*time.Hour {
		t.Fatalf("security unexpected: %+v", cfg.Security)
	}

	// Idempotency
	if cfg.IdempotencyTTL != 48*time.Hour {
		t.Fatalf("idempotency ttl unexpected: %v", cfg.IdempotencyTTL)
	}

	// OTEL
	if !cfg.OTEL.Enabled || cfg.OTEL.Endpoint != "otel:4317" || cfg.OTEL.Insecure || cfg.OTEL.ServiceName != "svc" || cfg.OTEL.SampleRatio != 0.75 {
		t.Fatalf("otel unexpected: %+v", cfg.OTEL)
	}
}

// --- Load validations (each case triggers exactly one validation error) ---

func TestLoad_ValidationErrors(t *testing.T) {
	cases := []struct {
		name string
		env  map[string]string
		want string
	}{
		{"invalid LOG_LEVEL", map[string]string{"LOG_LEVEL": "verbose"}, "LOG_LEVEL"},
		{"empty PORT via spaces", map[string]string{"PORT": "   "}, "PORT must not be empty"},
		{"non-numeric PORT", map[string]string{"PORT": "http"}, "PORT must be a number"},
		{"PORT out of range", map[string]string{"PORT": "70000"}, "PORT must be a number"},
		{"non-positive timeouts", map[string]string{"READ_TIMEOUT": "0s"}, "timeouts must be positive"},
		{"shutdown timeout", map[string]string{"SHUTDOWN_TIMEOUT": "0s"}, "SHUTDOWN_TIMEOUT"},
		{"max header bytes <= 0", map[string]string{"MAX_HEADER_BYTES": "0"}, "MAX_HEADER_BYTES"},
		{"max body bytes <= 0", map[string]string{"MAX_BODY_BYTES": "-5"}, "MAX_BODY_BYTES"},
		{"empty DB_PATH", map[string]string{"DB_PATH": "   "}, "DB_PATH must not be empty"},
		{"postgres without url", map[string]string{"DB_DRIVER": "postgres"}, "DATABASE_URL"},
		{"unknown driver", map[string]string{"DB_DRIVER": "mysql"}, "DB_DRIVER"},
		{"rate rps negative", map[string]string{"RATE_RPS": "-1"}, "RATE_RPS"},
		{"rate burst < 1", map[string]string{"RATE_BURST": "0"}, "RATE_BURST"},
		{"hsts max age negative", map[string]string{"HSTS_MAX_AGE": "-1s"}, "HSTS_MAX_AGE"},
		{"idempotency ttl non-positive", map[string]string{"IDEMPOTENCY_TTL": "0s"}, "IDEMPOTENCY_TTL"},
		{"otel sample ratio out of range", map[string]string{"OTEL_TRACES_SAMPLER_ARG": "1.5"}, "OTEL_TRACES_SAMPLER_ARG"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			for k, v := range tc.env {
				t.Setenv(k, v)
			}
			if _, err := Load(); !containsErr(err, tc.want) {
				t.Fatalf("expected error containing %q, got: %v", tc.want, err)
			}
		})
	}
}

// --- helpers ---

func TestHelpers_getenv(t *testing.T) {
	t.Setenv("X_EMPTY", "")
	if getenv("X_EMPTY", "d") != "d" {
		t.Fatalf("getenv should fall back to default on empty var")
	}
	t.Setenv("X_SET", "val")
	if getenv("X_SET", "d") != "val" {
		t.Fatalf("getenv should read set value")
	}
}

func TestHelpers_getfloat_getint_getdur(t *testing.T) {
	t.Setenv("F_VALID", "3.14")
	if getfloat("F_VALID", 0) != 3.14 {
		t.Fatalf("getfloat parse failed")
	}
	t.Setenv("F_BAD", "nope")
	if getfloat("F_BAD", 1.23) != 1.23 {
		t.Fatalf("getfloat default on bad parse failed")
	}

	t.Setenv("I_VALID", "42")
	if getint("I_VALID", 0) != 42 {
		t.Fatalf("getint parse failed")
	}
	t.Setenv("I_BAD", "x")
	if getint("I_BAD", 7) != 7 {
		t.Fatalf("getint default on bad parse failed")
	}

	t.Setenv("D_VALID", "150ms")
	if getdur("D_VALID", time.Second) != 150*time.Millisecond {
		t.Fatalf("getdur parse failed")
	}
	t.Setenv("D_BAD", "zzz")
	if getdur("D_BAD", 2*time.Second) != 2*time.Second {
		t.Fatalf("getdur default on bad parse failed")
	}
}

func TestHelpers_getbool(t *testing.T) {
	for _, v := range []string{"1", "true", "TRUE", " yes ", "Y", "on", "On"} {
		t.Setenv("B_T", v)
		if !getbool("B_T", false) {
			t.Fatalf("getbool(%q) = false; want true", v)
		}
	}
	for _, v := range []string{"0", "false", "FALSE", " no ", "N", "off", "Off"} {
		t.Setenv("B_F", v)
		if getbool("B_F", true) {
			t.Fatalf("getbool(%q) = true; want false", v)
		}
	}
	// default on unset/empty/garbage
	t.Setenv("B_EMPTY", "")
	if !getbool("B_EMPTY", true) || getbool("B_EMPTY", false) {
		t.Fatalf("getbool default behavior unexpected")
	}
	t.Setenv("B_JUNK", "maybe")
	if !getbool("B_JUNK", true) {
		t.Fatalf("getbool should keep default on unknown value")
	}
}

func TestHelpers_splitCSV_and_normalizeBasePath(t *testing.T) {
	if out := splitCSV(""); out != nil {
		t.Fatalf("splitCSV empty should return nil")
	}
	if got := splitCSV(" a, ,b ,  c  ,"); !reflect.DeepEqual(got, []string{"a", "b", "c"}) {
		t.Fatalf("splitCSV mismatch: got %#v", got)
	}

	for in, want := range map[string]string{"": "/", "v1": "/v1", "/v1/": "/v1", " / ": "/", "/": "/"} {
		if got := normalizeBasePath(in); got != want {
			t.Fatalf("normalizeBasePath(%q) = %q, want %q", in, got, want)
		}
	}
}

// Ensure tests don't pick up the developer's shell env.
func TestMain(m *testing.M) {
	for _, k := range []string{"HOST", "PORT", "DB_DRIVER", "DB_PATH", "DATABASE_URL", "API_BASE_PATH", "RATE_RPS", "LOG_LEVEL"} {
		os.Unsetenv(k)
	}
	os.Exit(m.Run())
}

// containsErr reports whether err's message contains the given substring.
func containsErr(err error, want string) bool {
	if err == nil {
		return false
	}
	return strings.Contains(err.Error(), want)
}
