package internal

import (
	"strings"
	"testing"
	"time"
)

func validConfig() *Config {
	cfg := NewDefaultConfig()
	cfg.Telegram.Token = "123:abc"
	cfg.Telegram.AuthorizedUserID = 42
	return cfg
}

func TestDefaultConfig_ValidOnceTelegramIsSet(t *testing.T) {
	if err := validConfig().Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestTelegramConfig_RequiresTokenAndUser(t *testing.T) {
	cfg := validConfig()
	cfg.Telegram.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty token should fail")
	}

	cfg = validConfig()
	cfg.Telegram.AuthorizedUserID = 0
	if err := cfg.Validate(); err == nil {
		t.Error("missing authorized user should fail")
	}
}

func TestOllamaConfig_Validation(t *testing.T) {
	cfg := validConfig()
	cfg.Ollama.Host = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty host should fail")
	}

	cfg = validConfig()
	cfg.Ollama.Model = ""
	if err := cfg.Validate(); err == nil {
		t.Error("empty model should fail")
	}
}

func TestOllamaConfig_RequestTimeout(t *testing.T) {
	cfg := OllamaConfig{Timeout: 90}
	if got := cfg.RequestTimeout(); got != 90*time.Second {
		t.Errorf("RequestTimeout = %v", got)
	}
}

func TestHTTPConfig_PortRange(t *testing.T) {
	for _, port := range []int{0, -1, 70000} {
		cfg := validConfig()
		cfg.App.HTTP.Port = port
		if err := cfg.Validate(); err == nil {
			t.Errorf("port %d should fail", port)
		}
	}
}

func TestAuthConfig_DisabledMode(t *testing.T) {
	cfg := AuthConfig{Mode: "disabled", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("disabled mode should pass: %v", err)
	}
	if cfg.AuthEnabled() {
		t.Error("disabled mode should not be enabled")
	}
}

func TestAuthConfig_EmptyModeDefaultsDisabled(t *testing.T) {
	cfg := AuthConfig{Mode: "", Token: ""}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("empty mode should default to disabled: %v", err)
	}
	if cfg.Mode != AuthModeDisabled {
		t.Errorf("mode = %q, want %q", cfg.Mode, AuthModeDisabled)
	}
}

func TestAuthConfig_TokenModeValid(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: "mysecret"}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("token mode with token should pass: %v", err)
	}
	if !cfg.AuthEnabled() {
		t.Error("token mode should be enabled")
	}
}

func TestAuthConfig_TokenModeEmptyToken(t *testing.T) {
	cfg := AuthConfig{Mode: "token", Token: ""}
	err := cfg.Validate()
	if err == nil {
		t.Fatal("token mode with empty token should fail")
	}
	if !strings.Contains(err.Error(), "token is empty") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestAuthConfig_InvalidMode(t *testing.T) {
	cfg := AuthConfig{Mode: "magic", Token: "x"}
	if err := cfg.Validate(); err == nil {
		t.Fatal("invalid mode should fail validation")
	}
}

func TestFullConfig_AuthValidationCalled(t *testing.T) {
	cfg := validConfig()
	cfg.Auth.Mode = "token"
	cfg.Auth.Token = ""
	if err := cfg.Validate(); err == nil {
		t.Fatal("full validation should surface auth errors")
	}
}

func TestSessionsConfig_Durations(t *testing.T) {
	cfg := SessionsConfig{IdleTTLMinutes: 120, EvictionMinutes: 10}
	if got := cfg.IdleTTL(); got != 2*time.Hour {
		t.Errorf("IdleTTL = %v", got)
	}
	if got := cfg.EvictionInterval(); got != 10*time.Minute {
		t.Errorf("EvictionInterval = %v", got)
	}
}
