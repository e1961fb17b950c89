package config

import "testing"

func TestValidate_InvalidPort(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 0},
		Index: IndexConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.Embedding.APIType = "openai"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid port")
	}
}

func TestValidate_MissingIndexAddrs(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Addrs: []string{}},
	}
	cfg.Embedding.APIType = "openai"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for missing index addrs")
	}
}

func TestValidate_InvalidAPIType(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.Embedding.APIType = "anthropic"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for invalid api type")
	}

	expected := `embedding.api_type must be "openai" or "azure", got "anthropic"`
	if err.Error() != expected {
		t.Errorf("unexpected error message:\ngot:  %q\nwant: %q", err.Error(), expected)
	}
}

func TestValidate_AzureRequiresBaseURL(t *testing.T) {
	cfg := Config{
		HTTP:  HTTPConfig{Port: 8080},
		Index: IndexConfig{Addrs: []string{"localhost:6379"}},
	}
	cfg.Embedding.APIType = "azure"

	err := cfg.Validate()
	if err == nil {
		t.Fatal("expected error for azure without base_url")
	}

	cfg.Embedding.BaseURL = "https://example.openai.azure.com"
	if err := cfg.Validate(); err != nil {
		t.Fatalf("unexpected error with base_url set: %v", err)
	}
}

func TestApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 10 {
		t.Errorf("expected ReadTimeoutSec=10, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 10 {
		t.Errorf("expected WriteTimeoutSec=10, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.HTTP.ShutdownSec != 10 {
		t.Errorf("expected ShutdownSec=10, got %d", cfg.HTTP.ShutdownSec)
	}
	if cfg.Index.Name != "documents" {
		t.Errorf("expected Name='documents', got %q", cfg.Index.Name)
	}
	if cfg.Index.ReadinessTimeout != 10 {
		t.Errorf("expected ReadinessTimeout=10, got %d", cfg.Index.ReadinessTimeout)
	}
	if cfg.Search.TopK != 5 {
		t.Errorf("expected TopK=5, got %d", cfg.Search.TopK)
	}
	if cfg.Embedding.APIType != "openai" {
		t.Errorf("expected APIType='openai', got %q", cfg.Embedding.APIType)
	}
	if cfg.Embedding.Model != "text-embedding-3-small" {
		t.Errorf("expected default model, got %q", cfg.Embedding.Model)
	}
}

func TestApplyDefaults_NoOverride(t *testing.T) {
	cfg := Config{
		HTTP:   HTTPConfig{ReadTimeoutSec: 30, WriteTimeoutSec: 60, ShutdownSec: 5},
		Index:  IndexConfig{Name: "custom", ReadinessTimeout: 15},
		Search: SearchConfig{TopK: 20},
	}
	cfg.ApplyDefaults()

	if cfg.HTTP.ReadTimeoutSec != 30 {
		t.Errorf("expected ReadTimeoutSec=30, got %d", cfg.HTTP.ReadTimeoutSec)
	}
	if cfg.HTTP.WriteTimeoutSec != 60 {
		t.Errorf("expected WriteTimeoutSec=60, got %d", cfg.HTTP.WriteTimeoutSec)
	}
	if cfg.Index.Name != "custom" {
		t.Errorf("expected Name='custom', got %q", cfg.Index.Name)
	}
	if cfg.Search.TopK != 20 {
		t.Errorf("expected TopK=20, got %d", cfg.Search.TopK)
	}
}

func TestExpandEnvVars(t *testing.T) {
	t.Setenv("DOCSEARCH_TEST_KEY", "s3cret")

	in := []byte("api_key: ${DOCSEARCH_TEST_KEY}\nport: ${DOCSEARCH_TEST_PORT:-8080}\n")
	out := string(expandEnvVars(in))

	if out != "api_key: s3cret\nport: 8080\n" {
		t.Errorf("unexpected expansion: %q", out)
	}
}
