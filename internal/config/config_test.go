package config

import (
	"os"
	"reflect"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("MONGODB_URI", "mongodb://localhost:27017")
	t.Setenv("LLM_PROVIDER", "Dummy")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "5000" || cfg.DBName != "autoguide_ai" {
		t.Fatalf("unexpected defaults: port=%q db=%q", cfg.Port, cfg.DBName)
	}
	if cfg.LLMProvider != ProviderDummy {
		t.Fatalf("expected provider normalised to dummy, got %q", cfg.LLMProvider)
	}
	if cfg.OpenAIModel != "gpt-4.1-mini" {
		t.Fatalf("unexpected openai model %q", cfg.OpenAIModel)
	}
	if cfg.LLMTimeout() != 60*time.Second || cfg.CacheTTLDuration() != 300*time.Second {
		t.Fatalf("unexpected durations %v %v", cfg.LLMTimeout(), cfg.CacheTTLDuration())
	}
}

func TestLoad_RequiresMongoURI(t *testing.T) {
	t.Setenv("MONGODB_URI", "")
	os.Unsetenv("MONGODB_URI")
	t.Setenv("LLM_PROVIDER", "dummy")
	if _, err := Load(); err == nil {
		t.Fatalf("expected error without MONGODB_URI")
	}
}

func TestValidate_ProviderRequirements(t *testing.T) {
	const uri = "mongodb://localhost:27017"
	cases := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"openai without key", Config{MongoURI: uri, LLMProvider: ProviderOpenAI}, true},
		{"openai with key", Config{MongoURI: uri, LLMProvider: ProviderOpenAI, OpenAIAPIKey: "sk-test"}, false},
		{"vertex without project", Config{MongoURI: uri, LLMProvider: ProviderVertex}, true},
		{"vertex with project", Config{MongoURI: uri, LLMProvider: ProviderVertex, ProjectID: "p"}, false},
		{"embeddings without project", Config{MongoURI: uri, LLMProvider: ProviderOpenAI, OpenAIAPIKey: "sk-test", EmbeddingsEnabled: true}, true},
		{"dummy embeddings without project", Config{MongoURI: uri, LLMProvider: ProviderDummy, EmbeddingsEnabled: true}, false},
		{"missing mongo uri", Config{LLMProvider: ProviderDummy}, true},
		{"unknown provider", Config{MongoURI: uri, LLMProvider: "llama"}, true},
	}
	for _, tc := range cases {
		err := tc.cfg.Validate()
		if (err != nil) != tc.wantErr {
			t.Fatalf("%s: wantErr=%v got %v", tc.name, tc.wantErr, err)
		}
	}
}

func TestAllowedOrigins_DeduplicatesAndTrims(t *testing.T) {
	cfg := Config{
		FrontendURL: "https://autoguide.example.com/",
		CORSOrigins: " https://preview.example.com ,http://localhost:5173,,https://autoguide.example.com",
	}
	want := []string{
		"http://localhost:5173",
		"https://autoguide.example.com",
		"https://preview.example.com",
	}
	if got := cfg.AllowedOrigins(); !reflect.DeepEqual(got, want) {
		t.Fatalf("unexpected origins %v", got)
	}
}
