package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoad_DotEnvQuoting(t *testing.T) {
	dir := t.TempDir()
	content := "OPENAI_API_KEY='sk-\"quoted\"'\nOPENAI_BASE_URL=\"http://localhost:8080/v1\"\n"
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
	t.Chdir(dir)

	// godotenv never overrides variables that are already set. Setenv restores them afterwards.
	for _, key := range []string{"OPENAI_API_KEY", "OPENAI_BASE_URL"} {
		t.Setenv(key, "")
		os.Unsetenv(key)
	}

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	expected := `sk-"quoted"`
	if cfg.OpenAI.APIKey != expected {
		t.Errorf("Expected %s, got %s", expected, cfg.OpenAI.APIKey)
	}
	if cfg.OpenAI.BaseURL != "http://localhost:8080/v1" {
		t.Errorf("Expected local base url, got %s", cfg.OpenAI.BaseURL)
	}
}
