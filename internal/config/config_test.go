package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "8080" || cfg.MaxVocabSize != 2048 || cfg.DefaultTopK != 5 {
		t.Fatalf("unexpected defaults: %+v", cfg)
	}
	if cfg.EmbeddingsEnabled {
		t.Fatal("embeddings must be opt-in")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_PORT", "9999")
	t.Setenv("EMBEDDINGS_ENABLED", "true")
	t.Setenv("MAX_VOCAB_SIZE", "512")
	t.Setenv("CHUNK_SIZE", "not-a-number")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.APIPort != "9999" {
		t.Fatalf("API_PORT override ignored: %q", cfg.APIPort)
	}
	if !cfg.EmbeddingsEnabled {
		t.Fatal("EMBEDDINGS_ENABLED override ignored")
	}
	if cfg.MaxVocabSize != 512 {
		t.Fatalf("MAX_VOCAB_SIZE override ignored: %d", cfg.MaxVocabSize)
	}
	if cfg.ChunkSize != 900 {
		t.Fatalf("invalid int should keep fallback, got %d", cfg.ChunkSize)
	}
}

func TestLoadConfigFileOverlay(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := "api_port: \"7070\"\nollama_embed_model: test-embed\ndefault_top_k: 7\n"
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)
	t.Setenv("API_PORT", "6060")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if cfg.OllamaEmbedModel != "test-embed" || cfg.DefaultTopK != 7 {
		t.Fatalf("file overlay not applied: %+v", cfg)
	}
	if cfg.APIPort != "6060" {
		t.Fatalf("environment must win over file, got %q", cfg.APIPort)
	}
}

func TestLoadMissingConfigFileFails(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "absent.yaml"))
	if _, err := Load(); err == nil {
		t.Fatal("expected error for missing config file")
	}
}
