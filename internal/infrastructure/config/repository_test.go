package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/infrastructure/config"
)

func TestRepository_LoadMissingFileReturnsDefaults(t *testing.T) {
	repo := config.NewRepository()

	cfg, err := repo.Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Engine.Name != entities.EngineGhostscript {
		t.Errorf("Expected default engine ghostscript, got %q", cfg.Engine.Name)
	}
	if cfg.Shrink.Suffix != entities.DefaultSuffix {
		t.Errorf("Expected default suffix %q, got %q", entities.DefaultSuffix, cfg.Shrink.Suffix)
	}
	if cfg.Shrink.Ghostscript == nil {
		t.Fatal("Expected ghostscript settings to be populated")
	}
	if cfg.Shrink.Ghostscript.ColorResolution != 135 {
		t.Errorf("Expected default resolution 135, got %d", cfg.Shrink.Ghostscript.ColorResolution)
	}
}

func TestRepository_SaveAndLoadRoundtrip(t *testing.T) {
	repo := config.NewRepository()
	path := filepath.Join(t.TempDir(), "pdfshrink.yaml")

	original := entities.NewDefaultConfig()
	original.Engine.Name = entities.EnginePDFCPU
	original.Shrink.Suffix = "small"
	original.Shrink.Ghostscript.ColorResolution = 150
	original.Images.EnableJPEG = true
	original.Images.JPEGQuality = 35

	if err := repo.Save(path, original); err != nil {
		t.Fatalf("Failed to save config: %v", err)
	}

	loaded, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if loaded.Engine.Name != entities.EnginePDFCPU {
		t.Errorf("Expected engine pdfcpu, got %q", loaded.Engine.Name)
	}
	if loaded.Shrink.Suffix != "small" {
		t.Errorf("Expected suffix small, got %q", loaded.Shrink.Suffix)
	}
	if loaded.Shrink.Ghostscript.ColorResolution != 150 {
		t.Errorf("Expected resolution 150, got %d", loaded.Shrink.Ghostscript.ColorResolution)
	}
	if !loaded.Images.EnableJPEG || loaded.Images.JPEGQuality != 35 {
		t.Errorf("Expected JPEG settings to survive the roundtrip, got %+v", loaded.Images)
	}
}

func TestRepository_PartialFileKeepsDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfshrink.yaml")
	partial := "engine:\n  name: pdfcpu\n"
	if err := os.WriteFile(path, []byte(partial), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	repo := config.NewRepository()
	cfg, err := repo.Load(path)
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if cfg.Engine.Name != entities.EnginePDFCPU {
		t.Errorf("Expected engine pdfcpu, got %q", cfg.Engine.Name)
	}
	// Не указанные в файле поля остаются по умолчанию
	if cfg.Shrink.Suffix != entities.DefaultSuffix {
		t.Errorf("Expected default suffix, got %q", cfg.Shrink.Suffix)
	}
	if cfg.Output.LogFileName != "pdfshrink.log" {
		t.Errorf("Expected default log file name, got %q", cfg.Output.LogFileName)
	}
}

func TestRepository_InvalidYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "pdfshrink.yaml")
	if err := os.WriteFile(path, []byte("engine: [broken"), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	repo := config.NewRepository()
	if _, err := repo.Load(path); err == nil {
		t.Error("Expected an error for invalid YAML")
	}
}
