package controllers_test

import (
	"testing"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/interface/controllers"
)

// execute разбирает аргументы новым контроллером и возвращает
// собранные параметры (nil, если запуск не состоялся)
func execute(t *testing.T, args ...string) (*controllers.RunParams, error) {
	t.Helper()

	var captured *controllers.RunParams
	controller := controllers.NewCLIController("test", func(params *controllers.RunParams) error {
		captured = params
		return nil
	})

	err := controller.ExecuteWithArgs(args)
	return captured, err
}

func TestCLIController_DefaultMode(t *testing.T) {
	params, err := execute(t, "scan.pdf")
	if err != nil {
		t.Fatalf("Unexpected error: %v", err)
	}

	if params == nil {
		t.Fatal("Expected the run callback to be called")
	}
	if params.ModeKind != entities.PlacementRename {
		t.Errorf("Expected rename mode by default, got %v", params.ModeKind)
	}
	if len(params.Inputs) != 1 || params.Inputs[0] != "scan.pdf" {
		t.Errorf("Expected inputs [scan.pdf], got %v", params.Inputs)
	}
	if params.DryRun {
		t.Error("Expected dry-run to be off by default")
	}
}

func TestCLIController_FlagMapping(t *testing.T) {
	tests := []struct {
		name   string
		args   []string
		verify func(t *testing.T, p *controllers.RunParams)
	}{
		{
			name: "Short dry-run flag",
			args: []string{"-n", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if !p.DryRun {
					t.Error("Expected dry-run to be on")
				}
			},
		},
		{
			name: "Inplace mode",
			args: []string{"--inplace", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if p.ModeKind != entities.PlacementInPlace {
					t.Errorf("Expected inplace mode, got %v", p.ModeKind)
				}
			},
		},
		{
			name: "Explicit rename mode",
			args: []string{"-r", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if p.ModeKind != entities.PlacementRename {
					t.Errorf("Expected rename mode, got %v", p.ModeKind)
				}
			},
		},
		{
			name: "Subdir mode with directory",
			args: []string{"-d", "out", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if p.ModeKind != entities.PlacementSubdir {
					t.Errorf("Expected subdir mode, got %v", p.ModeKind)
				}
				if p.Subdir != "out" {
					t.Errorf("Expected subdir out, got %q", p.Subdir)
				}
			},
		},
		{
			name: "Repeated verbosity",
			args: []string{"-v", "-v", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if p.Verbosity != 2 {
					t.Errorf("Expected verbosity 2, got %d", p.Verbosity)
				}
			},
		},
		{
			name: "Multiple inputs",
			args: []string{"a.pdf", "b.pdf", "c.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if len(p.Inputs) != 3 {
					t.Errorf("Expected 3 inputs, got %v", p.Inputs)
				}
			},
		},
		{
			name: "Engine override",
			args: []string{"--engine", "pdfcpu", "a.pdf"},
			verify: func(t *testing.T, p *controllers.RunParams) {
				if p.EngineName != "pdfcpu" {
					t.Errorf("Expected engine pdfcpu, got %q", p.EngineName)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := execute(t, tt.args...)
			if err != nil {
				t.Fatalf("Unexpected error: %v", err)
			}
			if params == nil {
				t.Fatal("Expected the run callback to be called")
			}
			tt.verify(t, params)
		})
	}
}

func TestCLIController_MutuallyExclusiveModes(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"Inplace and rename", []string{"-i", "-r", "a.pdf"}},
		{"Inplace and subdir", []string{"-i", "-d", "out", "a.pdf"}},
		{"Rename and subdir", []string{"-r", "-d", "out", "a.pdf"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			params, err := execute(t, tt.args...)
			if err == nil {
				t.Error("Expected an error for mutually exclusive flags")
			}
			if params != nil {
				t.Error("Expected the run callback not to be called")
			}
		})
	}
}

func TestCLIController_RequiresInput(t *testing.T) {
	params, err := execute(t)
	if err == nil {
		t.Error("Expected an error when no inputs are given")
	}
	if params != nil {
		t.Error("Expected the run callback not to be called")
	}
}
