package usecases_test

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	infraRepos "github.com/FedericoStra/pdfshrink/internal/infrastructure/repositories"
	usecases "github.com/FedericoStra/pdfshrink/internal/usecase"
)

// fakeEngine пишет заданное содержимое в выходной файл или имитирует
// ошибку движка с частично записанным файлом
type fakeEngine struct {
	calls        int
	lastInput    string
	lastOutput   string
	fail         bool
	writePartial bool
	content      string
}

func (e *fakeEngine) Shrink(inputPath, outputPath string, s *entities.ShrinkSettings) (*entities.ShrinkResult, error) {
	e.calls++
	e.lastInput = inputPath
	e.lastOutput = outputPath

	result := &entities.ShrinkResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
	}

	if e.fail {
		if e.writePartial {
			_ = os.WriteFile(outputPath, []byte("partial"), 0644)
		}
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("%w: код возврата 1", entities.ErrEngineFailed)
		return result, result.Error
	}

	if err := os.WriteFile(outputPath, []byte(e.content), 0644); err != nil {
		result.State = entities.StateFailed
		result.Error = err
		return result, result.Error
	}

	if info, err := os.Stat(inputPath); err == nil {
		result.OriginalSize = info.Size()
	}
	result.CompressedSize = int64(len(e.content))
	result.State = entities.StateSucceeded
	result.CalculateCompressionRatio()
	return result, nil
}

// previewEngine — fakeEngine с поддержкой показа команды
type previewEngine struct {
	fakeEngine
}

func (e *previewEngine) Preview(inputPath, outputPath string, s *entities.ShrinkSettings) string {
	return fmt.Sprintf("gs -sOutputFile=%s %s", outputPath, inputPath)
}

func writeInput(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write test file: %v", err)
	}
	return path
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read %s: %v", path, err)
	}
	return string(data)
}

func newUseCase(out *bytes.Buffer) *usecases.ShrinkFileUseCase {
	return usecases.NewShrinkFileUseCase(infraRepos.NewFileSystemRepository(), nil, out)
}

func TestShrinkFileUseCase_DryRunPrintsWithoutSpawning(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &previewEngine{}
	opts := usecases.ShrinkOptions{
		Mode:   entities.NewRenameMode(entities.DefaultSuffix),
		DryRun: true,
	}

	result := uc.Execute(input, engine, opts)

	if result.State != entities.StateDryPrinted {
		t.Errorf("Expected state %v, got %v", entities.StateDryPrinted, result.State)
	}
	if engine.calls != 0 {
		t.Errorf("Expected no engine calls in dry-run, got %d", engine.calls)
	}
	expectedLine := fmt.Sprintf("gs -sOutputFile=%s %s\n", filepath.Join(dir, "scan.shrunk.pdf"), input)
	if out.String() != expectedLine {
		t.Errorf("Expected output %q, got %q", expectedLine, out.String())
	}
}

func TestShrinkFileUseCase_DryRunIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &previewEngine{}
	opts := usecases.ShrinkOptions{
		Mode:   entities.NewInPlaceMode(),
		DryRun: true,
	}

	uc.Execute(input, engine, opts)
	uc.Execute(input, engine, opts)

	lines := strings.Split(strings.TrimRight(out.String(), "\n"), "\n")
	if len(lines) != 2 {
		t.Fatalf("Expected 2 output lines, got %d", len(lines))
	}
	if lines[0] != lines[1] {
		t.Errorf("Expected identical dry-run lines, got %q and %q", lines[0], lines[1])
	}
	if readFile(t, input) != "original" {
		t.Error("Dry-run must not modify the input file")
	}
}

func TestShrinkFileUseCase_MissingInput(t *testing.T) {
	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &fakeEngine{}
	opts := usecases.ShrinkOptions{Mode: entities.NewRenameMode(entities.DefaultSuffix)}

	result := uc.Execute(filepath.Join(t.TempDir(), "missing.pdf"), engine, opts)

	if result.State != entities.StateResolutionError {
		t.Errorf("Expected state %v, got %v", entities.StateResolutionError, result.State)
	}
	if !errors.Is(result.Error, entities.ErrInputNotFound) {
		t.Errorf("Expected ErrInputNotFound, got %v", result.Error)
	}
	if engine.calls != 0 {
		t.Errorf("Expected no engine calls, got %d", engine.calls)
	}
}

func TestShrinkFileUseCase_RenameMode(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original content")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &fakeEngine{content: "small"}
	opts := usecases.ShrinkOptions{Mode: entities.NewRenameMode(entities.DefaultSuffix)}

	result := uc.Execute(input, engine, opts)

	if !result.Succeeded() {
		t.Fatalf("Expected success, got state %v, error %v", result.State, result.Error)
	}
	expectedOutput := filepath.Join(dir, "scan.shrunk.pdf")
	if result.OutputPath != expectedOutput {
		t.Errorf("Expected output path %q, got %q", expectedOutput, result.OutputPath)
	}
	if readFile(t, expectedOutput) != "small" {
		t.Error("Expected compressed content in the output file")
	}
	if readFile(t, input) != "original content" {
		t.Error("Rename mode must not modify the input file")
	}
}

func TestShrinkFileUseCase_InPlaceFailureKeepsOriginal(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original content")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &fakeEngine{fail: true, writePartial: true}
	opts := usecases.ShrinkOptions{Mode: entities.NewInPlaceMode()}

	result := uc.Execute(input, engine, opts)

	if result.Succeeded() {
		t.Fatal("Expected failure")
	}
	if !errors.Is(result.Error, entities.ErrEngineFailed) {
		t.Errorf("Expected ErrEngineFailed, got %v", result.Error)
	}
	if readFile(t, input) != "original content" {
		t.Error("Engine failure must never corrupt the original file")
	}
	if _, err := os.Stat(entities.TempPathFor(input)); !os.IsNotExist(err) {
		t.Error("Expected the partial temp file to be removed")
	}
}

func TestShrinkFileUseCase_InPlaceSuccessReplacesOriginal(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original content")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &fakeEngine{content: "compressed"}
	opts := usecases.ShrinkOptions{Mode: entities.NewInPlaceMode()}

	result := uc.Execute(input, engine, opts)

	if !result.Succeeded() {
		t.Fatalf("Expected success, got state %v, error %v", result.State, result.Error)
	}
	if engine.lastOutput != entities.TempPathFor(input) {
		t.Errorf("Expected engine to write to temp path, got %q", engine.lastOutput)
	}
	if readFile(t, input) != "compressed" {
		t.Error("Expected original file to be replaced with the compressed one")
	}
	if _, err := os.Stat(entities.TempPathFor(input)); !os.IsNotExist(err) {
		t.Error("Expected the temp file to be gone after replacement")
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("Failed to list directory: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("Expected only the original file to remain, got %d entries", len(entries))
	}
}

func TestShrinkFileUseCase_SubdirModeCreatesDirectory(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original")

	var out bytes.Buffer
	uc := newUseCase(&out)
	engine := &fakeEngine{content: "small"}
	opts := usecases.ShrinkOptions{Mode: entities.NewSubdirMode("shrunk")}

	result := uc.Execute(input, engine, opts)

	if !result.Succeeded() {
		t.Fatalf("Expected success, got state %v, error %v", result.State, result.Error)
	}
	expectedOutput := filepath.Join(dir, "shrunk", "scan.pdf")
	if result.OutputPath != expectedOutput {
		t.Errorf("Expected output path %q, got %q", expectedOutput, result.OutputPath)
	}
	if readFile(t, expectedOutput) != "small" {
		t.Error("Expected compressed content in the subdirectory")
	}
}

func TestShrinkFileUseCase_SubdirDryRunCreatesNothing(t *testing.T) {
	dir := t.TempDir()
	input := writeInput(t, dir, "scan.pdf", "original")

	var out bytes.Buffer
	uc := newUseCase(&out)
	opts := usecases.ShrinkOptions{
		Mode:   entities.NewSubdirMode("shrunk"),
		DryRun: true,
	}

	result := uc.Execute(input, &fakeEngine{}, opts)

	if result.State != entities.StateDryPrinted {
		t.Fatalf("Expected state %v, got %v", entities.StateDryPrinted, result.State)
	}
	if _, err := os.Stat(filepath.Join(dir, "shrunk")); !os.IsNotExist(err) {
		t.Error("Dry-run must not create the output subdirectory")
	}
}
