package engines

import (
	"fmt"
	"os"
	"strings"

	"github.com/alessio/shellescape"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// DefaultGhostscriptBinary имя внешней программы Ghostscript
const DefaultGhostscriptBinary = "gs"

// GhostscriptEngine движок сжатия на основе внешнего Ghostscript.
// Вся работа по пересжатию выполняется подпроцессом; движок отвечает
// только за сборку вектора аргументов и интерпретацию кода возврата.
type GhostscriptEngine struct {
	binary   string
	executor repositories.CommandExecutor
	logger   repositories.Logger
}

// NewGhostscriptEngine создает новый Ghostscript движок
func NewGhostscriptEngine(binary string, executor repositories.CommandExecutor, logger repositories.Logger) *GhostscriptEngine {
	if binary == "" {
		binary = DefaultGhostscriptBinary
	}
	return &GhostscriptEngine{
		binary:   binary,
		executor: executor,
		logger:   logger,
	}
}

// BuildArgs собирает вектор аргументов для Ghostscript.
// Шаблон фиксированный: выбор устройства, уровень совместимости,
// даунсэмплинг цветных/серых/монохромных изображений и пути файлов.
func (g *GhostscriptEngine) BuildArgs(inputPath, outputPath string, s *entities.ShrinkSettings) []string {
	return []string{
		"-q",
		"-dBATCH",
		"-dSAFER",
		"-dNOPAUSE",
		"-sDEVICE=" + s.Device,
		"-dCompatibilityLevel=" + s.CompatibilityLevel,
		"-dPDFSETTINGS=" + s.PDFSettings,
		"-dAutoRotatePages=" + s.AutoRotatePages,
		"-dColorImageDownsampleType=" + s.DownsampleType,
		fmt.Sprintf("-dColorImageResolution=%d", s.ColorResolution),
		"-dGrayImageDownsampleType=" + s.DownsampleType,
		fmt.Sprintf("-dGrayImageResolution=%d", s.GrayResolution),
		"-dMonoImageDownsampleType=" + s.DownsampleType,
		fmt.Sprintf("-dMonoImageResolution=%d", s.MonoResolution),
		"-sOutputFile=" + outputPath,
		inputPath,
	}
}

// Preview возвращает экранированную командную строку для показа
// пользователю. Экранирование только для отображения: реальный запуск
// передает аргументы вектором.
func (g *GhostscriptEngine) Preview(inputPath, outputPath string, s *entities.ShrinkSettings) string {
	parts := []string{shellescape.Quote(g.binary)}
	for _, arg := range g.BuildArgs(inputPath, outputPath, s) {
		parts = append(parts, shellescape.Quote(arg))
	}
	return strings.Join(parts, " ")
}

// Shrink запускает Ghostscript и дожидается его завершения.
// Таймаута нет: движку разрешено работать сколь угодно долго.
func (g *GhostscriptEngine) Shrink(inputPath, outputPath string, s *entities.ShrinkSettings) (*entities.ShrinkResult, error) {
	result := &entities.ShrinkResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		State:      entities.StateCommandBuilt,
	}

	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		result.State = entities.StateResolutionError
		result.Error = fmt.Errorf("%w: %s", entities.ErrInputNotFound, inputPath)
		return result, result.Error
	}
	result.OriginalSize = originalInfo.Size()

	args := g.BuildArgs(inputPath, outputPath, s)
	if g.logger != nil {
		g.logger.Debug("Запуск: %s", g.Preview(inputPath, outputPath, s))
	}

	result.State = entities.StateSpawned
	output, err := g.executor.Run(g.binary, args)
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("%w (%s): %v", entities.ErrEngineSpawnFailed, g.binary, err)
		return result, result.Error
	}

	g.logOutput(output)

	if output.ExitCode != 0 {
		result.State = entities.StateFailed
		result.ExitCode = output.ExitCode
		result.Error = fmt.Errorf("%w: код возврата %d", entities.ErrEngineFailed, output.ExitCode)
		return result, result.Error
	}

	compressedInfo, err := os.Stat(outputPath)
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("движок завершился успешно, но выходной файл отсутствует: %w", err)
		return result, result.Error
	}

	result.State = entities.StateSucceeded
	result.CompressedSize = compressedInfo.Size()
	result.CalculateCompressionRatio()
	return result, nil
}

// logOutput логирует вывод движка: stdout на уровне info, stderr на debug
func (g *GhostscriptEngine) logOutput(output *entities.CommandOutput) {
	if g.logger == nil {
		return
	}
	if len(output.Stdout) > 0 {
		g.logger.Info("STDOUT движка:\n%s", strings.TrimRight(string(output.Stdout), "\n"))
	}
	if len(output.Stderr) > 0 {
		g.logger.Debug("STDERR движка:\n%s", strings.TrimRight(string(output.Stderr), "\n"))
	}
}
