package usecases

import (
	"errors"
	"path/filepath"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// BatchResult итог обработки пакета входных файлов
type BatchResult struct {
	TotalFiles     int
	SucceededCount int
	FailedCount    int
	SkippedCount   int
	Results        []*entities.ShrinkResult
}

// HasFailures сообщает, была ли хотя бы одна неудача
func (r *BatchResult) HasFailures() bool {
	return r.FailedCount > 0
}

// ProcessBatchUseCase сценарий последовательной обработки пакета файлов.
// Файлы обрабатываются строго по одному; неудача одного файла не
// прерывает обработку остальных.
type ProcessBatchUseCase struct {
	shrinkFile       *ShrinkFileUseCase
	pdfEngine        repositories.Engine
	imageEngine      repositories.Engine
	fileRepo         repositories.FileRepository
	logger           repositories.Logger
	progressReporter func(entities.BatchStatus)
}

// NewProcessBatchUseCase создает новый сценарий обработки пакета.
// imageEngine может быть nil: тогда изображения пропускаются.
func NewProcessBatchUseCase(
	shrinkFile *ShrinkFileUseCase,
	pdfEngine repositories.Engine,
	imageEngine repositories.Engine,
	fileRepo repositories.FileRepository,
	logger repositories.Logger,
) *ProcessBatchUseCase {
	return &ProcessBatchUseCase{
		shrinkFile:  shrinkFile,
		pdfEngine:   pdfEngine,
		imageEngine: imageEngine,
		fileRepo:    fileRepo,
		logger:      logger,
	}
}

// SetProgressReporter устанавливает функцию для отчета о прогрессе
func (uc *ProcessBatchUseCase) SetProgressReporter(reporter func(entities.BatchStatus)) {
	uc.progressReporter = reporter
}

// Execute обрабатывает пакет входных файлов.
// Ошибка возвращается только для пустого списка входов; все остальные
// неудачи учитываются в результате по отдельным файлам.
func (uc *ProcessBatchUseCase) Execute(inputs []string, opts ShrinkOptions) (*BatchResult, error) {
	if len(inputs) == 0 {
		return nil, entities.ErrNoInputFiles
	}

	status := entities.NewBatchStatus(0)
	status.DryRun = opts.DryRun
	status.SetPhase(entities.PhaseScanning, "Поиск входных файлов...")
	uc.reportProgress(status)

	files := uc.expandInputs(inputs)
	status.TotalFiles = len(files)

	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Начало обработки: файлов %d", len(files))
	if opts.DryRun {
		uc.logInfo("║ Режим: dry-run (команды печатаются, ничего не выполняется)")
	}
	uc.logInfo("╚════════════════════════════════════════════════════════════")

	status.SetPhase(entities.PhaseShrinking, "Сжатие файлов...")
	uc.reportProgress(status)

	result := &BatchResult{
		TotalFiles: len(files),
		Results:    make([]*entities.ShrinkResult, 0, len(files)),
	}

	for i, inputPath := range files {
		size, _ := uc.fileRepo.GetFileSize(inputPath)
		status.SetCurrentFile(inputPath, size)
		uc.reportProgress(status)

		fileResult := uc.processOne(inputPath, opts)
		result.Results = append(result.Results, fileResult)

		status.AddResult(fileResult)
		uc.reportProgress(status)

		uc.logFileResult(i+1, len(files), fileResult)
	}

	result.SucceededCount = status.SucceededFiles
	result.FailedCount = status.FailedFiles
	result.SkippedCount = status.SkippedFiles

	status.Complete()
	uc.reportProgress(status)
	uc.logSummary(status)

	return result, nil
}

// processOne выбирает движок для файла и обрабатывает его
func (uc *ProcessBatchUseCase) processOne(inputPath string, opts ShrinkOptions) *entities.ShrinkResult {
	switch {
	case entities.HasPDFExtension(inputPath):
		return uc.shrinkFile.Execute(inputPath, uc.pdfEngine, opts)

	case entities.IsImageFile(inputPath) && uc.imageEngine != nil:
		return uc.shrinkFile.Execute(inputPath, uc.imageEngine, opts)

	default:
		// Не PDF и не включенное изображение: пропускаем с предупреждением
		return &entities.ShrinkResult{
			InputPath: inputPath,
			State:     entities.StateResolutionError,
			Error:     entities.ErrUnsupportedFile,
		}
	}
}

// expandInputs разворачивает директории в списки PDF файлов внутри них
func (uc *ProcessBatchUseCase) expandInputs(inputs []string) []string {
	var files []string
	for _, input := range inputs {
		if uc.fileRepo.IsDirectory(input) {
			found, err := uc.fileRepo.ListPDFFiles(input)
			if err != nil {
				uc.logWarning("Не удалось просканировать директорию %s: %v", input, err)
				continue
			}
			if len(found) == 0 {
				uc.logWarning("PDF файлы не найдены в директории: %s", input)
			}
			files = append(files, found...)
			continue
		}
		files = append(files, input)
	}
	return files
}

// logFileResult логирует итог обработки одного файла
func (uc *ProcessBatchUseCase) logFileResult(n, total int, result *entities.ShrinkResult) {
	fileName := filepath.Base(result.InputPath)

	switch {
	case result.State == entities.StateDryPrinted:
		uc.logInfo("[%d/%d] %s: команда напечатана", n, total, fileName)

	case result.Succeeded():
		uc.logSuccess("[%d/%d] ✓ %s", n, total, fileName)
		uc.logInfo("    └─ Размер: %.2f MB → %.2f MB (сжатие %.1f%%)",
			float64(result.OriginalSize)/1024/1024,
			float64(result.CompressedSize)/1024/1024,
			result.CompressionRatio)

	case result.State == entities.StateResolutionError && errors.Is(result.Error, entities.ErrUnsupportedFile):
		uc.logWarning("[%d/%d] ⚠ %s пропущен: %v", n, total, fileName, result.Error)

	default:
		uc.logError("[%d/%d] ✗ %s", n, total, fileName)
		uc.logError("    └─ Ошибка: %v", result.Error)
	}
}

// logSummary логирует итоговую статистику пакета
func (uc *ProcessBatchUseCase) logSummary(status *entities.BatchStatus) {
	uc.logInfo("")
	uc.logInfo("╔════════════════════════════════════════════════════════════")
	uc.logInfo("║ Обработка завершена за %s", status.FormatElapsedTime())
	uc.logInfo("║   • Всего: %d", status.TotalFiles)
	uc.logSuccess("║   • Успешно: %d", status.SucceededFiles)
	if status.FailedFiles > 0 {
		uc.logError("║   • Ошибок: %d", status.FailedFiles)
	}
	if status.SkippedFiles > 0 {
		uc.logWarning("║   • Пропущено: %d", status.SkippedFiles)
	}
	if status.TotalOriginalSize > 0 {
		uc.logInfo("║   • Исходный размер: %.2f MB", float64(status.TotalOriginalSize)/1024/1024)
		uc.logInfo("║   • Сжатый размер: %.2f MB", float64(status.TotalCompressedSize)/1024/1024)
		uc.logSuccess("║   • Сэкономлено: %.2f MB (%.1f%%)",
			float64(status.TotalSavedSpace)/1024/1024, status.AverageCompression)
	}
	uc.logInfo("╚════════════════════════════════════════════════════════════")
}

// reportProgress отправляет обновление прогресса
func (uc *ProcessBatchUseCase) reportProgress(status *entities.BatchStatus) {
	if uc.progressReporter != nil {
		uc.progressReporter(*status)
	}
}

// Методы для логирования
func (uc *ProcessBatchUseCase) logInfo(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Info(format, args...)
	}
}

func (uc *ProcessBatchUseCase) logSuccess(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Success(format, args...)
	}
}

func (uc *ProcessBatchUseCase) logWarning(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Warning(format, args...)
	}
}

func (uc *ProcessBatchUseCase) logError(format string, args ...interface{}) {
	if uc.logger != nil {
		uc.logger.Error(format, args...)
	}
}
