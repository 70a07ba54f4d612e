package engines

import (
	"fmt"
	"os"

	"github.com/pdfcpu/pdfcpu/pkg/api"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// PDFCPUEngine движок сжатия на чистом Go с использованием PDFCPU.
// Работает без внешних программ; запасной вариант для систем без
// установленного Ghostscript. Настройки даунсэмплинга не применяются:
// PDFCPU оптимизирует структуру документа, а не растровые изображения.
type PDFCPUEngine struct {
	logger repositories.Logger
}

// NewPDFCPUEngine создает новый PDFCPU движок
func NewPDFCPUEngine(logger repositories.Logger) *PDFCPUEngine {
	return &PDFCPUEngine{logger: logger}
}

// Shrink оптимизирует PDF файл библиотекой PDFCPU
func (p *PDFCPUEngine) Shrink(inputPath, outputPath string, _ *entities.ShrinkSettings) (*entities.ShrinkResult, error) {
	result := &entities.ShrinkResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		State:      entities.StateSpawned,
	}

	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		result.State = entities.StateResolutionError
		result.Error = fmt.Errorf("%w: %s", entities.ErrInputNotFound, inputPath)
		return result, result.Error
	}
	result.OriginalSize = originalInfo.Size()

	if p.logger != nil {
		p.logger.Debug("Оптимизация PDFCPU: %s -> %s", inputPath, outputPath)
	}

	if err := api.OptimizeFile(inputPath, outputPath, nil); err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка оптимизации PDFCPU: %w", err)
		return result, result.Error
	}

	compressedInfo, err := os.Stat(outputPath)
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка получения информации о сжатом файле: %w", err)
		return result, result.Error
	}

	result.State = entities.StateSucceeded
	result.CompressedSize = compressedInfo.Size()
	result.CalculateCompressionRatio()
	return result, nil
}
