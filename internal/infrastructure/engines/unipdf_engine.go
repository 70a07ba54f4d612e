package engines

import (
	"fmt"
	"os"

	"github.com/unidoc/unipdf/v3/model"
	"github.com/unidoc/unipdf/v3/model/optimize"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// UniPDFEngine движок сжатия на основе библиотеки UniPDF.
// Требует лицензионный ключ: из конфигурации либо из переменной
// окружения UNIDOC_LICENSE_API_KEY.
type UniPDFEngine struct {
	licenseKey string
	logger     repositories.Logger
}

// NewUniPDFEngine создает новый UniPDF движок
func NewUniPDFEngine(licenseKey string, logger repositories.Logger) *UniPDFEngine {
	return &UniPDFEngine{
		licenseKey: licenseKey,
		logger:     logger,
	}
}

// Shrink пересжимает PDF файл оптимизатором UniPDF.
// Целевое разрешение изображений берется из настроек сжатия.
func (u *UniPDFEngine) Shrink(inputPath, outputPath string, s *entities.ShrinkSettings) (*entities.ShrinkResult, error) {
	result := &entities.ShrinkResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		State:      entities.StateSpawned,
	}

	licenseKey := u.licenseKey
	if licenseKey == "" {
		licenseKey = os.Getenv("UNIDOC_LICENSE_API_KEY")
	}
	if licenseKey == "" {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("UniPDF требует лицензионный ключ: задайте его в конфигурации или в UNIDOC_LICENSE_API_KEY, либо используйте движок %q", entities.EnginePDFCPU)
		return result, result.Error
	}
	os.Setenv("UNIDOC_LICENSE_API_KEY", licenseKey)

	originalInfo, err := os.Stat(inputPath)
	if err != nil {
		result.State = entities.StateResolutionError
		result.Error = fmt.Errorf("%w: %s", entities.ErrInputNotFound, inputPath)
		return result, result.Error
	}
	result.OriginalSize = originalInfo.Size()

	pdfReader, file, err := model.NewPdfReaderFromFile(inputPath, nil)
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка открытия файла: %w", err)
		return result, result.Error
	}
	defer file.Close()

	pdfWriter := model.NewPdfWriter()
	pdfWriter.SetOptimizer(optimize.New(optimize.Options{
		CombineDuplicateDirectObjects:   true,
		CombineIdenticalIndirectObjects: true,
		ImageUpperPPI:                   float64(s.ColorResolution),
		ImageQuality:                    80,
	}))

	numPages, err := pdfReader.GetNumPages()
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка получения количества страниц: %w", err)
		return result, result.Error
	}

	for i := 1; i <= numPages; i++ {
		page, err := pdfReader.GetPage(i)
		if err != nil {
			result.State = entities.StateFailed
			result.Error = fmt.Errorf("ошибка получения страницы %d: %w", i, err)
			return result, result.Error
		}
		if err := pdfWriter.AddPage(page); err != nil {
			result.State = entities.StateFailed
			result.Error = fmt.Errorf("ошибка добавления страницы %d: %w", i, err)
			return result, result.Error
		}
	}

	outputFile, err := os.Create(outputPath)
	if err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка создания выходного файла: %w", err)
		return result, result.Error
	}
	defer outputFile.Close()

	if err := pdfWriter.Write(outputFile); err != nil {
		result.State = entities.StateFailed
		result.Error = fmt.Errorf("ошибка записи файла: %w", err)
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
