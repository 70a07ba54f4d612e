package engines

import (
	"fmt"
	"image"
	"image/jpeg"
	"image/png"
	"io"
	"os"

	"github.com/nfnt/resize"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// ImageEngine движок сжатия отсканированных изображений (JPEG/PNG).
// Уменьшает геометрию и пересохраняет с пониженным качеством; если
// результат не меньше оригинала, оригинал копируется как есть.
type ImageEngine struct {
	config entities.ImagesConfig
	logger repositories.Logger
}

// NewImageEngine создает новый движок сжатия изображений
func NewImageEngine(config entities.ImagesConfig, logger repositories.Logger) *ImageEngine {
	return &ImageEngine{
		config: config,
		logger: logger,
	}
}

// Shrink сжимает изображение. Настройки Ghostscript не используются:
// качество берется из конфигурации изображений.
func (e *ImageEngine) Shrink(inputPath, outputPath string, _ *entities.ShrinkSettings) (*entities.ShrinkResult, error) {
	result := &entities.ShrinkResult{
		InputPath:  inputPath,
		OutputPath: outputPath,
		State:      entities.StateSpawned,
	}

	format := entities.ImageFormat(inputPath)
	if !e.config.FormatEnabled(format) {
		result.State = entities.StateResolutionError
		result.Error = entities.ErrUnsupportedFile
		return result, result.Error
	}

	var err error
	switch format {
	case "jpeg":
		err = e.compressJPEG(inputPath, outputPath, e.config.JPEGQuality)
	case "png":
		err = e.compressPNG(inputPath, outputPath, e.config.PNGQuality)
	}
	if err != nil {
		result.State = entities.StateFailed
		result.Error = err
		return result, result.Error
	}

	originalInfo, err := os.Stat(inputPath)
	if err == nil {
		result.OriginalSize = originalInfo.Size()
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

// compressJPEG пересжимает JPEG файл с указанным качеством (10-50)
func (e *ImageEngine) compressJPEG(inputPath, outputPath string, quality int) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл %s: %w", inputPath, err)
	}
	defer inputFile.Close()

	img, err := jpeg.Decode(inputFile)
	if err != nil {
		return fmt.Errorf("не удалось декодировать JPEG файл %s: %w", inputPath, err)
	}

	// quality 10 -> масштаб 0.5, quality 50 -> масштаб 0.9
	scaled := e.downsample(img, 0.5+float64(quality-10)/40.0*0.4, 0)

	// Маппинг качества в диапазон кодека: 10 -> 20, 50 -> 75
	jpegQuality := 20 + int(float64(quality-10)/40.0*55.0)

	encode := func(w io.Writer) error {
		return jpeg.Encode(w, scaled, &jpeg.Options{Quality: jpegQuality})
	}
	return e.writeIfSmaller(inputFile, outputPath, encode)
}

// compressPNG пересохраняет PNG файл с максимальным сжатием потока
func (e *ImageEngine) compressPNG(inputPath, outputPath string, quality int) error {
	inputFile, err := os.Open(inputPath)
	if err != nil {
		return fmt.Errorf("не удалось открыть файл %s: %w", inputPath, err)
	}
	defer inputFile.Close()

	img, err := png.Decode(inputFile)
	if err != nil {
		return fmt.Errorf("не удалось декодировать PNG файл %s: %w", inputPath, err)
	}

	// PNG масштабируется консервативнее: 10 -> 0.6, 50 -> 0.9.
	// Маленькие изображения не трогаем.
	scaled := e.downsample(img, 0.6+float64(quality-10)/40.0*0.3, 400)

	encoder := &png.Encoder{CompressionLevel: png.BestCompression}
	encode := func(w io.Writer) error {
		return encoder.Encode(w, scaled)
	}
	return e.writeIfSmaller(inputFile, outputPath, encode)
}

// downsample уменьшает изображение бикубическим фильтром Lanczos.
// Изображения меньше minSide по обеим сторонам не масштабируются.
func (e *ImageEngine) downsample(img image.Image, scaleFactor float64, minSide int) image.Image {
	if scaleFactor > 1.0 {
		scaleFactor = 1.0
	}

	bounds := img.Bounds()
	width := bounds.Dx()
	height := bounds.Dy()

	if minSide > 0 && width < minSide && height < minSide {
		return img
	}

	newWidth := uint(float64(width) * scaleFactor)
	newHeight := uint(float64(height) * scaleFactor)
	if newWidth >= uint(width) || newHeight >= uint(height) {
		return img
	}

	return resize.Resize(newWidth, newHeight, img, resize.Lanczos3)
}

// writeIfSmaller кодирует изображение во временный файл и оставляет его
// только если он заметно меньше оригинала; иначе копирует оригинал.
func (e *ImageEngine) writeIfSmaller(original *os.File, outputPath string, encode func(io.Writer) error) error {
	originalInfo, err := original.Stat()
	if err != nil {
		return fmt.Errorf("не удалось получить информацию об оригинале: %w", err)
	}

	tmpPath := outputPath + ".tmp"
	tmpFile, err := os.Create(tmpPath)
	if err != nil {
		return fmt.Errorf("не удалось создать временный файл: %w", err)
	}

	err = encode(tmpFile)
	tmpFile.Close()
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось закодировать изображение: %w", err)
	}

	tmpInfo, err := os.Stat(tmpPath)
	if err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось получить информацию о временном файле: %w", err)
	}

	// Сжатие неэффективно: копируем оригинал как есть
	if tmpInfo.Size() >= originalInfo.Size()*95/100 {
		os.Remove(tmpPath)
		if e.logger != nil {
			e.logger.Debug("Пересжатие неэффективно, копируется оригинал: %s", original.Name())
		}

		if _, err := original.Seek(0, io.SeekStart); err != nil {
			return fmt.Errorf("не удалось перечитать оригинал: %w", err)
		}
		outputFile, err := os.Create(outputPath)
		if err != nil {
			return fmt.Errorf("не удалось создать выходной файл: %w", err)
		}
		defer outputFile.Close()

		if _, err := io.Copy(outputFile, original); err != nil {
			return fmt.Errorf("не удалось скопировать файл: %w", err)
		}
		return nil
	}

	if err := os.Rename(tmpPath, outputPath); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("не удалось переименовать временный файл: %w", err)
	}
	return nil
}
