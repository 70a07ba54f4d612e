package entities

import (
	"errors"
	"time"
)

// BatchPhase фаза обработки пакета
type BatchPhase int

const (
	PhaseInitializing BatchPhase = iota
	PhaseScanning
	PhaseShrinking
	PhaseCompleted
	PhaseFailed
)

// String возвращает название фазы
func (p BatchPhase) String() string {
	switch p {
	case PhaseInitializing:
		return "Инициализация"
	case PhaseScanning:
		return "Поиск файлов"
	case PhaseShrinking:
		return "Сжатие файлов"
	case PhaseCompleted:
		return "Завершено"
	case PhaseFailed:
		return "Ошибка"
	default:
		return "Неизвестно"
	}
}

// BatchStatus ход обработки пакета входных файлов
type BatchStatus struct {
	Phase BatchPhase

	// Информация о текущем файле
	CurrentFile     string
	CurrentFileSize int64

	// Общая статистика
	TotalFiles     int
	ProcessedFiles int
	SucceededFiles int
	FailedFiles    int
	SkippedFiles   int

	// Прогресс
	Progress float64

	// Статистика сжатия
	TotalOriginalSize   int64
	TotalCompressedSize int64
	TotalSavedSpace     int64
	AverageCompression  float64

	// Последний результат
	LastResult *ShrinkResult

	// Время выполнения
	StartTime     time.Time
	ElapsedTime   time.Duration
	EstimatedTime time.Duration

	// Состояние
	IsComplete bool
	DryRun     bool
	Error      error
	Message    string
}

// NewBatchStatus создает новый статус обработки пакета
func NewBatchStatus(totalFiles int) *BatchStatus {
	return &BatchStatus{
		Phase:      PhaseInitializing,
		TotalFiles: totalFiles,
		StartTime:  time.Now(),
	}
}

// SetPhase устанавливает фазу обработки
func (bs *BatchStatus) SetPhase(phase BatchPhase, message string) {
	bs.Phase = phase
	bs.Message = message
}

// SetCurrentFile устанавливает текущий обрабатываемый файл
func (bs *BatchStatus) SetCurrentFile(path string, size int64) {
	bs.CurrentFile = path
	bs.CurrentFileSize = size
}

// AddResult добавляет результат обработки файла.
// Файлы с неподдерживаемым расширением считаются пропущенными,
// любая другая неудача — ошибкой.
func (bs *BatchStatus) AddResult(result *ShrinkResult) {
	bs.ProcessedFiles++
	bs.LastResult = result

	switch {
	case result.Succeeded():
		bs.SucceededFiles++
		if result.State == StateSucceeded {
			bs.TotalOriginalSize += result.OriginalSize
			bs.TotalCompressedSize += result.CompressedSize
			bs.TotalSavedSpace += result.SavedSpace
			if bs.TotalOriginalSize > 0 {
				bs.AverageCompression = ((float64(bs.TotalOriginalSize) - float64(bs.TotalCompressedSize)) / float64(bs.TotalOriginalSize)) * 100
			}
		}
	case result.State == StateResolutionError && errors.Is(result.Error, ErrUnsupportedFile):
		bs.SkippedFiles++
	default:
		bs.FailedFiles++
	}

	bs.UpdateProgress()
}

// UpdateProgress обновляет прогресс и оценку оставшегося времени
func (bs *BatchStatus) UpdateProgress() {
	if bs.TotalFiles > 0 {
		bs.Progress = float64(bs.ProcessedFiles) / float64(bs.TotalFiles) * 100
	}

	bs.ElapsedTime = time.Since(bs.StartTime)

	if bs.ProcessedFiles > 0 && bs.ProcessedFiles < bs.TotalFiles {
		avgTimePerFile := bs.ElapsedTime / time.Duration(bs.ProcessedFiles)
		remaining := bs.TotalFiles - bs.ProcessedFiles
		bs.EstimatedTime = avgTimePerFile * time.Duration(remaining)
	}
}

// Complete завершает обработку пакета
func (bs *BatchStatus) Complete() {
	bs.IsComplete = true
	bs.Phase = PhaseCompleted
	bs.Progress = 100
	bs.ElapsedTime = time.Since(bs.StartTime)
	bs.EstimatedTime = 0
}

// Fail отмечает обработку пакета как неудачную
func (bs *BatchStatus) Fail(err error) {
	bs.IsComplete = true
	bs.Phase = PhaseFailed
	bs.Error = err
	bs.ElapsedTime = time.Since(bs.StartTime)
}

// FormatElapsedTime форматирует прошедшее время
func (bs *BatchStatus) FormatElapsedTime() string {
	if bs.ElapsedTime < time.Second {
		return "< 1 сек"
	}
	return bs.ElapsedTime.Round(time.Second).String()
}

// FormatEstimatedTime форматирует оставшееся время
func (bs *BatchStatus) FormatEstimatedTime() string {
	if bs.EstimatedTime == 0 {
		return "N/A"
	}
	if bs.EstimatedTime < time.Second {
		return "< 1 сек"
	}
	return bs.EstimatedTime.Round(time.Second).String()
}
