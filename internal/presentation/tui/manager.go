package tui

import (
	"fmt"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rivo/tview"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
)

// UI Configuration constants
const (
	MaxLogBufferSize   = 1000
	LogFlushInterval   = 50 * time.Millisecond
	ProgressBarWidth   = 40
	MaxFileNameLength  = 60
	MaxFileNameDisplay = 57
	ProgressViewHeight = 11
)

// Manager управляет экраном прогресса обработки.
// Приложение управляется из командной строки, поэтому экран один:
// журнал событий сверху, панель прогресса снизу.
type Manager struct {
	app          *tview.Application
	progressView *tview.TextView
	logView      *tview.TextView

	// Callbacks
	onStart func()

	// Состояние
	logBuffer    []string
	statusMutex  sync.RWMutex
	isProcessing bool

	// Оптимизированный батчинг логов через канал
	logChan  chan string
	logDone  chan struct{}
	logMutex sync.Mutex
}

// NewManager создает новый менеджер TUI
func NewManager() *Manager {
	m := &Manager{
		app:       tview.NewApplication(),
		logBuffer: make([]string, 0, MaxLogBufferSize),
		logChan:   make(chan string, 100), // Buffered channel для батчинга
		logDone:   make(chan struct{}),
	}
	// Запускаем горутину обработки логов
	go m.logProcessor()
	return m
}

// Initialize инициализирует TUI
func (m *Manager) Initialize() {
	m.createUI()
	m.setupKeyBindings()
}

// Run запускает TUI; обработка стартует в отдельной горутине
func (m *Manager) Run() error {
	m.isProcessing = true
	if m.onStart != nil {
		go m.onStart()
	}
	return m.app.SetRoot(m.createLayout(), true).EnableMouse(true).Run()
}

// Stop останавливает TUI
func (m *Manager) Stop() {
	m.app.Stop()
}

// SetOnStart устанавливает callback для начала обработки
func (m *Manager) SetOnStart(callback func()) {
	m.onStart = callback
}

// SendStatusUpdate отправляет обновление статуса
func (m *Manager) SendStatusUpdate(status entities.BatchStatus) {
	m.updateProgress(status)
}

// createUI создает пользовательский интерфейс
func (m *Manager) createUI() {
	m.progressView = tview.NewTextView().
		SetDynamicColors(true).
		SetRegions(true).
		SetScrollable(true)

	m.progressView.SetBorder(true).
		SetTitle("📊 Прогресс сжатия").
		SetTitleAlign(tview.AlignCenter)

	m.logView = tview.NewTextView().
		SetDynamicColors(true).
		SetScrollable(true).
		SetMaxLines(MaxLogBufferSize)

	m.logView.SetBorder(true).
		SetTitle("📋 Журнал событий").
		SetTitleAlign(tview.AlignCenter)
}

// createLayout создает layout экрана обработки
func (m *Manager) createLayout() *tview.Flex {
	return tview.NewFlex().
		SetDirection(tview.FlexRow).
		AddItem(m.logView, 0, 1, false).
		AddItem(m.progressView, ProgressViewHeight, 0, false)
}

// setupKeyBindings настраивает горячие клавиши
func (m *Manager) setupKeyBindings() {
	m.app.SetInputCapture(func(event *tcell.EventKey) *tcell.EventKey {
		if event.Key() == tcell.KeyEscape || event.Rune() == 'q' || event.Rune() == 'Q' {
			// Выход возможен только после завершения обработки
			m.statusMutex.RLock()
			processing := m.isProcessing
			m.statusMutex.RUnlock()
			if !processing {
				m.Cleanup()
				m.app.Stop()
			}
			return nil
		}
		return event
	})
}

// updateProgress обновляет панель прогресса
func (m *Manager) updateProgress(status entities.BatchStatus) {
	if m.progressView == nil {
		return
	}

	progressBar := m.createProgressBar(status.Progress, ProgressBarWidth)

	// Корректное усечение имени файла с учетом UTF-8
	displayFile := m.truncateFileName(status.CurrentFile, MaxFileNameLength, MaxFileNameDisplay)

	phaseText := status.Phase.String()
	if status.Message != "" {
		phaseText = status.Message
	}
	if status.DryRun {
		phaseText += " (dry-run)"
	}

	progressText := fmt.Sprintf(
		"[yellow]⚙️  Фаза:[white] %s\n"+
			"[yellow]📁 Текущий файл:[white] %s\n",
		phaseText,
		filepath.Base(displayFile),
	)

	if status.CurrentFileSize > 0 {
		progressText += fmt.Sprintf("[dim]   Размер: %.2f MB[white]\n", float64(status.CurrentFileSize)/1024/1024)
	}

	progressText += fmt.Sprintf(
		"\n[cyan]📊 Прогресс:[white] %s [cyan]%.1f%%[white]\n",
		progressBar,
		status.Progress,
	)

	progressText += fmt.Sprintf(
		"[green]📈 Файлы:[white] всего [cyan]%d[white], успешно [green]%d[white]",
		status.TotalFiles,
		status.SucceededFiles,
	)
	if status.FailedFiles > 0 {
		progressText += fmt.Sprintf(", ошибок [red]%d[white]", status.FailedFiles)
	}
	if status.SkippedFiles > 0 {
		progressText += fmt.Sprintf(", пропущено [yellow]%d[white]", status.SkippedFiles)
	}

	if status.TotalOriginalSize > 0 {
		progressText += fmt.Sprintf(
			"\n[green]💾 Сжатие:[white] %.2f MB → %.2f MB, сэкономлено [green]%.2f MB (%.1f%%)[white]",
			float64(status.TotalOriginalSize)/1024/1024,
			float64(status.TotalCompressedSize)/1024/1024,
			float64(status.TotalSavedSpace)/1024/1024,
			status.AverageCompression,
		)
	}

	progressText += fmt.Sprintf("\n[yellow]⏱️  Прошло:[white] %s", status.FormatElapsedTime())
	if !status.IsComplete && status.EstimatedTime > 0 {
		progressText += fmt.Sprintf(", осталось: ~%s", status.FormatEstimatedTime())
	}

	if status.IsComplete {
		if status.Error != nil {
			progressText += fmt.Sprintf("\n\n[red]❌ Обработка завершена с ошибкой: %v[white]\n", status.Error)
		} else {
			progressText += "\n\n[green]✅ Обработка завершена![white]\n"
		}
		progressText += "[yellow]ESC/q[white] - выход\n"

		m.statusMutex.Lock()
		m.isProcessing = false
		m.statusMutex.Unlock()
	}

	// Обновляем UI потокобезопасно через QueueUpdateDraw
	m.app.QueueUpdateDraw(func() {
		m.progressView.SetText(progressText)
	})
}

// truncateFileName корректно усекает имя файла с учетом UTF-8
func (m *Manager) truncateFileName(fileName string, maxLength, truncateAt int) string {
	runes := []rune(fileName)
	if len(runes) <= maxLength {
		return fileName
	}
	return string(runes[:truncateAt]) + "..."
}

// createProgressBar создает цветной прогресс-бар
func (m *Manager) createProgressBar(progress float64, width int) string {
	if progress < 0 {
		progress = 0
	} else if progress > 100 {
		progress = 100
	}

	filled := int(math.Round(progress * float64(width) / 100))
	if filled > width {
		filled = width
	}
	if filled < 0 {
		filled = 0
	}

	const filledChar = "█"
	const emptyChar = "░"

	// Цвет зависит от прогресса
	var color string
	switch {
	case progress < 25:
		color = "red"
	case progress < 50:
		color = "yellow"
	case progress < 75:
		color = "blue"
	default:
		color = "green"
	}

	filledPart := strings.Repeat(filledChar, filled)
	emptyPart := strings.Repeat(emptyChar, width-filled)

	return fmt.Sprintf("[%s]%s[gray]%s", color, filledPart, emptyPart)
}

// AddLog добавляет запись в лог через канал (неблокирующе)
func (m *Manager) AddLog(level, message string) {
	var color string
	switch strings.ToLower(level) {
	case "error":
		color = "red"
	case "warning":
		color = "yellow"
	case "success":
		color = "green"
	case "debug":
		color = "gray"
	default:
		color = "white"
	}

	logLine := fmt.Sprintf("[%s]%s:[white] %s", color, strings.ToUpper(level), message)

	// Неблокирующая отправка в канал
	select {
	case m.logChan <- logLine:
	default:
		// Если канал переполнен, пропускаем лог (лучше чем блокировка)
	}
}

// logProcessor обрабатывает логи в отдельной горутине с батчингом
func (m *Manager) logProcessor() {
	ticker := time.NewTicker(LogFlushInterval)
	defer ticker.Stop()

	batch := make([]string, 0, 50)

	for {
		select {
		case logLine := <-m.logChan:
			batch = append(batch, logLine)

			// Если накопился достаточный батч, сбрасываем
			if len(batch) >= 20 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-ticker.C:
			// Периодический сброс
			if len(batch) > 0 {
				m.flushLogBatch(batch)
				batch = make([]string, 0, 50)
			}

		case <-m.logDone:
			// Финальный сброс при завершении
			if len(batch) > 0 {
				m.flushLogBatch(batch)
			}
			return
		}
	}
}

// flushLogBatch сбрасывает батч логов в UI
func (m *Manager) flushLogBatch(batch []string) {
	m.statusMutex.Lock()
	m.logBuffer = append(m.logBuffer, batch...)

	// Ограничиваем размер буфера
	if len(m.logBuffer) > MaxLogBufferSize {
		m.logBuffer = m.logBuffer[len(m.logBuffer)-MaxLogBufferSize:]
	}

	logText := strings.Join(m.logBuffer, "\n")
	m.statusMutex.Unlock()

	// Обновляем UI потокобезопасно
	if m.logView != nil {
		m.app.QueueUpdateDraw(func() {
			if m.logView != nil {
				m.logView.SetText(logText)
				m.logView.ScrollToEnd()
			}
		})
	}
}

// Cleanup освобождает ресурсы менеджера (идемпотентный)
func (m *Manager) Cleanup() {
	m.logMutex.Lock()
	defer m.logMutex.Unlock()

	select {
	case <-m.logDone:
		// Канал уже закрыт
		return
	default:
		close(m.logDone)
	}
}
