package entities

// JobState состояние обработки одного входного файла.
// Переходы: Pending -> Resolving -> CommandBuilt -> {DryPrinted | Spawned}
// -> {Succeeded | Failed}. Resolving может завершиться в ResolutionError.
// Повторных попыток нет: терминальное состояние окончательно для файла.
type JobState int

const (
	StatePending JobState = iota
	StateResolving
	StateCommandBuilt
	StateDryPrinted
	StateSpawned
	StateSucceeded
	StateFailed
	StateResolutionError
)

// String возвращает название состояния
func (s JobState) String() string {
	switch s {
	case StatePending:
		return "Ожидание"
	case StateResolving:
		return "Вычисление пути"
	case StateCommandBuilt:
		return "Команда собрана"
	case StateDryPrinted:
		return "Команда напечатана"
	case StateSpawned:
		return "Движок запущен"
	case StateSucceeded:
		return "Успешно"
	case StateFailed:
		return "Ошибка движка"
	case StateResolutionError:
		return "Ошибка пути"
	default:
		return "Неизвестно"
	}
}

// Terminal сообщает, является ли состояние терминальным
func (s JobState) Terminal() bool {
	switch s {
	case StateDryPrinted, StateSucceeded, StateFailed, StateResolutionError:
		return true
	default:
		return false
	}
}

// ShrinkResult результат обработки одного файла
type ShrinkResult struct {
	InputPath        string
	OutputPath       string
	State            JobState
	OriginalSize     int64
	CompressedSize   int64
	CompressionRatio float64
	SavedSpace       int64
	ExitCode         int
	Error            error
}

// CalculateCompressionRatio вычисляет коэффициент сжатия
func (r *ShrinkResult) CalculateCompressionRatio() {
	if r.OriginalSize > 0 {
		r.CompressionRatio = ((float64(r.OriginalSize) - float64(r.CompressedSize)) / float64(r.OriginalSize)) * 100
		r.SavedSpace = r.OriginalSize - r.CompressedSize
	}
}

// Succeeded сообщает, завершилась ли обработка файла успешно.
// Dry-run считается успехом: команда напечатана, файлы не тронуты.
func (r *ShrinkResult) Succeeded() bool {
	return r.State == StateSucceeded || r.State == StateDryPrinted
}

// IsEffective проверяет, было ли сжатие эффективным
func (r *ShrinkResult) IsEffective() bool {
	return r.State == StateSucceeded && r.CompressionRatio > 0
}

// CommandOutput результат выполнения внешней команды
type CommandOutput struct {
	ExitCode int
	Stdout   []byte
	Stderr   []byte
}
