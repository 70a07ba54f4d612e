package repositories

import (
	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
)

// Engine интерфейс движка сжатия файлов
type Engine interface {
	Shrink(inputPath, outputPath string, settings *entities.ShrinkSettings) (*entities.ShrinkResult, error)
}

// CommandPreviewer опциональная способность движка показать командную
// строку, которую он собирается выполнить. Реализуется движками на
// основе внешних программ; используется в режиме dry-run.
type CommandPreviewer interface {
	Preview(inputPath, outputPath string, settings *entities.ShrinkSettings) string
}

// CommandExecutor интерфейс запуска внешних команд.
// Аргументы передаются вектором, без участия shell. Ненулевой код
// возврата не является ошибкой Run: ошибка возвращается только если
// процесс не удалось запустить.
type CommandExecutor interface {
	Run(name string, args []string) (*entities.CommandOutput, error)
}

// FileRepository интерфейс для работы с файловой системой
type FileRepository interface {
	FileExists(path string) bool
	IsDirectory(path string) bool
	GetFileSize(path string) (int64, error)
	CreateDirectory(path string) error
	ListPDFFiles(directory string) ([]string, error)
	ReplaceFile(originalPath, tempPath string) error
	Remove(path string) error
}
