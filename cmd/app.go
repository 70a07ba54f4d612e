package main

import (
	"fmt"
	"log"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
	"github.com/FedericoStra/pdfshrink/internal/infrastructure/config"
	"github.com/FedericoStra/pdfshrink/internal/infrastructure/engines"
	"github.com/FedericoStra/pdfshrink/internal/infrastructure/logging"
	infraRepos "github.com/FedericoStra/pdfshrink/internal/infrastructure/repositories"
	"github.com/FedericoStra/pdfshrink/internal/interface/controllers"
	"github.com/FedericoStra/pdfshrink/internal/presentation/tui"
	usecases "github.com/FedericoStra/pdfshrink/internal/usecase"
)

// App собирает зависимости приложения и запускает обработку пакета
type App struct{}

// NewApp создает новое приложение
func NewApp() *App {
	return &App{}
}

// Run выполняет запуск с параметрами командной строки.
// Возвращаемая ошибка означает ненулевой код выхода: ошибка
// конфигурации или хотя бы один необработанный файл.
func (a *App) Run(params *controllers.RunParams) error {
	// Загрузка конфигурации
	configPath := params.ConfigPath
	if configPath == "" {
		configPath = config.DefaultConfigPath
	}
	configRepo := config.NewRepository()
	appConfig, err := configRepo.Load(configPath)
	if err != nil {
		return fmt.Errorf("ошибка загрузки конфигурации: %w", err)
	}

	// Флаг --engine имеет приоритет над конфигурацией
	if params.EngineName != "" {
		appConfig.Engine.Name = params.EngineName
	}
	if err := appConfig.Validate(); err != nil {
		return fmt.Errorf("некорректная конфигурация: %w", err)
	}

	// Инициализация базового логгера (в файл)
	fileLogger, err := logging.NewFileLogger(
		appConfig.Output.LogFileName,
		appConfig.Output.LogLevel,
		appConfig.Output.LogMaxSizeMB,
		appConfig.Output.LogToFile,
	)
	if err != nil {
		log.Printf("Предупреждение: не удалось инициализировать файловый логгер: %v", err)
	}
	var fileLog repositories.Logger
	if fileLogger != nil {
		fileLog = fileLogger
		defer fileLogger.Close()
	}

	mode, err := a.buildMode(params, appConfig)
	if err != nil {
		return err
	}

	opts := usecases.ShrinkOptions{
		Mode:     mode,
		DryRun:   params.DryRun,
		Settings: appConfig.Shrink.Ghostscript,
	}

	// В режиме dry-run команды печатаются в stdout; TUI перекрыл бы их
	if params.UseTUI && !params.DryRun {
		return a.runWithTUI(params, appConfig, fileLog, opts)
	}
	return a.runConsole(params, appConfig, fileLog, opts)
}

// runConsole запускает обработку с выводом в консоль
func (a *App) runConsole(params *controllers.RunParams, appConfig *entities.Config, fileLog repositories.Logger, opts usecases.ShrinkOptions) error {
	consoleLogger := logging.NewConsoleLogger(params.Verbosity)
	logger := logging.NewMultiLogger(consoleLogger, fileLog)

	batch, err := a.buildBatch(appConfig, logger)
	if err != nil {
		return err
	}

	result, err := batch.Execute(params.Inputs, opts)
	if err != nil {
		return err
	}
	if result.HasFailures() {
		return fmt.Errorf("не обработано файлов: %d из %d", result.FailedCount, result.TotalFiles)
	}
	return nil
}

// runWithTUI запускает обработку с интерактивным экраном прогресса
func (a *App) runWithTUI(params *controllers.RunParams, appConfig *entities.Config, fileLog repositories.Logger, opts usecases.ShrinkOptions) error {
	tuiManager := tui.NewManager()
	tuiManager.Initialize()

	logger := tui.NewUILogger(fileLog, tuiManager)

	batch, err := a.buildBatch(appConfig, logger)
	if err != nil {
		return err
	}

	batch.SetProgressReporter(func(s entities.BatchStatus) {
		tuiManager.SendStatusUpdate(s)
	})

	// Итог обработки забирается после выхода из TUI
	resultCh := make(chan *usecases.BatchResult, 1)
	tuiManager.SetOnStart(func() {
		result, err := batch.Execute(params.Inputs, opts)
		if err != nil {
			logger.Error("Ошибка обработки: %v", err)
		}
		resultCh <- result
	})

	if err := tuiManager.Run(); err != nil {
		return fmt.Errorf("ошибка запуска TUI: %w", err)
	}
	tuiManager.Cleanup()

	select {
	case result := <-resultCh:
		if result == nil {
			return fmt.Errorf("обработка не была завершена")
		}
		if result.HasFailures() {
			return fmt.Errorf("не обработано файлов: %d из %d", result.FailedCount, result.TotalFiles)
		}
		return nil
	default:
		// TUI закрыт до завершения обработки
		return fmt.Errorf("обработка прервана")
	}
}

// buildMode строит режим размещения результата
func (a *App) buildMode(params *controllers.RunParams, appConfig *entities.Config) (entities.PlacementMode, error) {
	switch params.ModeKind {
	case entities.PlacementInPlace:
		return entities.NewInPlaceMode(), nil
	case entities.PlacementSubdir:
		return entities.NewSubdirMode(params.Subdir), nil
	default:
		suffix := appConfig.Shrink.Suffix
		if suffix == "" {
			suffix = entities.DefaultSuffix
		}
		return entities.NewRenameMode(suffix), nil
	}
}

// buildBatch собирает сценарий обработки пакета с выбранными движками
func (a *App) buildBatch(appConfig *entities.Config, logger repositories.Logger) (*usecases.ProcessBatchUseCase, error) {
	fileRepo := infraRepos.NewFileSystemRepository()

	pdfEngine, err := a.buildPDFEngine(appConfig, logger)
	if err != nil {
		return nil, err
	}

	var imageEngine repositories.Engine
	if appConfig.Images.Enabled() {
		imageEngine = engines.NewImageEngine(appConfig.Images, logger)
	}

	shrinkFile := usecases.NewShrinkFileUseCase(fileRepo, logger, nil)
	return usecases.NewProcessBatchUseCase(shrinkFile, pdfEngine, imageEngine, fileRepo, logger), nil
}

// buildPDFEngine выбирает движок сжатия PDF на основе конфигурации
func (a *App) buildPDFEngine(appConfig *entities.Config, logger repositories.Logger) (repositories.Engine, error) {
	switch appConfig.Engine.Name {
	case entities.EnginePDFCPU:
		return engines.NewPDFCPUEngine(logger), nil

	case entities.EngineUniPDF:
		return engines.NewUniPDFEngine(appConfig.Engine.UniPDFLicenseKey, logger), nil

	case entities.EngineGhostscript, "":
		binary := appConfig.Engine.Binary
		if binary == "" {
			binary = engines.DefaultGhostscriptBinary
		}
		return engines.NewGhostscriptEngine(binary, engines.NewSystemExecutor(), logger), nil

	default:
		return nil, fmt.Errorf("%w: %s", entities.ErrUnknownEngine, appConfig.Engine.Name)
	}
}
