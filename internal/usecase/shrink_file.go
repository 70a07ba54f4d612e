package usecases

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
	"github.com/FedericoStra/pdfshrink/internal/domain/repositories"
)

// ShrinkOptions параметры обработки одного файла
type ShrinkOptions struct {
	Mode     entities.PlacementMode
	DryRun   bool
	Settings *entities.ShrinkSettings
}

// ShrinkFileUseCase сценарий сжатия одного файла: вычисление выходного
// пути, сборка и запуск (или печать) команды движка, безопасная замена
// оригинала в режиме inplace.
type ShrinkFileUseCase struct {
	fileRepo  repositories.FileRepository
	logger    repositories.Logger
	dryRunOut io.Writer
}

// NewShrinkFileUseCase создает новый сценарий сжатия файла.
// dryRunOut — поток для печати команд в режиме dry-run (обычно stdout).
func NewShrinkFileUseCase(fileRepo repositories.FileRepository, logger repositories.Logger, dryRunOut io.Writer) *ShrinkFileUseCase {
	if dryRunOut == nil {
		dryRunOut = os.Stdout
	}
	return &ShrinkFileUseCase{
		fileRepo:  fileRepo,
		logger:    logger,
		dryRunOut: dryRunOut,
	}
}

// Execute обрабатывает один входной файл указанным движком.
// Ошибки не прерывают пакет: они возвращаются внутри результата.
func (uc *ShrinkFileUseCase) Execute(inputPath string, engine repositories.Engine, opts ShrinkOptions) *entities.ShrinkResult {
	result := &entities.ShrinkResult{
		InputPath: inputPath,
		State:     entities.StateResolving,
	}

	if !uc.fileRepo.FileExists(inputPath) {
		return uc.resolutionError(result, fmt.Errorf("%w: %s", entities.ErrInputNotFound, inputPath))
	}

	outputPath, err := opts.Mode.OutputFor(inputPath)
	if err != nil {
		return uc.resolutionError(result, err)
	}
	result.OutputPath = outputPath

	// Директория создается только при реальном запуске
	if opts.Mode.Kind == entities.PlacementSubdir && !opts.DryRun {
		if err := uc.fileRepo.CreateDirectory(filepath.Dir(outputPath)); err != nil {
			return uc.resolutionError(result, fmt.Errorf("%w %s: %v", entities.ErrDirectoryCreation, filepath.Dir(outputPath), err))
		}
	}

	// В режиме inplace движок пишет во временный файл рядом с оригиналом;
	// оригинал заменяется только после успешного завершения движка
	target := outputPath
	if opts.Mode.Kind == entities.PlacementInPlace {
		target = entities.TempPathFor(inputPath)
	}

	result.State = entities.StateCommandBuilt

	if opts.DryRun {
		uc.printDryRun(inputPath, target, engine, opts.Settings)
		result.State = entities.StateDryPrinted
		return result
	}

	engineResult, err := engine.Shrink(inputPath, target, opts.Settings)
	if engineResult != nil {
		engineResult.OutputPath = outputPath
		result = engineResult
	}
	if err != nil || !result.Succeeded() {
		uc.discardPartial(inputPath, target)
		if result.Error == nil {
			result.Error = err
		}
		if result.State != entities.StateFailed && result.State != entities.StateResolutionError {
			result.State = entities.StateFailed
		}
		return result
	}

	if opts.Mode.Kind == entities.PlacementInPlace {
		if err := uc.fileRepo.ReplaceFile(inputPath, target); err != nil {
			uc.discardPartial(inputPath, target)
			result.State = entities.StateFailed
			result.Error = fmt.Errorf("ошибка замены оригинального файла: %w", err)
			return result
		}
	}

	return result
}

// printDryRun печатает команду, которая была бы выполнена.
// Повторные dry-run печатают идентичные строки: временный путь
// детерминированный, шаблон аргументов фиксированный.
func (uc *ShrinkFileUseCase) printDryRun(inputPath, target string, engine repositories.Engine, settings *entities.ShrinkSettings) {
	if previewer, ok := engine.(repositories.CommandPreviewer); ok {
		fmt.Fprintln(uc.dryRunOut, previewer.Preview(inputPath, target, settings))
		return
	}
	fmt.Fprintf(uc.dryRunOut, "# сжатие без внешней команды: %s -> %s\n", inputPath, target)
}

// discardPartial удаляет частично записанный выходной файл.
// Сам входной файл не трогается ни при каких обстоятельствах.
func (uc *ShrinkFileUseCase) discardPartial(inputPath, target string) {
	if target == inputPath {
		return
	}
	if uc.fileRepo.FileExists(target) {
		if err := uc.fileRepo.Remove(target); err != nil && uc.logger != nil {
			uc.logger.Warning("Не удалось удалить частичный файл %s: %v", target, err)
		}
	}
}

// resolutionError помечает результат ошибкой вычисления пути
func (uc *ShrinkFileUseCase) resolutionError(result *entities.ShrinkResult, err error) *entities.ShrinkResult {
	result.State = entities.StateResolutionError
	result.Error = err
	return result
}
