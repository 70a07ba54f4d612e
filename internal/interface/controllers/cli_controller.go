package controllers

import (
	"github.com/spf13/cobra"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
)

// RunParams параметры запуска, собранные из командной строки
type RunParams struct {
	Inputs     []string
	ModeKind   entities.PlacementKind
	Subdir     string
	DryRun     bool
	Verbosity  int
	ConfigPath string
	EngineName string
	UseTUI     bool
}

// CLIController контроллер командной строки на основе cobra.
// Разбирает флаги, проверяет их взаимоисключаемость и передает
// готовые параметры в приложение.
type CLIController struct {
	version string
	run     func(*RunParams) error
	cmd     *cobra.Command
}

// NewCLIController создает новый CLI контроллер.
// run вызывается после успешного разбора аргументов.
func NewCLIController(version string, run func(*RunParams) error) *CLIController {
	c := &CLIController{
		version: version,
		run:     run,
	}
	c.cmd = c.buildCommand()
	return c
}

// Execute разбирает os.Args и запускает приложение
func (c *CLIController) Execute() error {
	return c.cmd.Execute()
}

// ExecuteWithArgs разбирает указанные аргументы; используется в тестах
func (c *CLIController) ExecuteWithArgs(args []string) error {
	c.cmd.SetArgs(args)
	return c.cmd.Execute()
}

// buildCommand собирает корневую команду cobra
func (c *CLIController) buildCommand() *cobra.Command {
	var (
		dryRun     bool
		inplace    bool
		rename     bool
		subdir     string
		verbosity  int
		configPath string
		engineName string
		useTUI     bool
	)

	cmd := &cobra.Command{
		Use:   "pdfshrink [флаги] <INPUT>...",
		Short: "Сжатие PDF файлов внешним движком Ghostscript",
		Long: `pdfshrink уменьшает размер PDF файлов, пересжимая встроенные
отсканированные изображения внешним движком Ghostscript.

Режимы размещения результата (взаимоисключающие):
  --rename   name.pdf -> name.shrunk.pdf (по умолчанию)
  --inplace  заменить оригинал через временный файл
  --subdir   сохранить в поддиректорию рядом с оригиналом`,
		Version:      c.version,
		Args:         cobra.MinimumNArgs(1),
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			params := &RunParams{
				Inputs:     args,
				DryRun:     dryRun,
				Verbosity:  verbosity,
				ConfigPath: configPath,
				EngineName: engineName,
				UseTUI:     useTUI,
			}

			switch {
			case inplace:
				params.ModeKind = entities.PlacementInPlace
			case subdir != "":
				params.ModeKind = entities.PlacementSubdir
				params.Subdir = subdir
			default:
				// --rename и отсутствие флагов эквивалентны
				params.ModeKind = entities.PlacementRename
			}

			return c.run(params)
		},
	}

	flags := cmd.Flags()
	flags.BoolVarP(&dryRun, "dry-run", "n", false, "печатать команды вместо их выполнения")
	flags.BoolVarP(&inplace, "inplace", "i", false, "заменить оригинальный файл (через временный файл)")
	flags.BoolVarP(&rename, "rename", "r", false, "сохранить как name.shrunk.pdf (по умолчанию)")
	flags.StringVarP(&subdir, "subdir", "d", "", "сохранить в поддиректорию DIR")
	flags.CountVarP(&verbosity, "verbose", "v", "повысить уровень подробности (можно повторять)")
	flags.StringVar(&configPath, "config", "", "путь к YAML файлу конфигурации")
	flags.StringVar(&engineName, "engine", "", "движок сжатия: ghostscript, pdfcpu или unipdf")
	flags.BoolVar(&useTUI, "tui", false, "показать интерактивный экран прогресса")
	flags.BoolP("version", "V", false, "вывести версию")

	cmd.MarkFlagsMutuallyExclusive("inplace", "rename", "subdir")

	return cmd
}
