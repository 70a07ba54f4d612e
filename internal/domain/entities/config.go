package entities

// Названия поддерживаемых движков сжатия
const (
	EngineGhostscript = "ghostscript"
	EnginePDFCPU      = "pdfcpu"
	EngineUniPDF      = "unipdf"
)

// Config представляет конфигурацию приложения
type Config struct {
	Engine EngineConfig `yaml:"engine"`
	Shrink ShrinkConfig `yaml:"shrink"`
	Images ImagesConfig `yaml:"images"`
	Output OutputConfig `yaml:"output"`
}

// EngineConfig настройки движка сжатия
type EngineConfig struct {
	Name             string `yaml:"name"`
	Binary           string `yaml:"binary"`
	UniPDFLicenseKey string `yaml:"unipdf_license_key"`
}

// ShrinkConfig настройки сжатия PDF
type ShrinkConfig struct {
	Suffix      string         `yaml:"suffix"`
	Ghostscript *ShrinkSettings `yaml:"ghostscript"`
}

// ImagesConfig настройки сжатия изображений
type ImagesConfig struct {
	EnableJPEG  bool `yaml:"enable_jpeg"`
	EnablePNG   bool `yaml:"enable_png"`
	JPEGQuality int  `yaml:"jpeg_quality"` // Качество JPEG в процентах (10-50)
	PNGQuality  int  `yaml:"png_quality"`  // Качество PNG в процентах (10-50)
}

// OutputConfig настройки вывода
type OutputConfig struct {
	LogLevel     string `yaml:"log_level"`
	LogToFile    bool   `yaml:"log_to_file"`
	LogFileName  string `yaml:"log_file_name"`
	LogMaxSizeMB int    `yaml:"log_max_size_mb"`
}

// NewDefaultConfig создает конфигурацию по умолчанию
func NewDefaultConfig() *Config {
	return &Config{
		Engine: EngineConfig{
			Name:   EngineGhostscript,
			Binary: "gs",
		},
		Shrink: ShrinkConfig{
			Suffix:      DefaultSuffix,
			Ghostscript: NewShrinkSettings(),
		},
		Images: ImagesConfig{
			EnableJPEG:  false,
			EnablePNG:   false,
			JPEGQuality: 30,
			PNGQuality:  25,
		},
		Output: OutputConfig{
			LogLevel:     "info",
			LogToFile:    false,
			LogFileName:  "pdfshrink.log",
			LogMaxSizeMB: 10,
		},
	}
}

// Validate проверяет корректность конфигурации приложения
func (c *Config) Validate() error {
	switch c.Engine.Name {
	case EngineGhostscript, EnginePDFCPU, EngineUniPDF:
	default:
		return ErrUnknownEngine
	}

	if c.Shrink.Ghostscript != nil {
		if err := c.Shrink.Ghostscript.Validate(); err != nil {
			return err
		}
	}

	return c.Images.Validate()
}

// Validate проверяет корректность настроек сжатия изображений
func (c *ImagesConfig) Validate() error {
	if c.EnableJPEG {
		if c.JPEGQuality < 10 || c.JPEGQuality > 50 || c.JPEGQuality%5 != 0 {
			return ErrInvalidJPEGQuality
		}
	}

	if c.EnablePNG {
		if c.PNGQuality < 10 || c.PNGQuality > 50 || c.PNGQuality%5 != 0 {
			return ErrInvalidPNGQuality
		}
	}

	return nil
}

// Enabled сообщает, включена ли обработка изображений хотя бы одного формата
func (c *ImagesConfig) Enabled() bool {
	return c.EnableJPEG || c.EnablePNG
}

// FormatEnabled сообщает, включена ли обработка данного формата изображений
func (c *ImagesConfig) FormatEnabled(format string) bool {
	switch format {
	case "jpeg":
		return c.EnableJPEG
	case "png":
		return c.EnablePNG
	default:
		return false
	}
}
