package entities

// ShrinkSettings параметры вызова внешнего движка Ghostscript.
// Набор фиксированный и не настраивается флагами; переопределить
// значения можно только через файл конфигурации.
type ShrinkSettings struct {
	Device             string `yaml:"device"`
	CompatibilityLevel string `yaml:"compatibility_level"`
	PDFSettings        string `yaml:"pdf_settings"`
	AutoRotatePages    string `yaml:"auto_rotate_pages"`
	DownsampleType     string `yaml:"downsample_type"`
	ColorResolution    int    `yaml:"color_resolution"`
	GrayResolution     int    `yaml:"gray_resolution"`
	MonoResolution     int    `yaml:"mono_resolution"`
}

// NewShrinkSettings создает настройки сжатия по умолчанию.
// Значения подобраны под пересжатие сканов с избыточным разрешением.
func NewShrinkSettings() *ShrinkSettings {
	return &ShrinkSettings{
		Device:             "pdfwrite",
		CompatibilityLevel: "1.4",
		PDFSettings:        "/ebook",
		AutoRotatePages:    "/None",
		DownsampleType:     "/Bicubic",
		ColorResolution:    135,
		GrayResolution:     135,
		MonoResolution:     135,
	}
}

// Validate проверяет корректность настроек сжатия
func (s *ShrinkSettings) Validate() error {
	for _, res := range []int{s.ColorResolution, s.GrayResolution, s.MonoResolution} {
		if res < 30 || res > 1200 {
			return ErrInvalidResolution
		}
	}

	switch s.PDFSettings {
	case "/screen", "/ebook", "/printer", "/prepress", "/default":
	default:
		return ErrInvalidPDFSettings
	}

	return nil
}
