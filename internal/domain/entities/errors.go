package entities

import "errors"

// Доменные ошибки
var (
	ErrInputNotFound      = errors.New("входной файл не найден")
	ErrUnsupportedFile    = errors.New("неподдерживаемый тип файла")
	ErrNamingCollision    = errors.New("выходной путь совпадает с входным")
	ErrDirectoryCreation  = errors.New("не удалось создать директорию")
	ErrEngineSpawnFailed  = errors.New("не удалось запустить внешний движок")
	ErrEngineFailed       = errors.New("внешний движок завершился с ошибкой")
	ErrUnknownEngine      = errors.New("неизвестный движок сжатия")
	ErrInvalidResolution  = errors.New("разрешение изображений должно быть от 30 до 1200 DPI")
	ErrInvalidPDFSettings = errors.New("неизвестный профиль PDFSETTINGS")
	ErrInvalidJPEGQuality = errors.New("качество JPEG должно быть от 10 до 50 с шагом 5")
	ErrInvalidPNGQuality  = errors.New("качество PNG должно быть от 10 до 50 с шагом 5")
	ErrNoInputFiles       = errors.New("не указано ни одного входного файла")
)
