package entities

import (
	"path/filepath"
	"strings"
)

// PlacementKind определяет способ размещения сжатого файла
type PlacementKind int

const (
	// PlacementRename — сохранить рядом с оригиналом, вставив суффикс
	// перед расширением (режим по умолчанию)
	PlacementRename PlacementKind = iota
	// PlacementInPlace — заменить оригинальный файл
	PlacementInPlace
	// PlacementSubdir — сохранить в поддиректорию рядом с оригиналом
	PlacementSubdir
)

// DefaultSuffix суффикс имени файла по умолчанию: name.pdf -> name.shrunk.pdf
const DefaultSuffix = "shrunk"

// tempSuffix суффикс временного файла для режима замены оригинала.
// Путь детерминированный, чтобы повторные dry-run печатали одну и ту же команду.
const tempSuffix = ".tmp"

// PlacementMode политика размещения сжатого файла.
// Ровно один вариант активен на запуск; недопустимые комбинации флагов
// непредставимы, взаимоисключаемость проверяется на уровне CLI.
type PlacementMode struct {
	Kind   PlacementKind
	Suffix string // используется при PlacementRename
	Dir    string // используется при PlacementSubdir
}

// NewRenameMode создает режим переименования с указанным суффиксом
func NewRenameMode(suffix string) PlacementMode {
	return PlacementMode{Kind: PlacementRename, Suffix: suffix}
}

// NewInPlaceMode создает режим замены оригинального файла
func NewInPlaceMode() PlacementMode {
	return PlacementMode{Kind: PlacementInPlace}
}

// NewSubdirMode создает режим сохранения в поддиректорию
func NewSubdirMode(dir string) PlacementMode {
	return PlacementMode{Kind: PlacementSubdir, Dir: dir}
}

// OutputFor вычисляет путь выходного файла для входного.
// Входной файл обязан иметь поддерживаемое расширение (.pdf либо
// поддерживаемое изображение), иначе возвращается ErrUnsupportedFile.
func (m PlacementMode) OutputFor(inputPath string) (string, error) {
	if !IsSupportedFile(inputPath) {
		return "", ErrUnsupportedFile
	}

	switch m.Kind {
	case PlacementInPlace:
		return inputPath, nil

	case PlacementSubdir:
		dir := filepath.Dir(inputPath)
		return filepath.Join(dir, m.Dir, filepath.Base(inputPath)), nil

	default: // PlacementRename
		ext := filepath.Ext(inputPath)
		base := strings.TrimSuffix(inputPath, ext)

		// Пустой суффикс — вырожденный случай: выходной путь совпал бы с входным
		if m.Suffix == "" {
			return "", ErrNamingCollision
		}

		out := base + "." + m.Suffix + ext
		if out == inputPath {
			return "", ErrNamingCollision
		}
		return out, nil
	}
}

// TempPathFor возвращает детерминированный путь временного файла для
// режима замены оригинала. Файл лежит в той же директории, поэтому
// финальное переименование атомарно в пределах файловой системы.
func TempPathFor(inputPath string) string {
	return inputPath + tempSuffix
}

// HasPDFExtension проверяет расширение .pdf без учета регистра
func HasPDFExtension(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".pdf")
}

// IsImageFile проверяет, является ли файл изображением поддерживаемого формата
func IsImageFile(path string) bool {
	return ImageFormat(path) != ""
}

// ImageFormat возвращает формат изображения по расширению файла
func ImageFormat(path string) string {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".jpg", ".jpeg":
		return "jpeg"
	case ".png":
		return "png"
	default:
		return ""
	}
}

// IsSupportedFile проверяет, умеет ли приложение обрабатывать данный файл
func IsSupportedFile(path string) bool {
	return HasPDFExtension(path) || IsImageFile(path)
}
