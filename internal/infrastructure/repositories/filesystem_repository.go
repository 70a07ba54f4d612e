package repositories

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
)

// FileSystemRepository реализация репозитория для работы с файловой системой
type FileSystemRepository struct{}

// NewFileSystemRepository создает новый репозиторий файловой системы
func NewFileSystemRepository() *FileSystemRepository {
	return &FileSystemRepository{}
}

// FileExists проверяет существование файла
func (r *FileSystemRepository) FileExists(path string) bool {
	_, err := os.Stat(path)
	return !os.IsNotExist(err)
}

// IsDirectory проверяет, является ли путь директорией
func (r *FileSystemRepository) IsDirectory(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}

// GetFileSize возвращает размер файла в байтах
func (r *FileSystemRepository) GetFileSize(path string) (int64, error) {
	info, err := os.Stat(path)
	if err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// CreateDirectory создает директорию вместе с родительскими.
// Существующая директория не является ошибкой.
func (r *FileSystemRepository) CreateDirectory(path string) error {
	return os.MkdirAll(path, 0755)
}

// ListPDFFiles возвращает отсортированный список PDF файлов в директории
// и всех ее поддиректориях
func (r *FileSystemRepository) ListPDFFiles(directory string) ([]string, error) {
	var pdfFiles []string

	err := filepath.WalkDir(directory, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() {
			return nil
		}
		if strings.EqualFold(filepath.Ext(d.Name()), ".pdf") {
			pdfFiles = append(pdfFiles, path)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Strings(pdfFiles)
	return pdfFiles, nil
}

// ReplaceFile заменяет оригинальный файл временным.
// Оригинал сперва переименовывается в резервную копию: при сбое замены
// он восстанавливается, так что оригинал не теряется ни в какой точке.
func (r *FileSystemRepository) ReplaceFile(originalPath, tempPath string) error {
	if _, err := os.Stat(tempPath); os.IsNotExist(err) {
		return fmt.Errorf("временный файл не существует: %s", tempPath)
	}

	backupPath := originalPath + ".backup"

	if err := os.Rename(originalPath, backupPath); err != nil {
		return fmt.Errorf("ошибка создания резервной копии: %w", err)
	}

	if err := os.Rename(tempPath, originalPath); err != nil {
		// Восстанавливаем оригинал из резервной копии
		_ = os.Rename(backupPath, originalPath)
		return fmt.Errorf("ошибка замены файла: %w", err)
	}

	// Замена уже состоялась: оставшаяся резервная копия не повод считать ее неудачной
	_ = os.Remove(backupPath)

	return nil
}

// Remove удаляет файл; отсутствие файла не является ошибкой
func (r *FileSystemRepository) Remove(path string) error {
	err := os.Remove(path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
