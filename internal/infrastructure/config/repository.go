package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
)

// DefaultConfigPath путь к файлу конфигурации по умолчанию
const DefaultConfigPath = "pdfshrink.yaml"

// Repository реализация репозитория конфигурации на YAML файле
type Repository struct{}

// NewRepository создает новый репозиторий конфигурации
func NewRepository() *Repository {
	return &Repository{}
}

// Load загружает конфигурацию из файла.
// Отсутствующий файл не является ошибкой: возвращается конфигурация
// по умолчанию.
func (r *Repository) Load(configPath string) (*entities.Config, error) {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return entities.NewDefaultConfig(), nil
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения конфигурации %s: %w", configPath, err)
	}

	// Начинаем с умолчаний: файл может задавать только часть полей
	config := entities.NewDefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("ошибка разбора конфигурации %s: %w", configPath, err)
	}

	if config.Shrink.Ghostscript == nil {
		config.Shrink.Ghostscript = entities.NewShrinkSettings()
	}

	return config, nil
}

// Save сохраняет конфигурацию в файл
func (r *Repository) Save(configPath string, config *entities.Config) error {
	if configPath == "" {
		configPath = DefaultConfigPath
	}

	data, err := yaml.Marshal(config)
	if err != nil {
		return fmt.Errorf("ошибка сериализации конфигурации: %w", err)
	}

	return os.WriteFile(configPath, data, 0644)
}
