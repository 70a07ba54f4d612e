package logging

import "github.com/FedericoStra/pdfshrink/internal/domain/repositories"

// MultiLogger рассылает сообщения нескольким логгерам.
// nil-логгеры допустимы и пропускаются, поэтому вызывающий код может
// не проверять, включен ли, например, файловый лог.
type MultiLogger struct {
	loggers []repositories.Logger
}

// NewMultiLogger создает составной логгер
func NewMultiLogger(loggers ...repositories.Logger) *MultiLogger {
	var active []repositories.Logger
	for _, l := range loggers {
		if l != nil {
			active = append(active, l)
		}
	}
	return &MultiLogger{loggers: active}
}

// Debug логирует отладочное сообщение
func (m *MultiLogger) Debug(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Debug(format, args...)
	}
}

// Info логирует информационное сообщение
func (m *MultiLogger) Info(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Info(format, args...)
	}
}

// Warning логирует предупреждение
func (m *MultiLogger) Warning(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Warning(format, args...)
	}
}

// Error логирует ошибку
func (m *MultiLogger) Error(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Error(format, args...)
	}
}

// Success логирует успешное выполнение
func (m *MultiLogger) Success(format string, args ...interface{}) {
	for _, l := range m.loggers {
		l.Success(format, args...)
	}
}

// Close закрывает все вложенные логгеры, возвращая первую ошибку
func (m *MultiLogger) Close() error {
	var firstErr error
	for _, l := range m.loggers {
		if err := l.Close(); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
