package logging

import (
	"fmt"
	"io"
	"os"
)

// Уровни вывода консольного логгера
const (
	levelDebug = iota
	levelInfo
	levelWarning
	levelError
)

// ConsoleLogger логгер в терминал. Порог определяется количеством
// флагов -v: 0 — info и выше, 1 и больше — все сообщения.
// Ошибки и предупреждения пишутся в stderr, успешные результаты —
// в stdout, чтобы вывод можно было обрабатывать конвейером.
type ConsoleLogger struct {
	threshold int
	out       io.Writer
	errOut    io.Writer
}

// NewConsoleLogger создает новый консольный логгер для данной verbosity
func NewConsoleLogger(verbosity int) *ConsoleLogger {
	threshold := levelInfo
	if verbosity >= 1 {
		threshold = levelDebug
	}
	return &ConsoleLogger{
		threshold: threshold,
		out:       os.Stdout,
		errOut:    os.Stderr,
	}
}

// NewConsoleLoggerWithWriters создает консольный логгер с указанными
// потоками вывода; используется в тестах
func NewConsoleLoggerWithWriters(verbosity int, out, errOut io.Writer) *ConsoleLogger {
	l := NewConsoleLogger(verbosity)
	l.out = out
	l.errOut = errOut
	return l
}

// Debug логирует отладочное сообщение
func (l *ConsoleLogger) Debug(format string, args ...interface{}) {
	l.write(levelDebug, l.errOut, "DEBUG", format, args...)
}

// Info логирует информационное сообщение
func (l *ConsoleLogger) Info(format string, args ...interface{}) {
	l.write(levelInfo, l.errOut, "INFO", format, args...)
}

// Warning логирует предупреждение
func (l *ConsoleLogger) Warning(format string, args ...interface{}) {
	l.write(levelWarning, l.errOut, "WARNING", format, args...)
}

// Error логирует ошибку
func (l *ConsoleLogger) Error(format string, args ...interface{}) {
	l.write(levelError, l.errOut, "ERROR", format, args...)
}

// Success логирует успешное выполнение
func (l *ConsoleLogger) Success(format string, args ...interface{}) {
	l.write(levelInfo, l.out, "SUCCESS", format, args...)
}

// Close закрывает логгер
func (l *ConsoleLogger) Close() error {
	return nil
}

// write выводит сообщение, если уровень не ниже порога
func (l *ConsoleLogger) write(level int, w io.Writer, tag, format string, args ...interface{}) {
	if level < l.threshold {
		return
	}
	fmt.Fprintf(w, "[%s] %s\n", tag, fmt.Sprintf(format, args...))
}
