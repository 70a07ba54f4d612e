package engines

import (
	"bytes"
	"errors"
	"os/exec"

	"github.com/FedericoStra/pdfshrink/internal/domain/entities"
)

// SystemExecutor запускает внешние команды через os/exec
type SystemExecutor struct{}

// NewSystemExecutor создает новый исполнитель команд
func NewSystemExecutor() *SystemExecutor {
	return &SystemExecutor{}
}

// Run выполняет команду и дожидается ее завершения.
// Аргументы передаются вектором напрямую в процесс, без shell.
// Ненулевой код возврата не считается ошибкой Run: он возвращается
// в CommandOutput. Ошибка возвращается только если процесс не запустился.
func (e *SystemExecutor) Run(name string, args []string) (*entities.CommandOutput, error) {
	cmd := exec.Command(name, args...)

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	err := cmd.Run()
	output := &entities.CommandOutput{
		Stdout: stdout.Bytes(),
		Stderr: stderr.Bytes(),
	}

	if err != nil {
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			output.ExitCode = exitErr.ExitCode()
			return output, nil
		}
		return nil, err
	}

	return output, nil
}
