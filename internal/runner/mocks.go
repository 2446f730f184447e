package runner

import (
	"context"
)

// ExecutedCommand records one Execute call made against MockCommandRunner.
type ExecutedCommand struct {
	Name  string
	Args  []string
	Stdin string
}

// MockCommandRunner returns a scripted output instead of running anything.
type MockCommandRunner struct {
	Output   []byte
	Err      error
	Executed []ExecutedCommand
}

func (m *MockCommandRunner) Execute(_ context.Context, name string, args []string, stdin string) ([]byte, error) {
	m.Executed = append(m.Executed, ExecutedCommand{Name: name, Args: args, Stdin: stdin})
	return m.Output, m.Err
}
