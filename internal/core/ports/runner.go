// Package ports defines the core interfaces for the application.
package ports

import (
	"context"

	"go.trai.ch/condalock/internal/core/domain"
)

// CommandRunner runs external processes.
//
//go:generate mockgen -source=runner.go -destination=mocks/mock_runner.go -package=mocks
type CommandRunner interface {
	// Run executes cmd and blocks until it exits, buffering its output.
	//
	// A non-zero exit status is returned as an ErrProcess error carrying the exit code and
	// stderr; the result is populated either way.
	Run(ctx context.Context, cmd domain.Command) (domain.CommandResult, error)
}
