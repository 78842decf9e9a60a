package app

import "go.trai.ch/condalock/internal/core/ports"

// Components holds the top-level objects the CLI needs.
type Components struct {
	App    *App
	Logger ports.Logger
}
