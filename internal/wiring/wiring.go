// Package wiring registers all Graft nodes for the application.
package wiring

import (
	// Register adapter nodes.
	_ "go.trai.ch/condalock/internal/adapters/conda"
	_ "go.trai.ch/condalock/internal/adapters/config"
	_ "go.trai.ch/condalock/internal/adapters/docker"
	_ "go.trai.ch/condalock/internal/adapters/fs"
	_ "go.trai.ch/condalock/internal/adapters/logger"
	_ "go.trai.ch/condalock/internal/adapters/shell"
	_ "go.trai.ch/condalock/internal/adapters/telemetry"
	// Register app and engine nodes.
	_ "go.trai.ch/condalock/internal/app"
	_ "go.trai.ch/condalock/internal/engine/checker"
	_ "go.trai.ch/condalock/internal/engine/freezer"
)
