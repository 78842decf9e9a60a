package app

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/conda"     //nolint:depguard // Wired in app layer
	"go.trai.ch/condalock/internal/adapters/config"    //nolint:depguard // Wired in app layer
	"go.trai.ch/condalock/internal/adapters/fs"        //nolint:depguard // Wired in app layer
	"go.trai.ch/condalock/internal/adapters/logger"    //nolint:depguard // Wired in app layer
	"go.trai.ch/condalock/internal/adapters/telemetry" //nolint:depguard // Wired in app layer
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/condalock/internal/engine/checker"
	"go.trai.ch/condalock/internal/engine/freezer"
)

const (
	// AppNodeID is the unique identifier for the main App Graft node.
	AppNodeID graft.ID = "app.main"
	// ComponentsNodeID is the unique identifier for the App components Graft node.
	ComponentsNodeID graft.ID = "app.components"
)

func init() {
	graft.Register(graft.Node[*App]{
		ID:        AppNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			freezer.NodeID,
			checker.NodeID,
			fs.LockfileStoreNodeID,
			conda.NodeID,
			logger.NodeID,
			telemetry.TracerNodeID,
			config.ConfigNodeID,
		},
		Run: func(ctx context.Context) (*App, error) {
			freeze, err := graft.Dep[*freezer.Service](ctx)
			if err != nil {
				return nil, err
			}
			check, err := graft.Dep[*checker.Checker](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}
			manager, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return New(freeze, check, locks, manager, log, tracer, cfg), nil
		},
	})

	graft.Register(graft.Node[*Components]{
		ID:        ComponentsNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			AppNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Components, error) {
			app, err := graft.Dep[*App](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return &Components{App: app, Logger: log}, nil
		},
	})
}
