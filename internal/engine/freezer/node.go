package freezer

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/conda"
	"go.trai.ch/condalock/internal/adapters/config"
	"go.trai.ch/condalock/internal/adapters/docker"
	"go.trai.ch/condalock/internal/adapters/fs"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/adapters/telemetry"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

const (
	// NodeID is the unique identifier for the freeze service Graft node.
	NodeID graft.ID = "engine.freezer"
	// LocalNodeID is the unique identifier for the local resolver Graft node.
	LocalNodeID graft.ID = "engine.freezer.local"
	// ContainerNodeID is the unique identifier for the container resolver Graft node.
	ContainerNodeID graft.ID = "engine.freezer.container"
)

func init() {
	graft.Register(graft.Node[*LocalFreezer]{
		ID:        LocalNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{conda.NodeID, telemetry.TracerNodeID, logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (*LocalFreezer, error) {
			manager, err := graft.Dep[ports.PackageManager](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewLocalFreezer(manager, tracer, log, cfg.TempDir), nil
		},
	})

	graft.Register(graft.Node[*ContainerFreezer]{
		ID:        ContainerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{docker.NodeID, telemetry.TracerNodeID, logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (*ContainerFreezer, error) {
			runtime, err := graft.Dep[ports.ContainerRuntime](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewContainerFreezer(runtime, tracer, log, cfg.BaseImage, cfg.TempDir), nil
		},
	})

	graft.Register(graft.Node[*Service]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{
			fs.SpecReaderNodeID,
			fs.LockfileStoreNodeID,
			LocalNodeID,
			ContainerNodeID,
			telemetry.TracerNodeID,
			logger.NodeID,
		},
		Run: func(ctx context.Context) (*Service, error) {
			specs, err := graft.Dep[ports.SpecReader](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileStore](ctx)
			if err != nil {
				return nil, err
			}
			local, err := graft.Dep[*LocalFreezer](ctx)
			if err != nil {
				return nil, err
			}
			container, err := graft.Dep[*ContainerFreezer](ctx)
			if err != nil {
				return nil, err
			}
			tracer, err := graft.Dep[ports.Tracer](ctx)
			if err != nil {
				return nil, err
			}
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewService(specs, locks, local, container, tracer, log), nil
		},
	})
}
