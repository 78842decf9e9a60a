package docker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/config"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/adapters/shell"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// NodeID is the unique identifier for the container runtime Graft node.
const NodeID graft.ID = "adapter.docker"

func init() {
	graft.Register(graft.Node[ports.ContainerRuntime]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.ContainerRuntime, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
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
			return NewRuntime(runner, log, cfg.ContainerRuntime, cfg.TempDir), nil
		},
	})
}
