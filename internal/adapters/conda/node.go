package conda

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/config"
	"go.trai.ch/condalock/internal/adapters/shell"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// NodeID is the unique identifier for the package manager Graft node.
const NodeID graft.ID = "adapter.conda"

func init() {
	graft.Register(graft.Node[ports.PackageManager]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{shell.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (ports.PackageManager, error) {
			runner, err := graft.Dep[ports.CommandRunner](ctx)
			if err != nil {
				return nil, err
			}
			cfg, err := graft.Dep[domain.Config](ctx)
			if err != nil {
				return nil, err
			}
			return NewManager(runner, cfg.PackageManager), nil
		},
	})
}
