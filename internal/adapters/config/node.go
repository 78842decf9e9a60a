package config

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// NodeID is the unique identifier for the configuration loader Graft node.
const NodeID graft.ID = "adapter.config_loader"

func init() {
	graft.Register(graft.Node[ports.ConfigLoader]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.ConfigLoader, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewLoader(log), nil
		},
	})
}

// ConfigNodeID is the unique identifier for the loaded configuration Graft node.
const ConfigNodeID graft.ID = "adapter.config"

func init() {
	graft.Register(graft.Node[domain.Config]{
		ID:        ConfigNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{NodeID},
		Run: func(ctx context.Context) (domain.Config, error) {
			loader, err := graft.Dep[ports.ConfigLoader](ctx)
			if err != nil {
				return domain.Config{}, err
			}
			return loader.Load()
		},
	})
}
