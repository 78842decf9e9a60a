package checker

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/config"
	"go.trai.ch/condalock/internal/adapters/fs"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
)

// NodeID is the unique identifier for the checker Graft node.
const NodeID graft.ID = "engine.checker"

func init() {
	graft.Register(graft.Node[*Checker]{
		ID:        NodeID,
		Cacheable: true,
		DependsOn: []graft.ID{fs.SpecReaderNodeID, fs.LockfileStoreNodeID, logger.NodeID, config.ConfigNodeID},
		Run: func(ctx context.Context) (*Checker, error) {
			specs, err := graft.Dep[ports.SpecReader](ctx)
			if err != nil {
				return nil, err
			}
			locks, err := graft.Dep[ports.LockfileStore](ctx)
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
			return New(specs, locks, log, cfg), nil
		},
	})
}
