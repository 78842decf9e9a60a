package telemetry

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/core/ports"
)

// TracerNodeID is the unique identifier for the Telemetry adapter Graft node.
const TracerNodeID graft.ID = "adapter.telemetry"

// InstrumentationName names the tracer that records freeze steps.
const InstrumentationName = "condalock"

func init() {
	graft.Register(graft.Node[ports.Tracer]{
		ID:        TracerNodeID,
		Cacheable: true,
		DependsOn: []graft.ID{logger.NodeID},
		Run: func(ctx context.Context) (ports.Tracer, error) {
			log, err := graft.Dep[ports.Logger](ctx)
			if err != nil {
				return nil, err
			}
			return NewOTelTracer(InstrumentationName, log), nil
		},
	})
}
