package fs

import (
	"context"

	"github.com/grindlemire/graft"
	"go.trai.ch/condalock/internal/core/ports"
)

const (
	// SpecReaderNodeID is the unique identifier for the spec reader Graft node.
	SpecReaderNodeID graft.ID = "adapter.fs.spec_reader"
	// LockfileStoreNodeID is the unique identifier for the lockfile store Graft node.
	LockfileStoreNodeID graft.ID = "adapter.fs.lockfile_store"
)

func init() {
	graft.Register(graft.Node[ports.SpecReader]{
		ID:        SpecReaderNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.SpecReader, error) {
			return NewSpecReader(), nil
		},
	})

	graft.Register(graft.Node[ports.LockfileStore]{
		ID:        LockfileStoreNodeID,
		Cacheable: true,
		Run: func(_ context.Context) (ports.LockfileStore, error) {
			return NewLockfileStore(), nil
		},
	})
}
