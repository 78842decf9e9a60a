package domain_test

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/core/domain"
)

func TestLockPaths(t *testing.T) {
	assert.Equal(t, "deps.yml.linux.lock", domain.LockPathFor(domain.DefaultSpecFile, domain.PlatformLinux))
	assert.Equal(t, "proj/deps.yml.osx.lock", domain.LockPathFor("proj/deps.yml", domain.PlatformMacOS))
	assert.Equal(t, "deps.yml.*.lock", domain.LockPattern(domain.DefaultSpecFile))

	matched, err := filepath.Match(domain.LockPattern("deps.yml"), "deps.yml.win.lock")
	require.NoError(t, err)
	assert.True(t, matched)
}

func TestDeployedLockPath(t *testing.T) {
	assert.Equal(t,
		filepath.Join("/opt/conda", "envs", "foo", "deps.yml.lock"),
		domain.DeployedLockPath("/opt/conda", "foo"),
	)

	cfg := domain.Config{Root: "/opt/conda"}
	got, err := cfg.DeployedLockPath("foo")
	require.NoError(t, err)
	assert.Equal(t, domain.DeployedLockPath("/opt/conda", "foo"), got)

	_, err = domain.Config{}.DeployedLockPath("foo")
	require.ErrorIs(t, err, domain.ErrConfig)
	require.ErrorIs(t, err, domain.ErrRootNotConfigured)
	assert.Contains(t, err.Error(), "CONDA_ROOT")
}
