package app_test

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/adapters/fs"
	"go.trai.ch/condalock/internal/adapters/logger"
	"go.trai.ch/condalock/internal/adapters/telemetry"
	"go.trai.ch/condalock/internal/app"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/condalock/internal/core/ports/mocks"
	"go.trai.ch/condalock/internal/engine/checker"
	"go.trai.ch/condalock/internal/engine/freezer"
	"go.uber.org/mock/gomock"
)

const (
	fooSpec     = "name: foo\ndependencies:\n  - numpy=1.2\n  - [flask]\n"
	fooResolved = "name: foo\ndependencies:\n  - numpy=1.2.1\n  - python=3.7\n  - - flask\n    - click\n"
)

type harness struct {
	app      *app.App
	resolver *mocks.MockResolver
	manager  *mocks.MockPackageManager
	stdout   *bytes.Buffer
	dir      string
	root     string
	specPath string
	tempDir  string
}

func newHarness(t *testing.T, log ports.Logger) *harness {
	t.Helper()
	ctrl := gomock.NewController(t)

	h := &harness{
		resolver: mocks.NewMockResolver(ctrl),
		manager:  mocks.NewMockPackageManager(ctrl),
		stdout:   new(bytes.Buffer),
		dir:      t.TempDir(),
		root:     t.TempDir(),
		tempDir:  t.TempDir(),
	}
	h.specPath = filepath.Join(h.dir, domain.DefaultSpecFile)
	require.NoError(t, os.WriteFile(h.specPath, []byte(fooSpec), 0o600))

	if log == nil {
		mockLog := mocks.NewMockLogger(ctrl)
		mockLog.EXPECT().Info(gomock.Any()).AnyTimes()
		mockLog.EXPECT().Debug(gomock.Any()).AnyTimes()
		log = mockLog
	}

	cfg := domain.Config{Root: h.root, TempDir: h.tempDir}
	specs := fs.NewSpecReader()
	locks := fs.NewLockfileStore()
	tracer := telemetry.NewNoOpTracer()

	svc := freezer.NewService(specs, locks, h.resolver, h.resolver, tracer, log, freezer.WithHost(domain.PlatformLinux))
	chk := checker.New(specs, locks, log, cfg)

	h.app = app.New(svc, chk, locks, h.manager, log, tracer, cfg).
		WithStdout(h.stdout).
		WithHost(domain.PlatformLinux)
	return h
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries)
}

func TestApp_FreezeCreateCheck(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()
	lockPath := h.specPath + ".linux.lock"

	h.resolver.EXPECT().Resolve(gomock.Any(), gomock.Any(), domain.PlatformLinux).Return([]byte(fooResolved), nil)
	require.NoError(t, h.app.Freeze(ctx, app.FreezeOptions{SpecPath: h.specPath}))
	assert.FileExists(t, lockPath)
	assert.Contains(t, h.stdout.String(), "into "+lockPath)

	h.manager.EXPECT().CreateEnvironment(gomock.Any(), "foo", gomock.Any()).
		DoAndReturn(func(_ context.Context, _ string, path string) error {
			assert.Equal(t, domain.ScratchLockFile, filepath.Base(path))
			assert.True(t, strings.HasPrefix(path, h.tempDir))
			staged, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, fooResolved, string(staged))
			return nil
		})
	require.NoError(t, h.app.Create(ctx, app.CreateOptions{LockPath: lockPath}))
	assert.Contains(t, h.stdout.String(), "created environment foo")
	assertEmptyDir(t, h.tempDir)

	frozen, err := os.ReadFile(lockPath)
	require.NoError(t, err)
	deployed, err := os.ReadFile(domain.DeployedLockPath(h.root, "foo"))
	require.NoError(t, err)
	assert.Equal(t, string(frozen), string(deployed))

	require.NoError(t, h.app.CheckEnv(ctx, h.specPath))
	assert.Contains(t, h.stdout.String(), domain.DeployedLockPath(h.root, "foo")+": ok")

	require.NoError(t, os.WriteFile(h.specPath, []byte(fooSpec+"  - scipy\n"), 0o600))
	require.ErrorIs(t, h.app.CheckEnv(ctx, h.specPath), domain.ErrHashMismatch)
}

func TestApp_Freeze_Errors(t *testing.T) {
	h := newHarness(t, nil)
	ctx := context.Background()

	err := h.app.Freeze(ctx, app.FreezeOptions{SpecPath: h.specPath, Target: "windows"})
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	assert.NoFileExists(t, h.specPath+".win.lock")

	err = h.app.Freeze(ctx, app.FreezeOptions{SpecPath: h.specPath, Target: "beos"})
	require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
}

func TestApp_Create_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("other platform", func(t *testing.T) {
		h := newHarness(t, nil)
		err := h.app.Create(ctx, app.CreateOptions{LockPath: "deps.yml.osx.lock", Target: "osx"})
		require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
	})

	t.Run("lockfile without hash", func(t *testing.T) {
		h := newHarness(t, nil)
		path := filepath.Join(h.dir, "plain.lock")
		require.NoError(t, os.WriteFile(path, []byte(fooResolved), 0o600))

		err := h.app.Create(ctx, app.CreateOptions{LockPath: path})
		require.ErrorIs(t, err, domain.ErrMissingHash)
	})

	t.Run("package manager failure", func(t *testing.T) {
		h := newHarness(t, nil)
		path := filepath.Join(h.dir, "deps.yml.linux.lock")
		require.NoError(t, fs.NewLockfileStore().Write(path, "aaaa", []byte(fooResolved)))

		h.manager.EXPECT().CreateEnvironment(gomock.Any(), "foo", gomock.Any()).
			Return(domain.Tag(domain.ErrProcess, domain.ErrEnvCreateFailed))

		err := h.app.Create(ctx, app.CreateOptions{LockPath: path})
		require.ErrorIs(t, err, domain.ErrProcess)
		assert.NoFileExists(t, domain.DeployedLockPath(h.root, "foo"))
		assertEmptyDir(t, h.tempDir)
	})
}

func TestApp_CheckLocks_PrintsEveryLockfile(t *testing.T) {
	h := newHarness(t, nil)
	store := fs.NewLockfileStore()

	good := h.specPath + ".linux.lock"
	bad := h.specPath + ".osx.lock"
	require.NoError(t, store.Write(good, domain.ComputeHash([]byte(fooSpec)), []byte(fooResolved)))
	require.NoError(t, store.Write(bad, "ffffffffffffffff", []byte(fooResolved)))

	err := h.app.CheckLocks(context.Background(), h.specPath, nil)
	require.ErrorIs(t, err, domain.ErrHashMismatch)

	out := h.stdout.String()
	assert.Contains(t, out, good+": ok\n")
	assert.Contains(t, out, bad+": FAILED\n")
}

func TestApp_ConfigureLogging(t *testing.T) {
	log := logger.New()
	buf := new(bytes.Buffer)
	log.(*logger.Logger).SetOutput(buf)

	h := newHarness(t, log)

	require.NoError(t, h.app.ConfigureLogging(2, "json"))
	log.Debug("resolving")

	var record map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(buf.Bytes()), &record))
	assert.Equal(t, "DEBUG", record["level"])
	assert.Equal(t, "resolving", record["msg"])

	buf.Reset()
	require.NoError(t, h.app.ConfigureLogging(0, "pretty"))
	log.Info("hidden")
	log.Warn("shown")
	assert.NotContains(t, buf.String(), "hidden")
	assert.True(t, strings.Contains(buf.String(), "shown"))

	require.ErrorIs(t, h.app.ConfigureLogging(0, "xml"), domain.ErrConfig)
}
