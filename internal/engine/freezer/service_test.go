package freezer_test

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/adapters/fs"
	"go.trai.ch/condalock/internal/adapters/telemetry"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports/mocks"
	"go.trai.ch/condalock/internal/engine/freezer"
	"go.uber.org/mock/gomock"
)

const (
	fooSpec = "name: foo\ndependencies:\n  - numpy=1.2\n  - [flask]\n"

	fooResolved = `name: foo
dependencies:
  - numpy=1.2.1
  - python=3.7
  - - flask
    - click
`
)

type serviceFixture struct {
	dir       string
	specPath  string
	lockPath  string
	local     *mocks.MockResolver
	container *mocks.MockResolver
	logger    *mocks.MockLogger
	debug     []string
}

func newServiceFixture(t *testing.T) *serviceFixture {
	t.Helper()
	ctrl := gomock.NewController(t)

	dir := t.TempDir()
	f := &serviceFixture{
		dir:       dir,
		specPath:  filepath.Join(dir, domain.DefaultSpecFile),
		lockPath:  filepath.Join(dir, "deps.yml.linux.lock"),
		local:     mocks.NewMockResolver(ctrl),
		container: mocks.NewMockResolver(ctrl),
		logger:    mocks.NewMockLogger(ctrl),
	}
	require.NoError(t, os.WriteFile(f.specPath, []byte(fooSpec), 0o600))

	f.logger.EXPECT().Info(gomock.Any()).AnyTimes()
	f.logger.EXPECT().Debug(gomock.Any()).Do(func(msg string) {
		f.debug = append(f.debug, msg)
	}).AnyTimes()
	return f
}

func (f *serviceFixture) service(host domain.Platform) *freezer.Service {
	return freezer.NewService(
		fs.NewSpecReader(),
		fs.NewLockfileStore(),
		f.local,
		f.container,
		telemetry.NewNoOpTracer(),
		f.logger,
		freezer.WithHost(host),
	)
}

func TestService_Freeze_Local(t *testing.T) {
	f := newServiceFixture(t)

	f.local.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), domain.PlatformLinux).
		DoAndReturn(func(_ context.Context, spec *domain.EnvironmentSpec, _ domain.Platform) ([]byte, error) {
			assert.Equal(t, "foo", spec.Name)
			assert.Equal(t, fooSpec, string(spec.Raw))
			return []byte(fooResolved), nil
		})

	err := f.service(domain.PlatformLinux).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.NoError(t, err)

	data, err := os.ReadFile(f.lockPath)
	require.NoError(t, err)

	hash, err := domain.ExtractHash(data)
	require.NoError(t, err)
	assert.Equal(t, domain.ComputeHash([]byte(fooSpec)), hash)

	g := goldie.New(t)
	g.Assert(t, "foo_linux_lock", data)
}

func TestService_Freeze_CrossPlatformUsesContainer(t *testing.T) {
	f := newServiceFixture(t)

	f.container.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), domain.PlatformLinux).
		Return([]byte(fooResolved), nil)

	err := f.service(domain.PlatformMacOS).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.NoError(t, err)

	_, doc, err := fs.NewLockfileStore().Read(f.lockPath)
	require.NoError(t, err)
	assert.Equal(t, fooResolved, string(doc))
}

func TestService_Freeze_WindowsTargetWritesNothing(t *testing.T) {
	for _, host := range []domain.Platform{domain.PlatformLinux, domain.PlatformMacOS, domain.PlatformWindows} {
		t.Run(host.String(), func(t *testing.T) {
			f := newServiceFixture(t)
			lockPath := filepath.Join(f.dir, "deps.yml.win.lock")

			err := f.service(host).Freeze(context.Background(), f.specPath, lockPath, domain.PlatformWindows)
			require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
			assert.NoFileExists(t, lockPath)
		})
	}
}

func TestService_Freeze_UnsupportedPairs(t *testing.T) {
	pairs := []struct {
		host, target domain.Platform
	}{
		{domain.PlatformLinux, domain.PlatformMacOS},
		{domain.PlatformWindows, domain.PlatformLinux},
	}
	for _, p := range pairs {
		f := newServiceFixture(t)
		err := f.service(p.host).Freeze(context.Background(), f.specPath, f.lockPath, p.target)
		require.ErrorIs(t, err, domain.ErrUnsupportedPlatform)
		assert.NoFileExists(t, f.lockPath)
	}
}

func TestService_Freeze_ValidationFailureWritesNothing(t *testing.T) {
	f := newServiceFixture(t)

	f.local.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte("name: foo\ndependencies:\n  - python=3.7\n  - [flask]\n"), nil)

	err := f.service(domain.PlatformLinux).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.ErrorIs(t, err, domain.ErrValidation)
	assert.NoFileExists(t, f.lockPath)
}

func TestService_Freeze_ResolverFailureWritesNothing(t *testing.T) {
	f := newServiceFixture(t)
	boom := errors.New("solver exploded")

	f.local.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return(nil, domain.Tag(domain.ErrProcess, boom))

	err := f.service(domain.PlatformLinux).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.ErrorIs(t, err, domain.ErrProcess)
	require.ErrorIs(t, err, boom)
	assert.NoFileExists(t, f.lockPath)
}

func TestService_Freeze_InvalidSpec(t *testing.T) {
	f := newServiceFixture(t)
	require.NoError(t, os.WriteFile(f.specPath, []byte("dependencies: [numpy]\n"), 0o600))

	err := f.service(domain.PlatformLinux).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.ErrorIs(t, err, domain.ErrParse)
	assert.NoFileExists(t, f.lockPath)
}

func TestService_Freeze_LogsChangesToExistingLock(t *testing.T) {
	f := newServiceFixture(t)
	previous := "name: foo\ndependencies:\n  - numpy=1.2.0\n  - python=3.7\n  - - flask\n    - click\n"
	require.NoError(t, fs.NewLockfileStore().Write(f.lockPath, "0000000000000000", []byte(previous)))

	f.local.EXPECT().
		Resolve(gomock.Any(), gomock.Any(), gomock.Any()).
		Return([]byte(fooResolved), nil)

	err := f.service(domain.PlatformLinux).Freeze(context.Background(), f.specPath, f.lockPath, domain.PlatformLinux)
	require.NoError(t, err)

	diff := strings.Join(f.debug, "\n")
	assert.Contains(t, diff, "-  - numpy=1.2.0")
	assert.Contains(t, diff, "+  - numpy=1.2.1")

	hash, _, err := fs.NewLockfileStore().Read(f.lockPath)
	require.NoError(t, err)
	assert.Equal(t, domain.ComputeHash([]byte(fooSpec)), hash)
}
