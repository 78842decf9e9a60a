package freezer_test

import (
	"context"
	"errors"
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/adapters/telemetry"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports"
	"go.trai.ch/condalock/internal/core/ports/mocks"
	"go.trai.ch/condalock/internal/engine/freezer"
	"go.uber.org/mock/gomock"
)

const exported = `name: %s
channels:
  - defaults
dependencies:
  - numpy=1.2.1=py37_0
  - python=3.7.16
  - pip:
      - flask==2.0.3
prefix: /opt/conda/envs/%s
`

func fooEnvironment(t *testing.T) *domain.EnvironmentSpec {
	t.Helper()
	spec, err := domain.ParseSpec([]byte(fooSpec))
	require.NoError(t, err)
	return spec
}

func newLocalFreezer(t *testing.T) (*freezer.LocalFreezer, *mocks.MockPackageManager, string) {
	t.Helper()
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockPackageManager(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	tempDir := t.TempDir()
	return freezer.NewLocalFreezer(manager, telemetry.NewNoOpTracer(), log, tempDir), manager, tempDir
}

func assertEmptyDir(t *testing.T, dir string) {
	t.Helper()
	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "scratch directories must be released")
}

func TestLocalFreezer_Resolve(t *testing.T) {
	lf, manager, tempDir := newLocalFreezer(t)
	spec := fooEnvironment(t)

	var env string
	gomock.InOrder(
		manager.EXPECT().
			CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, name, path string) error {
				env = name
				staged, err := os.ReadFile(path)
				require.NoError(t, err)
				assert.Equal(t, fooSpec, string(staged))
				return nil
			}),
		manager.EXPECT().
			ExportEnvironment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, name string) ([]byte, error) {
				assert.Equal(t, env, name)
				return []byte(strings.ReplaceAll(exported, "%s", name)), nil
			}),
		manager.EXPECT().
			RemoveEnvironment(gomock.Any(), gomock.Any()).
			DoAndReturn(func(_ context.Context, name string) error {
				assert.Equal(t, env, name)
				return nil
			}),
	)

	doc, err := lf.Resolve(context.Background(), spec, domain.PlatformLinux)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(env, domain.SessionPrefix), env)
	assert.NotEqual(t, spec.Name, env)

	name, err := domain.DocumentName(doc)
	require.NoError(t, err)
	assert.Equal(t, "foo", name)
	assert.NotContains(t, string(doc), env)
	assert.NotContains(t, string(doc), "prefix")

	assertEmptyDir(t, tempDir)
}

func TestLocalFreezer_UniqueSessions(t *testing.T) {
	lf, manager, _ := newLocalFreezer(t)
	spec := fooEnvironment(t)

	seen := map[string]bool{}
	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name, _ string) error {
			assert.False(t, seen[name], "session name reused")
			seen[name] = true
			return nil
		}).Times(2)
	manager.EXPECT().ExportEnvironment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, name string) ([]byte, error) {
			return []byte(strings.ReplaceAll(exported, "%s", name)), nil
		}).Times(2)
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	for range 2 {
		_, err := lf.Resolve(context.Background(), spec, domain.PlatformLinux)
		require.NoError(t, err)
	}
	assert.Len(t, seen, 2)
}

func TestLocalFreezer_CreateFailureReleasesEnvironment(t *testing.T) {
	lf, manager, tempDir := newLocalFreezer(t)
	createErr := domain.Tag(domain.ErrProcess, errors.New("PackagesNotFoundError: numpy=1.2"))

	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).Return(createErr)
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).Return(nil)

	_, err := lf.Resolve(context.Background(), fooEnvironment(t), domain.PlatformLinux)
	require.ErrorIs(t, err, domain.ErrProcess)
	assert.Contains(t, err.Error(), "PackagesNotFoundError")

	assertEmptyDir(t, tempDir)
}

func TestLocalFreezer_ReleaseFailureIsReported(t *testing.T) {
	lf, manager, _ := newLocalFreezer(t)
	removeErr := errors.New("environment busy")

	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	manager.EXPECT().ExportEnvironment(gomock.Any(), gomock.Any()).
		Return([]byte("name: x\ndependencies: [numpy=1.2.1]\n"), nil)
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).Return(removeErr)

	_, err := lf.Resolve(context.Background(), fooEnvironment(t), domain.PlatformLinux)
	require.ErrorIs(t, err, removeErr)
}

func TestLocalFreezer_CancelledStillReleases(t *testing.T) {
	lf, manager, tempDir := newLocalFreezer(t)
	ctx, cancel := context.WithCancel(context.Background())

	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _, _ string) error {
			cancel()
			return domain.Tag(domain.ErrProcess, ctx.Err())
		})
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, _ string) error {
			assert.NoError(t, ctx.Err(), "release runs on a live context")
			return nil
		})

	_, err := lf.Resolve(ctx, fooEnvironment(t), domain.PlatformLinux)
	require.ErrorIs(t, err, context.Canceled)

	assertEmptyDir(t, tempDir)
}

func TestLocalFreezer_EmptyExport(t *testing.T) {
	lf, manager, _ := newLocalFreezer(t)

	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	manager.EXPECT().ExportEnvironment(gomock.Any(), gomock.Any()).
		Return(nil, domain.Tag(domain.ErrProcess, domain.ErrEmptyExport))
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).Return(nil)

	_, err := lf.Resolve(context.Background(), fooEnvironment(t), domain.PlatformLinux)
	require.ErrorIs(t, err, domain.ErrEmptyExport)
}

func TestLocalFreezer_RecordsSteps(t *testing.T) {
	ctrl := gomock.NewController(t)
	manager := mocks.NewMockPackageManager(ctrl)
	tracer := mocks.NewMockTracer(ctrl)
	log := mocks.NewMockLogger(ctrl)
	log.EXPECT().Info(gomock.Any()).AnyTimes()

	exportErr := domain.Tag(domain.ErrProcess, domain.ErrEnvExportFailed)

	var steps []string
	tracer.EXPECT().Start(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, name string) (context.Context, ports.Span) {
			steps = append(steps, name)
			span := mocks.NewMockSpan(ctrl)
			span.EXPECT().RecordError(gomock.Any()).Do(func(err error) {
				if name == "conda.export" {
					assert.ErrorIs(t, err, domain.ErrEnvExportFailed)
				} else {
					assert.NoError(t, err)
				}
			})
			span.EXPECT().End()
			return ctx, span
		}).Times(3)

	manager.EXPECT().CreateEnvironment(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil)
	manager.EXPECT().ExportEnvironment(gomock.Any(), gomock.Any()).Return(nil, exportErr)
	manager.EXPECT().RemoveEnvironment(gomock.Any(), gomock.Any()).Return(nil)

	lf := freezer.NewLocalFreezer(manager, tracer, log, t.TempDir())
	_, err := lf.Resolve(context.Background(), fooEnvironment(t), domain.PlatformLinux)
	require.ErrorIs(t, err, exportErr)

	assert.Equal(t, []string{"conda.create", "conda.export", "conda.remove"}, steps)
}
