package shell_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.trai.ch/condalock/internal/adapters/shell"
	"go.trai.ch/condalock/internal/core/domain"
	"go.trai.ch/condalock/internal/core/ports/mocks"
	"go.trai.ch/zerr"
	"go.uber.org/mock/gomock"
)

func newRunner(t *testing.T, timeout time.Duration) (*shell.Runner, *mocks.MockLogger) {
	t.Helper()
	ctrl := gomock.NewController(t)
	log := mocks.NewMockLogger(ctrl)
	return shell.NewRunner(log, timeout), log
}

func TestRunner_BuffersOutput(t *testing.T) {
	runner, log := newRunner(t, time.Minute)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	res, err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo line1; echo line2; echo diag >&2"},
	})
	require.NoError(t, err)
	assert.Equal(t, 0, res.ExitCode)
	assert.Equal(t, "line1\nline2\n", string(res.Stdout))
	assert.Equal(t, "diag\n", string(res.Stderr))
}

func TestRunner_StderrLinesLoggedAtDebug(t *testing.T) {
	runner, log := newRunner(t, time.Minute)
	log.EXPECT().Debug("  warning one").Times(1)
	log.EXPECT().Debug("  warning two").Times(1)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	_, err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "printf 'warning one\\nwarning two\\n' >&2"},
	})
	require.NoError(t, err)
}

func TestRunner_WorkingDirectory(t *testing.T) {
	runner, log := newRunner(t, time.Minute)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	dir := t.TempDir()
	res, err := runner.Run(context.Background(), domain.Command{Name: "pwd", Dir: dir})
	require.NoError(t, err)
	assert.Contains(t, string(res.Stdout), dir)
}

func TestRunner_NonZeroExit(t *testing.T) {
	runner, log := newRunner(t, time.Minute)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	res, err := runner.Run(context.Background(), domain.Command{
		Name: "sh",
		Args: []string{"-c", "echo partial; echo 'PackagesNotFoundError: nope' >&2; exit 3"},
	})
	require.Error(t, err)
	require.ErrorIs(t, err, domain.ErrProcess)
	assert.Equal(t, 3, res.ExitCode)
	assert.Equal(t, "partial\n", string(res.Stdout))

	var zErr *zerr.Error
	require.ErrorAs(t, err, &zErr)
	meta := zErr.Metadata()
	assert.Equal(t, 3, meta["exit_code"])
	assert.Equal(t, "PackagesNotFoundError: nope", meta["stderr"])
}

func TestRunner_MissingExecutable(t *testing.T) {
	runner, log := newRunner(t, time.Minute)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	res, err := runner.Run(context.Background(), domain.Command{Name: "condalock-definitely-not-installed"})
	require.ErrorIs(t, err, domain.ErrProcess)
	assert.Equal(t, -1, res.ExitCode)
	assert.Contains(t, err.Error(), domain.ErrCommandStartFailed.Error())
}

func TestRunner_Timeout(t *testing.T) {
	runner, log := newRunner(t, 50*time.Millisecond)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	start := time.Now()
	_, err := runner.Run(context.Background(), domain.Command{Name: "sleep", Args: []string{"10"}})
	require.ErrorIs(t, err, domain.ErrProcess)
	assert.Contains(t, err.Error(), domain.ErrCommandTimedOut.Error())
	assert.Less(t, time.Since(start), 5*time.Second)
}

func TestRunner_Cancelled(t *testing.T) {
	runner, log := newRunner(t, 0)
	log.EXPECT().Debug(gomock.Any()).AnyTimes()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := runner.Run(ctx, domain.Command{Name: "sleep", Args: []string{"10"}})
	require.ErrorIs(t, err, domain.ErrProcess)
	require.ErrorIs(t, err, context.Canceled)
}
