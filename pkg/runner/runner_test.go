package runner

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"

	"github.com/honeybbq/sfbootconfig/pkg/nxerrors"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func TestFuncRunner(t *testing.T) {
	var got []string
	r := Func(func(_ context.Context, args []string) ([]byte, error) {
		got = args
		return []byte("ok"), nil
	})
	out, err := r.Run(context.Background(), []string{"-i", "enp0"})
	require.NoError(t, err)
	assert.Equal(t, "ok", string(out))
	assert.Equal(t, []string{"-i", "enp0"}, got)
}

func TestNewExecRunnerDefaults(t *testing.T) {
	r := NewExecRunner()
	assert.Equal(t, DefaultBinary, r.Binary)
	assert.Equal(t, DefaultShell, r.Shell)
	assert.Equal(t, DefaultTimeout, r.Timeout)
	assert.NotNil(t, r.Logger)

	r = NewExecRunner(WithBinary("/opt/sfutils/sfboot"), WithShell(""), WithTimeout(time.Second))
	assert.Equal(t, "/opt/sfutils/sfboot", r.Binary)
	assert.Empty(t, r.Shell)
	assert.Equal(t, time.Second, r.Timeout)
}

func TestExecRunnerShellUnquotesTokens(t *testing.T) {
	r := NewExecRunner(WithBinary("echo"), WithTimeout(5*time.Second))
	out, err := r.Run(context.Background(), []string{"-i", "enp0", "'link-speed=auto'", "'port-mode=[1x10/25g][1x10/25g]'"})
	require.NoError(t, err)
	assert.Equal(t, "-i enp0 link-speed=auto port-mode=[1x10/25g][1x10/25g]\n", string(out))
}

func TestExecRunnerDirectKeepsTokens(t *testing.T) {
	r := NewExecRunner(WithBinary("echo"), WithShell(""))
	out, err := r.Run(context.Background(), []string{"'boot-type=pxe'"})
	require.NoError(t, err)
	assert.Equal(t, "'boot-type=pxe'\n", string(out))
}

func TestExecRunnerNonZeroExit(t *testing.T) {
	r := NewExecRunner(WithBinary("false"))
	out, err := r.Run(context.Background(), []string{"-i", "enp0"})
	assert.Nil(t, out)

	var execErr *nxerrors.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 1, execErr.ExitCode)
	assert.Equal(t, []string{"-i", "enp0"}, execErr.Args)
	assert.Equal(t, nxerrors.KindExec, nxerrors.KindOf(err))
}

func TestExecRunnerCapturesStderr(t *testing.T) {
	r := NewExecRunner(WithBinary("sh"), WithShell(""))
	_, err := r.Run(context.Background(), []string{"-c", "echo 'sfboot: adapter not found' >&2; exit 3"})

	var execErr *nxerrors.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, 3, execErr.ExitCode)
	assert.Contains(t, execErr.Error(), "sfboot: adapter not found")
}

func TestExecRunnerMissingBinary(t *testing.T) {
	r := NewExecRunner(WithBinary("/nonexistent/sfboot"), WithShell(""))
	_, err := r.Run(context.Background(), nil)

	var execErr *nxerrors.ExecError
	require.ErrorAs(t, err, &execErr)
	assert.Equal(t, -1, execErr.ExitCode)
}

func TestExecRunnerTimeout(t *testing.T) {
	r := NewExecRunner(WithBinary("sleep"), WithShell(""), WithTimeout(50*time.Millisecond))
	_, err := r.Run(context.Background(), []string{"5"})
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, nxerrors.KindExec, nxerrors.KindOf(err))
}

func TestExecRunnerCanceled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	r := NewExecRunner(WithBinary("echo"), WithShell(""))
	_, err := r.Run(ctx, nil)
	assert.ErrorIs(t, err, context.Canceled)
}
