//go:build linux

package runner

import (
	"os"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/grigory-rechistov/chronos/pkg/lib"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting"
	"github.com/grigory-rechistov/chronos/pkg/lib/accounting/mocks"
)

func TestRunRusageOrphanedDescendant(t *testing.T) {
	r := NewRunner(
		WithAccounting(accounting.Options{Backend: accounting.BackendRusage}),
		WithTerminateDescendants(true),
	)

	start := time.Now()
	res, err := r.Run(shell("sleep 5 >/dev/null 2>&1 & exit 0"))
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 4*time.Second, "must not wait for descendants")

	var alive *lib.DescendantsAliveError
	require.ErrorAs(t, res.Warning, &alive)
	assert.GreaterOrEqual(t, alive.Count, uint32(1))
}

func TestRunCgroup(t *testing.T) {
	c, err := accounting.NewCgroup("")
	if err != nil {
		t.Skipf("cgroup v2 accounting unavailable: %v", err)
	}
	require.NoError(t, c.Release())

	r := NewRunner(WithAccounting(accounting.Options{Backend: accounting.BackendCgroup}))
	res, err := r.Run(shell("i=0; while [ $i -lt 100000 ]; do i=$((i+1)); done; exit 7"))
	require.NoError(t, err)
	require.NoError(t, res.Warning)

	assert.Equal(t, 7, res.Metrics.ExitCode)
	assert.Positive(t, res.Metrics.User+res.Metrics.Kernel)
}

func TestRunCgroupRejectedAtCreation(t *testing.T) {
	// a plain directory is not a cgroup: clone3 refuses to place the
	// process there
	dir, err := os.Open(t.TempDir())
	require.NoError(t, err)
	defer dir.Close()

	ctrl := gomock.NewController(t)
	c := mocks.NewMockContainer(ctrl)
	c.EXPECT().Attach(gomock.Any()).DoAndReturn(func(target accounting.Target) error {
		target.Cmd.SysProcAttr = &syscall.SysProcAttr{UseCgroupFD: true, CgroupFD: int(dir.Fd())}
		return nil
	})
	c.EXPECT().Release().Return(nil)

	_, err = mockRunner(t, c).Run(shell("exit 0"))
	requireStepError(t, err, lib.RunStateAttached, lib.ErrAttach)
	assert.NotErrorIs(t, err, lib.ErrLaunch)
}

func TestRunRusageOrphanExitedBeforePrimary(t *testing.T) {
	r := NewRunner(WithAccounting(accounting.Options{Backend: accounting.BackendRusage}))

	solo, err := r.Run(shell(busyLoop))
	require.NoError(t, err)

	// the inner subshell is orphaned at once and finishes long before the
	// primary process exits
	orphaned, err := r.Run(shell("( ( " + busyLoop + " ) & ); sleep 3"))
	require.NoError(t, err)
	require.NoError(t, orphaned.Warning)

	soloCPU := solo.Metrics.User + solo.Metrics.Kernel
	orphanedCPU := orphaned.Metrics.User + orphaned.Metrics.Kernel
	require.Positive(t, soloCPU)
	assert.GreaterOrEqual(t, orphanedCPU, soloCPU/2,
		"usage of the exited orphan must be included")
	assert.Zero(t, orphaned.Metrics.ActiveDescendants)
}
