//go:build linux

package accounting

import (
	"errors"
	"fmt"
	"io/fs"
	"os"

	"github.com/prometheus/procfs"
	"golang.org/x/sys/unix"
)

var procRoot = procfs.DefaultMountPoint

type procNode struct {
	pid   int
	ppid  int
	state string
}

func listProcesses(root string) ([]procNode, error) {
	pfs, err := procfs.NewFS(root)
	if err != nil {
		return nil, err
	}
	procs, err := pfs.AllProcs()
	if err != nil {
		return nil, err
	}

	nodes := make([]procNode, 0, len(procs))
	for _, p := range procs {
		st, err := p.Stat()
		if err != nil {
			// exited while we were scanning
			if errors.Is(err, fs.ErrNotExist) || errors.Is(err, unix.ESRCH) {
				continue
			}
			return nil, fmt.Errorf("process %d: %w", p.PID, err)
		}
		nodes = append(nodes, procNode{pid: st.PID, ppid: st.PPID, state: st.State})
	}
	return nodes, nil
}

// liveDescendants walks the process tree below pid and returns every
// descendant that is not a zombie. Children of zombies are still visited.
func liveDescendants(root string, pid int) ([]int, error) {
	procs, err := listProcesses(root)
	if err != nil {
		return nil, err
	}

	children := make(map[int][]procNode)
	for _, p := range procs {
		children[p.ppid] = append(children[p.ppid], p)
	}

	var live []int
	queue := []int{pid}
	for len(queue) > 0 {
		parent := queue[0]
		queue = queue[1:]
		for _, c := range children[parent] {
			if c.state != "Z" && c.state != "X" {
				live = append(live, c.pid)
			}
			queue = append(queue, c.pid)
		}
	}
	return live, nil
}

func countDescendants() (uint32, error) {
	pids, err := liveDescendants(procRoot, os.Getpid())
	if err != nil {
		return 0, err
	}
	return uint32(len(pids)), nil
}

func killDescendants() error {
	pids, err := liveDescendants(procRoot, os.Getpid())
	if err != nil {
		return err
	}

	var errs []error
	for _, pid := range pids {
		if err := unix.Kill(pid, unix.SIGKILL); err != nil && !errors.Is(err, unix.ESRCH) {
			errs = append(errs, fmt.Errorf("kill %d: %w", pid, err))
		}
	}
	return errors.Join(errs...)
}

// reapOrphans waits for every zombie child of this process except skip.
// They are orphans reparented to us as subreaper; waiting adds their usage
// to RUSAGE_CHILDREN. Reaping a zombie may reparent its own zombie children
// to us, so it repeats until a pass finds nothing.
func reapOrphans(skip int) error {
	self := os.Getpid()
	for {
		procs, err := listProcesses(procRoot)
		if err != nil {
			return err
		}

		reaped := 0
		for _, p := range procs {
			if p.ppid != self || p.state != "Z" || p.pid == skip {
				continue
			}
			var ws unix.WaitStatus
			wpid, err := unix.Wait4(p.pid, &ws, unix.WNOHANG, nil)
			if err != nil {
				if errors.Is(err, unix.ECHILD) {
					continue
				}
				return fmt.Errorf("wait %d: %w", p.pid, err)
			}
			if wpid == p.pid {
				logger.Debug("reaped orphaned process", "pid", p.pid)
				reaped++
			}
		}
		if reaped == 0 {
			return nil
		}
	}
}

// becomeSubreaper keeps orphaned descendants attached to this process
// instead of init, so they remain visible to the tree walk.
func becomeSubreaper() error {
	return unix.Prctl(unix.PR_SET_CHILD_SUBREAPER, 1, 0, 0, 0)
}
