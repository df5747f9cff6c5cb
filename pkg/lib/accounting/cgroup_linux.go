//go:build linux

package accounting

import (
	"bufio"
	"bytes"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"syscall"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

const (
	cgroupMount       = "/sys/fs/cgroup"
	cgroupDefaultRoot = "/sys/fs/cgroup/chronos"
)

var errNoCgroupV2 = errors.New("cgroup v2 hierarchy is not mounted")

// Cgroup is a cgroup v2 leaf holding one timed process tree. The process is
// cloned directly into it, so it never runs outside the group.
type Cgroup struct {
	path string
	dir  *os.File
}

// NewCgroup creates a fresh leaf under root. An empty root selects
// /sys/fs/cgroup/chronos when running as root, and the cgroup of the
// current process otherwise (which only works when it is delegated to us).
func NewCgroup(root string) (*Cgroup, error) {
	if _, err := os.Stat(filepath.Join(cgroupMount, "cgroup.controllers")); err != nil {
		return nil, errNoCgroupV2
	}

	if root == "" {
		var err error
		root, err = defaultCgroupRoot()
		if err != nil {
			return nil, err
		}
	}

	if err := initCgroupRoot(root); err != nil {
		return nil, err
	}

	path := filepath.Join(root, lib.NewContainerName())
	if err := os.Mkdir(path, 0o755); err != nil {
		return nil, err
	}

	dir, err := os.Open(path)
	if err != nil {
		_ = os.Remove(path)
		return nil, err
	}

	logger.Debug("created cgroup", "path", path)
	return &Cgroup{path: path, dir: dir}, nil
}

func defaultCgroupRoot() (string, error) {
	if os.Geteuid() == 0 {
		return cgroupDefaultRoot, nil
	}

	data, err := os.ReadFile("/proc/self/cgroup")
	if err != nil {
		return "", err
	}
	rel, err := parseSelfCgroup(data)
	if err != nil {
		return "", err
	}
	return filepath.Join(cgroupMount, rel), nil
}

// parseSelfCgroup extracts the unified hierarchy path ("0::/path") from
// /proc/self/cgroup.
func parseSelfCgroup(data []byte) (string, error) {
	scanner := bufio.NewScanner(bytes.NewReader(data))
	for scanner.Scan() {
		line := scanner.Text()
		if rel, ok := strings.CutPrefix(line, "0::"); ok {
			return rel, nil
		}
	}
	if err := scanner.Err(); err != nil {
		return "", err
	}
	return "", errNoCgroupV2
}

// initCgroupRoot makes sure root exists and, when possible, delegates the
// memory controller to its children so page faults are accounted.
func initCgroupRoot(root string) error {
	if err := os.MkdirAll(root, 0o755); err != nil {
		return err
	}

	available, err := readControllerSet(filepath.Join(root, "cgroup.controllers"))
	if err != nil {
		return err
	}
	enabled, err := readControllerSet(filepath.Join(root, "cgroup.subtree_control"))
	if err != nil {
		return err
	}

	if available["memory"] && !enabled["memory"] {
		if err := writeString(filepath.Join(root, "cgroup.subtree_control"), "+memory"); err != nil {
			// Not fatal: cpu.stat is available without any controller.
			logger.Debug("could not enable memory controller", "root", root, "err", err)
		}
	}
	return nil
}

func readControllerSet(path string) (map[string]bool, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	set := make(map[string]bool)
	for _, f := range strings.Fields(string(data)) {
		set[strings.TrimPrefix(f, "+")] = true
	}
	return set, nil
}

func (c *Cgroup) Path() string {
	return c.path
}

// Attach makes the prepared command start inside the cgroup (clone3 with
// CLONE_INTO_CGROUP).
func (c *Cgroup) Attach(t Target) error {
	if err := t.validate(); err != nil {
		return err
	}
	if c.dir == nil {
		return ErrReleased
	}

	if t.Cmd.SysProcAttr == nil {
		t.Cmd.SysProcAttr = &syscall.SysProcAttr{}
	}
	t.Cmd.SysProcAttr.UseCgroupFD = true
	t.Cmd.SysProcAttr.CgroupFD = int(c.dir.Fd())
	return nil
}

func (c *Cgroup) Query() (Counters, error) {
	if c.dir == nil {
		return Counters{}, ErrReleased
	}

	cpu, err := readKeyedFile(filepath.Join(c.path, "cpu.stat"))
	if err != nil {
		return Counters{}, err
	}
	user, ok := cpu["user_usec"]
	if !ok {
		return Counters{}, fmt.Errorf("%s: missing user_usec", filepath.Join(c.path, "cpu.stat"))
	}
	system, ok := cpu["system_usec"]
	if !ok {
		return Counters{}, fmt.Errorf("%s: missing system_usec", filepath.Join(c.path, "cpu.stat"))
	}

	counters := Counters{
		User:   lib.TicksFromMicroseconds(user),
		Kernel: lib.TicksFromMicroseconds(system),
	}

	mem, err := readKeyedFile(filepath.Join(c.path, "memory.stat"))
	switch {
	case err == nil:
		counters.PageFaults = mem["pgfault"]
	case errors.Is(err, fs.ErrNotExist):
		// memory controller not delegated
	default:
		return Counters{}, err
	}

	procs, err := os.ReadFile(filepath.Join(c.path, "cgroup.procs"))
	if err != nil {
		return Counters{}, err
	}
	counters.ActiveProcesses = uint32(len(strings.Fields(string(procs))))

	return counters, nil
}

// Terminate kills every process in the cgroup (cgroup.kill, Linux 5.14+).
func (c *Cgroup) Terminate() error {
	if c.dir == nil {
		return ErrReleased
	}
	return writeString(filepath.Join(c.path, "cgroup.kill"), "1")
}

// Release closes the cgroup and removes it. A cgroup that still has live
// members cannot be removed; it is left in place for them.
func (c *Cgroup) Release() error {
	if c.dir == nil {
		return nil
	}
	closeErr := c.dir.Close()
	c.dir = nil

	if err := os.Remove(c.path); err != nil {
		if errors.Is(err, syscall.EBUSY) {
			logger.Info("cgroup still populated, leaving it in place", "path", c.path)
			return closeErr
		}
		return err
	}
	return closeErr
}

// readKeyedFile parses flat "key value" files such as cpu.stat.
func readKeyedFile(path string) (map[string]uint64, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	values := make(map[string]uint64)
	for _, line := range strings.Split(string(data), "\n") {
		fields := strings.Fields(line)
		if len(fields) != 2 {
			continue
		}
		v, err := strconv.ParseUint(fields[1], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("%s: %q: %w", path, line, err)
		}
		values[fields[0]] = v
	}
	return values, nil
}

func writeString(path, val string) error {
	return os.WriteFile(path, []byte(val), 0o644)
}
