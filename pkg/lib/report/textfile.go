package report

import (
	"path/filepath"

	"github.com/prometheus/client_golang/prometheus"

	"github.com/grigory-rechistov/chronos/pkg/lib"
)

type runGauges struct {
	wall        *prometheus.GaugeVec
	user        *prometheus.GaugeVec
	system      *prometheus.GaugeVec
	pageFaults  *prometheus.GaugeVec
	exitCode    *prometheus.GaugeVec
	descendants *prometheus.GaugeVec
}

func newRunGauges() *runGauges {
	labels := []string{"command"}
	return &runGauges{
		wall: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_wall_seconds",
				Help: "Wall clock time of the primary process",
			},
			labels,
		),
		user: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_user_seconds",
				Help: "User mode CPU time of the whole process tree",
			},
			labels,
		),
		system: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_system_seconds",
				Help: "Kernel mode CPU time of the whole process tree",
			},
			labels,
		),
		pageFaults: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_page_faults",
				Help: "Page faults of the whole process tree",
			},
			labels,
		),
		exitCode: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_exit_code",
				Help: "Exit status of the primary process",
			},
			labels,
		),
		descendants: prometheus.NewGaugeVec(
			prometheus.GaugeOpts{
				Name: "chronos_active_descendants",
				Help: "Processes of the tree still alive when the primary process exited",
			},
			labels,
		),
	}
}

func (g *runGauges) collectors() []prometheus.Collector {
	return []prometheus.Collector{g.wall, g.user, g.system, g.pageFaults, g.exitCode, g.descendants}
}

// WriteTextfile writes m in the Prometheus text format, for the textfile
// collector of node_exporter. The file is replaced atomically.
func WriteTextfile(path string, command lib.Command, m lib.ProcessMetrics) error {
	g := newRunGauges()
	reg := prometheus.NewRegistry()
	reg.MustRegister(g.collectors()...)

	name := filepath.Base(command.Command)
	g.wall.WithLabelValues(name).Set(m.Wall.Seconds())
	g.user.WithLabelValues(name).Set(m.User.Seconds())
	g.system.WithLabelValues(name).Set(m.Kernel.Seconds())
	g.pageFaults.WithLabelValues(name).Set(float64(m.PageFaults))
	g.exitCode.WithLabelValues(name).Set(float64(m.ExitCode))
	g.descendants.WithLabelValues(name).Set(float64(m.ActiveDescendants))

	return prometheus.WriteToTextfile(path, reg)
}
