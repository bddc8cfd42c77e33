package donau

import (
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"
)

// Resources is the closed set of resource requests the mapper understands.
//
// Fields are populated from the workflow engine's generic resource mapping
// at the boundary; a zero value means the resource was not requested.
// String-typed numeric fields (Nodes, Runtime, ...) are passed through from
// the engine verbatim because a malformed value must degrade gracefully
// rather than fail the submission.
type Resources struct {
	Queue     string
	Partition string
	Account   string
	MPI       string
	Nodes     string
	Replica   string
	Exclusive bool
	Tag       string

	// MemMB is the total memory request in MB. Zero means unset; the
	// mapper falls back to 1024.
	MemMB float64

	// MemMBPerCPU, when set, overrides MemMB with MemMBPerCPU × cpus.
	MemMBPerCPU float64

	// Runtime and TimeMin are the runtime limit in minutes; Runtime wins
	// when both are set.
	Runtime string
	TimeMin string
}

const (
	defaultMemMB = 1024

	priorityMin = 1
	priorityMax = 9999
)

// MapResources translates a resource request into the ordered dsub flag
// list. The function is total: malformed values are logged and their flag
// omitted, never returned as an error.
//
// Flag order is stable: -q, -A, --mpi, -N, -x, --tag, -R, -T, -p.
func MapResources(r Resources, threads, priority int, log *zap.Logger) []string {
	if log == nil {
		log = zap.NewNop()
	}

	var args []string

	if queue := firstNonEmpty(r.Queue, r.Partition); queue != "" {
		args = append(args, "-q", queue)
	}
	if r.Account != "" {
		args = append(args, "-A", r.Account)
	}
	if r.MPI != "" {
		args = append(args, "--mpi", r.MPI)
	}
	if nodes := firstNonEmpty(r.Nodes, r.Replica); nodes != "" {
		args = append(args, "-N", nodes)
	}
	if r.Exclusive {
		args = append(args, "-x", "job")
	}
	if r.Tag != "" {
		args = append(args, "--tag", r.Tag)
	}

	cpus := threads
	if cpus < 1 {
		cpus = 1
	}
	memMB := r.MemMB
	if memMB == 0 {
		memMB = defaultMemMB
	}
	if r.MemMBPerCPU > 0 {
		memMB = r.MemMBPerCPU * float64(cpus)
	}
	args = append(args, "-R", fmt.Sprintf("cpu=%d,mem=%dMB", cpus, int(memMB)))

	if runtime := firstNonEmpty(r.Runtime, r.TimeMin); runtime != "" {
		if minutes, err := strconv.Atoi(strings.TrimSpace(runtime)); err == nil {
			args = append(args, "-T", strconv.Itoa(minutes*60))
		} else {
			log.Warn("invalid runtime value, skipping -T",
				zap.String("runtime", runtime))
		}
	}

	if priority != 0 {
		args = append(args, "-p", strconv.Itoa(clampPriority(priority)))
	}

	return args
}

// clampPriority maps a workflow priority into Donau's accepted range.
func clampPriority(p int) int {
	if p < priorityMin {
		return priorityMin
	}
	if p > priorityMax {
		return priorityMax
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
