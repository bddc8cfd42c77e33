package donau

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMapResources(t *testing.T) {
	tests := []struct {
		name      string
		resources Resources
		threads   int
		priority  int
		expected  []string
	}{
		{
			name:     "defaults only",
			threads:  0,
			expected: []string{"-R", "cpu=1,mem=1024MB"},
		},
		{
			name:      "threads drive cpu count",
			resources: Resources{MemMB: 2048},
			threads:   8,
			expected:  []string{"-R", "cpu=8,mem=2048MB"},
		},
		{
			name:      "mem_mb_per_cpu overrides mem_mb",
			resources: Resources{MemMB: 9999, MemMBPerCPU: 512},
			threads:   4,
			expected:  []string{"-R", "cpu=4,mem=2048MB"},
		},
		{
			name:      "queue preferred over partition",
			resources: Resources{Queue: "fast", Partition: "slow"},
			threads:   1,
			expected:  []string{"-q", "fast", "-R", "cpu=1,mem=1024MB"},
		},
		{
			name:      "partition fallback",
			resources: Resources{Partition: "compute"},
			threads:   1,
			expected:  []string{"-q", "compute", "-R", "cpu=1,mem=1024MB"},
		},
		{
			name:      "nodes preferred over replica",
			resources: Resources{Nodes: "4", Replica: "2"},
			threads:   1,
			expected:  []string{"-N", "4", "-R", "cpu=1,mem=1024MB"},
		},
		{
			name: "full flag set keeps stable order",
			resources: Resources{
				Queue:     "normal",
				Account:   "proj42",
				MPI:       "openmpi",
				Replica:   "2",
				Exclusive: true,
				Tag:       "stage=align",
				MemMB:     4096,
				Runtime:   "30",
			},
			threads:  2,
			priority: 50,
			expected: []string{
				"-q", "normal",
				"-A", "proj42",
				"--mpi", "openmpi",
				"-N", "2",
				"-x", "job",
				"--tag", "stage=align",
				"-R", "cpu=2,mem=4096MB",
				"-T", "1800",
				"-p", "50",
			},
		},
		{
			name:      "time_min fallback converts to seconds",
			resources: Resources{TimeMin: "5"},
			threads:   1,
			expected:  []string{"-R", "cpu=1,mem=1024MB", "-T", "300"},
		},
		{
			name:      "non-numeric runtime omits -T",
			resources: Resources{Runtime: "soon"},
			threads:   1,
			expected:  []string{"-R", "cpu=1,mem=1024MB"},
		},
		{
			name:     "zero priority omits -p",
			threads:  1,
			priority: 0,
			expected: []string{"-R", "cpu=1,mem=1024MB"},
		},
		{
			name:     "priority clamped to upper bound",
			threads:  1,
			priority: 123456,
			expected: []string{"-R", "cpu=1,mem=1024MB", "-p", "9999"},
		},
		{
			name:     "negative priority clamped to lower bound",
			threads:  1,
			priority: -5,
			expected: []string{"-R", "cpu=1,mem=1024MB", "-p", "1"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := MapResources(tt.resources, tt.threads, tt.priority, nil)
			assert.Equal(t, tt.expected, got)
		})
	}
}

func TestMapResourcesCPUMemTokenShape(t *testing.T) {
	// The -R value must always render as cpu=<n>,mem=<int>MB, even for
	// fractional per-cpu memory.
	got := MapResources(Resources{MemMBPerCPU: 100.7}, 3, 0, nil)
	assert.Equal(t, []string{"-R", "cpu=3,mem=302MB"}, got)
	assert.False(t, strings.Contains(got[1], "."), "memory must be rendered as an integer")
}
