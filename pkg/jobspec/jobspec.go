// Package jobspec loads job description files: the on-disk form of a fully
// resolved workflow job handed to the executor by the CLI.
package jobspec

import (
	"fmt"

	"gopkg.in/yaml.v3"

	"github.com/xsx123123/snakemake-executor-donau/pkg/donau"
	"github.com/xsx123123/snakemake-executor-donau/pkg/executor"
)

// Scalar accepts any YAML scalar (string, int, float) and keeps its textual
// form. Resource values arrive untyped from workflow configs and malformed
// numbers must degrade gracefully downstream, not fail parsing here.
type Scalar string

func (s *Scalar) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: expected a scalar value", value.Line)
	}
	*s = Scalar(value.Value)
	return nil
}

// Wildcards preserves the document order of a YAML mapping, which plain
// map unmarshaling would lose. Order matters: it fixes the log directory
// layout for a job.
type Wildcards []executor.Wildcard

func (w *Wildcards) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind != yaml.MappingNode {
		return fmt.Errorf("line %d: wildcards must be a mapping", value.Line)
	}
	out := make(Wildcards, 0, len(value.Content)/2)
	for i := 0; i+1 < len(value.Content); i += 2 {
		out = append(out, executor.Wildcard{
			Key:   value.Content[i].Value,
			Value: value.Content[i+1].Value,
		})
	}
	*w = out
	return nil
}

// Resources mirrors donau.Resources in file form.
type Resources struct {
	Queue       string  `yaml:"queue,omitempty"`
	Partition   string  `yaml:"partition,omitempty"`
	Account     string  `yaml:"account,omitempty"`
	MPI         string  `yaml:"mpi,omitempty"`
	Nodes       Scalar  `yaml:"nodes,omitempty"`
	Replica     Scalar  `yaml:"replica,omitempty"`
	Exclusive   bool    `yaml:"exclusive,omitempty"`
	Tag         string  `yaml:"tag,omitempty"`
	MemMB       float64 `yaml:"mem_mb,omitempty"`
	MemMBPerCPU float64 `yaml:"mem_mb_per_cpu,omitempty"`
	Runtime     Scalar  `yaml:"runtime,omitempty"`
	TimeMin     Scalar  `yaml:"time_min,omitempty"`
}

// Job is one job description file.
type Job struct {
	Name      string    `yaml:"name"`
	JobID     int       `yaml:"jobid"`
	Group     bool      `yaml:"group,omitempty"`
	GroupID   string    `yaml:"group_id,omitempty"`
	Wildcards Wildcards `yaml:"wildcards,omitempty"`
	Threads   int       `yaml:"threads,omitempty"`
	Priority  int       `yaml:"priority,omitempty"`
	Resources Resources `yaml:"resources,omitempty"`
	Command   string    `yaml:"command"`
}

// Validate checks the fields a submission cannot proceed without.
func (j *Job) Validate() error {
	if j.Name == "" {
		return fmt.Errorf("job name is required")
	}
	if j.Command == "" {
		return fmt.Errorf("job command is required")
	}
	if j.Group && j.GroupID == "" {
		return fmt.Errorf("group jobs require group_id")
	}
	return nil
}

// Descriptor converts the file form into the executor's descriptor.
func (j *Job) Descriptor() *executor.JobDescriptor {
	return &executor.JobDescriptor{
		Name:      j.Name,
		JobID:     j.JobID,
		Group:     j.Group,
		GroupID:   j.GroupID,
		Wildcards: j.Wildcards,
		Resources: donau.Resources{
			Queue:       j.Resources.Queue,
			Partition:   j.Resources.Partition,
			Account:     j.Resources.Account,
			MPI:         j.Resources.MPI,
			Nodes:       string(j.Resources.Nodes),
			Replica:     string(j.Resources.Replica),
			Exclusive:   j.Resources.Exclusive,
			Tag:         j.Resources.Tag,
			MemMB:       j.Resources.MemMB,
			MemMBPerCPU: j.Resources.MemMBPerCPU,
			Runtime:     string(j.Resources.Runtime),
			TimeMin:     string(j.Resources.TimeMin),
		},
		Threads:  j.Threads,
		Priority: j.Priority,
		Command:  j.Command,
	}
}
