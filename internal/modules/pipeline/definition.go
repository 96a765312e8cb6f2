package pipeline

import (
	"io"
	"time"

	"gopkg.in/yaml.v3"
)

// Definition is the declarative form of a pipeline, as consumed by a scheduler.
type Definition struct {
	ID          string           `yaml:"dag_id"`
	Description string           `yaml:"description"`
	Schedule    string           `yaml:"schedule_interval"`
	StartDate   string           `yaml:"start_date"`
	Tasks       []TaskDefinition `yaml:"tasks"`
}

// TaskDefinition describes one step and the steps it waits for.
type TaskDefinition struct {
	ID          string   `yaml:"task_id"`
	Description string   `yaml:"description"`
	Upstream    []string `yaml:"upstream,omitempty"`
}

// Definition returns the pipeline as a linear chain of tasks.
func (p *Pipeline) Definition() Definition {
	def := Definition{
		ID:          p.meta.ID,
		Description: p.meta.Description,
		Schedule:    p.meta.Schedule.String(),
		StartDate:   p.meta.StartDate.Format(time.RFC3339),
		Tasks:       make([]TaskDefinition, 0, len(p.stages)),
	}
	for i, step := range p.stages {
		task := TaskDefinition{ID: step.Name(), Description: step.Description()}
		if i > 0 {
			task.Upstream = []string{p.stages[i-1].Name()}
		}
		def.Tasks = append(def.Tasks, task)
	}
	return def
}

// WriteYAML encodes the definition to w.
func (d Definition) WriteYAML(w io.Writer) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(d); err != nil {
		return err
	}
	return enc.Close()
}
