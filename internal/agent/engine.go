package agent

import "fmt"

// Step is one stage of a turn. Once a step answers the turn the remaining
// steps are skipped, except those marked Always.
type Step struct {
	Name    string
	Execute func(turn *Turn) error
	Always  bool
}

func NewStep(name string, execute func(turn *Turn) error) *Step {
	return &Step{
		Name:    name,
		Execute: execute,
	}
}

func (s *Step) AlwaysRun() *Step {
	s.Always = true
	return s
}

type Engine struct {
	steps []*Step
}

func NewEngine(steps ...*Step) *Engine {
	return &Engine{steps: steps}
}

func (e *Engine) Run(turn *Turn) error {
	for _, step := range e.steps {
		if turn.Done && !step.Always {
			continue
		}
		if err := step.Execute(turn); err != nil {
			return fmt.Errorf("%s step failed, turn aborted: %w", step.Name, err)
		}
	}
	return nil
}

func (e *Engine) Steps() []string {
	names := make([]string, len(e.steps))
	for i, s := range e.steps {
		names[i] = s.Name
	}
	return names
}
