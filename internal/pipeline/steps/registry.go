// Package steps defines the analysis pipeline's steps and their dependencies,
// and tracks which steps of a run have completed.
package steps

import (
	"fmt"
	"sync"
)

// Step categories
const (
	CategoryIngestion  = "ingestion"
	CategoryExtraction = "extraction"
	CategoryScoring    = "scoring"
	CategoryStorage    = "storage"
)

// Step names
const (
	LoadResume    = "load_resume"
	LoadJob       = "load_job"
	ExtractResume = "extract_resume"
	ExtractJob    = "extract_job"
	Score         = "score"
	SaveReport    = "save_report"
)

// StepDefinition defines metadata for a pipeline step
type StepDefinition struct {
	Name         string
	Category     string
	Dependencies []string
}

// StepRegistry holds all step definitions
var StepRegistry = map[string]StepDefinition{
	LoadResume: {
		Name:     LoadResume,
		Category: CategoryIngestion,
	},
	LoadJob: {
		Name:     LoadJob,
		Category: CategoryIngestion,
	},
	ExtractResume: {
		Name:         ExtractResume,
		Category:     CategoryExtraction,
		Dependencies: []string{LoadResume},
	},
	ExtractJob: {
		Name:         ExtractJob,
		Category:     CategoryExtraction,
		Dependencies: []string{LoadJob},
	},
	Score: {
		Name:         Score,
		Category:     CategoryScoring,
		Dependencies: []string{ExtractResume, ExtractJob},
	},
	SaveReport: {
		Name:         SaveReport,
		Category:     CategoryStorage,
		Dependencies: []string{Score},
	},
}

// DependencyError represents a dependency validation error
type DependencyError struct {
	Step                string
	MissingDependencies []string
}

func (e *DependencyError) Error() string {
	return fmt.Sprintf("step %s has missing dependencies: %v", e.Step, e.MissingDependencies)
}

// Tracker records completed steps of one run. It is safe for concurrent use.
type Tracker struct {
	mu        sync.Mutex
	completed map[string]bool
}

// NewTracker returns a Tracker with no completed steps
func NewTracker() *Tracker {
	return &Tracker{completed: make(map[string]bool)}
}

// ValidateDependencies checks that every dependency of stepName has completed
func (t *Tracker) ValidateDependencies(stepName string) error {
	def, ok := StepRegistry[stepName]
	if !ok {
		return fmt.Errorf("unknown step: %s", stepName)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	var missing []string
	for _, dep := range def.Dependencies {
		if !t.completed[dep] {
			missing = append(missing, dep)
		}
	}
	if len(missing) > 0 {
		return &DependencyError{Step: stepName, MissingDependencies: missing}
	}
	return nil
}

// Complete marks stepName as done
func (t *Tracker) Complete(stepName string) {
	t.mu.Lock()
	t.completed[stepName] = true
	t.mu.Unlock()
}

// IsCompleted reports whether stepName has completed
func (t *Tracker) IsCompleted(stepName string) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.completed[stepName]
}

// AvailableSteps returns the steps whose dependencies are met and which have not run yet
func (t *Tracker) AvailableSteps() []string {
	var available []string
	for name := range StepRegistry {
		if t.IsCompleted(name) {
			continue
		}
		if err := t.ValidateDependencies(name); err != nil {
			continue
		}
		available = append(available, name)
	}
	return available
}
