// Package registry catalogs calculator modules behind a type-erased
// interface so outer surfaces can list, validate and evaluate them by id.
package registry

import (
	"context"
	"errors"
	"fmt"
	"runtime"
	"sort"
	"sync"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// Registry is a thread-safe catalog of calculators keyed by id.
type Registry struct {
	mu          sync.RWMutex
	calculators map[string]Calculator
	logger      *zap.Logger
}

// New creates an empty registry.
func New(logger *zap.Logger) *Registry {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Registry{
		calculators: make(map[string]Calculator),
		logger:      logger,
	}
}

// Register adds a calculator. Empty and duplicate ids are rejected.
func (r *Registry) Register(c Calculator) error {
	desc := c.Descriptor()
	if desc.ID == "" {
		return fmt.Errorf("calculator id cannot be empty")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.calculators[desc.ID]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicate, desc.ID)
	}
	r.calculators[desc.ID] = c

	r.logger.Debug("registered calculator",
		zap.String("op", "registry.Register"),
		zap.String("calculator", desc.ID),
		zap.String("category", desc.Category),
	)
	return nil
}

// Get returns the calculator registered under id.
func (r *Registry) Get(id string) (Calculator, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	c, ok := r.calculators[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return c, nil
}

// Len returns the number of registered calculators.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.calculators)
}

// List returns the descriptors of all calculators sorted by category then id.
func (r *Registry) List() []Descriptor {
	r.mu.RLock()
	defer r.mu.RUnlock()

	descriptors := make([]Descriptor, 0, len(r.calculators))
	for _, c := range r.calculators {
		descriptors = append(descriptors, c.Descriptor())
	}
	sort.Slice(descriptors, func(i, j int) bool {
		if descriptors[i].Category != descriptors[j].Category {
			return descriptors[i].Category < descriptors[j].Category
		}
		return descriptors[i].ID < descriptors[j].ID
	})
	return descriptors
}

// Category groups calculator ids.
type Category struct {
	Name        string   `json:"name" yaml:"name"`
	Calculators []string `json:"calculators" yaml:"calculators"`
}

// Categories returns the calculator ids grouped by category, both sorted.
func (r *Registry) Categories() []Category {
	var categories []Category
	for _, desc := range r.List() {
		if n := len(categories); n > 0 && categories[n-1].Name == desc.Category {
			categories[n-1].Calculators = append(categories[n-1].Calculators, desc.ID)
			continue
		}
		categories = append(categories, Category{Name: desc.Category, Calculators: []string{desc.ID}})
	}
	return categories
}

// ExampleRun is the outcome of evaluating one shipped example.
type ExampleRun struct {
	Calculator string     `json:"calculator" yaml:"calculator"`
	Example    string     `json:"example" yaml:"example"`
	Evaluation Evaluation `json:"evaluation" yaml:"evaluation"`
	Error      string     `json:"error,omitempty" yaml:"error,omitempty"`
}

// RunExamples evaluates every example of the given calculators (all of them
// when ids is empty) concurrently. Results keep registry order. Failing
// examples are reported in their ExampleRun; the returned error joins them.
func (r *Registry) RunExamples(ctx context.Context, ids ...string) ([]ExampleRun, error) {
	var targets []Calculator
	if len(ids) == 0 {
		for _, desc := range r.List() {
			c, _ := r.Get(desc.ID)
			targets = append(targets, c)
		}
	} else {
		for _, id := range ids {
			c, err := r.Get(id)
			if err != nil {
				return nil, err
			}
			targets = append(targets, c)
		}
	}

	type job struct {
		calc    Calculator
		example Example
	}
	var jobs []job
	for _, c := range targets {
		for _, ex := range c.Descriptor().Examples {
			jobs = append(jobs, job{calc: c, example: ex})
		}
	}

	runs := make([]ExampleRun, len(jobs))
	failures := make([]error, len(jobs))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.GOMAXPROCS(0))
	for i, j := range jobs {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			id := j.calc.Descriptor().ID
			eval, err := j.calc.Evaluate(j.example.Inputs)
			runs[i] = ExampleRun{Calculator: id, Example: j.example.Name, Evaluation: eval}
			if err != nil {
				runs[i].Error = err.Error()
				failures[i] = fmt.Errorf("%s/%s: %w", id, j.example.Name, err)
				r.logger.Warn("example evaluation failed",
					zap.String("op", "registry.RunExamples"),
					zap.String("calculator", id),
					zap.String("example", j.example.Name),
					zap.Error(err),
				)
			}
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return runs, errors.Join(failures...)
}
