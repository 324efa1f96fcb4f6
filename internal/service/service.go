// Package service evaluates calculators on behalf of the CLI and the HTTP
// API: registry lookup, result caching, metrics and logging.
package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"runtime"
	"time"

	"github.com/google/uuid"
	"github.com/iwvelando/finance-calculators/internal/cache"
	"github.com/iwvelando/finance-calculators/internal/metrics"
	"github.com/iwvelando/finance-calculators/internal/registry"
	"github.com/iwvelando/finance-calculators/pkg/datetime"
	"github.com/iwvelando/finance-calculators/pkg/validation"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// ErrBatchTooLarge is returned when a batch exceeds the configured size.
var ErrBatchTooLarge = errors.New("batch too large")

// Request asks for one evaluation.
type Request struct {
	Calculator string         `json:"calculator" yaml:"calculator"`
	Inputs     map[string]any `json:"inputs" yaml:"inputs"`
}

// Result is the outcome of one evaluation. Outputs is nil unless the inputs
// were valid and the calculation succeeded.
type Result struct {
	ID         string            `json:"id" yaml:"id"`
	Calculator string            `json:"calculator" yaml:"calculator"`
	Validation validation.Result `json:"validation" yaml:"validation"`
	Outputs    any               `json:"outputs,omitempty" yaml:"outputs,omitempty"`
	Cached     bool              `json:"cached" yaml:"cached"`
	Duration   string            `json:"duration" yaml:"duration"`
	Error      string            `json:"error,omitempty" yaml:"error,omitempty"`
}

// Service evaluates registered calculators.
type Service struct {
	registry *registry.Registry
	cache    cache.Cache
	metrics  *metrics.Metrics
	logger   *zap.Logger
	now      datetime.Clock
	maxBatch int
	workers  int
}

// Option configures a Service.
type Option func(*Service)

// WithCache stores valid results in c.
func WithCache(c cache.Cache) Option {
	return func(s *Service) {
		if c != nil {
			s.cache = c
		}
	}
}

// WithMetrics records evaluations in m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// WithClock sets the clock that dates cache keys.
func WithClock(clock datetime.Clock) Option {
	return func(s *Service) {
		s.now = clock
	}
}

// WithBatchLimits caps the size of a batch and the evaluations run at once.
// Zero keeps the default.
func WithBatchLimits(maxBatch, workers int) Option {
	return func(s *Service) {
		if maxBatch > 0 {
			s.maxBatch = maxBatch
		}
		if workers > 0 {
			s.workers = workers
		}
	}
}

// New creates a Service over reg.
func New(reg *registry.Registry, logger *zap.Logger, opts ...Option) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Service{
		registry: reg,
		cache:    cache.Nop{},
		logger:   logger,
		now:      datetime.SystemClock,
		maxBatch: 100,
		workers:  runtime.GOMAXPROCS(0),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Registry returns the calculators served.
func (s *Service) Registry() *registry.Registry {
	return s.registry
}

// cached is the stored form of a valid evaluation.
type cached struct {
	Validation validation.Result `json:"validation"`
	Outputs    any               `json:"outputs"`
}

// Evaluate validates raw and runs the calculator id. Invalid inputs return
// the validation result together with registry.ErrInvalidInputs.
func (s *Service) Evaluate(ctx context.Context, id string, raw map[string]any) (Result, error) {
	start := time.Now()
	result, outcome, err := s.evaluate(ctx, id, raw)
	elapsed := time.Since(start)
	result.ID = uuid.NewString()
	result.Calculator = id
	result.Duration = elapsed.String()
	if outcome != "" {
		s.metrics.RecordEvaluation(id, outcome, elapsed)
	}

	switch outcome {
	case metrics.OutcomeOK:
		s.logger.Debug("evaluated calculator",
			zap.String("op", "service.Evaluate"),
			zap.String("calculator", id),
			zap.String("evaluation_id", result.ID),
			zap.Bool("cached", result.Cached),
			zap.Duration("duration", elapsed),
		)
	case metrics.OutcomeInvalid:
		s.metrics.RecordValidationErrors(id, result.Validation.Errors)
		s.logger.Debug("inputs failed validation",
			zap.String("op", "service.Evaluate"),
			zap.String("calculator", id),
			zap.Int("errors", len(result.Validation.Errors)),
		)
	case metrics.OutcomeError:
		s.logger.Error("evaluation failed",
			zap.String("op", "service.Evaluate"),
			zap.String("calculator", id),
			zap.Error(err),
		)
	}
	return result, err
}

// evaluate returns the metrics outcome alongside the result; an empty
// outcome means the calculator does not exist.
func (s *Service) evaluate(ctx context.Context, id string, raw map[string]any) (Result, string, error) {
	var result Result
	calc, err := s.registry.Get(id)
	if err != nil {
		return result, "", err
	}
	check, err := calc.Validate(raw)
	if err != nil {
		return result, metrics.OutcomeInvalid, err
	}
	if !check.IsValid {
		result.Validation = check
		return result, metrics.OutcomeInvalid, registry.ErrInvalidInputs
	}
	fingerprint, err := calc.Fingerprint(raw)
	if err != nil {
		return result, metrics.OutcomeInvalid, err
	}
	key := cache.Key(id, s.now().Format(datetime.DateLayout), fingerprint)

	if hit, ok := s.lookup(ctx, key); ok {
		result.Validation, result.Outputs, result.Cached = hit.Validation, hit.Outputs, true
		return result, metrics.OutcomeOK, nil
	}

	eval, err := calc.Evaluate(raw)
	result.Validation = eval.Validation
	switch {
	case errors.Is(err, registry.ErrInvalidInputs):
		return result, metrics.OutcomeInvalid, err
	case err != nil:
		return result, metrics.OutcomeError, err
	}

	result.Outputs = eval.Outputs
	s.store(ctx, key, cached{Validation: eval.Validation, Outputs: eval.Outputs})
	return result, metrics.OutcomeOK, nil
}

func (s *Service) lookup(ctx context.Context, key string) (cached, bool) {
	var hit cached
	data, ok, err := s.cache.Get(ctx, key)
	switch {
	case err != nil:
		s.metrics.RecordCacheLookup(metrics.CacheError)
		s.logger.Warn("cache lookup failed",
			zap.String("op", "service.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		return hit, false
	case !ok:
		s.metrics.RecordCacheLookup(metrics.CacheMiss)
		return hit, false
	}
	if err := json.Unmarshal(data, &hit); err != nil {
		s.metrics.RecordCacheLookup(metrics.CacheError)
		s.logger.Warn("discarding unreadable cache entry",
			zap.String("op", "service.lookup"),
			zap.String("key", key),
			zap.Error(err),
		)
		return hit, false
	}
	s.metrics.RecordCacheLookup(metrics.CacheHit)
	return hit, true
}

func (s *Service) store(ctx context.Context, key string, entry cached) {
	data, err := json.Marshal(entry)
	if err == nil {
		err = s.cache.Set(ctx, key, data)
	}
	if err != nil {
		s.logger.Warn("cache store failed",
			zap.String("op", "service.store"),
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

// EvaluateBatch evaluates requests concurrently. Failures are reported in
// each Result's Error; the returned error is only set when the batch is
// rejected or ctx is cancelled.
func (s *Service) EvaluateBatch(ctx context.Context, requests []Request) ([]Result, error) {
	if len(requests) > s.maxBatch {
		return nil, fmt.Errorf("%w: %d requests, limit %d", ErrBatchTooLarge, len(requests), s.maxBatch)
	}

	results := make([]Result, len(requests))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(s.workers)
	for i, req := range requests {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			res, err := s.Evaluate(gctx, req.Calculator, req.Inputs)
			if err != nil {
				res.Error = err.Error()
			}
			results[i] = res
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// Validate runs full validation without calculating.
func (s *Service) Validate(id string, raw map[string]any) (validation.Result, error) {
	calc, err := s.registry.Get(id)
	if err != nil {
		return validation.Result{}, err
	}
	return calc.Validate(raw)
}

// ValidateField runs the quick validation of one field.
func (s *Service) ValidateField(id, field string, value any, raw map[string]any) (validation.FieldResult, error) {
	calc, err := s.registry.Get(id)
	if err != nil {
		return validation.FieldResult{}, err
	}
	return calc.ValidateField(field, value, raw)
}

// Examples evaluates the shipped examples of the given calculators, or of
// all of them when ids is empty.
func (s *Service) Examples(ctx context.Context, ids ...string) ([]registry.ExampleRun, error) {
	return s.registry.RunExamples(ctx, ids...)
}
