package runs

import (
	"context"
	"fmt"
	"sync"
	"time"

	"recon-engine/core/dataset"
	"recon-engine/core/history"
	"recon-engine/core/logger"
	"recon-engine/core/reconcile"
	"recon-engine/core/report"
	"recon-engine/core/rules"
	"recon-engine/core/source"
	"recon-engine/core/storage"
	"recon-engine/core/validate"

	"go.uber.org/zap"
)

// Execution is the outcome of one run.
type Execution struct {
	Report *report.Report `json:"report"`
	// Path is the local report file, when one was written.
	Path string `json:"path,omitempty"`
	// Key is the published object key, when the report was published.
	Key string `json:"key,omitempty"`
}

// Service executes rule sets.
type Service struct {
	loader     *source.Loader
	cfg        report.Config
	logger     *zap.Logger
	client     storage.Client
	bucket     string
	history    *history.Store
	translator rules.Translator
	metrics    *Metrics
	now        func() time.Time
}

// Option configures a Service.
type Option func(*Service)

// WithPublisher uploads reports to bucket when publishing is enabled.
func WithPublisher(client storage.Client, bucket string) Option {
	return func(s *Service) {
		s.client = client
		s.bucket = bucket
	}
}

// WithHistory records runs in store when history is enabled.
func WithHistory(store *history.Store) Option {
	return func(s *Service) {
		s.history = store
	}
}

// WithTranslator fills natural language rules before a run.
func WithTranslator(tr rules.Translator) Option {
	return func(s *Service) {
		s.translator = tr
	}
}

// WithMetrics counts rule results and runs.
func WithMetrics(m *Metrics) Option {
	return func(s *Service) {
		s.metrics = m
	}
}

// NewService creates a new run service.
func NewService(loader *source.Loader, cfg report.Config, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		loader: loader,
		cfg:    cfg,
		logger: logger,
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// History returns the run store, or nil when history is off.
func (s *Service) History() *history.Store {
	if !s.cfg.History {
		return nil
	}
	return s.history
}

// Execute loads the sources of set, runs both engines and builds the report.
// The report is saved, published and recorded according to the run configuration.
func (s *Service) Execute(ctx context.Context, set *rules.RuleSet) (*Execution, error) {
	started := s.now()
	exec, err := s.execute(ctx, set)
	s.metrics.observeRun(err, s.now().Sub(started).Seconds())
	return exec, err
}

func (s *Service) execute(ctx context.Context, set *rules.RuleSet) (*Execution, error) {
	journal := logger.NewJournal()
	log := logger.Tee(journal.Log, logger.Zap(s.logger))

	project := set.Project
	if project == "" {
		project = s.cfg.Project
	}
	log(logger.LevelInfo, "Main", fmt.Sprintf("Starting run for %s", project))

	if s.translator != nil {
		rules.Translate(ctx, set, s.translator, log)
	}

	registry, err := s.loader.LoadAll(ctx, set.Sources)
	if err != nil {
		log(logger.LevelError, "Main", err.Error())
		return nil, err
	}
	log(logger.LevelInfo, "Main", fmt.Sprintf("Loaded %d data sources", registry.Len()))

	recon, valid := s.runEngines(set, dataset.NewHintResolver(registry), log)
	s.metrics.observeReconciliation(recon)
	s.metrics.observeValidation(valid)

	rep := report.New(project, s.now(), recon, valid, journal.Entries())
	exec := &Execution{Report: rep}

	if s.cfg.OutputDir != "" {
		path, err := rep.Save(s.cfg.OutputDir)
		if err != nil {
			return nil, err
		}
		exec.Path = path
		s.logger.Info("Report saved", zap.String("path", path))
	}

	if s.cfg.Publish {
		if s.client == nil {
			return nil, fmt.Errorf("failed to publish report: %w", source.ErrBackendUnavailable)
		}
		key, err := rep.Publish(ctx, s.client, s.bucket)
		if err != nil {
			return nil, err
		}
		exec.Key = key
		s.logger.Info("Report published", zap.String("bucket", s.bucket), zap.String("key", key))
	}

	if store := s.History(); store != nil {
		if err := store.Save(ctx, rep, exec.Key); err != nil {
			return nil, err
		}
	}

	return exec, nil
}

// runEngines runs reconciliation and validation side by side. They share only the
// read-only datasets and the journal.
func (s *Service) runEngines(set *rules.RuleSet, resolver *dataset.HintResolver, log logger.Func) (*reconcile.Summary, *validate.Summary) {
	var (
		wg    sync.WaitGroup
		recon *reconcile.Summary
		valid *validate.Summary
	)

	if len(set.Reconciliation) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine := reconcile.NewEngine(resolver,
				reconcile.WithLogger(log),
				reconcile.WithMappings(set.MappingTable()),
			)
			recon = engine.Run(set.Reconciliation)
		}()
	}

	if len(set.Validation) > 0 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			engine := validate.NewEngine(resolver, validate.WithLogger(log))
			valid = engine.Run(set.Validation)
		}()
	}

	wg.Wait()
	return recon, valid
}
