package source

import (
	"context"
	"errors"
	"fmt"
	"os"

	"recon-engine/core/dataset"
	"recon-engine/core/logger"
	"recon-engine/core/storage"

	"github.com/minio/minio-go/v7"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

// ErrBackendUnavailable is returned when a spec needs a backend the loader was not given.
var ErrBackendUnavailable = errors.New("source backend not configured")

// Loader resolves Specs into datasets.
type Loader struct {
	storage storage.Client
	bucket  string
	db      *gorm.DB
	pg      Querier
	log     logger.Func
	group   singleflight.Group
}

// Option configures a Loader.
type Option func(*Loader)

// WithStorage enables object sources read from bucket.
func WithStorage(client storage.Client, bucket string) Option {
	return func(l *Loader) {
		l.storage = client
		l.bucket = bucket
	}
}

// WithDatabase enables table sources.
func WithDatabase(db *gorm.DB) Option {
	return func(l *Loader) {
		l.db = db
	}
}

// WithPostgres enables query sources.
func WithPostgres(q Querier) Option {
	return func(l *Loader) {
		l.pg = q
	}
}

// WithLogger routes load events to fn.
func WithLogger(fn logger.Func) Option {
	return func(l *Loader) {
		l.log = logger.Or(fn)
	}
}

// NewLoader creates a loader. File sources are always available.
func NewLoader(opts ...Option) *Loader {
	l := &Loader{log: logger.Nop}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Load reads one source. Concurrent loads of an identical spec share one read.
func (l *Loader) Load(ctx context.Context, spec Spec) (*dataset.Dataset, error) {
	if err := spec.Validate(); err != nil {
		return nil, err
	}
	v, err, _ := l.group.Do(spec.key(), func() (any, error) {
		l.log(logger.LevelInfo, "DataLoader", fmt.Sprintf("Loading %s from %s", spec.Name, spec.Path))
		ds, err := l.load(ctx, spec)
		if err != nil {
			l.log(logger.LevelError, "DataLoader", fmt.Sprintf("Failed to load %s: %v", spec.Name, err))
			return nil, err
		}
		l.log(logger.LevelInfo, "DataLoader", fmt.Sprintf("Loaded %d records from %s", ds.Len(), spec.Name))
		return ds, nil
	})
	if err != nil {
		return nil, err
	}
	return v.(*dataset.Dataset), nil
}

// LoadAll reads every spec into a registry, in order. The first failure stops the load.
func (l *Loader) LoadAll(ctx context.Context, specs []Spec) (*dataset.Registry, error) {
	reg := dataset.NewRegistry()
	for _, spec := range specs {
		ds, err := l.Load(ctx, spec)
		if err != nil {
			return nil, fmt.Errorf("load source %s: %w", spec.Name, err)
		}
		reg.Register(spec.Name, ds)
	}
	return reg, nil
}

func (l *Loader) load(ctx context.Context, spec Spec) (*dataset.Dataset, error) {
	switch spec.kind() {
	case KindFile:
		f, err := os.Open(spec.Path)
		if err != nil {
			return nil, err
		}
		defer f.Close()
		return dataset.ReadCSV(f, spec.Name, spec.csvOptions())
	case KindObject:
		if l.storage == nil {
			return nil, fmt.Errorf("%w: object storage", ErrBackendUnavailable)
		}
		obj, err := l.storage.GetObject(ctx, l.bucket, spec.Path, minio.GetObjectOptions{})
		if err != nil {
			return nil, fmt.Errorf("failed to get object %s: %w", spec.Path, err)
		}
		defer obj.Close()
		return dataset.ReadCSV(obj, spec.Name, spec.csvOptions())
	case KindTable:
		if l.db == nil {
			return nil, fmt.Errorf("%w: database", ErrBackendUnavailable)
		}
		return readTable(ctx, l.db, spec.Name, spec.Path)
	case KindQuery:
		if l.pg == nil {
			return nil, fmt.Errorf("%w: postgres", ErrBackendUnavailable)
		}
		return readQuery(ctx, l.pg, spec.Name, spec.Path)
	default:
		return nil, fmt.Errorf("unsupported source kind %q", spec.Kind)
	}
}
