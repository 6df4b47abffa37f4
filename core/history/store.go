package history

import (
	"bytes"
	"context"
	"errors"
	"fmt"

	"recon-engine/core/report"
	"recon-engine/core/result"

	"gorm.io/gorm"
)

// ErrRunNotFound is returned by Get for an unknown run id.
var ErrRunNotFound = errors.New("run not found")

// DefaultListLimit applies when List is given no positive limit.
const DefaultListLimit = 20

// Store reads and writes run history.
type Store struct {
	db *gorm.DB
}

// NewStore migrates the history schema and returns a store over db.
func NewStore(db *gorm.DB) (*Store, error) {
	if err := db.AutoMigrate(&Run{}, &RunResult{}); err != nil {
		return nil, fmt.Errorf("failed to migrate history schema: %w", err)
	}
	return &Store{db: db}, nil
}

// Save records a report. key is the published object key, if any.
func (s *Store) Save(ctx context.Context, r *report.Report, key string) error {
	var doc bytes.Buffer
	if err := r.Write(&doc); err != nil {
		return fmt.Errorf("failed to encode report: %w", err)
	}

	run := Run{
		ID:            r.ID,
		Project:       r.Project,
		GeneratedAt:   r.GeneratedAt,
		RulesExecuted: r.Overview.RulesExecuted,
		MatchRate:     r.Overview.MatchRate,
		MatchStatus:   string(r.Overview.MatchStatus),
		PassRate:      r.Overview.PassRate,
		PassStatus:    string(r.Overview.PassStatus),
		ReportKey:     key,
		Document:      doc.String(),
		Results:       findings(r),
	}

	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(&run).Error
	})
}

// List returns the most recent runs first, without their results.
func (s *Store) List(ctx context.Context, limit int) ([]Run, error) {
	if limit <= 0 {
		limit = DefaultListLimit
	}
	var runs []Run
	err := s.db.WithContext(ctx).
		Omit("Document").
		Order("generated_at DESC").
		Limit(limit).
		Find(&runs).Error
	if err != nil {
		return nil, fmt.Errorf("failed to list runs: %w", err)
	}
	return runs, nil
}

// Get returns one run with its results.
func (s *Store) Get(ctx context.Context, id string) (*Run, error) {
	var run Run
	err := s.db.WithContext(ctx).Preload("Results").First(&run, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrRunNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get run %s: %w", id, err)
	}
	return &run, nil
}

// Report decodes the stored report document of run.
func (run *Run) Report() (*report.Report, error) {
	return report.Read(bytes.NewReader([]byte(run.Document)))
}

func findings(r *report.Report) []RunResult {
	var out []RunResult
	if r.Reconciliation != nil {
		for _, res := range r.Reconciliation.Results {
			if res.Status == result.Pass {
				continue
			}
			out = append(out, RunResult{
				Engine: EngineReconciliation, RuleID: res.RuleID, RuleName: res.RuleName,
				RecordKey: res.RecordKey, Status: string(res.Status), Severity: string(res.Severity),
				Details: res.Details,
			})
		}
	}
	if r.Validation != nil {
		for _, res := range r.Validation.Results {
			if res.Status == result.Pass {
				continue
			}
			out = append(out, RunResult{
				Engine: EngineValidation, RuleID: res.RuleID, RuleName: res.RuleName,
				RecordKey: res.RecordKey, Status: string(res.Status), Severity: string(res.Severity),
				Details: res.Details,
			})
		}
	}
	return out
}
