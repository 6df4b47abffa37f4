package history

import "time"

// Run is one recorded run.
type Run struct {
	ID            string      `gorm:"primaryKey;size:36" json:"id"`
	Project       string      `gorm:"size:255;index" json:"project"`
	GeneratedAt   time.Time   `gorm:"index" json:"generated_at"`
	RulesExecuted int         `json:"rules_executed"`
	MatchRate     float64     `json:"match_rate"`
	MatchStatus   string      `gorm:"size:16" json:"match_status"`
	PassRate      float64     `json:"pass_rate"`
	PassStatus    string      `gorm:"size:16" json:"pass_status"`
	ReportKey     string      `gorm:"size:512" json:"report_key,omitempty"`
	Document      string      `gorm:"type:text" json:"-"`
	Results       []RunResult `gorm:"foreignKey:RunID;constraint:OnDelete:CASCADE" json:"results,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
}

// RunResult is one finding of a recorded run.
type RunResult struct {
	ID        uint   `gorm:"primaryKey" json:"-"`
	RunID     string `gorm:"size:36;index" json:"-"`
	Engine    string `gorm:"size:32" json:"engine"`
	RuleID    string `gorm:"size:64" json:"rule_id"`
	RuleName  string `gorm:"size:255" json:"rule_name"`
	RecordKey string `gorm:"size:255" json:"record_key"`
	Status    string `gorm:"size:16" json:"status"`
	Severity  string `gorm:"size:16" json:"severity"`
	Details   string `gorm:"type:text" json:"details"`
}

// Engine names for RunResult.Engine.
const (
	EngineReconciliation = "reconciliation"
	EngineValidation     = "validation"
)
