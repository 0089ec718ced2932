package entity

import "time"

// ScanRecord rows are written by the external scanning engine; this API only
// reads them.
type ScanRecord struct {
	ID               uint      `gorm:"primaryKey" json:"id"`
	UserID           uint      `gorm:"not null;index" json:"user_id"`
	ScanType         string    `gorm:"size:20;not null" json:"scan_type"`
	ScanTarget       string    `gorm:"type:text" json:"scan_target"`
	Result           string    `gorm:"size:20" json:"result"`
	RiskScore        *int      `json:"risk_score"`
	ThreatTypes      *string   `gorm:"type:text" json:"threat_types"`
	AnalysisResult   *string   `gorm:"type:text" json:"analysis_result"`
	EasySummary      *string   `gorm:"type:text" json:"easy_summary"`
	ExpertSummary    *string   `gorm:"type:text" json:"expert_summary"`
	ProcessingTimeMS *int      `json:"processing_time_ms"`
	UserAgent        *string   `gorm:"size:500" json:"user_agent"`
	CreatedAt        time.Time `json:"created_at"`
}

func (ScanRecord) TableName() string { return "scan_history" }
