package dto

import "cslab.kr/securityhub/internal/entity"

type ScanHistoryResponse struct {
	History []entity.ScanRecord `json:"history"`
	Total   int64               `json:"total"`
	Limit   int                 `json:"limit"`
	Offset  int                 `json:"offset"`
}

type ScanSummary struct {
	ID            uint    `json:"id"`
	ScanType      string  `json:"scan_type"`
	ScanTarget    string  `json:"scan_target"`
	Result        string  `json:"result"`
	RiskScore     *int    `json:"risk_score"`
	CreatedAt     string  `json:"created_at"`
	EasySummary   *string `json:"easy_summary"`
	ExpertSummary *string `json:"expert_summary"`
}

type MonthlyStat struct {
	Month string `json:"month"`
	Count int64  `json:"count"`
}

type DashboardStatsResponse struct {
	TotalConsultations int           `json:"total_consultations"`
	AverageRating      float64       `json:"average_rating"`
	MonthlyStats       []MonthlyStat `json:"monthly_stats"`
}
