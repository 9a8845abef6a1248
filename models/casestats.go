package models

// CaseStats holds the aggregate counts for a guild's cases. All case types
// appear in CasesByType, zero-valued when absent from the data.
type CaseStats struct {
	TotalCases    int64              `json:"totalCases"`
	ActiveCases   int64              `json:"activeCases"`
	ClosedCases   int64              `json:"closedCases"`
	AppealedCases int64              `json:"appealedCases"`
	CasesByType   map[CaseType]int64 `json:"casesByType"`
}

// NewCaseStats returns a zero-valued stats structure with every case type
// present in the by-type map
func NewCaseStats() CaseStats {
	byType := make(map[CaseType]int64, len(AllCaseTypes))
	for _, t := range AllCaseTypes {
		byType[t] = 0
	}
	return CaseStats{CasesByType: byType}
}

// ModeratorStats maps moderator IDs to their per-type case counts
type ModeratorStats map[string]map[CaseType]int64
