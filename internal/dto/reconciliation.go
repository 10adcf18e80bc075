package dto

// ManualMatchRequest pairs a statement line with the journal explaining it.
type ManualMatchRequest struct {
	JournalID string `json:"journalId" binding:"required"`
}

// AutoMatchResponse reports the aggregate result of an auto-match run.
type AutoMatchResponse struct {
	MatchedCount          int `json:"matched_count"`
	PartiallyMatchedCount int `json:"partially_matched_count"`
}
