package dto

// RecordTenantRequest creates a bare tenant row in a record store, without
// an administrator account.
type RecordTenantRequest struct {
	Name        string             `json:"name"`
	Description string             `json:"description"`
	Domain      string             `json:"domain"`
	Status      string             `json:"status"`
	Settings    *TenantSettingsDTO `json:"settings"`
}

// RecordTestResultRequest writes an already scored result.
type RecordTestResultRequest struct {
	UserID         string `json:"user_id"`
	TenantID       string `json:"tenant_id"`
	QuizSetID      string `json:"quiz_set_id"`
	Score          int    `json:"score"`
	TotalQuestions int    `json:"total_questions"`
	TimeRemaining  int    `json:"time_remaining"`
	TimeTaken      int    `json:"time_taken"`
	QuizType       string `json:"quiz_type"`
}

// DeletedResponse reports whether a row was removed.
type DeletedResponse struct {
	Deleted bool `json:"deleted"`
}
