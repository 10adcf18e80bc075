package domain

// ApprovalStatus is the state of a journal in the approval workflow.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// JournalApproval is the approval-workflow record created alongside a journal.
type JournalApproval struct {
	ApprovalID string         `json:"approvalID"` // Primary Key (UUID)
	JournalID  string         `json:"journalID"`  // FK -> Journal
	UserID     string         `json:"userID"`     // Owning user (tenant scope)
	Status     ApprovalStatus `json:"status"`
	AuditFields
}
