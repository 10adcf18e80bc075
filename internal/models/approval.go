package models

// ApprovalStatus is the state of a journal in the approval workflow.
type ApprovalStatus string

const (
	ApprovalPending  ApprovalStatus = "PENDING"
	ApprovalApproved ApprovalStatus = "APPROVED"
	ApprovalRejected ApprovalStatus = "REJECTED"
)

// JournalApproval is the persistence model for an approval-workflow record.
type JournalApproval struct {
	ApprovalID string         `json:"approvalID"`
	JournalID  string         `json:"journalID"`
	UserID     string         `json:"userID"`
	Status     ApprovalStatus `json:"status"`
	AuditFields
}
