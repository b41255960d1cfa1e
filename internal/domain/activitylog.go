package domain

import "time"

// AuditAction is the closed set of admin mutations recorded in the audit trail
type AuditAction string

const (
	AuditRoleChanged  AuditAction = "role_changed"
	AuditUserBanned   AuditAction = "user_banned"
	AuditUserUnbanned AuditAction = "user_unbanned"
	AuditUserDeleted  AuditAction = "user_deleted"
	AuditUserCreated  AuditAction = "user_created"
	AuditBulkAction   AuditAction = "bulk_action"
)

// ActivityLog Model: append-only audit trail of admin-initiated mutations.
// Rows are never updated or deleted by application code.
type ActivityLog struct {
	ID              uint        `gorm:"primaryKey" json:"id"`                           // Primary key
	Action          AuditAction `gorm:"type:varchar(32);index;not null" json:"action"`  // What was done
	AdminID         uint        `gorm:"index;not null" json:"admin_id"`                 // Acting admin user ID
	AdminEmail      string      `gorm:"not null" json:"admin_email"`                    // Acting admin email, denormalized
	TargetUserID    uint        `gorm:"index" json:"target_user_id,omitempty"`          // Affected user ID, if any
	TargetUserEmail string      `json:"target_user_email,omitempty"`                    // Affected user email, captured before deletion
	Description     string      `json:"description"`                                    // Human-readable summary
	Metadata        string      `json:"metadata,omitempty"`                             // JSON-encoded extra context
	CreatedAt       time.Time   `gorm:"index" json:"created_at"`                        // Timestamp of the mutation
}
