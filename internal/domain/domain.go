package domain

import (
	"time"

	"github.com/google/uuid"
)

// Audit carries the identity and lifecycle timestamps shared by every
// resource. Entities embed it rather than redeclaring the fields.
type Audit struct {
	ID          int64      `json:"id" gorm:"column:id;primaryKey;autoIncrement"`
	DateCreated time.Time  `json:"date_created" gorm:"column:date_created;not null;index"`
	DateUpdated *time.Time `json:"date_updated" gorm:"column:date_updated"`
	DateDeleted *time.Time `json:"date_deleted" gorm:"column:date_deleted;index"`
}

// AuditRef exposes the embedded audit value so storage code can stamp
// ids and timestamps without knowing the concrete entity type.
func (a *Audit) AuditRef() *Audit {
	return a
}

// IsLive reports whether the record has not been soft-deleted.
func (a *Audit) IsLive() bool {
	return a.DateDeleted == nil
}

// Entity is satisfied by a pointer to any struct embedding Audit.
type Entity interface {
	AuditRef() *Audit
}

type AuditAction string

const (
	ActionCreate AuditAction = "create"
	ActionUpdate AuditAction = "update"
	ActionDelete AuditAction = "delete"
)

// AuditLog records a mutation to a resource. Entries are written
// asynchronously and never block the request path.
type AuditLog struct {
	ID         uuid.UUID `json:"id" gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	OccurredAt time.Time `json:"occurred_at" gorm:"autoCreateTime;index"`

	Action       AuditAction `json:"action" gorm:"column:action;type:varchar(20);not null;index"`
	ResourceType string      `json:"resource_type" gorm:"column:resource_type;type:varchar(50);not null;index"`
	ResourceID   int64       `json:"resource_id" gorm:"column:resource_id;index"`

	RequestID string `json:"request_id" gorm:"column:request_id;type:varchar(50);index"`
	IPAddress string `json:"ip_address" gorm:"column:ip_address;type:varchar(45)"` // Supports IPv6
}

func (AuditLog) TableName() string {
	return "audit.logs"
}
