package audit

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// AggregateType names the entity an event is about.
type AggregateType string

const (
	AggregateBeneficiary AggregateType = "beneficiary"
	AggregateBenefit     AggregateType = "benefit"
	AggregateAssignment  AggregateType = "assignment"
	AggregateBatch       AggregateType = "batch"
	AggregateOperator    AggregateType = "operator"
)

type AuditEvent string

const (
	// Beneficiary events
	EventBeneficiaryCreated       AuditEvent = "beneficiary_created"
	EventBeneficiaryUpdated       AuditEvent = "beneficiary_updated"
	EventBeneficiaryStatusChanged AuditEvent = "beneficiary_status_changed"
	EventBeneficiaryDeleted       AuditEvent = "beneficiary_deleted"

	// Benefit catalog events
	EventBenefitCreated AuditEvent = "benefit_created"
	EventBenefitUpdated AuditEvent = "benefit_updated"
	EventBenefitDeleted AuditEvent = "benefit_deleted"

	// Assignment events
	EventAssignmentCreated AuditEvent = "assignment_created"
	EventAssignmentUpdated AuditEvent = "assignment_updated"
	EventAssignmentEnded   AuditEvent = "assignment_ended"

	// Distribution events
	EventBatchCreated     AuditEvent = "batch_created"
	EventBatchUpdated     AuditEvent = "batch_updated"
	EventBatchDeleted     AuditEvent = "batch_deleted"
	EventChecklistApplied AuditEvent = "checklist_applied"

	// Operator events
	EventOperatorCreated AuditEvent = "operator_created"
	EventOperatorUpdated AuditEvent = "operator_updated"
	EventLoginFailed     AuditEvent = "login_failed"
)

// Event is emitted from domain services to capture key actions. It is
// transport-agnostic: the outbox stores it as JSON and the relay forwards it.
type Event struct {
	ID            uuid.UUID         `json:"id"`
	Timestamp     time.Time         `json:"timestamp"`
	Action        AuditEvent        `json:"action"`
	AggregateType AggregateType     `json:"aggregate_type"`
	AggregateID   string            `json:"aggregate_id"`
	Actor         string            `json:"actor"`
	Client        string            `json:"client,omitempty"`
	RequestID     string            `json:"request_id,omitempty"`
	Details       map[string]string `json:"details,omitempty"`
}

// Store persists audit events. Postgres implementations write to the outbox
// inside the caller's transaction.
type Store interface {
	Append(ctx context.Context, event Event) error
}

// OutboxEntry is a stored event waiting to be relayed.
type OutboxEntry struct {
	ID        uuid.UUID
	Key       string
	Payload   []byte
	CreatedAt time.Time
}
