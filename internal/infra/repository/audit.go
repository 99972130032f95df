package repository

import (
	"context"
	"encoding/json"

	"ntzs-issuer/internal/infra"

	"github.com/google/uuid"
)

// Audit actions recorded by the issuance pipeline.
const (
	AuditMintCompleted   = "mint_completed"
	AuditMintFailed      = "mint_failed"
	AuditCapExceeded     = "mint_cap_exceeded"
	AuditSafeConfirmed   = "safe_mint_confirmed"
	AuditDepositRejected = "deposit_rejected"
	AuditMintRetried     = "mint_retried"
)

// AuditLogRepository is append-only; rows are never updated or deleted.
type AuditLogRepository struct {
	db DBTX
}

func NewAuditLogRepository(db DBTX) *AuditLogRepository {
	return &AuditLogRepository{db: db}
}

func (r *AuditLogRepository) Append(ctx context.Context, db DBTX, action, entityType string, entityID uuid.UUID, metadata map[string]any) error {
	payload, err := json.Marshal(metadata)
	if err != nil {
		return infra.WrapRepoErr("failed to marshal audit metadata", err)
	}

	_, err = db.Exec(ctx, `
		INSERT INTO audit_logs (id, action, entity_type, entity_id, metadata)
		VALUES ($1, $2, $3, $4, $5)`,
		uuid.New(), action, entityType, entityID, payload,
	)
	if err != nil {
		return infra.WrapRepoErr("failed to append audit log", err)
	}
	return nil
}
