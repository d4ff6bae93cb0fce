package audit_usecases_test

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	audit_entities "github.com/rivio-api/rivio-api/pkg/domain/audit/entities"
	audit_usecases "github.com/rivio-api/rivio-api/pkg/domain/audit/usecases"
)

type mockAuditLogWriter struct{ mock.Mock }

func (m *mockAuditLogWriter) Append(ctx context.Context, entry *audit_entities.AuditLog) error {
	return m.Called(ctx, entry).Error(0)
}

func TestRecordUseCase_AppendsEntryWithActorAndData(t *testing.T) {
	logs := new(mockAuditLogWriter)
	uc := audit_usecases.NewRecordUseCase(logs)

	actor := uuid.New()
	entityID := uuid.New().String()
	logs.On("Append", mock.Anything, mock.MatchedBy(func(e *audit_entities.AuditLog) bool {
		return e.ActorUserID != nil && *e.ActorUserID == actor &&
			e.EntityType == "match" && e.EntityID == entityID &&
			e.Action == "match/created" && e.Data["ladder"] == "HM"
	})).Return(nil)

	err := uc.Record(context.Background(), &actor, "match", entityID, "match/created", map[string]interface{}{"ladder": "HM"})

	assert.NoError(t, err)
	logs.AssertExpectations(t)
}

func TestRecordUseCase_NilActorAndNilDataAreAccepted(t *testing.T) {
	logs := new(mockAuditLogWriter)
	uc := audit_usecases.NewRecordUseCase(logs)

	entityID := uuid.New().String()
	logs.On("Append", mock.Anything, mock.MatchedBy(func(e *audit_entities.AuditLog) bool {
		return e.ActorUserID == nil && e.Data != nil && len(e.Data) == 0
	})).Return(nil)

	err := uc.Record(context.Background(), nil, "billing_webhook_event", entityID, "billing/webhook_ignored", nil)

	assert.NoError(t, err)
	logs.AssertExpectations(t)
}
