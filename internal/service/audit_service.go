package service

import (
	"medappoint-backend/internal/domain/entity"
	"medappoint-backend/internal/domain/repository"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// AuditService writes the audit trail for lifecycle transitions. Entries are
// written inside the caller's transaction so a rolled-back transition leaves
// no trace.
type AuditService interface {
	LogTransition(tx *gorm.DB, userID *uuid.UUID, action string, appointmentID string, oldStatus, newStatus string) error
	LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail entity.JSON) error
}

type auditService struct {
	log       *logrus.Logger
	auditRepo repository.AuditLogRepository
}

func NewAuditService(log *logrus.Logger, auditRepo repository.AuditLogRepository) AuditService {
	return &auditService{
		log:       log,
		auditRepo: auditRepo,
	}
}

// LogTransition records an appointment status change
func (s *auditService) LogTransition(tx *gorm.DB, userID *uuid.UUID, action string, appointmentID string, oldStatus, newStatus string) error {
	metadata := entity.JSON{
		"entity":     "appointment",
		"entity_id":  appointmentID,
		"old_status": oldStatus,
		"new_status": newStatus,
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}

// LogAction records a non-transition action with free-form detail
func (s *auditService) LogAction(tx *gorm.DB, userID *uuid.UUID, action string, entityName string, entityID string, detail entity.JSON) error {
	metadata := entity.JSON{
		"entity":    entityName,
		"entity_id": entityID,
	}
	for k, v := range detail {
		metadata[k] = v
	}

	auditLog := &entity.AuditLog{
		UserID:   userID,
		Action:   action,
		Metadata: metadata,
	}

	if err := s.auditRepo.Create(tx, auditLog); err != nil {
		s.log.Warnf("Failed to create audit log: %+v", err)
		return err
	}

	return nil
}
