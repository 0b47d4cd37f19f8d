package workflow

import (
	"context"
	"encoding/json"

	"github.com/nmswainston/dwellpath-backend/config"
	"github.com/nmswainston/dwellpath-backend/models"
	"github.com/nmswainston/dwellpath-backend/residency"
	"github.com/sirupsen/logrus"
)

// GenerateAuditPackage compiles a package and records the generation event.
// The history row is best-effort metadata; a failed insert never fails the
// generation itself.
func GenerateAuditPackage(ctx context.Context, logger *logrus.Logger, svc *residency.Service, ownerId string, year int, stateFilter string) (residency.AuditPackage, error) {
	ctx, span := tracer.Start(ctx, "GenerateAuditPackage")
	defer span.End()

	pkg, err := svc.CompileAuditPackage(ctx, ownerId, year, stateFilter)
	if err != nil {
		return residency.AuditPackage{}, err
	}

	byteSize := 0
	if raw, merr := json.Marshal(pkg); merr == nil {
		byteSize = len(raw)
	}
	entry := &models.AuditLog{
		OwnerId:       ownerId,
		TaxYear:       year,
		StateFilter:   stateFilter,
		RequestedType: "audit-package",
		SectionCount:  len(pkg.StateSections),
		ByteSize:      byteSize,
	}
	if err := models.CreateAuditLog(ctx, entry); err != nil {
		config.LogError(logger, "auditWorkflow.go", "GenerateAuditPackage", "CreateAuditLog", entry, err)
	}

	return pkg, nil
}
