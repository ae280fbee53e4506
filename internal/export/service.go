package export

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/fdg312/menu-board/internal/blob"
	"github.com/fdg312/menu-board/internal/weekplan"
	"github.com/google/uuid"
)

const contentTypePDF = "application/pdf"

// PlanSource is satisfied by *weekplan.Service.
type PlanSource interface {
	GetPlan(ctx context.Context, personID string, weekStart time.Time) (weekplan.Plan, error)
	Days() []string
}

// Result is either the PDF bytes (local mode) or a presigned URL (s3 mode).
type Result struct {
	Data        []byte
	ContentType string
	ObjectKey   string
	URL         string
	ExpiresIn   int
}

type Service struct {
	plans      PlanSource
	blobStore  blob.Store
	presignTTL int
	now        func() time.Time
}

// NewService creates an export service. A nil blobStore means local mode.
func NewService(plans PlanSource, blobStore blob.Store, presignTTL int) *Service {
	if presignTTL <= 0 {
		presignTTL = 900
	}
	return &Service{
		plans:      plans,
		blobStore:  blobStore,
		presignTTL: presignTTL,
		now:        time.Now,
	}
}

// Export renders the person's plan for the week.
func (s *Service) Export(ctx context.Context, personID string, weekStart time.Time) (*Result, error) {
	plan, err := s.plans.GetPlan(ctx, personID, weekStart)
	if err != nil {
		return nil, err
	}

	data, err := RenderPDF(plan, s.plans.Days(), s.now())
	if err != nil {
		return nil, err
	}

	if s.blobStore == nil {
		return &Result{Data: data, ContentType: contentTypePDF}, nil
	}

	objectKey := fmt.Sprintf("exports/%s/%s_%s.pdf", safeKeyPart(personID), plan.WeekStart, uuid.New().String())
	if _, err := s.blobStore.PutObject(ctx, objectKey, data, contentTypePDF); err != nil {
		return nil, fmt.Errorf("failed to upload export: %w", err)
	}

	url, err := s.blobStore.PresignGet(ctx, objectKey, s.presignTTL)
	if err != nil {
		_ = s.blobStore.DeleteObject(ctx, objectKey)
		return nil, fmt.Errorf("failed to presign export: %w", err)
	}

	return &Result{
		ContentType: contentTypePDF,
		ObjectKey:   objectKey,
		URL:         url,
		ExpiresIn:   s.presignTTL,
	}, nil
}

func safeKeyPart(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_', r == '.':
			return r
		}
		return '_'
	}, s)
}
