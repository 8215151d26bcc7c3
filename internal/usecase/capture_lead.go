package usecase

import (
	"context"
	"log"
	"strings"

	"github.com/skylineestates/leaddesk/internal/entity"
	"github.com/skylineestates/leaddesk/internal/infra/queue"
)

type CaptureLeadInput struct {
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email"`
	Location     string `json:"location"`
	PropertyType string `json:"property_type"`
	Budget       string `json:"budget"`
	Message      string `json:"message"`
	Source       string `json:"source"`
	LeadType     string `json:"lead_type"`
}

// CaptureLeadUseCase handles the public enquiry funnel: validate, persist,
// then hand the notification fan-out to the queue. A queue failure is logged
// but never surfaced to the visitor; the lead is already safe in the store.
type CaptureLeadUseCase struct {
	Repo  entity.LeadRepositoryInterface
	Queue QueueProducerInterface
}

func NewCaptureLeadUseCase(repo entity.LeadRepositoryInterface, producer QueueProducerInterface) *CaptureLeadUseCase {
	return &CaptureLeadUseCase{Repo: repo, Queue: producer}
}

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errs []ValidationError

	if strings.TrimSpace(input.Name) == "" {
		errs = append(errs, ValidationError{"name", "is required"})
	}

	phone := cleanPhone(input.Phone)
	if strings.TrimSpace(input.Phone) == "" {
		errs = append(errs, ValidationError{"phone", "is required"})
	} else if len(phone) < minPhoneDigits {
		errs = append(errs, ValidationError{"phone", "must have at least 10 digits"})
	}

	if input.Email != "" && !strings.Contains(input.Email, "@") {
		errs = append(errs, ValidationError{"email", "is invalid"})
	}

	return errs
}

func (uc *CaptureLeadUseCase) Execute(ctx context.Context, input CaptureLeadInput) (*entity.Lead, error) {
	lead := &entity.Lead{
		Name:         strings.TrimSpace(input.Name),
		Phone:        cleanPhone(input.Phone),
		Email:        normalizeEmail(strings.TrimSpace(input.Email)),
		Location:     strings.TrimSpace(input.Location),
		PropertyType: strings.TrimSpace(input.PropertyType),
		Budget:       strings.TrimSpace(input.Budget),
		Message:      strings.TrimSpace(input.Message),
		Source:       entity.NormalizeSource(defaultIfEmpty(input.Source, "website")),
		LeadType:     entity.NormalizeLeadType(input.LeadType),
		Status:       entity.StatusNew,
		Priority:     entity.PriorityMedium,
	}

	if err := uc.Repo.Create(ctx, lead); err != nil {
		return nil, err
	}

	if uc.Queue != nil {
		payload := queue.LeadCapturedPayload{
			LeadID:  lead.ID,
			Name:    lead.Name,
			Phone:   lead.Phone,
			Email:   lead.Email,
			Message: lead.Message,
			Source:  lead.Source,
		}
		if err := uc.Queue.PublishLeadCaptured(ctx, payload); err != nil {
			log.Printf("lead captured but notification publish failed: %v", err)
		}
	}

	return lead, nil
}

func defaultIfEmpty(s, fallback string) string {
	if strings.TrimSpace(s) == "" {
		return fallback
	}
	return s
}
