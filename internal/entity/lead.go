package entity

import (
	"context"
	"errors"
	"strings"
	"time"
)

var ErrLeadAlreadyExists = errors.New("lead already exists")
var ErrLeadNotFound = errors.New("lead not found")

type Lead struct {
	ID           string `json:"id"`
	Name         string `json:"name"`
	Phone        string `json:"phone"`
	Email        string `json:"email,omitempty"`
	Location     string `json:"location,omitempty"`
	PropertyType string `json:"property_type,omitempty"`
	Budget       string `json:"budget,omitempty"`

	Source     string `json:"source"`    // call, whatsapp, facebook, instagram, website, referral
	LeadType   string `json:"lead_type"` // buyer, seller
	Status     string `json:"status"`    // new, contacted, qualified, converted, lost
	Priority   string `json:"priority"`  // low, medium, high
	AssignedTo string `json:"assigned_to,omitempty"`
	Message    string `json:"message,omitempty"`

	// Seller-sheet columns carried through without validation.
	Owner      string `json:"owner,omitempty"`
	Contact    string `json:"contact,omitempty"`
	PlotNo     string `json:"plot_no,omitempty"`
	Size       string `json:"size,omitempty"`
	Direction  string `json:"direction,omitempty"`
	Price      string `json:"price,omitempty"`
	Negotiable string `json:"negotiable,omitempty"`
	Address    string `json:"address,omitempty"`
	Landmark   string `json:"landmark,omitempty"`
	Commission string `json:"commission,omitempty"`
	Age        string `json:"age,omitempty"`
	Water      string `json:"water,omitempty"`

	// Position in the source spreadsheet. Import diagnostics only, never persisted.
	RowNumber int `json:"row_number,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

const (
	StatusNew       = "new"
	StatusContacted = "contacted"
	StatusQualified = "qualified"
	StatusConverted = "converted"
	StatusLost      = "lost"
)

const (
	PriorityLow    = "low"
	PriorityMedium = "medium"
	PriorityHigh   = "high"
)

var knownSources = map[string]bool{
	"call": true, "whatsapp": true, "facebook": true,
	"instagram": true, "website": true, "referral": true,
}

var knownStatuses = map[string]bool{
	StatusNew: true, StatusContacted: true, StatusQualified: true,
	StatusConverted: true, StatusLost: true,
}

var knownPriorities = map[string]bool{
	PriorityLow: true, PriorityMedium: true, PriorityHigh: true,
}

// NormalizeSource always returns one of the six recognized sources.
// Anything unrecognized defaults to "call" (walk-in/phone enquiry).
func NormalizeSource(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if knownSources[s] {
		return s
	}
	return "call"
}

func NormalizeStatus(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if knownStatuses[s] {
		return s
	}
	return StatusNew
}

func NormalizePriority(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if knownPriorities[s] {
		return s
	}
	return PriorityMedium
}

// NormalizeLeadType infers buyer/seller from free text. Seller sheets rarely
// carry a clean enum, so any mention of selling wins over buying.
func NormalizeLeadType(s string) string {
	s = strings.ToLower(strings.TrimSpace(s))
	if strings.Contains(s, "sell") {
		return "seller"
	}
	return "buyer"
}

type LeadStats struct {
	Total          int            `json:"total"`
	ByStatus       map[string]int `json:"by_status"`
	ConversionRate float64        `json:"conversion_rate"`
	ThisMonth      int            `json:"this_month"`
}

// ConversionRate is converted/total*100 rounded to one decimal, 0 for an empty book.
func ConversionRate(converted, total int) float64 {
	if total == 0 {
		return 0
	}
	rate := float64(converted) / float64(total) * 100
	return float64(int(rate*10+0.5)) / 10
}

type LeadRepositoryInterface interface {
	Create(ctx context.Context, lead *Lead) error
	List(ctx context.Context) ([]Lead, error)
	FindByID(ctx context.Context, id string) (*Lead, error)
	Update(ctx context.Context, lead *Lead) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*LeadStats, error)
}
