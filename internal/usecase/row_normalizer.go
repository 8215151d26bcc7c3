package usecase

import (
	"strings"

	"github.com/skylineestates/leaddesk/internal/entity"
)

// Skip reasons for rows that fail the admission gate.
const (
	SkipNoName        = "no name"
	SkipNoPhone       = "no phone"
	SkipPhoneTooShort = "phone too short"
)

// SkippedRow records why a data row did not become a lead. Row is the
// 1-based position in the source file.
type SkippedRow struct {
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// minPhoneDigits is the admission threshold on the cleaned phone string.
const minPhoneDigits = 10

// NormalizeRow turns one raw spreadsheet row into a lead candidate, or a
// SkippedRow when it fails the admission gate (non-empty name plus a cleaned
// phone of at least 10 characters). Exactly one of the two results is non-nil.
func NormalizeRow(row []string, hm HeaderMap, rowNum int) (*entity.Lead, *SkippedRow) {
	cell := func(field string) string {
		idx := hm.Col(field)
		if idx < 0 || idx >= len(row) {
			return ""
		}
		return strings.TrimSpace(row[idx])
	}

	lead := &entity.Lead{
		Name:         cell(FieldName),
		Phone:        cleanPhone(cell(FieldPhone)),
		Email:        normalizeEmail(cell(FieldEmail)),
		Location:     cell(FieldLocation),
		PropertyType: cell(FieldPropertyType),
		Budget:       cell(FieldBudget),
		Source:       entity.NormalizeSource(cell(FieldSource)),
		LeadType:     entity.NormalizeLeadType(cell(FieldLeadType)),
		Status:       entity.NormalizeStatus(cell(FieldStatus)),
		Priority:     entity.NormalizePriority(cell(FieldPriority)),
		AssignedTo:   cell(FieldAssignedTo),
		Message:      cell(FieldMessage),

		Owner:      cell(FieldOwner),
		Contact:    cell(FieldContact),
		PlotNo:     cell(FieldPlotNo),
		Size:       cell(FieldSize),
		Direction:  cell(FieldDirection),
		Price:      cell(FieldPrice),
		Negotiable: cell(FieldNegotiable),
		Address:    cell(FieldAddress),
		Landmark:   cell(FieldLandmark),
		Commission: cell(FieldCommission),
		Age:        cell(FieldAge),
		Water:      cell(FieldWater),

		RowNumber: rowNum,
	}

	// Seller sheets name the same data differently; backfill the buyer-side
	// columns from their seller-side twins when empty.
	if lead.Name == "" {
		lead.Name = lead.Owner
	}
	if lead.Phone == "" {
		lead.Phone = cleanPhone(lead.Contact)
	}
	if lead.Location == "" {
		lead.Location = lead.Address
	}
	if lead.Budget == "" {
		lead.Budget = lead.Price
	}

	if lead.Name == "" {
		return nil, &SkippedRow{Row: rowNum, Reason: SkipNoName}
	}
	if lead.Phone == "" {
		return nil, &SkippedRow{Row: rowNum, Reason: SkipNoPhone}
	}
	if len(lead.Phone) < minPhoneDigits {
		return nil, &SkippedRow{Row: rowNum, Reason: SkipPhoneTooShort}
	}

	return lead, nil
}

// cleanPhone keeps digits and the usual phone punctuation, nothing else.
func cleanPhone(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= '0' && r <= '9':
			return r
		case r == '+' || r == '-' || r == ' ' || r == '(' || r == ')':
			return r
		}
		return -1
	}, s)
}

// normalizeEmail lower-cases and keeps the address only when it looks like
// one; anything without an @ is treated as absent.
func normalizeEmail(s string) string {
	if !strings.Contains(s, "@") {
		return ""
	}
	return strings.ToLower(s)
}
