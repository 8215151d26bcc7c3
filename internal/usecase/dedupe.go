package usecase

import (
	"strings"

	"github.com/skylineestates/leaddesk/internal/entity"
)

// MatchMode controls how strictly phones are compared during duplicate
// detection. MatchExact compares the cleaned strings as-is, so numbers
// differing only in spacing or punctuation stay distinct. MatchDigits strips
// everything but digits on both sides first.
type MatchMode int

const (
	MatchExact MatchMode = iota
	MatchDigits
)

// Deduper classifies candidates against a lead snapshot taken at import
// start. A candidate is a duplicate when its phone matches an existing
// lead's phone, or its non-empty email matches an existing non-empty email.
type Deduper struct {
	mode   MatchMode
	phones map[string]bool
	emails map[string]bool
}

func NewDeduper(existing []entity.Lead, mode MatchMode) *Deduper {
	d := &Deduper{
		mode:   mode,
		phones: make(map[string]bool, len(existing)),
		emails: make(map[string]bool, len(existing)),
	}
	for _, lead := range existing {
		if lead.Phone != "" {
			d.phones[d.phoneKey(lead.Phone)] = true
		}
		if lead.Email != "" {
			d.emails[strings.ToLower(lead.Email)] = true
		}
	}
	return d
}

func (d *Deduper) IsDuplicate(candidate *entity.Lead) bool {
	if candidate.Phone != "" && d.phones[d.phoneKey(candidate.Phone)] {
		return true
	}
	if candidate.Email != "" && d.emails[strings.ToLower(candidate.Email)] {
		return true
	}
	return false
}

func (d *Deduper) phoneKey(phone string) string {
	if d.mode == MatchDigits {
		return digitsOnly(phone)
	}
	return phone
}

func digitsOnly(s string) string {
	return strings.Map(func(r rune) rune {
		if r >= '0' && r <= '9' {
			return r
		}
		return -1
	}, s)
}
