package usecase

import (
	"bytes"
	"encoding/csv"

	"github.com/skylineestates/leaddesk/internal/entity"
)

// exportHeader is the fixed template order; a file exported here re-imports
// cleanly through the field mapper.
var exportHeader = []string{
	"Name", "Phone", "Email", "Location", "Property Type", "Budget",
	"Lead Type", "Source", "Message", "Status", "Priority", "Assigned To",
}

// BuildLeadsCSV renders the lead book as a CSV in the template column order.
func BuildLeadsCSV(leads []entity.Lead) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)

	if err := w.Write(exportHeader); err != nil {
		return nil, err
	}
	for _, lead := range leads {
		record := []string{
			lead.Name, lead.Phone, lead.Email, lead.Location, lead.PropertyType,
			lead.Budget, lead.LeadType, lead.Source, lead.Message, lead.Status,
			lead.Priority, lead.AssignedTo,
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}

	w.Flush()
	return buf.Bytes(), w.Error()
}
