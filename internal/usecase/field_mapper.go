package usecase

import "strings"

// Canonical fields a spreadsheet column can map onto.
const (
	FieldName         = "name"
	FieldPhone        = "phone"
	FieldEmail        = "email"
	FieldLocation     = "location"
	FieldPropertyType = "propertyType"
	FieldBudget       = "budget"
	FieldSource       = "source"
	FieldMessage      = "message"
	FieldLeadType     = "leadType"
	FieldStatus       = "status"
	FieldPriority     = "priority"
	FieldAssignedTo   = "assignedTo"

	FieldOwner      = "owner"
	FieldContact    = "contact"
	FieldPlotNo     = "plotNo"
	FieldSize       = "size"
	FieldDirection  = "direction"
	FieldPrice      = "price"
	FieldNegotiable = "negotiable"
	FieldAddress    = "address"
	FieldLandmark   = "landmark"
	FieldCommission = "commission"
	FieldAge        = "age"
	FieldWater      = "water"
)

type fieldRule struct {
	field    string
	keywords []string
	// a header matching any of these is never claimed by this rule
	exclude []string
}

// headerRules is ordered. Earlier rules claim columns first, so a
// "Contact Phone" header lands on phone, not contact, and "Property Type"
// lands on propertyType before any looser rule can see it.
var headerRules = []fieldRule{
	{field: FieldName, keywords: []string{"name", "customer", "client"}},
	{field: FieldPhone, keywords: []string{"phone", "mobile"}},
	{field: FieldEmail, keywords: []string{"email", "mail"}},
	{field: FieldLocation, keywords: []string{"location", "city"}},
	{field: FieldPropertyType, keywords: []string{"property type", "propertytype"}},
	{field: FieldBudget, keywords: []string{"budget", "amount"}},
	{field: FieldSource, keywords: []string{"source", "channel"}},
	{field: FieldMessage, keywords: []string{"message", "note", "comment"}},
	{field: FieldLeadType, keywords: []string{"lead type", "leadtype", "seller", "buyer", "category"}},
	{field: FieldStatus, keywords: []string{"status", "stage"}},
	{field: FieldPriority, keywords: []string{"priority", "importance"}},
	{field: FieldAssignedTo, keywords: []string{"assigned", "sales"}},

	{field: FieldOwner, keywords: []string{"owner"}},
	{field: FieldContact, keywords: []string{"contact"}, exclude: []string{"phone"}},
	{field: FieldPlotNo, keywords: []string{"plot"}},
	{field: FieldSize, keywords: []string{"size"}},
	{field: FieldDirection, keywords: []string{"direction", "facing"}},
	{field: FieldPrice, keywords: []string{"price"}},
	{field: FieldNegotiable, keywords: []string{"negotiable"}},
	{field: FieldAddress, keywords: []string{"address"}},
	{field: FieldLandmark, keywords: []string{"landmark"}},
	{field: FieldCommission, keywords: []string{"commission"}},
	{field: FieldAge, keywords: []string{"age"}},
	{field: FieldWater, keywords: []string{"water"}},
}

// HeaderMap maps canonical fields to column indexes in the source sheet.
type HeaderMap map[string]int

// Col returns the column index for a field, -1 when the sheet has none.
func (hm HeaderMap) Col(field string) int {
	if idx, ok := hm[field]; ok {
		return idx
	}
	return -1
}

// MapHeaders builds a HeaderMap from the header row using substring
// heuristics. Each column is claimed by at most one field and each field by
// at most one column; rule order decides contested headers. Fails when no
// column maps to name or phone, since nothing downstream can work without them.
func MapHeaders(headers []string) (HeaderMap, error) {
	normalized := make([]string, len(headers))
	for i, h := range headers {
		normalized[i] = strings.ToLower(strings.TrimSpace(h))
	}

	hm := make(HeaderMap)
	claimed := make([]bool, len(headers))

	for _, rule := range headerRules {
		for i, header := range normalized {
			if claimed[i] || header == "" {
				continue
			}
			if !matchesRule(header, rule) {
				continue
			}
			hm[rule.field] = i
			claimed[i] = true
			break
		}
	}

	if hm.Col(FieldName) < 0 || hm.Col(FieldPhone) < 0 {
		return nil, &MissingRequiredColumnsError{Headers: headers}
	}

	return hm, nil
}

func matchesRule(header string, rule fieldRule) bool {
	for _, ex := range rule.exclude {
		if strings.Contains(header, ex) {
			return false
		}
	}
	for _, kw := range rule.keywords {
		if strings.Contains(header, kw) {
			return true
		}
	}
	return false
}
