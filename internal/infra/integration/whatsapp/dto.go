package whatsapp

type SendMessageInput struct {
	PhoneNumber  string   // e.g. "919876543210"
	TemplateName string   // e.g. "new_lead_alert"
	Parameters   []string // template body parameters, in order
}

type SendMessageResponse struct {
	MessageID string `json:"messages"`
	Contacts  []struct {
		Input string `json:"input"`
		WaID  string `json:"wa_id"`
	} `json:"contacts"`
	Error *ErrorResponse `json:"error"`
}

type ErrorResponse struct {
	Message string `json:"message"`
	Code    int    `json:"code"`
	Type    string `json:"type"`
}
