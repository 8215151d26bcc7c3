package mail

type LeadAlertData struct {
	Name    string
	Phone   string
	Email   string
	Message string
	Source  string
}

type EmailSender struct {
	Host     string
	Port     int
	User     string
	Password string
	AgentTo  string
}
