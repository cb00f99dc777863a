package domain

type MailMessage struct {
	Type string `json:"type"`
	To   string `json:"to"`
	Data any    `json:"data"`
}

type DayTypeChangedMailData struct {
	SchoolName  string `json:"schoolName"`
	ManagerName string `json:"managerName"`
	DayType     string `json:"dayType"`
	ChangedAt   string `json:"changedAt"`
	Automatic   bool   `json:"automatic"`
}
