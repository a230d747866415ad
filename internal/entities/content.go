package entities

type Notification struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Body    string `json:"body"`
	Created string `json:"created"`
}

type NotificationsResponse struct {
	Title         string         `json:"title"`
	Subtitle      string         `json:"subtitle"`
	Notifications []Notification `json:"notifications"`
}

type PolicySection struct {
	Heading    string   `json:"heading" yaml:"heading"`
	Paragraphs []string `json:"paragraphs,omitempty" yaml:"paragraphs"`
	Bullets    []string `json:"bullets,omitempty" yaml:"bullets"`
}

type PrivacyPolicy struct {
	Title       string          `json:"title" yaml:"title"`
	LastUpdated string          `json:"lastUpdated" yaml:"-"`
	Sections    []PolicySection `json:"sections" yaml:"sections"`
	Closing     string          `json:"closing" yaml:"closing"`
}
