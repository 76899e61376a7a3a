package settings

import "time"

// Settings is the singleton app-settings document: branding strings,
// contact info and the notifier credentials.
type Settings struct {
	ProjectName   string    `json:"project_name"`
	BusinessType  string    `json:"business_type"`
	ContactNumber string    `json:"contact_number"`
	AdminEmail    string    `json:"admin_email"`
	BotToken      string    `json:"bot_token,omitempty"`
	AdminChatID   string    `json:"admin_chat_id,omitempty"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// Defaults are used until anything is stored.
func Defaults() Settings {
	return Settings{
		ProjectName:   "SUDHA SAGAR",
		BusinessType:  "DAIRY",
		ContactNumber: "9413577474",
		AdminEmail:    "admin@sudhasagar.com",
	}
}
