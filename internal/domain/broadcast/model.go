package broadcast

import "time"

// Entry is one broadcast batch in the history log.
type Entry struct {
	ID         string    `json:"id"`
	Message    string    `json:"message"`
	HasPhoto   bool      `json:"has_photo"`
	Recipients int       `json:"recipients"`
	Sent       int       `json:"sent"`
	Failed     int       `json:"failed"`
	CreatedAt  time.Time `json:"created_at"`
}
