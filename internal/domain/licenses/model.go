package licenses

import "time"

type Status string

const (
	StatusActive      Status = "active"
	StatusDeactivated Status = "deactivated"
	StatusExpired     Status = "expired"
)

// License life cycle: active -> expired (time, detected lazily on
// verification) or active -> deactivated (admin). Both end states are
// terminal; nothing returns a license to active.
type License struct {
	ID            int64      `json:"id"`
	Key           string     `json:"license_key"`
	ClientName    string     `json:"client_name"`
	ClientEmail   string     `json:"client_email"`
	ValidityDays  int        `json:"validity_days"`
	Notes         string     `json:"notes"`
	Status        Status     `json:"status"`
	CreatedAt     time.Time  `json:"created_at"`
	ExpiresAt     time.Time  `json:"expires_at"`
	DeactivatedAt *time.Time `json:"deactivated_at,omitempty"`
	LastVerified  *time.Time `json:"last_verified,omitempty"`
	UsageCount    int        `json:"usage_count"`
}

type Reason string

const (
	ReasonNone        Reason = ""
	ReasonNoKey       Reason = "no license key provided"
	ReasonNotFound    Reason = "invalid license key"
	ReasonDeactivated Reason = "license has been deactivated"
	ReasonExpired     Reason = "license has expired"
)

// Verdict is a verification result. ExpiresSoon is set on valid
// verdicts when the expiry falls inside the warning window.
type Verdict struct {
	Valid       bool      `json:"valid"`
	Reason      Reason    `json:"reason,omitempty"`
	ExpiresAt   time.Time `json:"expires_at,omitempty"`
	ExpiresSoon bool      `json:"expires_soon,omitempty"`
	DaysLeft    int       `json:"days_left,omitempty"`
	License     *License  `json:"license,omitempty"`
}

type Stats struct {
	Active      int `json:"active"`
	Expired     int `json:"expired"`
	Deactivated int `json:"deactivated"`
}
