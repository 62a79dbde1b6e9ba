// Package domain contains core domain types for the lkev.in terminal site.
package domain

import (
	"time"
)

// LoginRecord is the single persisted "last login" row shown in the
// terminal header. There is only ever one record; each visit overwrites it.
type LoginRecord struct {
	RequestDate time.Time `json:"request_date"`
	UserAgent   string    `json:"user_agent"`
	IP          string    `json:"ip"`
	Location    string    `json:"location,omitempty"`
}

// IsZero returns true if no login has ever been recorded.
func (r *LoginRecord) IsZero() bool {
	return r == nil || r.RequestDate.IsZero()
}
