package models

import (
	"fmt"
	"strings"
	"time"
)

// User represents a registered student account
type User struct {
	ID        string    `gorm:"primarykey" json:"id"` // uuid
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Email string `gorm:"unique;not null" json:"email"`
	Name  string `json:"name"`
}

// ValidateEmailDomain checks that email carries one of the allowed domains.
// Registration is restricted to institutional addresses.
func ValidateEmailDomain(email string, allowedDomains []string) error {
	email = strings.ToLower(strings.TrimSpace(email))
	at := strings.LastIndex(email, "@")
	if at <= 0 || at == len(email)-1 {
		return fmt.Errorf("invalid email address %q", email)
	}
	domain := email[at+1:]
	for _, allowed := range allowedDomains {
		if domain == strings.ToLower(allowed) {
			return nil
		}
	}
	return fmt.Errorf("email domain %q is not allowed", domain)
}
