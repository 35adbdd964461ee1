package types

import "strings"

// Customer is a person or business the shop sells to. Email, phone and
// address are optional. Customers are hard-deleted on request; there is
// no tombstone state.
type Customer struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Address   string `json:"address,omitempty"`
}

// FullName returns "FirstName LastName" for display and report rows.
func (c Customer) FullName() string {
	return strings.TrimSpace(c.FirstName + " " + c.LastName)
}

// Validate checks the required fields. Both name parts must be present.
func (c Customer) Validate() error {
	if strings.TrimSpace(c.FirstName) == "" || strings.TrimSpace(c.LastName) == "" {
		return ErrInvalidName
	}
	return nil
}

// Update overwrites the optional contact fields that are non-empty in
// the argument, leaving the rest untouched.
func (c *Customer) Update(email, phone, address string) {
	if email != "" {
		c.Email = email
	}
	if phone != "" {
		c.Phone = phone
	}
	if address != "" {
		c.Address = address
	}
}
