// Package directory manages the public-facing lawyer and practice-area
// records and the association between them.
package directory

import "time"

// Lawyer is a published profile, optionally linked to practice areas.
type Lawyer struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Title     string    `json:"title"`
	Bio       string    `json:"bio"`
	ImageURL  string    `json:"imageUrl,omitempty"`
	Services  []Service `json:"services,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// Service is a practice area offered by the firm.
type Service struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Slug        string    `json:"slug"`
	Description string    `json:"description"`
	ImageURL    string    `json:"imageUrl,omitempty"`
	Lawyers     []Lawyer  `json:"lawyers,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
	UpdatedAt   time.Time `json:"updatedAt"`
}
