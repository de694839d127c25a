package subadmin

import (
	"time"

	"github.com/veritas-cms/veritas-cms/internal/auth"
)

// SubAdmin is a capability-scoped management account. The credential
// hash never appears in a response payload.
type SubAdmin struct {
	ID           string             `json:"id"`
	Email        string             `json:"email"`
	Name         string             `json:"name"`
	PasswordHash string             `json:"-"`
	CreatedBy    string             `json:"createdBy"`
	Caps         auth.CapabilitySet `json:"permissions"`
	CreatedAt    time.Time          `json:"createdAt"`
	UpdatedAt    time.Time          `json:"updatedAt"`
}
