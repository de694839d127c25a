package auth

import (
	"encoding/json"
	"sort"
	"time"

	"github.com/veritas-cms/veritas-cms/internal/shared"
)

// Role tags the kind of authenticated principal.
type Role string

const (
	// RoleAdmin is the unrestricted administrator role.
	RoleAdmin Role = "admin"
	// RoleSubAdmin is the capability-scoped sub-administrator role.
	RoleSubAdmin Role = "subadmin"
)

// Capability names a managed resource a sub-administrator may act on.
type Capability string

const (
	CapEnquiries Capability = "enquiries"
	CapLawyers   Capability = "lawyers"
	CapServices  Capability = "services"
	CapPosts     Capability = "posts"
	CapNews      Capability = "news"
	CapSettings  Capability = "settings"
)

// AllCapabilities lists every manageable resource.
func AllCapabilities() []Capability {
	return []Capability{CapEnquiries, CapLawyers, CapServices, CapPosts, CapNews, CapSettings}
}

// CapabilitySet is the authorization scope of a sub-administrator.
// It is immutable outside an explicit administrator role update.
type CapabilitySet map[Capability]bool

// NewCapabilitySet builds a set from the given capabilities.
func NewCapabilitySet(caps ...Capability) CapabilitySet {
	set := make(CapabilitySet, len(caps))
	for _, c := range caps {
		set[c] = true
	}
	return set
}

// CapabilitySetFromModules converts the open module-name list form into a
// set, rejecting names outside the fixed enumeration.
func CapabilitySetFromModules(modules []string) (CapabilitySet, error) {
	known := NewCapabilitySet(AllCapabilities()...)
	set := make(CapabilitySet, len(modules))
	for _, name := range modules {
		c := Capability(name)
		if !known[c] {
			return nil, shared.Validation("Unknown module: " + name)
		}
		set[c] = true
	}
	return set, nil
}

// Has reports whether the set grants the capability.
func (s CapabilitySet) Has(c Capability) bool {
	return s[c]
}

// Modules returns the granted capabilities as a sorted module-name list,
// the form carried in token claims.
func (s CapabilitySet) Modules() []string {
	names := make([]string, 0, len(s))
	for c, ok := range s {
		if ok {
			names = append(names, string(c))
		}
	}
	sort.Strings(names)
	return names
}

// capabilityFlags is the boolean-flag wire form kept for compatibility
// with the original storage columns.
type capabilityFlags struct {
	CanManageEnquiries bool `json:"canManageEnquiries"`
	CanManageLawyers   bool `json:"canManageLawyers"`
	CanManageServices  bool `json:"canManageServices"`
	CanManagePosts     bool `json:"canManagePosts"`
	CanManageNews      bool `json:"canManageNews"`
	CanManageSettings  bool `json:"canManageSettings"`
}

// MarshalJSON renders the set in the boolean-flag form.
func (s CapabilitySet) MarshalJSON() ([]byte, error) {
	return json.Marshal(capabilityFlags{
		CanManageEnquiries: s.Has(CapEnquiries),
		CanManageLawyers:   s.Has(CapLawyers),
		CanManageServices:  s.Has(CapServices),
		CanManagePosts:     s.Has(CapPosts),
		CanManageNews:      s.Has(CapNews),
		CanManageSettings:  s.Has(CapSettings),
	})
}

// UnmarshalJSON accepts the boolean-flag form.
func (s *CapabilitySet) UnmarshalJSON(data []byte) error {
	var flags capabilityFlags
	if err := json.Unmarshal(data, &flags); err != nil {
		return err
	}
	set := make(CapabilitySet)
	if flags.CanManageEnquiries {
		set[CapEnquiries] = true
	}
	if flags.CanManageLawyers {
		set[CapLawyers] = true
	}
	if flags.CanManageServices {
		set[CapServices] = true
	}
	if flags.CanManagePosts {
		set[CapPosts] = true
	}
	if flags.CanManageNews {
		set[CapNews] = true
	}
	if flags.CanManageSettings {
		set[CapSettings] = true
	}
	*s = set
	return nil
}

// Admin is an administrator account with global scope.
type Admin struct {
	ID           string    `json:"id"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// SubAdminAccount is the credential issuer's view of a sub-administrator:
// just enough to authenticate and to snapshot the permission set into a
// token. Full profile management lives in the subadmin package.
type SubAdminAccount struct {
	ID           string
	Email        string
	Name         string
	PasswordHash string
	Caps         CapabilitySet
}

// Principal is the decoded identity attached to admitted requests.
type Principal struct {
	ID    string
	Email string
	Role  Role
	Caps  CapabilitySet
}

// Can reports whether the principal may act on the capability.
// Administrators hold global scope and always pass.
func (p Principal) Can(c Capability) bool {
	if p.Role == RoleAdmin {
		return true
	}
	return p.Caps.Has(c)
}
