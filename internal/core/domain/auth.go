package domain

// Role defines what a caller is allowed to do
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// PublicACLEntry marks a chunk as readable by any authenticated caller.
// Indexed into every public chunk's access list and added to every
// caller's ACL entry set.
const PublicACLEntry = "PUBLIC"

// TokenClaims represents the JWT token payload
type TokenClaims struct {
	UserID    string   `json:"user_id"`
	Email     string   `json:"email"`
	Role      Role     `json:"role"`
	TeamID    string   `json:"team_id"`
	TenantID  string   `json:"tenant_id,omitempty"`
	Groups    []string `json:"groups,omitempty"`
	IssuedAt  int64    `json:"iat"`
	ExpiresAt int64    `json:"exp"`
}

// AuthContext contains authenticated caller info for request context
type AuthContext struct {
	UserID   string   `json:"user_id"`
	Email    string   `json:"email"`
	Role     Role     `json:"role"`
	TeamID   string   `json:"team_id"`
	TenantID string   `json:"tenant_id,omitempty"`
	Groups   []string `json:"groups,omitempty"`
}

// IsAdmin checks if the authenticated caller is an admin
func (a *AuthContext) IsAdmin() bool {
	return a.Role == RoleAdmin
}

// ACLEntries returns the principal tokens this caller may match against a
// chunk's access list. The token format is shared with the indexing path;
// changing it orphans every previously indexed chunk.
func (a *AuthContext) ACLEntries() []string {
	entries := []string{PublicACLEntry}
	if a.UserID != "" {
		entries = append(entries, "user:"+a.UserID)
	}
	for _, g := range a.Groups {
		if g == "" {
			continue
		}
		entries = append(entries, "group:"+g)
	}
	return entries
}
