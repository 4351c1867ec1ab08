package model

import "time"

// Permission bits composed into a role's permission mask. The mask is
// stored per role and carried on every user through RoleID, but the
// canonical authorization policy only checks "is authenticated" and
// never consults it. It is kept because the schema and seed data define
// it, not because any endpoint enforces it.
const (
	PermissionPost       = 0x01
	PermissionPut        = 0x02
	PermissionDelete     = 0x04
	PermissionAdminister = 0x80
)

// User represents a row in the `users` table.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Username     – unique login name.
//  PasswordHash – bcrypt hashed password, never serialized.
//  RoleID       – foreign key into the roles table.
//  LastSeen     – updated on successful login.
type User struct {
	ID           uint64
	Username     string
	PasswordHash string
	RoleID       uint8
	LastSeen     time.Time
}

// Role represents a row in the `roles` table. Exactly one role carries
// the IsDefault flag; newly registered users are attached to it.
type Role struct {
	ID          uint8
	Name        string
	IsDefault   bool
	Permissions int
}

// Can reports whether the role's permission mask covers all the given bits.
func (r Role) Can(permissions int) bool {
	return r.Permissions&permissions == permissions
}

// RevokedToken models an entry in the `revoked_tokens` deny-list. A
// token whose jti appears here is rejected during verification no
// matter how valid its signature and expiry are. The list only grows.
type RevokedToken struct {
	ID  uint64
	JTI string
}

// UserPatch carries the updatable user fields for a partial update.
// Nil fields leave the stored value untouched. The password arrives
// already hashed; handlers never pass plaintext past the auth helpers.
type UserPatch struct {
	Username     *string
	PasswordHash *string
}

// Apply assigns every non-nil patch field onto the user.
func (u *User) Apply(p UserPatch) {
	if p.Username != nil {
		u.Username = *p.Username
	}
	if p.PasswordHash != nil {
		u.PasswordHash = *p.PasswordHash
	}
}
