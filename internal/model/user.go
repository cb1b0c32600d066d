package model

import "time"

// Roles recognized by the platform. FACULTY members request bookings;
// ADMIN users maintain halls and decide booking requests.
const (
	RoleFaculty = "FACULTY"
	RoleAdmin   = "ADMIN"
)

// User represents an application user record as stored in the `users`
// table. The password is stored only as a bcrypt hash. JSON tags are
// omitted; handlers define their own response types.
//
// Fields:
//  ID           – primary key identifier of the user.
//  Name         – display name, copied onto bookings at creation.
//  Email        – unique email address.
//  PasswordHash – bcrypt hashed password.
//  Role         – FACULTY or ADMIN.
//  IsActive     – whether the account is active.
//  CreatedAt    – timestamp of creation.
//  UpdatedAt    – timestamp of last update.
type User struct {
	ID           uint64    // users.id
	Name         string    // users.name
	Email        string    // users.email
	PasswordHash string    // users.password_hash
	Role         string    // users.role
	IsActive     bool      // users.is_active
	CreatedAt    time.Time // users.created_at
	UpdatedAt    time.Time // users.updated_at
}

// RefreshToken models an entry in the `refresh_tokens` table. Only the
// SHA-256 hash of the issued token is stored.
//
// Fields:
//  ID        – primary key identifier.
//  UserID    – owner of the token.
//  TokenHash – SHA-256 hex digest of the token value.
//  ExpiresAt – expiration timestamp of the token.
//  RevokedAt – when the token was revoked (null if still active).
//  CreatedAt – timestamp of creation.
type RefreshToken struct {
	ID        uint64     // refresh_tokens.id
	UserID    uint64     // refresh_tokens.user_id
	TokenHash string     // refresh_tokens.token_hash
	ExpiresAt time.Time  // refresh_tokens.expires_at
	RevokedAt *time.Time // refresh_tokens.revoked_at (nullable)
	CreatedAt time.Time  // refresh_tokens.created_at
}
