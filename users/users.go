package users

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"
)

// RoleType represents a user's authorization level
type RoleType string

const (
	RoleAdmin RoleType = "admin" // Can view the admin panel, user table, and activity log
	RoleUser  RoleType = "user"  // Regular registered user
)

type User struct {
	Username       string    `json:"username"`   // Unique username (trimmed, case-sensitive)
	PasswordDigest string    `json:"password"`   // Unsalted sha256 hex digest of the password
	Role           RoleType  `json:"role"`       // admin or user
	CreatedAt      time.Time `json:"created_at"` // When the record was created
}

// IsAdmin returns true if the user has the admin role
func (u *User) IsAdmin() bool {
	return u.Role == RoleAdmin
}

// NormalizeUsername trims surrounding whitespace. Usernames stay case-sensitive.
// Applied on both read and write so lookups and stored records agree.
func NormalizeUsername(username string) string {
	return strings.TrimSpace(username)
}

// HashPassword returns the unsalted sha256 hex digest of a password.
// Identical passwords produce identical digests; the on-disk user table
// stores these digests directly.
func HashPassword(password string) string {
	sum := sha256.Sum256([]byte(password))
	return hex.EncodeToString(sum[:])
}

// CheckPasswordDigest verifies a password against a stored digest
func CheckPasswordDigest(password, digest string) bool {
	return HashPassword(password) == digest
}

// ParseRole maps a submitted role value onto a RoleType, defaulting to RoleUser
func ParseRole(role string) RoleType {
	if RoleType(role) == RoleAdmin {
		return RoleAdmin
	}
	return RoleUser
}
