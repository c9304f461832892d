package auth

import (
	"time"

	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// UserRole is the user's role
type UserRole = string

const (
	// RoleUser is the standard role every account starts with
	RoleUser UserRole = "user"
	// RoleAdmin is the administrator role
	RoleAdmin UserRole = "admin"
)

// roleLevels carries the numeric privilege level per role. Unknown roles
// resolve to -1 so they never satisfy a minimum check.
var roleLevels = map[UserRole]int{
	RoleUser:  0,
	RoleAdmin: 100,
}

// RoleLevel returns the privilege level for a role, -1 when unknown
func RoleLevel(r UserRole) int {
	if level, ok := roleLevels[r]; ok {
		return level
	}
	return -1
}

// RoleIsAtLeast reports whether role meets the minimum required level
func RoleIsAtLeast(role, minRole UserRole) bool {
	current, min := RoleLevel(role), RoleLevel(minRole)
	if current < 0 || min < 0 {
		return false
	}
	return current >= min
}

// IsValidRole checks if the role is one of the predefined valid roles
func IsValidRole(r UserRole) bool {
	_, ok := roleLevels[r]
	return ok
}

// BankType enumerates the payout banks the backend settles pledges through.
// Irrelevant to authentication, carried for schema parity.
type BankType = string

const (
	BankKB      BankType = "kb"
	BankShinhan BankType = "shinhan"
	BankWoori   BankType = "woori"
	BankHana    BankType = "hana"
	BankKakao   BankType = "kakaobank"
	BankToss    BankType = "toss"
)

// User is the canonical identity record. Created by password registration
// (active) or by federated login on first sight (inactive, placeholder
// fields). Never deleted by this package.
type User struct {
	bun.BaseModel `bun:"table:users,alias:usr"`

	ID            uuid.UUID  `bun:"id,pk,nullzero,type:uuid" json:"id,omitempty"`
	Email         string     `bun:"email,notnull,unique" json:"email,omitempty"`
	PasswordHash  string     `bun:"password_hash" json:"-"`
	Username      string     `bun:"username,notnull" json:"username,omitempty"`
	Nickname      string     `bun:"nickname,notnull" json:"nickname,omitempty"`
	Phone         string     `bun:"phone_number,notnull" json:"phone_number,omitempty"`
	Role          UserRole   `bun:"user_role,notnull" json:"user_role,omitempty"`
	BankType      BankType   `bun:"bank_type" json:"bank_type,omitempty"`
	Account       string     `bun:"account" json:"account,omitempty"`
	AccountHolder string     `bun:"account_holder" json:"account_holder,omitempty"`
	IsActive      bool       `bun:"is_active,notnull" json:"is_active"`
	CreatedAt     *time.Time `bun:"created_at,nullzero,default:current_timestamp" json:"created_at,omitempty"`
	UpdatedAt     *time.Time `bun:"updated_at,nullzero,default:current_timestamp" json:"updated_at,omitempty"`
}

// placeholderField marks the required fields a federated first-sight record
// has not provided yet. Profile completion replaces them.
const placeholderField = "TMP"

// NewFederatedUser builds the inactive placeholder record created the first
// time a federated profile is seen.
func NewFederatedUser(email, nickname string) *User {
	return &User{
		Email:        email,
		Nickname:     nickname,
		Username:     placeholderField,
		Phone:        placeholderField,
		Role:         RoleUser,
		PasswordHash: RandomPasswordHash(),
		IsActive:     false,
	}
}

type userIdentity struct {
	id       string
	email    string
	nickname string
	role     UserRole
	active   bool
}

func (a userIdentity) ID() string       { return a.id }
func (a userIdentity) Email() string    { return a.email }
func (a userIdentity) Nickname() string { return a.nickname }
func (a userIdentity) Role() string     { return string(a.role) }
func (a userIdentity) Active() bool     { return a.active }

var _ Identity = userIdentity{}

// IdentityFromUser adapts a stored user record into the request-facing
// Identity value.
func IdentityFromUser(u *User) Identity {
	return userIdentity{
		id:       u.ID.String(),
		email:    u.Email,
		nickname: u.Nickname,
		role:     u.Role,
		active:   u.IsActive,
	}
}
