package types

import "time"

type Role string

const (
	RolePUPRAdmin        Role = "PUPR_ADMIN"
	RoleKominfoAdmin     Role = "KOMINFO_ADMIN"
	RoleDistrictOperator Role = "DISTRICT_OPERATOR"
	RoleVillageOperator  Role = "VILLAGE_OPERATOR"
	RolePublic           Role = "PUBLIC"
)

func (r Role) Valid() bool {
	switch r {
	case RolePUPRAdmin, RoleKominfoAdmin, RoleDistrictOperator, RoleVillageOperator, RolePublic:
		return true
	}
	return false
}

// User carries a role plus an optional geographic scope. DistrictID and
// VillageID are only set for operator roles.
type User struct {
	ID           string    `db:"id" json:"id"`
	Username     string    `db:"username" json:"username"`
	Email        string    `db:"email" json:"email"`
	PasswordHash string    `db:"password_hash" json:"-"`
	Role         Role      `db:"role" json:"role"`
	DistrictID   *string   `db:"district_id" json:"district_id"`
	VillageID    *string   `db:"village_id" json:"village_id"`
	IsActive     bool      `db:"is_active" json:"is_active"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// Principal is the authenticated caller as reconstructed from a verified
// token. It is the only identity the services ever see.
type Principal struct {
	UserID     string  `json:"user_id"`
	Username   string  `json:"username"`
	Role       Role    `json:"role"`
	DistrictID *string `json:"district_id,omitempty"`
	VillageID  *string `json:"village_id,omitempty"`
}

// Actor identifies who performed a mutation, for audit purposes.
type Actor struct {
	UserID    string
	IPAddress string
}

type CreateUserInput struct {
	Username   string  `json:"username" validate:"required,min=3"`
	Email      string  `json:"email" validate:"required,email"`
	Password   string  `json:"password" validate:"required,min=8"`
	Role       Role    `json:"role" validate:"required"`
	DistrictID *string `json:"district_id"`
	VillageID  *string `json:"village_id"`
}

type LoginInput struct {
	Username string `json:"username" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}
