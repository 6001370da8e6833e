package domain

import "time"

type Role string

const (
	RoleAdmin   Role = "Admin"
	RoleSeller  Role = "Seller"
	RoleVisitor Role = "Visitor"
)

// User is the minimal local profile kept for ownership checks and
// denormalized views. Credentials live elsewhere; rows are upserted from
// the verified identity attached to each request.
type User struct {
	ID        string `gorm:"size:36;primaryKey"`
	Name      string `gorm:"size:140"`
	Role      Role   `gorm:"type:varchar(20);default:'Visitor'"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Identity is the verified (userId, role) pair supplied by the auth
// collaborator with every mutating call.
type Identity struct {
	UserID string
	Name   string
	Role   Role
}

func (i Identity) IsAdmin() bool { return i.Role == RoleAdmin }

// OwnerOrAdmin is the shared mutation gate for products: the caller must be
// the entity's owner or hold the administrator role.
func (i Identity) OwnerOrAdmin(ownerID string) bool {
	return i.UserID == ownerID || i.IsAdmin()
}
