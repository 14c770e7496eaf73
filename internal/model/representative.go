package model

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

// Representative is a sales agent (delegate) or an administrator.
// Wilaya is stored as provisioned; it is parsed into a territory only when the
// representative authenticates, so legacy placeholder values stay visible.
type Representative struct {
	BaseModel
	Username     string     `gorm:"type:varchar(100);uniqueIndex;not null" json:"username" validate:"required"`
	Password     string     `gorm:"type:varchar(255);not null" json:"-"` // Hidden from JSON
	FullName     string     `gorm:"type:varchar(255)" json:"full_name" validate:"required"`
	City         string     `gorm:"type:varchar(100)" json:"city"`
	Wilaya       string     `gorm:"type:varchar(100);index" json:"wilaya"`
	PhoneNumber  string     `gorm:"type:varchar(20)" json:"phone_number"`
	RoleID       *uint      `gorm:"index" json:"role_id"`
	Role         *Role      `gorm:"foreignKey:RoleID" json:"role,omitempty"`
	IsActive     bool       `gorm:"default:true" json:"is_active"`
	TokenVersion string     `gorm:"type:varchar(255);default:''" json:"-"` // For single session enforcement
	LastLoginAt  *time.Time `json:"last_login_at,omitempty"`
}

// SetPassword hashes and sets the representative's password
func (r *Representative) SetPassword(password string) error {
	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	r.Password = string(hashedPassword)
	return nil
}

// CheckPassword verifies if the provided password matches the stored hash
func (r *Representative) CheckPassword(password string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(r.Password), []byte(password))
	return err == nil
}

// RoleCode returns the code of the loaded role, or "" when the role was not preloaded.
func (r *Representative) RoleCode() string {
	if r.Role == nil {
		return ""
	}
	return r.Role.Code
}

// HasPrivilege checks the privileges granted through the representative's role
func (r *Representative) HasPrivilege(code string) bool {
	for _, p := range r.GetPrivilegeCodes() {
		if p == code {
			return true
		}
	}
	return false
}

// GetPrivilegeCodes returns a slice of all privilege codes granted by the role
func (r *Representative) GetPrivilegeCodes() []string {
	if r.Role == nil {
		return []string{}
	}
	codes := make([]string, len(r.Role.Privileges))
	for i, p := range r.Role.Privileges {
		codes[i] = p.Code
	}
	return codes
}

// RepresentativeResponse is used for API responses (without sensitive data)
type RepresentativeResponse struct {
	ID          uuid.UUID  `json:"id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	City        string     `json:"city"`
	Wilaya      string     `json:"wilaya"`
	PhoneNumber string     `json:"phone_number"`
	RoleID      *uint      `json:"role_id,omitempty"`
	Role        *Role      `json:"role,omitempty"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	Privileges  []string   `json:"privileges"`
}

// ToResponse converts Representative to RepresentativeResponse
func (r *Representative) ToResponse() RepresentativeResponse {
	return RepresentativeResponse{
		ID:          r.ID,
		Username:    r.Username,
		FullName:    r.FullName,
		City:        r.City,
		Wilaya:      r.Wilaya,
		PhoneNumber: r.PhoneNumber,
		RoleID:      r.RoleID,
		Role:        r.Role,
		IsActive:    r.IsActive,
		LastLoginAt: r.LastLoginAt,
		Privileges:  r.GetPrivilegeCodes(),
	}
}
