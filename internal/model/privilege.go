package model

// Privilege represents a permission granted to roles
type Privilege struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Code string `gorm:"type:varchar(50);uniqueIndex;not null" json:"code"` // e.g., "sale:create"
	Name string `gorm:"type:varchar(100)" json:"name"`                     // e.g., "Record Sale"
}

// Default privileges for the system
var DefaultPrivileges = []Privilege{
	// Representative management
	{Code: "representative:view", Name: "View Representative"},
	{Code: "representative:create", Name: "Create Representative"},
	{Code: "representative:update", Name: "Update Representative"},
	{Code: "representative:delete", Name: "Delete Representative"},
	// Clients
	{Code: "client:view", Name: "View Client"},
	{Code: "client:create", Name: "Create Client"},
	// Catalog
	{Code: "pack:view", Name: "View Pack"},
	{Code: "pack:manage", Name: "Manage Packs and Articles"},
	// Sales
	{Code: "sale:view", Name: "View Sale"},
	{Code: "sale:create", Name: "Record Sale"},
	{Code: "sale:export", Name: "Export Sales"},
	// Dashboard
	{Code: "dashboard:view", Name: "View Dashboard"},
}

// DelegatePrivileges is the subset granted to the DELEGATE role.
var DelegatePrivileges = []string{
	"client:view",
	"pack:view",
	"sale:view",
	"sale:create",
	"sale:export",
	"dashboard:view",
}
