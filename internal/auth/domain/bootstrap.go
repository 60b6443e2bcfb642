package domain

type BootstrapData struct {
	AdminUserName  string
	AdminFirstName string
	AdminLastName  string
	AdminEmail     string
	AdminPassword  string // generated when empty
	Roles          []RoleDefinition
}

type RoleDefinition struct {
	Name        string
	Description string
}

// BootstrapResult reports the admin account that was created.
type BootstrapResult struct {
	AdminID       string
	AdminUserName string
	AdminPassword string // only set when it was generated
}
