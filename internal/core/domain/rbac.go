package domain

// Role is the coarse-grained classification assigned to every user.
type Role string

const (
	RoleAdmin     Role = "admin"
	RoleModerator Role = "moderator"
	RoleUser      Role = "user"
	RoleGuest     Role = "guest"
)

// DefaultRole is applied to records whose role field was never set.
const DefaultRole = RoleUser

// Permission is a fine-grained capability checked independently of role identity.
type Permission string

const (
	PermissionReadUsers       Permission = "read_users"
	PermissionWriteUsers      Permission = "write_users"
	PermissionDeleteUsers     Permission = "delete_users"
	PermissionReadOwnData     Permission = "read_own_data"
	PermissionWriteOwnData    Permission = "write_own_data"
	PermissionModerateContent Permission = "moderate_content"
	PermissionAdminAccess     Permission = "admin_access"
)

// rolePermissions is the static role→permission table. It is immutable at
// runtime and safe for unrestricted concurrent reads.
var rolePermissions = map[Role][]Permission{
	RoleAdmin: {
		PermissionReadUsers,
		PermissionWriteUsers,
		PermissionDeleteUsers,
		PermissionReadOwnData,
		PermissionWriteOwnData,
		PermissionModerateContent,
		PermissionAdminAccess,
	},
	RoleModerator: {
		PermissionReadUsers,
		PermissionReadOwnData,
		PermissionWriteOwnData,
		PermissionModerateContent,
	},
	RoleUser: {
		PermissionReadOwnData,
		PermissionWriteOwnData,
	},
	RoleGuest: {
		PermissionReadOwnData,
	},
}

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	_, ok := rolePermissions[r]
	return ok
}

// Permissions returns the permission set granted to r. Unknown roles yield
// no permissions.
func (r Role) Permissions() []Permission {
	perms := rolePermissions[r]
	out := make([]Permission, len(perms))
	copy(out, perms)
	return out
}

// HasPermission reports whether r grants p.
func (r Role) HasPermission(p Permission) bool {
	for _, granted := range rolePermissions[r] {
		if granted == p {
			return true
		}
	}
	return false
}

// Elevated reports whether r may access resources owned by other users.
func (r Role) Elevated() bool {
	return r == RoleAdmin || r == RoleModerator
}
