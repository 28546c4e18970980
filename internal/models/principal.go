package models

// Principal — аутентифицированный пользователь запроса.
type Principal struct {
	UserID     int64
	SuperAdmin bool
}

// OrgRole — роль пользователя в организации.
type OrgRole string

const (
	OrgRoleMember OrgRole = "member"
	OrgRoleAdmin  OrgRole = "admin"
	// OrgRoleGuest — приглашённый, ещё не подтвердивший членство.
	OrgRoleGuest OrgRole = "guest"
)

// Membership — членство пользователя в организации.
type Membership struct {
	UserID         int64
	OrganizationID int64
	Role           OrgRole
}

// APISecret — ключ доступа к API. Сам секрет хранится только в виде bcrypt-хэша.
type APISecret struct {
	Prefix     string
	SecretHash []byte
	UserID     int64
}
