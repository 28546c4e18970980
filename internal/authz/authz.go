// authz — правила доступа к данным организаций.
package authz

import "github.com/pribylovaa/go-news-aggregator/read-api/internal/models"

// CanActForOrganization сообщает, может ли пользователь читать данные
// организации от её имени: супер-админ, участник или админ организации.
// Гость (неподтверждённое приглашение) прав не имеет.
func CanActForOrganization(p models.Principal, orgID int64, memberships []models.Membership) bool {
	if p.SuperAdmin {
		return true
	}

	for _, m := range memberships {
		if m.UserID != p.UserID || m.OrganizationID != orgID {
			continue
		}

		switch m.Role {
		case models.OrgRoleMember, models.OrgRoleAdmin:
			return true
		}
	}

	return false
}
