// Package accesspolicy is the shared access-control kernel.
//
// Policy is fixed and enumerated: every operation exposed by the platform maps
// to one Action, and Evaluate decides Allow/Deny from the principal's role,
// the target company, and (for user creation) the tenant's seat usage. There
// is no default allow; an action without a matching rule is denied.
//
// The package is pure (no ports, no I/O) so the full rule table is testable
// without any transport or store in place.
package accesspolicy

// Role is the platform role carried by a session.
type Role string

const (
	RoleSuperAdmin     Role = "SuperAdmin"
	RoleMarketing      Role = "Marketing"
	RoleClientAdmin    Role = "ClientAdmin"
	RoleClientEngineer Role = "ClientEngineer"
)

func (r Role) Valid() bool {
	switch r {
	case RoleSuperAdmin, RoleMarketing, RoleClientAdmin, RoleClientEngineer:
		return true
	default:
		return false
	}
}

// Staff roles operate across tenants and never carry a company id.
func (r Role) Staff() bool {
	return r == RoleSuperAdmin || r == RoleMarketing
}

// Tenant roles always carry a company id.
func (r Role) Tenant() bool {
	return r == RoleClientAdmin || r == RoleClientEngineer
}

// Principal is the authenticated identity making a request. Immutable per
// request; derived from a verified session token plus the stored user row.
type Principal struct {
	UserID    string
	Role      Role
	CompanyID string
}

func (p Principal) Authenticated() bool {
	return p.UserID != "" && p.Role.Valid()
}

// Action enumerates every gated operation.
type Action string

const (
	ActionManagePlatform     Action = "platform.manage"
	ActionOnboardCompany     Action = "company.onboard"
	ActionListCompanies      Action = "company.list"
	ActionViewCompany        Action = "company.view"
	ActionViewCompanyUsers   Action = "company.users.view"
	ActionAddCompanyUser     Action = "company.users.add"
	ActionCreateProject      Action = "project.create"
	ActionListProjects       Action = "project.list"
	ActionViewProject        Action = "project.view"
	ActionManageSubscription Action = "subscription.manage"
	ActionViewTransactions   Action = "transactions.view"
)

// Target carries the resource attributes a rule may consult. Zero values are
// fine for actions that do not use them.
type Target struct {
	CompanyID   string
	MemberCount int
	MaxUsers    int
}

// DenyReason distinguishes deny outcomes so transports can map each to the
// right status code.
type DenyReason string

const (
	DenyNotAuthenticated DenyReason = "not_authenticated"
	DenyForbiddenRole    DenyReason = "forbidden_role"
	DenyNotYourCompany   DenyReason = "not_your_company"
	DenyUserLimitReached DenyReason = "user_limit_reached"
	DenyNoCompany        DenyReason = "no_company"
)

type Decision struct {
	Allowed bool
	Reason  DenyReason
}

func Allow() Decision {
	return Decision{Allowed: true}
}

func Deny(reason DenyReason) Decision {
	return Decision{Reason: reason}
}

// Evaluate applies the rule table. First match wins; it is deterministic and
// total for any well-formed input.
func Evaluate(p Principal, action Action, target Target) Decision {
	if !p.Authenticated() {
		return Deny(DenyNotAuthenticated)
	}

	switch action {
	case ActionManagePlatform:
		if p.Role == RoleSuperAdmin {
			return Allow()
		}
		return Deny(DenyForbiddenRole)

	case ActionOnboardCompany, ActionListCompanies:
		if p.Role.Staff() {
			return Allow()
		}
		return Deny(DenyForbiddenRole)

	case ActionViewCompany, ActionViewCompanyUsers:
		if p.Role.Staff() {
			return Allow()
		}
		if p.CompanyID != "" && p.CompanyID == target.CompanyID {
			return Allow()
		}
		return Deny(DenyNotYourCompany)

	case ActionAddCompanyUser:
		if p.Role != RoleClientAdmin {
			return Deny(DenyForbiddenRole)
		}
		if p.CompanyID == "" || p.CompanyID != target.CompanyID {
			return Deny(DenyNotYourCompany)
		}
		if target.MaxUsers > 0 && target.MemberCount >= target.MaxUsers {
			return Deny(DenyUserLimitReached)
		}
		return Allow()

	case ActionCreateProject, ActionListProjects, ActionViewTransactions:
		if p.CompanyID == "" {
			return Deny(DenyNoCompany)
		}
		return Allow()

	case ActionViewProject:
		if p.Role.Staff() {
			return Allow()
		}
		if p.CompanyID != "" && p.CompanyID == target.CompanyID {
			return Allow()
		}
		return Deny(DenyNotYourCompany)

	case ActionManageSubscription:
		if p.Role != RoleClientAdmin {
			return Deny(DenyForbiddenRole)
		}
		if p.CompanyID == "" {
			return Deny(DenyNoCompany)
		}
		if target.CompanyID != "" && target.CompanyID != p.CompanyID {
			return Deny(DenyNotYourCompany)
		}
		return Allow()
	}

	return Deny(DenyForbiddenRole)
}
