package domain

import "slices"

// Action is something a principal may attempt against a resource.
type Action int

const (
	// ActionReadOwned is a single-item read of an owner-scoped record.
	ActionReadOwned Action = iota + 1
	// ActionUpdateOwned is a mutation of an owner-scoped record.
	ActionUpdateOwned
	// ActionManageMarketData covers creating and updating market data.
	ActionManageMarketData
	// ActionViewAdmin covers the read-only admin views.
	ActionViewAdmin
	// ActionManageUser covers admin mutations of another account.
	ActionManageUser
	// ActionChangeRole covers role and permission assignment.
	ActionChangeRole
	// ActionApproveDocument covers the customs review workflow.
	ActionApproveDocument
)

var actionNames = map[Action]string{
	ActionReadOwned:        "read_owned",
	ActionUpdateOwned:      "update_owned",
	ActionManageMarketData: "manage_market_data",
	ActionViewAdmin:        "view_admin",
	ActionManageUser:       "manage_user",
	ActionChangeRole:       "change_role",
	ActionApproveDocument:  "approve_document",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return "unknown"
}

// Resource describes the target of an action. OwnerID is the owning user of a
// record, or the target account itself for user management. OwnerRole is only
// meaningful for user targets.
type Resource struct {
	OwnerID   string
	OwnerRole Role
}

// rule is one row of the policy table.
//
// roles grants the action outright. permission additionally grants it to an
// admin holding that flag. When both are empty any authenticated principal
// passes the role stage.
type rule struct {
	roles      []Role
	permission Permission
	owner      bool
	hierarchy  bool
}

var policy = map[Action]rule{
	ActionReadOwned:        {owner: true},
	ActionUpdateOwned:      {owner: true},
	ActionManageMarketData: {roles: []Role{RoleSuperAdmin}, permission: PermManageMarketData},
	ActionViewAdmin:        {roles: []Role{RoleAdmin, RoleSuperAdmin}},
	ActionManageUser:       {roles: []Role{RoleAdmin, RoleSuperAdmin}, hierarchy: true},
	ActionChangeRole:       {roles: []Role{RoleSuperAdmin}},
	ActionApproveDocument:  {roles: []Role{RoleSuperAdmin}, permission: PermApproveDocuments},
}

// CanPerform is the single authorization decision point.
func CanPerform(p Principal, a Action, r Resource) bool {
	rl, ok := policy[a]
	if !ok || p.UserID == "" {
		return false
	}

	if len(rl.roles) > 0 || rl.permission != "" {
		granted := slices.Contains(rl.roles, p.Role) ||
			(rl.permission != "" && p.Role == RoleAdmin && p.Permissions.Has(rl.permission))
		if !granted {
			return false
		}
	}

	if rl.owner && r.OwnerID != p.UserID {
		return false
	}

	if rl.hierarchy && !p.Role.CanManage(r.OwnerRole) {
		return false
	}

	return true
}
