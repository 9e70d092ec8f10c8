// Package authz holds the role/action vocabulary and the RBAC decision engine
// shared by every service. Policies are static tables from action to a rule;
// anything a table does not spell out is denied.
package authz

// Role is a caller-visible identity attribute. The engine treats the value as
// opaque: an unknown role string coming off the wire is never an error, it
// just matches no grant and falls through to deny.
type Role string

const (
	RoleAdmin           Role = "admin"
	RoleRegularUser     Role = "regular_user"
	RoleFacilityManager Role = "facility_manager"
	RoleModerator       Role = "moderator"
	RoleAuditor         Role = "auditor"
	RoleServiceAccount  Role = "service_account"
)

// Action is a logical operation name within one domain's policy table.
type Action string

// Context carries the per-request facts a rule may consult. CallerID comes
// from the authenticated identity (JWT subject), never from the request body.
type Context struct {
	Role            Role
	CallerID        string
	ResourceOwnerID string // owner of the booking/review being mutated
	TargetUserID    string // user whose data is being read (history lookups)
	DeclaredOwnerID string // owner field declared in a create payload
}

// Grant is the per-role outcome a rule assigns. Zero value denies.
type Grant int

const (
	denied Grant = iota
	// Allow permits the role with no further condition.
	Allow
	// AllowIfOwner permits only when the caller owns the resource.
	AllowIfOwner
	// AllowIfDeclaredSelf permits a create only when the declared owner is the
	// caller ("cannot act on behalf of another user").
	AllowIfDeclaredSelf
	// AllowIfTargetSelf permits a read only when the target user is the caller.
	AllowIfTargetSelf
)

// Rule is one row of a policy table.
type Rule struct {
	// Everyone short-circuits the role lookup; used for open read actions.
	Everyone bool
	Grants   map[Role]Grant
}

// Policy maps each action of one domain to its rule. Actions absent from the
// table deny for every role except admin.
type Policy map[Action]Rule

// Decision reports an authorization outcome with the reason a request was
// turned away. Denial is an ordinary value here, not an error.
type Decision struct {
	Allowed bool
	Reason  string
}

const (
	ReasonUnknownAction = "action not permitted"
	ReasonRoleDenied    = "role not permitted"
	ReasonNotOwner      = "not the owner of this resource"
	ReasonNotSelf       = "cannot act on behalf of another user"
	ReasonNotTarget     = "can only access your own records"
)

func allow() Decision { return Decision{Allowed: true} }
func deny(reason string) Decision { return Decision{Reason: reason} }

// Decide evaluates one action against the table. Order is fixed: admin
// override, then action lookup, then role grant, then ownership refinement.
// Total over all inputs; unknown roles and actions deny rather than fail.
func (p Policy) Decide(action Action, ctx Context) Decision {
	if ctx.Role == RoleAdmin {
		return allow()
	}

	rule, ok := p[action]
	if !ok {
		return deny(ReasonUnknownAction)
	}
	if rule.Everyone {
		return allow()
	}

	grant, ok := rule.Grants[ctx.Role]
	if !ok {
		return deny(ReasonRoleDenied)
	}

	switch grant {
	case Allow:
		return allow()
	case AllowIfOwner:
		if ctx.CallerID != "" && ctx.CallerID == ctx.ResourceOwnerID {
			return allow()
		}
		return deny(ReasonNotOwner)
	case AllowIfDeclaredSelf:
		if ctx.CallerID != "" && ctx.CallerID == ctx.DeclaredOwnerID {
			return allow()
		}
		return deny(ReasonNotSelf)
	case AllowIfTargetSelf:
		if ctx.CallerID != "" && ctx.CallerID == ctx.TargetUserID {
			return allow()
		}
		return deny(ReasonNotTarget)
	default:
		return deny(ReasonRoleDenied)
	}
}

// Allows is the boolean form of Decide.
func (p Policy) Allows(action Action, ctx Context) bool {
	return p.Decide(action, ctx).Allowed
}
