package authz

// Actions of the bookings domain.
const (
	BookingGetAll            Action = "get_all"
	BookingCreate            Action = "create"
	BookingUpdate            Action = "update"
	BookingCancel            Action = "cancel"
	BookingUserHistory       Action = "user_history"
	BookingCheckAvailability Action = "check_availability"
)

// Bookings is the policy table of the bookings service. Admin passes every row
// via the engine's override; facility managers may book on behalf of others,
// while regular users and moderators only book for themselves.
var Bookings = Policy{
	BookingGetAll: {Grants: map[Role]Grant{
		RoleFacilityManager: Allow,
		RoleAuditor:         Allow,
		RoleServiceAccount:  Allow,
	}},
	BookingCreate: {Grants: map[Role]Grant{
		RoleRegularUser:     AllowIfDeclaredSelf,
		RoleModerator:       AllowIfDeclaredSelf,
		RoleFacilityManager: Allow,
	}},
	BookingUpdate: {Grants: map[Role]Grant{
		RoleRegularUser:     AllowIfOwner,
		RoleModerator:       AllowIfOwner,
		RoleFacilityManager: AllowIfOwner,
	}},
	BookingCancel: {Grants: map[Role]Grant{
		RoleRegularUser:     AllowIfOwner,
		RoleModerator:       AllowIfOwner,
		RoleFacilityManager: AllowIfOwner,
	}},
	BookingUserHistory: {Grants: map[Role]Grant{
		RoleFacilityManager: Allow,
		RoleAuditor:         Allow,
		RoleServiceAccount:  Allow,
		RoleRegularUser:     AllowIfTargetSelf,
		RoleModerator:       AllowIfTargetSelf,
	}},
	BookingCheckAvailability: {Everyone: true},
}
