package authz

// Actions of the reviews domain.
const (
	ReviewCreate   Action = "create"
	ReviewUpdate   Action = "update"
	ReviewDelete   Action = "delete"
	ReviewListRoom Action = "list_room_reviews"
	ReviewFlag     Action = "flag"
)

// Reviews is the policy table of the reviews service. Moderators hold a global
// moderation override on update/delete but, unlike in the bookings table,
// cannot create reviews at all; facility managers write reviews only in their
// own name although they may book rooms for others. The asymmetry is a
// deliberate split of staff responsibilities between the two domains.
var Reviews = Policy{
	ReviewCreate: {Grants: map[Role]Grant{
		RoleRegularUser:     AllowIfDeclaredSelf,
		RoleFacilityManager: AllowIfDeclaredSelf,
	}},
	ReviewUpdate: {Grants: map[Role]Grant{
		RoleModerator:       Allow,
		RoleRegularUser:     AllowIfOwner,
		RoleFacilityManager: AllowIfOwner,
	}},
	ReviewDelete: {Grants: map[Role]Grant{
		RoleModerator:       Allow,
		RoleRegularUser:     AllowIfOwner,
		RoleFacilityManager: AllowIfOwner,
	}},
	ReviewListRoom: {Everyone: true},
	ReviewFlag: {Grants: map[Role]Grant{
		RoleModerator: Allow,
	}},
}
