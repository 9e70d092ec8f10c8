package authz

// Actions of the rooms domain. Reads are open; inventory management belongs to
// admins and facility managers.
const (
	RoomList   Action = "list"
	RoomGet    Action = "get"
	RoomCreate Action = "create"
	RoomUpdate Action = "update"
	RoomDelete Action = "delete"
)

var Rooms = Policy{
	RoomList: {Everyone: true},
	RoomGet:  {Everyone: true},
	RoomCreate: {Grants: map[Role]Grant{
		RoleFacilityManager: Allow,
	}},
	RoomUpdate: {Grants: map[Role]Grant{
		RoleFacilityManager: Allow,
	}},
	RoomDelete: {Grants: map[Role]Grant{
		RoleFacilityManager: Allow,
	}},
}
