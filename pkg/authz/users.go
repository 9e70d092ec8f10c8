package authz

// Actions of the users domain. Account administration is admin-only (reached
// through the engine's admin override); auditors get read access to the user
// directory. Every authenticated role manages its own profile.
const (
	UserList          Action = "list"
	UserGetByUsername Action = "get_by_username"
	UserCreateAny     Action = "create_with_role"
	UserUpdateAny     Action = "update_any"
	UserDeleteAny     Action = "delete_any"
	UserChangeRole    Action = "change_role"
	UserSelfManage    Action = "self_manage"
)

var Users = Policy{
	UserList: {Grants: map[Role]Grant{
		RoleAuditor: Allow,
	}},
	UserGetByUsername: {Grants: map[Role]Grant{
		RoleAuditor: Allow,
	}},
	UserCreateAny:  {},
	UserUpdateAny:  {},
	UserDeleteAny:  {},
	UserChangeRole: {},
	UserSelfManage: {Everyone: true},
}
