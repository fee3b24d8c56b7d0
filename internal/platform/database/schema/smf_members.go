package schema

// SMFMembersTable represents the 'smf_members' table
type SMFMembersTable struct {
	Table          string
	IDMember       string
	MemberName     string
	EmailAddress   string
	Passwd         string
	PasswordSalt   string
	IDGroup        string
	DateRegistered string
	Posts          string
}

// SMFMembers is the schema definition for smf_members
var SMFMembers = SMFMembersTable{
	Table:          "smf_members",
	IDMember:       "id_member",
	MemberName:     "member_name",
	EmailAddress:   "email_address",
	Passwd:         "passwd",
	PasswordSalt:   "password_salt",
	IDGroup:        "id_group",
	DateRegistered: "date_registered",
	Posts:          "posts",
}
