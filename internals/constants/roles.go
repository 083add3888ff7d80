package constants

// User roles (users.user_role)
const (
	RoleAdmin   = "ADMIN"
	RoleStaff   = "STAFF"
	RoleStudent = "STUDENT"
)

// Staff roles (staff.staff_role)
const (
	StaffRoleTeacher = "TEACHER"
	StaffRoleMentor  = "MENTOR"
	StaffRoleOffice  = "OFFICE"
)

var (
	AllRoles = []string{RoleAdmin, RoleStaff, RoleStudent}

	// Roles allowed to manage feedback questions & view attendance admin endpoints
	StaffAndAdmin = []string{RoleStaff, RoleAdmin}
)
