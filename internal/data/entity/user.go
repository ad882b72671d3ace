package entity

// User is created on first successful login and refreshed on subsequent
// logins; rows are never deleted.
type User struct {
	Base
	EmployeeUID string  `db:"employee_uid"`
	Email       string  `db:"email"`
	FirstName   *string `db:"first_name"`
	LastName    *string `db:"last_name"`
	ManagerName string  `db:"manager_name"`
}

// DisplayName falls back to the email when no name parts are set.
func (u *User) DisplayName() string {
	name := ""
	if u.FirstName != nil {
		name = *u.FirstName
	}
	if u.LastName != nil {
		if name != "" {
			name += " "
		}
		name += *u.LastName
	}
	if name == "" {
		return u.Email
	}
	return name
}
