package request

// LoginRequest carries the identity asserted by the corporate identity
// provider. The backend trusts the gateway and does not verify credentials
// itself.
type LoginRequest struct {
	EmployeeUID string  `json:"employee_uid" validate:"required,min=3,max=100"`
	Email       string  `json:"email" validate:"required,email"`
	FirstName   *string `json:"first_name,omitempty" validate:"omitempty,max=100"`
	LastName    *string `json:"last_name,omitempty" validate:"omitempty,max=100"`
	ManagerName string  `json:"manager_name" validate:"omitempty,max=100"`
}
