package response

import (
	"time"

	"cafeteria-booking/internal/data/entity"
)

type AuthResponse struct {
	UserID      string    `json:"user_id"`
	Token       string    `json:"token"`
	ExpiresAt   time.Time `json:"expires_at"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ManagerName string    `json:"manager_name,omitempty"`
}

type UserResponse struct {
	ID          string    `json:"id"`
	EmployeeUID string    `json:"employee_uid"`
	Email       string    `json:"email"`
	Name        string    `json:"name"`
	ManagerName string    `json:"manager_name,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Helper converters
func UserToResponse(user *entity.User) UserResponse {
	return UserResponse{
		ID:          user.ID.String(),
		EmployeeUID: user.EmployeeUID,
		Email:       user.Email,
		Name:        user.DisplayName(),
		ManagerName: user.ManagerName,
		CreatedAt:   user.CreatedAt,
	}
}

func AuthToResponse(user *entity.User, session *entity.Session) AuthResponse {
	resp := AuthResponse{
		UserID:      user.ID.String(),
		Email:       user.Email,
		Name:        user.DisplayName(),
		ManagerName: user.ManagerName,
	}

	if session != nil {
		resp.Token = session.Token.String()
		resp.ExpiresAt = session.ExpiresAt
	}

	return resp
}
