package user

import (
	"time"

	"stagedesk/internal/application/user/usecases"
	"stagedesk/internal/shared/utils"
)

type RegisterRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required,min=8,max=72"`
	Name     string `json:"name" binding:"required,max=100"`
	Role     string `json:"role" binding:"required"`
}

func (r *RegisterRequest) ToCommand() usecases.RegisterUserCommand {
	return usecases.RegisterUserCommand{
		Email:    r.Email,
		Password: r.Password,
		Name:     utils.SanitizeText(r.Name),
		Role:     r.Role,
	}
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

type RegisterResponse struct {
	UserID    uint      `json:"user_id"`
	UUID      string    `json:"uuid"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

func newRegisterResponse(r *usecases.RegisterUserResult) *RegisterResponse {
	return &RegisterResponse{
		UserID:    r.UserID,
		UUID:      r.UUID,
		Email:     r.Email,
		Name:      r.Name,
		Role:      r.Role,
		CreatedAt: r.CreatedAt,
	}
}

type LoginResponse struct {
	UserID       uint   `json:"user_id"`
	UUID         string `json:"uuid"`
	Email        string `json:"email"`
	Name         string `json:"name"`
	Role         string `json:"role"`
	IsManager    bool   `json:"is_manager"`
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	ExpiresIn    int64  `json:"expires_in"`
}

func newLoginResponse(r *usecases.LoginUserResult) *LoginResponse {
	return &LoginResponse{
		UserID:       r.UserID,
		UUID:         r.UUID,
		Email:        r.Email,
		Name:         r.Name,
		Role:         r.Role,
		IsManager:    r.IsManager,
		AccessToken:  r.AccessToken,
		RefreshToken: r.RefreshToken,
		ExpiresIn:    r.ExpiresIn,
	}
}

type ProfileResponse struct {
	UserID            uint      `json:"user_id"`
	UUID              string    `json:"uuid"`
	Email             string    `json:"email"`
	Name              string    `json:"name"`
	Role              string    `json:"role"`
	IsManager         bool      `json:"is_manager"`
	ManagedBy         *uint     `json:"managed_by,omitempty"`
	IsActive          bool      `json:"is_active"`
	AutoAssignEnabled bool      `json:"auto_assign_enabled"`
	CreatedAt         time.Time `json:"created_at"`
}

func newProfileResponse(r *usecases.ProfileResult) *ProfileResponse {
	return &ProfileResponse{
		UserID:            r.UserID,
		UUID:              r.UUID,
		Email:             r.Email,
		Name:              r.Name,
		Role:              r.Role,
		IsManager:         r.IsManager,
		ManagedBy:         r.ManagedBy,
		IsActive:          r.IsActive,
		AutoAssignEnabled: r.AutoAssignEnabled,
		CreatedAt:         r.CreatedAt,
	}
}
