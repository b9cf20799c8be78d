package auth

import "time"

type SignupRequest struct {
	Email    string  `json:"email" binding:"required,email"`
	Password string  `json:"password" binding:"required"`
	Name     string  `json:"name" binding:"required"`
	Contact  string  `json:"contact"`
	Role     *string `json:"role,omitempty"` // 未指定なら mess_member
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SetDisabledRequest struct {
	Disabled *bool `json:"disabled" binding:"required"`
}

type AccountResponse struct {
	ID        string    `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact"`
	Role      Role      `json:"role"`
	CreatedAt time.Time `json:"created_at"`
}

type LoginResponse struct {
	Token   string          `json:"token"`
	Account AccountResponse `json:"account"`
}

type SessionResponse struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	Role        Role   `json:"role"`
	FranchiseID string `json:"franchise_id,omitempty"`
}

func toAccountResponse(a *Account) AccountResponse {
	return AccountResponse{
		ID:        a.ID,
		Email:     a.Email,
		Name:      a.Name,
		Contact:   a.Contact,
		Role:      a.Role,
		CreatedAt: a.CreatedAt,
	}
}

func toSessionResponse(s *Session) SessionResponse {
	return SessionResponse{
		UserID:      s.UserID,
		Email:       s.Email,
		Name:        s.Name,
		Role:        s.Role,
		FranchiseID: s.FranchiseID,
	}
}
