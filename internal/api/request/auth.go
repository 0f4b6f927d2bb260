package request

type RegisterRequest struct {
	Email    string `json:"email"`
	Name     string `json:"name"`
	Password string `json:"password"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type InviteTeamMemberRequest struct {
	Email string `json:"email"`
	Role  string `json:"role"`
}
