package dto

type CreateUserRequest struct {
	Email     string `json:"email" validate:"required,email"`
	FirstName string `json:"firstName" validate:"required,max=100"`
	LastName  string `json:"lastName" validate:"required,max=100"`
	Role      string `json:"role" validate:"required,oneof=consultant admin staffer"`
}

type CreateUserResponse struct {
	UserID string `json:"userId"`
}

type User struct {
	UserID    string   `json:"userId"`
	Email     string   `json:"email"`
	FirstName string   `json:"firstName"`
	LastName  string   `json:"lastName"`
	Role      string   `json:"role"`
	Active    bool     `json:"active"`
	Resumes   []Resume `json:"resumes"`
	CreatedAt string   `json:"createdAt"`
	UpdatedAt string   `json:"updatedAt"`
}

type CheckUserResponse struct {
	Exists bool  `json:"exists"`
	User   *User `json:"user,omitempty"`
}
