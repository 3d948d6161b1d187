package request

type SignUpRequest struct {
	Name     string `json:"name" validate:"required,max=100"`
	Age      *int   `json:"age,omitempty" validate:"omitempty,gte=0"`
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100,passwd"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=100"`
}

type TaskRequest struct {
	Description string `json:"description" validate:"required,max=1000"`
	Completed   bool   `json:"isCompleted"`
}

// UpdateUserRequest carries a partial update; nil means "leave as is".
// Allow-set enforcement happens before binding, on the raw field keys.
type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Age      *int    `json:"age" validate:"omitempty,gte=0"`
	Email    *string `json:"email" validate:"omitempty,email,max=255"`
	Password *string `json:"password" validate:"omitempty,min=6,max=100,passwd"`
}

type UpdateTaskRequest struct {
	Description *string `json:"description" validate:"omitempty,min=1,max=1000"`
	Completed   *bool   `json:"isCompleted"`
}
