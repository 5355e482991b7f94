package api

type registerInput struct {
	CompanyName string `json:"company_name" form:"company_name"`
	DisplayName string `json:"display_name" form:"display_name"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
}

type loginInput struct {
	Email      string `json:"email" form:"email"`
	Password   string `json:"password" form:"password"`
	RememberMe bool   `json:"remember_me" form:"remember_me"`
}

type newUserPayload struct {
	DisplayName string `json:"display_name" form:"display_name"`
	Email       string `json:"email" form:"email"`
	Password    string `json:"password" form:"password"`
	Role        string `json:"role" form:"role"`
}

type checklistPayload struct {
	Title               string `json:"title" form:"title"`
	Description         string `json:"description" form:"description"`
	Frequency           string `json:"frequency" form:"frequency"`
	PointsPerCompletion int    `json:"points_per_completion" form:"points_per_completion"`
	SortOrder           int    `json:"sort_order" form:"sort_order"`
	IsActive            *bool  `json:"is_active" form:"is_active"`
	AssignedUserIDs     []uint `json:"assigned_user_ids" form:"assigned_user_ids"`
}

type taskPayload struct {
	Title       string `json:"title" form:"title"`
	Description string `json:"description" form:"description"`
	IsActive    *bool  `json:"is_active" form:"is_active"`
	IsRequired  *bool  `json:"is_required" form:"is_required"`
}

type togglePayload struct {
	Notes string `json:"notes" form:"notes"`
}
