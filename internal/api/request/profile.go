package request

type CreateProfileRequest struct {
	UserID   string `json:"userId"`
	Email    string `json:"email"`
	Role     string `json:"role"`
	Name     string `json:"name"`
	ImageURL string `json:"imageUrl,omitempty"`
	Firm     string `json:"firm,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

type UpdateProfileRequest struct {
	Email    *string `json:"email,omitempty"`
	Name     *string `json:"name,omitempty"`
	ImageURL *string `json:"imageUrl,omitempty"`
	Firm     *string `json:"firm,omitempty"`
	Bio      *string `json:"bio,omitempty"`
}
