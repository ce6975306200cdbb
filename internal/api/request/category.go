package request

type CreateCategoryRequest struct {
	Type string `json:"type"`
	Name string `json:"name"`
}

type UpdateCategoryRequest struct {
	Type *string `json:"type,omitempty"`
	Name *string `json:"name,omitempty"`
}
