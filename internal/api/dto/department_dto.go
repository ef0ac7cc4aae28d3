package dto

// DepartmentRequest payload for admin department management.
type DepartmentRequest struct {
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Keywords    []string `json:"keywords"`
	IsDefault   bool     `json:"is_default"`
	IsActive    bool     `json:"is_active"`
}

// DepartmentResponse is the public department view.
type DepartmentResponse struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Keywords    []string `json:"keywords"`
	IsDefault   bool     `json:"is_default"`
	IsActive    bool     `json:"is_active"`
}
