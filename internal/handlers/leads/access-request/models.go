package accessrequest

import "funnelzip-demo/internal/models"

// Input is the "Request Access" form.
type Input struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Role    string `json:"role"`
	Message string `json:"message"`
}

func (in Input) fields() map[string]string {
	return map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"company": in.Company,
		"role":    in.Role,
		"message": in.Message,
	}
}

type Output struct {
	Record  models.SubmissionRecord `json:"record"`
	Message string                  `json:"message"`
}

// RolesOutput lists the role options for the form's select box.
type RolesOutput struct {
	Roles []string `json:"roles"`
}
