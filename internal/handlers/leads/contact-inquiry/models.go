package contactinquiry

import "funnelzip-demo/internal/models"

// Input is the partnership / investment contact form.
type Input struct {
	Type    string `json:"type"`
	Name    string `json:"name"`
	Email   string `json:"email"`
	Company string `json:"company"`
	Website string `json:"website"`
	Message string `json:"message"`
}

func (in Input) fields() map[string]string {
	return map[string]string{
		"name":    in.Name,
		"email":   in.Email,
		"company": in.Company,
		"website": in.Website,
		"message": in.Message,
	}
}

type Output struct {
	Record  models.SubmissionRecord `json:"record"`
	Message string                  `json:"message"`
}

type ListOutput struct {
	Type    models.SubmissionKind     `json:"type"`
	Records []models.SubmissionRecord `json:"records"`
}
