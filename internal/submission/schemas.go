package submission

import (
	"funnelzip-demo/internal/common/validation"
	"funnelzip-demo/internal/models"
)

// Roles accepted on the access request form.
var Roles = []string{"investor", "partner", "customer", "agency", "marketplace", "other"}

var inquirySchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":    {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(200)},
		"email":   {Type: "string", Format: "email", MaxLength: validation.IntPtr(320)},
		"company": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(200)},
		"website": {Type: "string", Format: "uri", MaxLength: validation.IntPtr(2048)},
		"message": {Type: "string", MaxLength: validation.IntPtr(5000)},
	},
	Required: []string{"name", "email", "company"},
}

var accessSchema = validation.JSONSchema{
	Type: "object",
	Properties: map[string]validation.Property{
		"name":    {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(200)},
		"email":   {Type: "string", Format: "email", MaxLength: validation.IntPtr(320)},
		"company": {Type: "string", MinLength: validation.IntPtr(1), MaxLength: validation.IntPtr(200)},
		"role":    {Type: "string", Enum: Roles},
		"message": {Type: "string", MaxLength: validation.IntPtr(5000)},
	},
	Required: []string{"name", "email", "company", "role"},
}

// inquiryFieldOrder and accessFieldOrder are the form layouts.
var (
	inquiryFieldOrder = []string{"name", "email", "company", "website", "message"}
	accessFieldOrder  = []string{"name", "email", "company", "role", "message"}
)

// SchemaFor returns the form schema for kind.
func SchemaFor(kind models.SubmissionKind) (validation.JSONSchema, bool) {
	switch {
	case kind.IsInquiry():
		return inquirySchema, true
	case kind == models.KindAccessRequest:
		return accessSchema, true
	}
	return validation.JSONSchema{}, false
}

// FieldsFor lists the form fields for kind in display order.
func FieldsFor(kind models.SubmissionKind) []string {
	if kind == models.KindAccessRequest {
		return append([]string(nil), accessFieldOrder...)
	}
	if kind.IsInquiry() {
		return append([]string(nil), inquiryFieldOrder...)
	}
	return nil
}
