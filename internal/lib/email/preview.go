package email

// PreviewData holds sample template data for rendering templates locally.
//
//	PreviewData["welcome"]["UserName"] == "jdoe"
var PreviewData = map[Template]map[string]string{
	TemplateWelcome: {
		"UserName":  "jdoe",
		"Addresses": "jo@example.com",
	},
}
