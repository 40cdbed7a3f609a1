package email

import "strings"

const welcomeSubject = "Welcome to Web420!"

// SendWelcomeEmail greets a freshly registered user at every address
// they signed up with.
func (c *Client) SendWelcomeEmail(to []string, userName string) error {
	return c.SendEmail(to, welcomeSubject, TemplateWelcome, map[string]string{
		"UserName":  userName,
		"Addresses": strings.Join(to, ", "),
	})
}
