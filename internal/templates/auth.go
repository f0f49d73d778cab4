package templates

import "github.com/agusespa/testsmith/internal/types"

type authTemplate struct{}

func (authTemplate) Info() Info {
	return Info{Name: "auth", Description: "Authentication: login, logout, validation", Category: "security"}
}

func (authTemplate) Render(p Params) types.TestCase {
	loginURL := p.str("login_url", "/login")
	email := p.str("email", "user@example.com")
	password := p.str("password", "Passw0rd!")
	successURL := p.str("success_url", "/dashboard")

	switch p.variant() {
	case "positive":
		return types.TestCase{
			Title: "Successful login with valid credentials",
			Steps: []string{
				"Open page " + loginURL,
				"Enter email: " + email,
				"Enter password: " + password,
				"Click the 'Log in' button",
			},
			Expected: "Redirected to " + successURL + ", a welcome message or the user name is shown",
		}
	case "negative_password":
		return types.TestCase{
			Title: "Login attempt with a wrong password",
			Steps: []string{
				"Open page " + loginURL,
				"Enter email: " + email,
				"Enter password: wrongpassword",
				"Click the 'Log in' button",
			},
			Expected: "An 'Invalid credentials' error is shown and the user stays on the login page",
		}
	case "negative_validation":
		return types.TestCase{
			Title: "Login attempt with empty fields",
			Steps: []string{
				"Open page " + loginURL,
				"Leave the email and password fields empty",
				"Click the 'Log in' button",
			},
			Expected: "Validation messages 'Email is required' and 'Password is required' are shown",
		}
	default:
		return types.TestCase{
			Title: "Login attempt with an invalid email format",
			Steps: []string{
				"Open page " + loginURL,
				"Enter email: invalid-email",
				"Enter password: " + password,
				"Click the 'Log in' button",
			},
			Expected: "An 'Invalid email format' validation error is shown",
		}
	}
}
