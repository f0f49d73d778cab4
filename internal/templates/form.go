package templates

import (
	"fmt"

	"github.com/agusespa/testsmith/internal/types"
)

type formTemplate struct{}

func (formTemplate) Info() Info {
	return Info{Name: "form", Description: "Forms: filling, validation, submission", Category: "forms"}
}

func (formTemplate) Render(p Params) types.TestCase {
	formURL := p.str("form_url", "/form")
	submit := p.str("submit_button", "Submit")
	fields := p.fields()

	steps := []string{"Open page " + formURL}

	if p.variant() == "positive" {
		for _, f := range fields {
			steps = append(steps, fmt.Sprintf("Fill in the '%s' field: %s", f.Name, f.Value))
		}
		steps = append(steps, fmt.Sprintf("Click the '%s' button", submit))

		return types.TestCase{
			Title:    "Successful form submission",
			Steps:    steps,
			Expected: "The form is submitted, a success message or a redirect follows",
		}
	}

	required := "field"
	for _, f := range fields {
		if f.Required {
			required = f.Name
			steps = append(steps, fmt.Sprintf("Leave the '%s' field empty", f.Name))
			break
		}
	}
	steps = append(steps, fmt.Sprintf("Click the '%s' button", submit))

	return types.TestCase{
		Title:    "Required field validation",
		Steps:    steps,
		Expected: fmt.Sprintf("A validation message is shown for the required field '%s'", required),
	}
}
