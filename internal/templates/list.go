package templates

import (
	"fmt"

	"github.com/agusespa/testsmith/internal/types"
)

type listTemplate struct{}

func (listTemplate) Info() Info {
	return Info{Name: "list", Description: "Lists: display, filtering, sorting, pagination", Category: "data"}
}

func (listTemplate) Render(p Params) types.TestCase {
	listURL := p.str("list_url", "/list")
	open := "Open page " + listURL

	switch p.variant() {
	case "display":
		return types.TestCase{
			Title:    "List displays its items",
			Steps:    []string{open, "Wait for the list to load"},
			Expected: fmt.Sprintf("A list of %s items is shown and every item has the required data", p.str("item_count", "10")),
		}
	case "filter":
		value := p.str("filter_value", "test")
		return types.TestCase{
			Title: "List filtering",
			Steps: []string{
				open,
				"Type into the filter field: " + value,
				"Click 'Filter' or wait for the list to filter automatically",
			},
			Expected: fmt.Sprintf("Only items matching '%s' are shown", value),
		}
	case "pagination":
		return types.TestCase{
			Title:    "List pagination",
			Steps:    []string{open, "Scroll to the end of the list", "Click the 'Next' page button"},
			Expected: "The next page loads and new items are shown",
		}
	default:
		return types.TestCase{
			Title:    "List sorting",
			Steps:    []string{open, "Click a column header to sort"},
			Expected: "The list is sorted by the selected column in the correct order",
		}
	}
}
