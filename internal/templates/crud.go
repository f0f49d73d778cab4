package templates

import "github.com/agusespa/testsmith/internal/types"

type crudTemplate struct{}

func (crudTemplate) Info() Info {
	return Info{Name: "crud", Description: "CRUD: create, read, update, delete", Category: "data"}
}

func (crudTemplate) Render(p Params) types.TestCase {
	entity := p.str("entity_name", "item")
	open := "Open page " + p.str("base_url", "/items")

	switch p.str("type", "create") {
	case "create":
		return types.TestCase{
			Title:    "Create a new " + entity,
			Steps:    []string{open, "Click the 'Create' button", "Fill in the creation form", "Click 'Save'"},
			Expected: "The new " + entity + " is created and appears in the list",
		}
	case "read":
		return types.TestCase{
			Title:    "View " + entity + " details",
			Steps:    []string{open, "Click the first item in the list"},
			Expected: "The " + entity + " details page opens with all required information",
		}
	case "update":
		return types.TestCase{
			Title: "Update " + entity,
			Steps: []string{
				open,
				"Click an item in the list",
				"Click the 'Edit' button",
				"Change the data",
				"Click 'Save'",
			},
			Expected: "The " + entity + " is updated and the changes appear in the list",
		}
	default:
		return types.TestCase{
			Title:    "Delete " + entity,
			Steps:    []string{open, "Click 'Delete' on the item", "Confirm the deletion in the dialog"},
			Expected: "The " + entity + " is deleted and no longer appears in the list",
		}
	}
}
