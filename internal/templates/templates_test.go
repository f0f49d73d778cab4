package templates

import (
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestList(t *testing.T) {
	infos := List()
	require.Len(t, infos, 4)

	names := make([]string, 0, len(infos))
	for _, i := range infos {
		names = append(names, i.Name)
		assert.NotEmpty(t, i.Description)
		assert.NotEmpty(t, i.Category)
	}
	assert.Equal(t, []string{"auth", "crud", "form", "list"}, names)
}

func TestRenderUnknownTemplate(t *testing.T) {
	_, err := Render("checkout", nil)
	require.Error(t, err)

	var unknown *UnknownTemplateError
	require.ErrorAs(t, err, &unknown)
	assert.Equal(t, "checkout", unknown.Name)
}

func TestRenderIsDeterministic(t *testing.T) {
	first, err := Render("auth", Params{"type": "positive"})
	require.NoError(t, err)
	second, err := Render("auth", Params{"type": "positive"})
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Contains(t, first.Steps, "Enter email: user@example.com")
	assert.Contains(t, first.Expected, "/dashboard")
}

func TestAuthVariants(t *testing.T) {
	tests := []struct {
		variant string
		title   string
	}{
		{variant: "positive", title: "Successful login with valid credentials"},
		{variant: "negative_password", title: "Login attempt with a wrong password"},
		{variant: "negative_validation", title: "Login attempt with empty fields"},
		{variant: "", title: "Login attempt with an invalid email format"},
		{variant: "something_else", title: "Login attempt with an invalid email format"},
	}

	for _, tt := range tests {
		t.Run(tt.variant, func(t *testing.T) {
			tc, err := Render("auth", Params{"type": tt.variant, "login_url": "/signin"})
			require.NoError(t, err)
			assert.Equal(t, tt.title, tc.Title)
			assert.Equal(t, "Open page /signin", tc.Steps[0])
		})
	}
}

func TestCrudDeleteInvoice(t *testing.T) {
	tc, err := Render("crud", Params{"type": "delete", "entity_name": "invoice", "base_url": "/invoices"})
	require.NoError(t, err)

	assert.Contains(t, tc.Title, "invoice")
	assert.Equal(t, "Open page /invoices", tc.Steps[0])

	confirmed := false
	for _, s := range tc.Steps {
		if strings.Contains(strings.ToLower(s), "confirm") {
			confirmed = true
		}
	}
	assert.True(t, confirmed, "delete flow should include a confirmation step")
}

func TestCrudDefaultsToCreate(t *testing.T) {
	tc, err := Render("crud", nil)
	require.NoError(t, err)
	assert.Equal(t, "Create a new item", tc.Title)
	assert.Equal(t, "Open page /items", tc.Steps[0])
}

func TestFormFromJSONParams(t *testing.T) {
	var params Params
	require.NoError(t, json.Unmarshal([]byte(`{
		"type": "positive",
		"form_url": "/signup",
		"fields": [{"name": "Email", "value": "a@b.c"}, {"name": "Name", "required": true}, "junk"],
		"submit_button": "Register"
	}`), &params))

	tc, err := Render("form", params)
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Open page /signup",
		"Fill in the 'Email' field: a@b.c",
		"Fill in the 'Name' field: test value",
		"Click the 'Register' button",
	}, tc.Steps)

	params["type"] = "negative"
	tc, err = Render("form", params)
	require.NoError(t, err)
	assert.Equal(t, []string{"Open page /signup", "Leave the 'Name' field empty", "Click the 'Register' button"}, tc.Steps)
	assert.Contains(t, tc.Expected, "'Name'")
}

func TestFormWithoutRequiredFields(t *testing.T) {
	tc, err := Render("form", Params{"fields": []FormField{{Name: "Email"}}})
	require.NoError(t, err)
	assert.Equal(t, []string{"Open page /form", "Click the 'Submit' button"}, tc.Steps)
	assert.Contains(t, tc.Expected, "'field'")
}

func TestListVariants(t *testing.T) {
	tc, err := Render("list", Params{"type": "display", "item_count": float64(25)})
	require.NoError(t, err)
	assert.Contains(t, tc.Expected, "25 items")

	tc, err = Render("list", Params{"type": "filter"})
	require.NoError(t, err)
	assert.Contains(t, tc.Steps, "Type into the filter field: test")

	tc, err = Render("list", Params{"type": "pagination"})
	require.NoError(t, err)
	assert.Equal(t, "List pagination", tc.Title)

	tc, err = Render("list", Params{})
	require.NoError(t, err)
	assert.Equal(t, "List sorting", tc.Title)
}
