package utils

import (
	"testing"

	"github.com/agusespa/testsmith/internal/types"
	"github.com/stretchr/testify/assert"
)

func TestSplitDemoApp(t *testing.T) {
	reply := "Here is your app:\n" +
		"---index.html---\n" +
		"<html><link href=\"styles.css\"></html>\n" +
		"---SCRIPT.JS---\n" +
		"console.log('hi');\n" +
		"\n" +
		"  ---styles.css---  \n" +
		"body { margin: 0; }"

	files := SplitDemoApp(reply)

	assert.Len(t, files, 3)
	assert.Equal(t, "", files[types.DemoIndexHTML], "line mentioning styles.css switches section")
	assert.Equal(t, "console.log('hi');\n\n", files[types.DemoScriptJS])
	assert.Equal(t, "body { margin: 0; }\n", files[types.DemoStylesCSS])
}

func TestSplitDemoAppMarkerOrder(t *testing.T) {
	files := SplitDemoApp("### index.html and script.js\n<p>x</p>\r\n")
	assert.Equal(t, "<p>x</p>\n", files[types.DemoIndexHTML])
	assert.Equal(t, "", files[types.DemoScriptJS])
}

func TestSplitDemoAppWithoutMarkers(t *testing.T) {
	files := SplitDemoApp("I can't build that app, sorry.\nTry again later.")

	assert.Equal(t, types.DemoAppBundle{
		types.DemoIndexHTML: "",
		types.DemoScriptJS:  "",
		types.DemoStylesCSS: "",
	}, files)
}

func TestSplitDemoAppEmpty(t *testing.T) {
	assert.Equal(t, types.NewDemoAppBundle(), SplitDemoApp(""))
}
