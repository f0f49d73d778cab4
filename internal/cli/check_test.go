package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCheckCommand(t *testing.T) {
	dir := t.TempDir()
	good := filepath.Join(dir, "test_login.py")
	require.NoError(t, os.WriteFile(good, []byte("def test_login(page):\n    page.goto('/login')\n"), 0o644))
	spec := filepath.Join(dir, "login.spec.ts")
	require.NoError(t, os.WriteFile(spec, []byte("import { test } from '@playwright/test';\ntest('logs in', async ({ page }) => {\n  await page.goto('/login');\n});\n"), 0o644))

	h := newHarness()
	stdout, _, err := h.run(t, "check", good, spec)
	require.NoError(t, err)
	assert.Contains(t, stdout, good+": Syntax OK (Python), tests: test_login")
	assert.Contains(t, stdout, "tests: logs in")
	assert.Equal(t, 0, h.provider.Calls())
}

func TestCheckCommandFailures(t *testing.T) {
	dir := t.TempDir()
	broken := filepath.Join(dir, "test_broken.py")
	require.NoError(t, os.WriteFile(broken, []byte("def test_broken(:\n    pass\n"), 0o644))
	notes := filepath.Join(dir, "notes.txt")
	require.NoError(t, os.WriteFile(notes, []byte("def test_x():\n    pass\n"), 0o644))

	h := newHarness()
	stdout, _, err := h.run(t, "check", broken)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 1 file(s)")
	assert.Contains(t, stdout, "Syntax issues (Python)")

	_, _, err = h.run(t, "check", notes)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "--lang")

	_, _, err = h.run(t, "check", "--lang", "python", notes)
	assert.NoError(t, err)
}
