package commands

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type result struct {
	code   int
	stdout string
	stderr string
}

func execute(t *testing.T, file string, args ...string) result {
	t.Helper()
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	all := append([]string{"--file", file, "--log-level", "error"}, args...)
	code := run(root, all, &stderr)
	return result{code: code, stdout: stdout.String(), stderr: stderr.String()}
}

func settingsFile(t *testing.T) string {
	t.Helper()
	return filepath.Join(t.TempDir(), "settings.json")
}

func TestGet_Default(t *testing.T) {
	file := settingsFile(t)

	r := execute(t, file, "get", "Fly.Mode.Jetpack.Power")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "2\n", r.stdout)

	r = execute(t, file, "get", "HUD.Theme")
	assert.Equal(t, "Dark\n", r.stdout)
}

func TestSet_PersistsAcrossRuns(t *testing.T) {
	file := settingsFile(t)

	r := execute(t, file, "set", "Fly.Mode", "Jetpack")
	require.Equal(t, 0, r.code, r.stderr)

	r = execute(t, file, "set", "Fail.StrengthVertical", "3..7")
	require.Equal(t, 0, r.code, r.stderr)

	r = execute(t, file, "get", "Fly.Mode")
	assert.Contains(t, r.stdout, `"active": "Jetpack"`)

	r = execute(t, file, "get", "Fail.StrengthVertical")
	assert.Contains(t, r.stdout, "3")
	assert.Contains(t, r.stdout, "7")

	_, err := os.Stat(file)
	assert.NoError(t, err)
}

func TestSet_ParseErrorExitsOne(t *testing.T) {
	file := settingsFile(t)

	r := execute(t, file, "set", "Fail.Rate", "lots")
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Error:")
	assert.Contains(t, r.stderr, `"lots"`)

	_, err := os.Stat(file)
	assert.True(t, os.IsNotExist(err), "failed set should not write the file")
}

func TestSet_UnknownChoiceListsOptions(t *testing.T) {
	r := execute(t, settingsFile(t), "set", "Fly.Mode", "Helicopter")

	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "available options are Vanilla, Creative, Jetpack")
}

func TestGet_UnknownPath(t *testing.T) {
	r := execute(t, settingsFile(t), "get", "Fly.Nope")

	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "not found")
}

func TestChoices_MarksActive(t *testing.T) {
	file := settingsFile(t)
	require.Equal(t, 0, execute(t, file, "set", "HUD.Theme", "Light").code)

	r := execute(t, file, "choices", "HUD.Theme")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "  Dark\n* Light\n  Classic\n", r.stdout)

	r = execute(t, file, "choices", "Fly.Mode")
	assert.Equal(t, "* Vanilla\n  Creative\n  Jetpack\n", r.stdout)

	r = execute(t, file, "choices", "Fail.Rate")
	assert.Equal(t, 1, r.code)
}

func TestComplete(t *testing.T) {
	file := settingsFile(t)

	r := execute(t, file, "complete", "Fly.Mode", "c")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Equal(t, "Creative\n", r.stdout)

	r = execute(t, file, "complete", "Fly.DisableOnSetback")
	assert.Equal(t, "true\nfalse\n", r.stdout)

	r = execute(t, file, "complete", "Fly", "Vi")
	assert.Equal(t, "Visuals\n", r.stdout)
}

func TestRestore(t *testing.T) {
	file := settingsFile(t)
	require.Equal(t, 0, execute(t, file, "set", "Fly.Mode.Jetpack.Power", "9").code)
	require.Equal(t, 0, execute(t, file, "set", "HUD.Title", "custom").code)

	require.Equal(t, 0, execute(t, file, "restore", "Fly").code)
	assert.Equal(t, "2\n", execute(t, file, "get", "Fly.Mode.Jetpack.Power").stdout)
	assert.Equal(t, "custom\n", execute(t, file, "get", "HUD.Title").stdout)

	require.Equal(t, 0, execute(t, file, "restore").code)
	assert.Equal(t, "tunable\n", execute(t, file, "get", "HUD.Title").stdout)
}

func TestDump_Filters(t *testing.T) {
	file := settingsFile(t)

	r := execute(t, file, "dump")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, `"Session"`)
	assert.Contains(t, r.stdout, `"Revision"`)

	r = execute(t, file, "dump", "--public")
	assert.NotContains(t, r.stdout, `"Session"`)

	r = execute(t, file, "dump", "--api", "HUD", "--output", "yaml")
	require.Equal(t, 0, r.code, r.stderr)
	assert.Contains(t, r.stdout, "Theme: Dark")
	assert.NotContains(t, r.stdout, "Revision")

	r = execute(t, file, "dump", "--output", "xml")
	assert.Equal(t, 1, r.code)
}

func TestLoad(t *testing.T) {
	file := settingsFile(t)
	src := filepath.Join(t.TempDir(), "shared.toml")
	require.NoError(t, os.WriteFile(src, []byte(`
[Fly]
DisableOnSetback = true

[HUD]
Theme = "Classic"
Title = ""
`), 0o644))

	r := execute(t, file, "load", src)
	assert.Equal(t, 1, r.code, "the vetoed title should be reported")
	assert.Contains(t, r.stderr, "Title")

	assert.Equal(t, "true\n", execute(t, file, "get", "Fly.DisableOnSetback").stdout)
	assert.Equal(t, "Classic\n", execute(t, file, "get", "HUD.Theme").stdout)
	assert.Equal(t, "tunable\n", execute(t, file, "get", "HUD.Title").stdout)
}

func TestScript(t *testing.T) {
	file := settingsFile(t)
	script := filepath.Join(t.TempDir(), "tweaks.lua")
	require.NoError(t, os.WriteFile(script, []byte(`
values.set("Fly.Mode", "Creative")
values.set("Fly.Mode.Creative.Speed", values.get("Fly.Mode.Creative.Speed") * 2)
values.set("Fail.Enabled", true)
values.set("Nowhere", 1)
`), 0o644))

	r := execute(t, file, "script", script)
	require.Equal(t, 0, r.code, r.stderr)

	assert.Equal(t, "0.2\n", execute(t, file, "get", "Fly.Mode.Creative.Speed").stdout)
	assert.Equal(t, "true\n", execute(t, file, "get", "Fail.Enabled").stdout)
	assert.True(t, strings.Contains(execute(t, file, "get", "Fly.Mode").stdout, "Creative"))
}

func TestScript_ErrorExitsOne(t *testing.T) {
	script := filepath.Join(t.TempDir(), "bad.lua")
	require.NoError(t, os.WriteFile(script, []byte(`values.get("Nowhere")`), 0o644))

	r := execute(t, settingsFile(t), "script", script)
	assert.Equal(t, 1, r.code)
	assert.Contains(t, r.stderr, "Nowhere")
}

func TestFormatFlag(t *testing.T) {
	file := filepath.Join(t.TempDir(), "settings.conf")

	require.Equal(t, 0, execute(t, file, "--format", "yaml", "set", "HUD.Theme", "Light").code)

	data, err := os.ReadFile(file)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Theme: Light")
}

func TestEnvironmentSuppliesFile(t *testing.T) {
	file := settingsFile(t)
	t.Setenv("TUNABLE_FILE", file)
	t.Setenv("NO_COLOR", "1")

	var stdout, stderr bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	require.Equal(t, 0, run(root, []string{"set", "Fly.DisableOnSetback", "true"}, &stderr), stderr.String())

	_, err := os.Stat(file)
	assert.NoError(t, err)
}
