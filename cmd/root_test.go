package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/itsmostafa/mktoc/internal/config"
	"github.com/itsmostafa/mktoc/internal/lint"
	"github.com/itsmostafa/mktoc/internal/toc"
	"github.com/itsmostafa/mktoc/internal/version"
)

const readme = "# Project\n<!-- BEGIN mktoc -->\n<!-- END mktoc -->\n## Install\n## Usage\n"

// resetFlags restores every flag to its default so commands can run again
// within one test binary.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()
	resetFlags(rootCmd)

	var out, errOut bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&errOut)
	rootCmd.SetArgs(args)
	err = rootCmd.ExecuteContext(context.Background())
	return out.String(), errOut.String(), err
}

// workspace runs the test in an empty directory containing README.md.
func workspace(t *testing.T) string {
	t.Helper()
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	t.Chdir(dir)
	require.NoError(t, os.WriteFile(DefaultFile, []byte(readme), 0644))
	return dir
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(data)
}

func TestRoot_UpdatesDefaultFile(t *testing.T) {
	workspace(t)

	_, stderr, err := execute(t)
	require.NoError(t, err)
	assert.Equal(t, toc.MakeTOC(readme, toc.DefaultConfig()), readFile(t, DefaultFile))
	assert.Contains(t, stderr, "updated")
}

func TestRoot_Flags(t *testing.T) {
	workspace(t)

	_, _, err := execute(t, "-m", "2", "-w", DefaultFile)
	require.NoError(t, err)
	want := toc.MakeTOC(readme, toc.Config{MinDepth: 2, MaxDepth: 6, WrapInDetails: true})
	assert.Equal(t, want, readFile(t, DefaultFile))
}

func TestRoot_Env(t *testing.T) {
	workspace(t)
	t.Setenv("MKTOC_MAX_DEPTH", "1")

	stdout, _, err := execute(t, "--stdout")
	require.NoError(t, err)
	assert.Contains(t, stdout, "- [Project](#project)")
	assert.NotContains(t, stdout, "[Install]")
}

func TestRoot_Stdout(t *testing.T) {
	workspace(t)

	stdout, _, err := execute(t, "-s", DefaultFile)
	require.NoError(t, err)
	assert.Equal(t, toc.MakeTOC(readme, toc.DefaultConfig()), stdout)
	assert.Equal(t, readme, readFile(t, DefaultFile), "--stdout must not write")
}

func TestRoot_MissingFile(t *testing.T) {
	workspace(t)

	_, stderr, err := execute(t, DefaultFile, "missing.md")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 of 2")
	assert.Contains(t, stderr, "missing.md")
	assert.Equal(t, toc.MakeTOC(readme, toc.DefaultConfig()), readFile(t, DefaultFile),
		"other files are still processed")
}

func TestRoot_BadLogFormat(t *testing.T) {
	workspace(t)

	_, _, err := execute(t, "--log-format", "xml")
	assert.Error(t, err)
}

func TestCheck(t *testing.T) {
	workspace(t)

	t.Run("stale fails", func(t *testing.T) {
		stdout, _, err := execute(t, "check")
		require.Error(t, err)
		assert.Contains(t, stdout, lint.CodeStaleTOC)
	})

	t.Run("fresh passes", func(t *testing.T) {
		_, _, err := execute(t)
		require.NoError(t, err)

		stdout, _, err := execute(t, "check", "-o", "json")
		require.NoError(t, err)

		var reports []lint.Report
		require.NoError(t, json.Unmarshal([]byte(stdout), &reports))
		require.Len(t, reports, 1)
		assert.True(t, reports[0].Passed)
		assert.Equal(t, DefaultFile, reports[0].Path)
	})
}

func TestHeadings(t *testing.T) {
	workspace(t)

	stdout, _, err := execute(t, "headings", "-o", "json", "-M", "2", DefaultFile)
	require.NoError(t, err)

	var headings []toc.Heading
	require.NoError(t, json.Unmarshal([]byte(stdout), &headings))
	assert.Equal(t, []toc.Heading{
		{Level: 1, Text: "Project", Line: 1},
		{Level: 2, Text: "Install", Line: 4},
		{Level: 2, Text: "Usage", Line: 5},
	}, headings)

	t.Run("requires a file", func(t *testing.T) {
		_, _, err := execute(t, "headings")
		assert.Error(t, err)
	})
}

func TestScript(t *testing.T) {
	dir := workspace(t)
	script := filepath.Join(dir, "update.js")
	require.NoError(t, os.WriteFile(script,
		[]byte(`print(mktoc.headings(document).length); document = mktoc.makeToc(document)`), 0644))

	stdout, _, err := execute(t, "script", "--write", script, DefaultFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(stdout, "3\n"), stdout)
	assert.Equal(t, toc.MakeTOC(readme, toc.DefaultConfig()), readFile(t, DefaultFile))
}

func TestConfigInit(t *testing.T) {
	workspace(t)

	stdout, _, err := execute(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, stdout, config.DefaultFileName)
	assert.FileExists(t, config.DefaultFileName)

	_, _, err = execute(t, "config", "init")
	assert.Error(t, err, "existing config is kept")
}

func TestVersion(t *testing.T) {
	workspace(t)

	stdout, _, err := execute(t, "version", "-o", "json")
	require.NoError(t, err)

	var info version.Info
	require.NoError(t, json.Unmarshal([]byte(stdout), &info))
	assert.Equal(t, version.Version, info.Version)
}
