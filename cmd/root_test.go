package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/quizladder/internal/content"
)

func newFlagCmd(t *testing.T, args ...string) *cobra.Command {
	t.Helper()
	c := &cobra.Command{Use: "test"}
	c.Flags().String("user", "", "")
	c.Flags().String("content-dir", "", "")
	c.Flags().String("content-url", "", "")
	require.NoError(t, c.Flags().Parse(args))
	return c
}

func TestResolveUserKey(t *testing.T) {
	t.Setenv("QUIZLADDER_USER", "from-env")

	assert.Equal(t, "from-flag", resolveUserKey(newFlagCmd(t, "--user", " from-flag ")))
	assert.Equal(t, "from-env", resolveUserKey(newFlagCmd(t)))

	t.Setenv("QUIZLADDER_USER", "")
	assert.NotEmpty(t, resolveUserKey(newFlagCmd(t)))
}

func TestResolveContent(t *testing.T) {
	t.Setenv("QUIZLADDER_CONTENT_URL", "")
	t.Setenv("QUIZLADDER_CONTENT_DIR", "")

	src, err := resolveContent(newFlagCmd(t))
	require.NoError(t, err)
	assert.IsType(t, &content.FSStore{}, src)

	src, err = resolveContent(newFlagCmd(t, "--content-url", "http://localhost:8080"))
	require.NoError(t, err)
	assert.IsType(t, &content.HTTPStore{}, src)

	_, err = resolveContent(newFlagCmd(t, "--content-url", "ftp://example.com"))
	assert.Error(t, err)

	_, err = resolveContent(newFlagCmd(t, "--content-dir", filepath.Join(t.TempDir(), "missing")))
	assert.Error(t, err)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()

	require.NoError(t, loadDotEnv(filepath.Join(dir, "absent.env")))

	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("QUIZLADDER_TEST_DOTENV=loaded\n"), 0o644))
	t.Cleanup(func() { os.Unsetenv("QUIZLADDER_TEST_DOTENV") })

	require.NoError(t, loadDotEnv(path))
	assert.Equal(t, "loaded", os.Getenv("QUIZLADDER_TEST_DOTENV"))
}

func TestVersionCommand(t *testing.T) {
	old := version
	version = "v1.2.3"
	defer func() { version = old }()

	var out bytes.Buffer
	versionCmd.SetOut(&out)
	defer versionCmd.SetOut(nil)

	require.NoError(t, versionCmd.RunE(versionCmd, nil))
	assert.True(t, strings.HasPrefix(out.String(), "quizladder v1.2.3 ("), out.String())
}
