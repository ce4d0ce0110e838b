package cmd

import (
	"fmt"
	"os"
	"os/user"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/abhisek/quizladder/internal/content"
	"github.com/abhisek/quizladder/internal/store"
	"github.com/abhisek/quizladder/internal/screens/topics"
)

// dotEnvFile is loaded from the working directory when present.
const dotEnvFile = ".env"

var rootCmd = &cobra.Command{
	Use:   "quizladder",
	Short: "Timed quiz sets that unlock one after another",
	Long:  "Quizladder is a terminal quiz app. Pick a topic, pass a timed set with 70% to unlock the next one.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		return loadDotEnv(dotEnvFile)
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
	SilenceUsage: true,
}

func Execute() error {
	return rootCmd.Execute()
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides QUIZLADDER_DB env var)")
	rootCmd.PersistentFlags().String("user", "", "Progress is kept per user (overrides QUIZLADDER_USER env var)")
	rootCmd.PersistentFlags().String("content-dir", "", "Read topic bundles from a directory (overrides QUIZLADDER_CONTENT_DIR)")
	rootCmd.PersistentFlags().String("content-url", "", "Fetch topic bundles from a content server (overrides QUIZLADDER_CONTENT_URL)")
	rootCmd.Flags().Bool("no-splash", false, "Skip the welcome screen")

	rootCmd.AddCommand(topicsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(versionCmd)
}

// loadDotEnv loads path into the environment if it exists. Variables already
// set take precedence.
func loadDotEnv(path string) error {
	if _, err := os.Stat(path); err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("stat %s: %w", path, err)
	}
	if err := godotenv.Load(path); err != nil {
		return fmt.Errorf("load %s: %w", path, err)
	}
	return nil
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then QUIZLADDER_DB env var, then the default XDG path.
func resolveDBPath(cmd *cobra.Command) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	return store.DefaultDBPath()
}

// openStore resolves the database path and opens the store.
func openStore(cmd *cobra.Command) (*store.Store, error) {
	dbPath, err := resolveDBPath(cmd)
	if err != nil {
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}
	return st, nil
}

// resolveUserKey picks the key progress is stored under: --user, then
// QUIZLADDER_USER, then the OS account name, then "local".
func resolveUserKey(cmd *cobra.Command) string {
	if u, _ := cmd.Flags().GetString("user"); strings.TrimSpace(u) != "" {
		return strings.TrimSpace(u)
	}
	if u := strings.TrimSpace(os.Getenv("QUIZLADDER_USER")); u != "" {
		return u
	}
	if u, err := user.Current(); err == nil && u.Username != "" {
		return u.Username
	}
	return "local"
}

// flagOrEnv returns the named flag's value, falling back to env.
func flagOrEnv(cmd *cobra.Command, flag, env string) string {
	if v, _ := cmd.Flags().GetString(flag); v != "" {
		return v
	}
	return os.Getenv(env)
}

// resolveContent picks the topic source: a content server, a directory on
// disk, or the bundles embedded in the binary.
func resolveContent(cmd *cobra.Command) (topics.Source, error) {
	if u := flagOrEnv(cmd, "content-url", "QUIZLADDER_CONTENT_URL"); u != "" {
		return content.NewHTTPStore(u, nil)
	}
	return resolveFSContent(cmd)
}

// resolveFSContent is resolveContent restricted to local sources.
func resolveFSContent(cmd *cobra.Command) (*content.FSStore, error) {
	if dir := flagOrEnv(cmd, "content-dir", "QUIZLADDER_CONTENT_DIR"); dir != "" {
		return content.NewDirStore(dir, nil)
	}
	return content.NewEmbeddedStore(), nil
}
