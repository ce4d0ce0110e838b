package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/abhisek/quizladder/internal/app"
	"github.com/abhisek/quizladder/internal/quiz"
	"github.com/abhisek/quizladder/internal/session"
)

// runApp opens the store, builds dependencies, and launches the TUI.
func runApp(cmd *cobra.Command) error {
	ctx := cmd.Context()

	source, err := resolveContent(cmd)
	if err != nil {
		return fmt.Errorf("resolve content: %w", err)
	}

	st, err := openStore(cmd)
	if err != nil {
		return err
	}
	defer st.Close()

	eventRepo := st.EventRepo()
	sess, err := session.Open(ctx, session.Deps{
		Engine:   quiz.NewEngine(quiz.DefaultConfig()),
		Progress: st.ProgressRepo(),
		Events:   eventRepo,
		UserKey:  resolveUserKey(cmd),
	})
	if err != nil {
		return err
	}

	skip, _ := cmd.Flags().GetBool("no-splash")
	return app.Run(app.Options{
		Session:     sess,
		Source:      source,
		Events:      eventRepo,
		SkipWelcome: skip,
	})
}
