package cmd

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
)

var topicsCmd = &cobra.Command{
	Use:   "topics",
	Short: "List catalog topics and whether their questions are available",
	RunE: func(cmd *cobra.Command, args []string) error {
		source, err := resolveContent(cmd)
		if err != nil {
			return fmt.Errorf("resolve content: %w", err)
		}

		topics, err := source.Topics(cmd.Context())
		if err != nil {
			return fmt.Errorf("list topics: %w", err)
		}
		if len(topics) == 0 {
			fmt.Println("No topics found.")
			return nil
		}

		fmt.Printf("%-20s  %-30s  %s\n", "Topic", "Domain", "Status")
		fmt.Println(strings.Repeat("─", 64))
		for _, t := range topics {
			status := "coming soon"
			if t.Available {
				status = "available"
			}
			fmt.Printf("%-20s  %-30s  %s\n", t.ID, t.Domain.DisplayName(), status)
		}
		return nil
	},
}
