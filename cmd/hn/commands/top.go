package commands

import (
	"fmt"

	"hnclient/lib/scrapers/hackernews"

	"github.com/spf13/cobra"
)

var topPage *uint

func init() {
	topPage = topCmd.Flags().Uint("page", 1, "The listing page to fetch, starting at 1.")
	rootCmd.AddCommand(topCmd)
}

var topCmd = &cobra.Command{
	Use:   "top [--page <n>]",
	Short: "Prints the posts on the front-page listing.",
	Run: func(cmd *cobra.Command, args []string) {
		client, err := hackernews.NewClient(hackernews.ClientOptions{})
		if err != nil {
			fatal("failed to initialize client", err)
		}

		posts, err := client.Top(cmd.Context(), *topPage)
		if err != nil {
			fatal("failed to fetch listing", err)
		}

		for i, post := range posts {
			fmt.Printf(
				"%2d. %s (%d points by %s, %d comments)\n    %s\n    id: %s\n",
				i+1, post.Title, post.Score, post.Username,
				post.CommentCount, post.Url, post.Id,
			)
		}
	},
}
