package commands

import (
	"fmt"
	"strings"

	"hnclient/lib/scrapers/hackernews"

	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(itemCmd)
}

var itemCmd = &cobra.Command{
	Use:   "item <id>",
	Short: "Prints a submission with its threaded comments.",
	Args:  cobra.ExactArgs(1),
	Run: func(cmd *cobra.Command, args []string) {
		client, err := hackernews.NewClient(hackernews.ClientOptions{})
		if err != nil {
			fatal("failed to initialize client", err)
		}

		post, err := client.Submission(cmd.Context(), args[0])
		if err != nil {
			fatal("failed to fetch submission", err)
		}

		fmt.Printf(
			"%s (%d points by %s, %d comments)\n%s\n\n",
			post.Title, post.Score, post.Username, post.CommentCount, post.Url,
		)
		printForest(post.Comments)
	},
}

func printForest(comments []hackernews.Comment) {
	for _, comment := range comments {
		pad := strings.Repeat("    ", int(comment.Depth))
		fmt.Printf(
			"%s%s (%s)\n%s%s\n",
			pad, comment.Username, comment.Age, pad, comment.ContentHtml,
		)
		printForest(comment.Children)
	}
}
