package commands

import (
	"fmt"
	"log/slog"

	"hnclient/lib/configutil"
	"hnclient/lib/scrapers/hackernews"

	"github.com/spf13/cobra"
)

// Config holds account credentials, read from config.json5 next to the
// binary's working directory (config.local.json5 overrides it).
type Config struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

func init() {
	rootCmd.AddCommand(voteCmd)
}

var voteCmd = &cobra.Command{
	Use:   "vote <up|down> <id>",
	Short: "Casts a vote on a submission using the configured account.",
	Args:  cobra.ExactArgs(2),
	Run: func(cmd *cobra.Command, args []string) {
		dir := args[0]
		id := args[1]
		if dir != "up" && dir != "down" {
			fatal("invalid vote direction", fmt.Errorf("expected up or down, got %q", dir))
		}

		cfg, err := configutil.ReadConfig[Config]("config.json5")
		if err != nil {
			fatal("failed to read config", err)
		}

		slog.Info("logging in", "username", cfg.Username)
		session, err := hackernews.Login(
			cmd.Context(),
			hackernews.ClientOptions{},
			cfg.Username,
			cfg.Password,
		)
		if err != nil {
			fatal("failed to login", err)
		}

		post, err := session.Submission(cmd.Context(), id)
		if err != nil {
			fatal("failed to fetch submission", err)
		}
		action := post.Vote
		if action == nil {
			fatal("no vote available", fmt.Errorf("submission %s exposes no vote links for this session", id))
		}
		if action.IsUpvote() != (dir == "up") {
			fatal("vote not available", fmt.Errorf(
				"only a %svote is available; this usually means the account already voted the other way", action.Dir,
			))
		}

		err = session.Vote(cmd.Context(), *action)
		if err != nil {
			fatal("failed to cast vote", err)
		}
		slog.Info("vote cast", "id", id, "dir", dir)
	},
}
