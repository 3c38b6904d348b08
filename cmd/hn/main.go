package main

import (
	"context"

	"hnclient/cmd/hn/commands"
	"hnclient/lib/telemetry"
)

func main() {
	ctx := context.Background()
	telemetry.InitSlog(false)
	telemetry.SetupFromEnv(ctx, "hn-cli")
	commands.ExecuteContext(ctx)
}
