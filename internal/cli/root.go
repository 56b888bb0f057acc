package cli

import (
	"context"
	"os"
)

// Execute runs the molgraph CLI and returns an error if any command fails.
//
// Logging goes to stderr at the configured level (info by default); --verbose
// switches to debug. The logger is attached to the command context and is
// available to every command via loggerFromContext.
//
// Example:
//
//	func main() {
//	    if err := cli.Execute(context.Background()); err != nil {
//	        os.Exit(1)
//	    }
//	}
func Execute(ctx context.Context) error {
	c := New(os.Stderr, LogInfo)
	return c.RootCommand().ExecuteContext(ctx)
}
