package main

import (
	"context"
	"os"

	"summaryhub-backend/cmd/cli"
)

func main() {
	if err := cli.NewRootCommand().ExecuteContext(context.Background()); err != nil {
		os.Exit(1)
	}
}
