package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/okian/momentum/internal/cli"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := cli.Execute(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		os.Stderr.WriteString("mss: " + err.Error() + "\n")
		stop()
		os.Exit(1)
	}
}
