package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/arthur-debert/modpick/cmd/modpick"
	"github.com/arthur-debert/modpick/pkg/style"
	"github.com/arthur-debert/modpick/pkg/ui"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)

	rootCmd := modpick.NewRootCmd()
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		printer := style.NewPrinter(ui.DetectFormat(os.Stderr) != ui.FormatTerminal)
		fmt.Fprintln(os.Stderr, printer.Error(err))
		os.Exit(1)
	}
}
