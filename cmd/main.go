// Command mcpchat-ask answers a single question and exits.
//
//	mcpchat-ask What's the weather in Tokyo?
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	"github.com/fatih/color"
	"github.com/va6996/mcpchat/bootstrap"
	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/console"
	logcontext "github.com/va6996/mcpchat/context"
	"github.com/va6996/mcpchat/log"
)

func main() {
	if len(os.Args) > 2 && os.Args[1] == "serve" {
		if err := bootstrap.Serve(os.Args[2]); err != nil {
			log.Errorf(context.Background(), "Server %s failed: %v", os.Args[2], err)
			os.Exit(1)
		}
		return
	}

	query := queryFromArgs(os.Args[1:])
	if query == "" {
		fmt.Fprintf(os.Stderr, "usage: %s <question>\n", os.Args[0])
		os.Exit(2)
	}
	os.Exit(ask(query))
}

func queryFromArgs(args []string) string {
	return strings.TrimSpace(strings.Join(args, " "))
}

func ask(query string) int {
	out := console.New(os.Stdout, !color.NoColor)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load()
	if err != nil {
		bootstrap.ReportConfigError(out, err)
		return 1
	}
	log.Init(cfg.Log.Level)
	if err := cfg.Validate(); err != nil {
		bootstrap.ReportConfigError(out, err)
		return 1
	}

	app, err := bootstrap.Setup(ctx, cfg, out)
	if err != nil {
		bootstrap.ReportSetupError(out, err)
		return 1
	}
	defer app.Close()

	ctx = logcontext.WithTurnID(ctx, logcontext.NewTurnID())
	start := time.Now()
	answer, err := app.Assistant.Respond(ctx, query)
	if err != nil {
		out.Error("An error occurred during chat: %v", err)
		return 1
	}
	out.Answer(answer)
	log.Infof(ctx, "Answered in %s", time.Since(start).Round(time.Millisecond))
	return 0
}
