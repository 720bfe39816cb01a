package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/fatih/color"
	"github.com/va6996/mcpchat/bootstrap"
	"github.com/va6996/mcpchat/chat"
	"github.com/va6996/mcpchat/config"
	"github.com/va6996/mcpchat/console"
	"github.com/va6996/mcpchat/log"
)

func main() {
	// The tool providers are this same binary: mcpchat serve weather|news
	if len(os.Args) > 1 && os.Args[1] == "serve" {
		os.Exit(serve(os.Args[2:]))
	}
	os.Exit(run())
}

func serve(args []string) int {
	if len(args) != 1 {
		fmt.Fprintf(os.Stderr, "usage: %s serve %s|%s\n", os.Args[0], bootstrap.WeatherServer, bootstrap.NewsServer)
		return 2
	}
	if err := bootstrap.Serve(args[0]); err != nil {
		log.Errorf(context.Background(), "Server %s failed: %v", args[0], err)
		return 1
	}
	return 0
}

func run() int {
	out := console.New(os.Stdout, !color.NoColor)

	// Ctrl+C and SIGTERM end the session gracefully
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 0. Load Config
	cfg, err := config.Load()
	if err != nil {
		bootstrap.ReportConfigError(out, err)
		return 1
	}
	log.Init(cfg.Log.Level)
	out.Banner()

	if err := cfg.Validate(); err != nil {
		bootstrap.ReportConfigError(out, err)
		return 1
	}

	// 1-4. Launch providers, discover tools and bind them to the model
	bootstrap.ReportInitializing(out)
	app, err := bootstrap.Setup(ctx, cfg, out)
	if err != nil {
		bootstrap.ReportSetupError(out, err)
		return 1
	}
	defer func() {
		if err := app.Close(); err != nil {
			log.Warnf(context.Background(), "Shutting down tool servers: %v", err)
		}
	}()

	bootstrap.ReportReady(out)
	if err := chat.NewSession(app.Assistant, out, os.Stdin).Run(ctx); err != nil {
		log.Errorf(ctx, "Chat session failed: %v", err)
		return 1
	}
	return 0
}
