// Command invctl is a terminal front end for the inventory items API.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/pflag"

	"github.com/rogerio-castellano/inventory-client/internal/client"
	"github.com/rogerio-castellano/inventory-client/internal/config"
	"github.com/rogerio-castellano/inventory-client/internal/inventory"
	"github.com/rogerio-castellano/inventory-client/internal/logging"
)

const usage = `Usage: invctl [flags] <command> [args]

Commands:
  list [-q <text>]                         list products, optionally filtered by name
  show <id>                                show one product
  add --name N --description D --price P [--quantity Q]
                                           create a product
  edit <id> [--name N] [--description D] [--quantity Q] [--price P]
                                           update a product
  restock <id> <delta>                     add delta (may be negative) to the quantity
  delete <id> [-y]                         delete a product after confirmation

Flags:
`

const (
	exitOK     = 0
	exitFailed = 1
	exitUsage  = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	os.Exit(run(ctx, os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(ctx context.Context, args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	fs := pflag.NewFlagSet("invctl", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.SetInterspersed(false)
	config.ClientFlags(fs)
	fs.Usage = func() {
		fmt.Fprint(stderr, usage)
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return exitUsage
	}

	cfg, err := config.Load(fs)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}

	log, closeLog, err := logging.Open(cfg.LogLevel, cfg.LogFile, stderr, stderr)
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFailed
	}
	defer closeLog()

	if cfg.APIURL == "" {
		fmt.Fprintln(stderr, "error: no API URL, set --api-url or INVENTORY_API_URL")
		return exitUsage
	}
	api, err := client.New(cfg.APIURL, client.WithTimeout(cfg.Timeout))
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitUsage
	}

	term := newTerminal(stdin, stdout)
	nav := inventory.NewStackNavigator(inventory.RouteHome, func(e inventory.Entry) {
		log.Debug("screen focused", "route", e.Route, "product_id", e.Params.ProductID)
	})
	cli := &app{
		deps: inventory.Deps{Repo: api, Nav: nav, Prompter: term, Log: log},
		nav:  nav,
		term: term,
		out:  stdout,
		errs: stderr,
	}

	cmd, cmdArgs := fs.Arg(0), fs.Args()[1:]
	return cli.dispatch(ctx, cmd, cmdArgs)
}
