// Package cli drives the account API from the command line, one subcommand
// per client operation.
package cli

import (
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"sort"

	"github.com/typewell/typewell/shared/api"
	"github.com/typewell/typewell/shared/apiclient"
	"github.com/typewell/typewell/shared/config"
	"github.com/typewell/typewell/shared/logger"
)

// Exit codes.
const (
	ExitOK        = 0
	ExitRejected  = 1 // the API answered with a non-2xx status or an error field
	ExitUsage     = 2
	ExitTransport = 3 // no usable response
)

// env is what every command gets to work with.
type env struct {
	ctx    context.Context
	client *apiclient.APIClient
	stdout io.Writer
	stderr io.Writer
}

type command struct {
	usage string
	run   func(e *env, args []string) (responder, error)
}

// responder is satisfied by every response DTO through the embedded api.Status.
type responder interface {
	OK() bool
	Failure() string
}

var _ responder = (*api.Status)(nil)

// Run executes one CLI invocation and returns its exit code.
func Run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("typewell", flag.ContinueOnError)
	fs.SetOutput(stderr)
	configFolder := fs.String("config_folder", "", "path to folder with public.yaml/private.yaml")
	apiURL := fs.String("api", "", "API base url (overrides config and "+config.EnvAPIURL+")")
	cookieFile := fs.String("cookies", "", "file keeping the session between runs")
	fs.Usage = func() { usage(stderr, fs) }
	if err := fs.Parse(args); err != nil {
		return ExitUsage
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return ExitUsage
	}
	cmd, ok := commands[fs.Arg(0)]
	if !ok {
		fmt.Fprintf(stderr, "unknown command %q\n", fs.Arg(0))
		fs.Usage()
		return ExitUsage
	}

	cfg, err := config.Load(*configFolder)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	if *apiURL != "" {
		cfg.Public.APIURL = *apiURL
	}
	if *cookieFile != "" {
		cfg.Public.CookieFile = *cookieFile
	}
	log := logger.New(stderr, cfg.Public.LogLevel, cfg.Public.LogJSON)

	client, err := apiclient.New(cfg.Public.APIURL,
		apiclient.WithLogger(log),
		apiclient.WithTimeout(cfg.Public.Timeout),
		apiclient.WithRequireSession(cfg.Public.RequireSession),
	)
	if err != nil {
		fmt.Fprintln(stderr, err)
		return ExitUsage
	}
	loadSession(client, cfg.Public.CookieFile, log)
	defer saveSession(client, cfg.Public.CookieFile, log)

	e := &env{ctx: ctx, client: client, stdout: stdout, stderr: stderr}
	resp, err := cmd.run(e, fs.Args()[1:])
	switch {
	case errors.Is(err, errUsage):
		fmt.Fprintf(stderr, "usage: typewell %s\n", cmd.usage)
		return ExitUsage
	case errors.Is(err, apiclient.ErrNothingToSend):
		fmt.Fprintln(stderr, "nothing to send")
		return ExitOK
	case err != nil:
		fmt.Fprintln(stderr, err)
		return ExitTransport
	}

	enc := json.NewEncoder(stdout)
	enc.SetIndent("", "  ")
	if err := enc.Encode(resp); err != nil {
		fmt.Fprintln(stderr, err)
		return ExitTransport
	}
	if !resp.OK() {
		if reason := resp.Failure(); reason != "" {
			fmt.Fprintln(stderr, reason)
		}
		return ExitRejected
	}
	return ExitOK
}

func usage(w io.Writer, fs *flag.FlagSet) {
	fmt.Fprintln(w, "typewell account client\n\nUsage:\n  typewell [flags] <command> [args]\n\nCommands:")
	names := make([]string, 0, len(commands))
	for name := range commands {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		fmt.Fprintf(w, "  typewell %s\n", commands[name].usage)
	}
	fmt.Fprintln(w, "\nFlags:")
	fs.PrintDefaults()
}

func loadSession(c *apiclient.APIClient, path string, log *slog.Logger) {
	if path == "" {
		return
	}
	f, err := os.Open(path)
	if errors.Is(err, os.ErrNotExist) {
		return
	}
	if err != nil {
		log.Warn("cannot open session file", "path", path, "error", err)
		return
	}
	defer f.Close()
	if err := c.LoadSession(f); err != nil {
		log.Warn("cannot read session file", "path", path, "error", err)
	}
}

func saveSession(c *apiclient.APIClient, path string, log *slog.Logger) {
	if path == "" {
		return
	}
	if !c.HasSession() {
		if err := os.Remove(path); err != nil && !errors.Is(err, os.ErrNotExist) {
			log.Warn("cannot remove session file", "path", path, "error", err)
		}
		return
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err != nil {
		log.Warn("cannot write session file", "path", path, "error", err)
		return
	}
	defer f.Close()
	if err := c.SaveSession(f); err != nil {
		log.Warn("cannot write session file", "path", path, "error", err)
	}
}
