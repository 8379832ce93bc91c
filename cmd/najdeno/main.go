package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/api"
	"github.com/erazemk/najdeno/internal/config"
	"github.com/erazemk/najdeno/internal/db"
	"github.com/erazemk/najdeno/internal/guard"
	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/metrics"
	"github.com/erazemk/najdeno/internal/state"
	"github.com/erazemk/najdeno/internal/store"
)

const usage = `Usage: najdeno [flags] <command> [args]

Flags:
  -a, -api <url>          API base URL (default: $NAJDENO_API_URL or http://127.0.0.1:10000)
  -d, -db <path>          SQLite file holding the session (default: najdeno.sqlite3)
  -l, -log <path>         log file path (default: no file, stderr only)
  -v, -level <level>      log level: debug, info, warn, error (default: warn)
  -m, -metrics <path>     write Prometheus metrics to this file on exit
  -h, -help               show this help and exit

Commands:
  login <username> <password>
  register [-email e] [-role r] <username> <password>
  logout
  whoami
  items [-status s] [-location l]
  item <id>
  report -name n -location l [-description d] [-status s]
  update-item <id> [-name n] [-location l] [-description d] [-status s]
  delete-item <id>
  claim <item-id>
  upload-image <item-id> <url-or-file>
  comments <item-id>
  comment <item-id> <text>
  offer-reward <item-id> <amount>
  pay-reward <reward-id>
  rewards
  profile
  update-profile [-username u] [-email e] [-password p]
  users
  delete-user <id>
  claims
  approve-claim <id>
  reject-claim <id>
  all-rewards
  route <path>
`

// Exit codes.
const (
	exitOK    = 0
	exitFail  = 1
	exitUsage = 2
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

type options struct {
	apiURL      string
	dbPath      string
	logPath     string
	level       string
	metricsPath string
}

func parseFlags(args []string, stderr io.Writer) (options, []string, error) {
	fs := flag.NewFlagSet("najdeno", flag.ContinueOnError)
	fs.SetOutput(stderr)

	var o options
	fs.StringVar(&o.apiURL, "api", "", "")
	fs.StringVar(&o.apiURL, "a", "", "")
	fs.StringVar(&o.dbPath, "db", "", "")
	fs.StringVar(&o.dbPath, "d", "", "")
	fs.StringVar(&o.logPath, "log", "", "")
	fs.StringVar(&o.logPath, "l", "", "")
	fs.StringVar(&o.level, "level", "", "")
	fs.StringVar(&o.level, "v", "", "")
	fs.StringVar(&o.metricsPath, "metrics", "", "")
	fs.StringVar(&o.metricsPath, "m", "", "")

	fs.Usage = func() { fmt.Fprint(stderr, usage) }

	if err := fs.Parse(args); err != nil {
		return o, nil, err
	}
	return o, fs.Args(), nil
}

// run executes one command and returns the process exit code.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	opts, rest, err := parseFlags(args, stderr)
	if err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if len(rest) == 0 {
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cmd, ok := commands[rest[0]]
	if !ok {
		fmt.Fprintf(stderr, "unknown command: %s\n", rest[0])
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	applyFlags(&cfg, opts)

	log, closeLog, err := logger.New(logger.Options{Level: cfg.LogLevel, Path: cfg.LogPath, Out: stderr, Err: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	defer closeLog()

	a, cleanup, err := bootstrap(ctx, cfg, log, stdout, stderr)
	if err != nil {
		log.Error("startup failed", zap.Error(err))
		return exitFail
	}
	defer cleanup()

	code := a.dispatch(ctx, cmd, rest[1:])

	if opts.metricsPath != "" {
		if err := prometheus.WriteToTextfile(opts.metricsPath, a.metrics.Registry); err != nil {
			log.Error("writing metrics", zap.String("path", opts.metricsPath), zap.Error(err))
		}
	}
	return code
}

func applyFlags(cfg *config.Config, o options) {
	if o.apiURL != "" {
		if cfg.ImageURL == cfg.APIURL {
			cfg.ImageURL = o.apiURL
		}
		cfg.APIURL = o.apiURL
	}
	if o.dbPath != "" {
		cfg.DBPath = o.dbPath
	}
	if o.logPath != "" {
		cfg.LogPath = o.logPath
	}
	if o.level != "" {
		cfg.LogLevel = o.level
	}
}

// app is everything a command needs.
type app struct {
	log       *zap.Logger
	client    *api.Client
	store     *state.Store
	router    *guard.Router
	metrics   *metrics.Metrics
	imageBase string
	stdout    io.Writer
	stderr    io.Writer
}

func bootstrap(ctx context.Context, cfg config.Config, log *zap.Logger, stdout, stderr io.Writer) (*app, func(), error) {
	database, err := db.OpenWithSchema(cfg.DBPath)
	if err != nil {
		return nil, nil, fmt.Errorf("opening session database: %w", err)
	}
	log.Debug("session database ready", zap.String("path", cfg.DBPath))

	tokens := store.NewSQLiteTokens(database)
	m := metrics.New()

	client, err := api.New(ctx, api.Config{
		BaseURL:    cfg.APIURL,
		HTTPClient: &http.Client{Timeout: cfg.Timeout},
		Tokens:     tokens,
		Navigator: api.NavigatorFunc(func(path string) {
			fmt.Fprintf(stderr, "session expired, log in again (%s)\n", path)
		}),
		Logger:  log,
		Metrics: m,
	})
	if err != nil {
		database.Close()
		return nil, nil, err
	}

	a := &app{
		log:       log,
		client:    client,
		store:     state.NewStore(client, tokens, log, m),
		router:    guard.NewRouter(guard.Routes),
		metrics:   m,
		imageBase: cfg.ImageURL,
		stdout:    stdout,
		stderr:    stderr,
	}
	return a, func() { database.Close() }, nil
}

// dispatch restores the session, applies the route guard and runs cmd.
func (a *app) dispatch(ctx context.Context, cmd command, args []string) int {
	if len(args) < cmd.minArgs {
		fmt.Fprintf(a.stderr, "usage: najdeno %s\n", cmd.usage)
		return exitUsage
	}

	if !cmd.skipRestore {
		if _, err := a.store.Auth.Restore(ctx); err != nil {
			a.log.Info("continuing without a session", zap.Error(err))
		}
		a.store.Drain(a.client.Events())
	}

	if cmd.route != nil {
		target := cmd.route(args)
		st := a.store.Auth.State()
		d := a.router.Resolve(target, st.Session, st.Restoring)
		if d.Outcome != guard.Render {
			fmt.Fprintf(a.stderr, "%s: %s, go to %s\n", target, describe(d.Outcome), d.Location)
			return exitFail
		}
	}

	err := cmd.run(ctx, a, args)
	if n := a.store.Drain(a.client.Events()); n > 0 {
		a.log.Debug("applied session events", zap.Int("count", n))
	}
	if err != nil {
		var usageErr usageError
		if errors.As(err, &usageErr) {
			fmt.Fprintf(a.stderr, "%v\nusage: najdeno %s\n", err, cmd.usage)
			return exitUsage
		}
		fmt.Fprintf(a.stderr, "error: %s\n", message(err))
		return exitFail
	}
	return exitOK
}

func describe(o guard.Outcome) string {
	switch o {
	case guard.RedirectLogin:
		return "not logged in"
	case guard.RedirectUnauthorized:
		return "not allowed for your role"
	case guard.Await:
		return "session is still being restored"
	}
	return "redirected"
}

// message prefers the text the slice recorded.
func message(err error) string {
	var opErr *state.OpError
	if errors.As(err, &opErr) {
		return opErr.Message
	}
	return err.Error()
}
