// Command najdeno-dev serves the in-memory lost-and-found backend so the CLI
// can be tried without the real API.
package main

import (
	"context"
	"crypto/rand"
	"errors"
	"flag"
	"fmt"
	"io"
	"math/big"
	"net"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"github.com/erazemk/najdeno/internal/apitest"
	"github.com/erazemk/najdeno/internal/logger"
	"github.com/erazemk/najdeno/internal/model"
)

const usage = `Usage: najdeno-dev [flags]

Flags:
  -a, -addr <host:port>   listen address (default: 127.0.0.1:10000)
  -u, -user <name>        admin username (default: admin)
  -l, -log <path>         log file path (default: no file, stderr only)
  -v, -level <level>      log level (default: info)
  -h, -help               show this help and exit
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

// run serves the backend until ctx is done. Every exit path returns through
// the deferred log cleanup.
func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("najdeno-dev", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() { fmt.Fprint(stdout, usage) }

	var addr string
	fs.StringVar(&addr, "addr", "127.0.0.1:10000", "")
	fs.StringVar(&addr, "a", "127.0.0.1:10000", "")

	var adminUser string
	fs.StringVar(&adminUser, "user", "admin", "")
	fs.StringVar(&adminUser, "u", "admin", "")

	var logPath string
	fs.StringVar(&logPath, "log", "", "")
	fs.StringVar(&logPath, "l", "", "")

	var level string
	fs.StringVar(&level, "level", "info", "")
	fs.StringVar(&level, "v", "info", "")

	if err := fs.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return exitOK
		}
		return exitUsage
	}
	if fs.NArg() > 0 {
		fmt.Fprintf(stderr, "unexpected argument: %s\n", fs.Arg(0))
		fmt.Fprint(stderr, usage)
		return exitUsage
	}

	log, closeLog, err := logger.New(logger.Options{Level: level, Path: logPath, Out: stderr, Err: stderr})
	if err != nil {
		fmt.Fprintf(stderr, "error: %v\n", err)
		return exitFail
	}
	defer closeLog()

	backend := apitest.New(log.Named("backend"))
	password, err := generatePassword(16)
	if err != nil {
		log.Error("failed to generate admin password", zap.Error(err))
		return exitFail
	}
	backend.AddUser(adminUser, password, model.RoleAdmin)

	ln, err := net.Listen("tcp", addr)
	if err != nil {
		log.Error("failed to listen", zap.String("addr", addr), zap.Error(err))
		return exitFail
	}
	printAccount(stdout, adminUser, password)

	server := &http.Server{
		Handler:           backend.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
		ReadTimeout:       30 * time.Second,
		WriteTimeout:      60 * time.Second,
		IdleTimeout:       120 * time.Second,
	}

	shutdown := make(chan struct{})
	go func() {
		defer close(shutdown)
		<-ctx.Done()
		log.Info("shutdown signal received")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		if err := server.Shutdown(shutdownCtx); err != nil {
			log.Error("server forced to shutdown", zap.Error(err))
		}
	}()

	log.Info("server started", zap.String("addr", ln.Addr().String()))
	if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
		log.Error("server error", zap.Error(err))
		return exitFail
	}
	<-shutdown
	log.Info("server stopped")
	return exitOK
}

func printAccount(w io.Writer, username, password string) {
	fmt.Fprintln(w, "Admin account created:")
	fmt.Fprintf(w, "  Username: %s\n", username)
	fmt.Fprintf(w, "  Password: %s\n", password)
	fmt.Fprintln(w)
	fmt.Fprintln(w, "The backend is in memory; everything is lost on exit.")
}

// generatePassword creates a random password of the given length.
func generatePassword(length int) (string, error) {
	const charset = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789!@#$%&*"
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(charset))))
		if err != nil {
			return "", err
		}
		result[i] = charset[n.Int64()]
	}
	return string(result), nil
}
