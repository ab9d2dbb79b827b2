package main

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"runtime/debug"
	"syscall"
	"time"

	"github.com/common-nighthawk/go-figure"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/wengro/greenhouse/internal/config"
	"github.com/wengro/greenhouse/server"
	"github.com/wengro/greenhouse/session"
	"github.com/wengro/greenhouse/submissions"
	fakesubmissionrepo "github.com/wengro/greenhouse/submissions/repofake"
	pgsubmissionrepo "github.com/wengro/greenhouse/submissions/repopg"
	"github.com/wengro/greenhouse/tokenstore"
	"github.com/wengro/greenhouse/users"
	fakeuserrepo "github.com/wengro/greenhouse/users/repofake"
	pguserrepo "github.com/wengro/greenhouse/users/repopg"
	"github.com/wengro/greenhouse/xoauth"
)

func main() {
	for {
		if err := run(); err != nil {
			log.Fatalf("Error running server: %s\n", err)
			time.Sleep(1 * time.Second)
		} else {
			break
		}
	}
	log.Printf("Server stopped\n")
}

func run() (returnError error) {
	defer func() {
		if r := recover(); r != nil {
			log.Printf("Recovered from panic: %v\n", r)
			debug.PrintStack()
			returnError = errors.New("panic recovered")
		}
	}()

	c := config.New()
	displayAppname(c.GetAppName())

	userRepo, submissionRepo, pool, err := buildRepos(c)
	if err != nil {
		return err
	}
	if pool != nil {
		defer pool.Close()
	}

	tokens := tokenstore.NewInMemory(tokenstore.DefaultSweepInterval)
	defer tokens.Stop()

	srv := server.New(
		c,
		xoauth.New(c),
		session.NewCodec(c.GetSessionSecret(), c.GetSessionCookieName()),
		userRepo,
		submissionRepo,
		tokens,
	)

	httpServer := &http.Server{Addr: c.GetPort(), Handler: srv}
	go listenAndServe(httpServer)
	waitForStopSignal()
	returnError = shutdown(httpServer)
	return returnError
}

func buildRepos(c config.Config) (users.Repo, submissions.Repo, *pgxpool.Pool, error) {
	databaseURL := c.GetDatabaseURL()
	if databaseURL == "" {
		log.Printf("DATABASE_URL not set, using in-memory repositories\n")
		return fakeuserrepo.NewFakeUserRepo(), fakesubmissionrepo.NewFakeSubmissionRepo(), nil, nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("pgxpool.New: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, fmt.Errorf("postgres ping: %w", err)
	}

	userRepo := pguserrepo.NewPGUserRepo(pool)
	if err := userRepo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	submissionRepo := pgsubmissionrepo.NewPGSubmissionRepo(pool)
	if err := submissionRepo.EnsureSchema(ctx); err != nil {
		pool.Close()
		return nil, nil, nil, err
	}

	return userRepo, submissionRepo, pool, nil
}

func listenAndServe(server *http.Server) error {
	log.Printf("Server listening on %s\n", server.Addr)
	if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("server.ListenAndServe %w", err)
	}
	return nil
}

func waitForStopSignal() {
	stop := make(chan os.Signal, 1)
	signal.Notify(stop, os.Interrupt, syscall.SIGTERM)
	<-stop
}

func shutdown(server *http.Server) error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := server.Shutdown(ctx); err != nil {
		return fmt.Errorf("server.Shutdown: %w", err)
	}
	return nil
}

func displayAppname(appname string) {
	myFigure := figure.NewFigure(appname, "cybermedium", true)
	myFigure.Print()
	fmt.Println()
}
