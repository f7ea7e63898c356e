package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"

	"github.com/Rodert/learn-hub/core"
	logsvc "github.com/Rodert/learn-hub/services/logger"
	sessionstore "github.com/Rodert/learn-hub/storage/session"
)

func main() {
	os.Exit(realMain())
}

func realMain() int {
	conf, err := core.LoadConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "loading config: %v\n", err)
		return 1
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stderr, "HUBADMIN : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	store, err := sessionstore.New(ctx, conf)
	if err != nil {
		logger.Error(fmt.Sprintf("opening session store: %v", err), err)
		return 1
	}
	if c, ok := store.(io.Closer); ok {
		defer c.Close()
	}

	cli := newCommandLine(conf, store, os.Stdin, os.Stdout, logger)
	if err := cli.run(ctx, os.Args); err != nil {
		switch {
		case errors.Is(err, errHelp):
			return 2
		case errors.Is(err, errLoginRequired):
		default:
			fmt.Fprintf(os.Stderr, "\nerror: %s\n", err)
		}
		return 1
	}
	return 0
}
