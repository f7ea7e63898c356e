package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	echoapi "github.com/Rodert/learn-hub/apps/devapi/echo"
	"github.com/Rodert/learn-hub/core"
	logsvc "github.com/Rodert/learn-hub/services/logger"
)

const shutdownTimeout = 5 * time.Second

func main() {
	// =========================================================================
	// Set up Dependencies

	conf, err := core.LoadConfig()
	if err != nil {
		log.Fatalf("loading config: %v", err)
	}

	logger := logsvc.NewRollbarLogger(
		log.New(os.Stdout, "DEVAPI : ", log.LstdFlags|log.Lmicroseconds|log.Lshortfile),
		conf,
	)
	defer logger.Close()

	store := echoapi.NewStore()
	if err = store.Seed(conf.DevAPI.AdminPassword); err != nil {
		logger.Fatal(fmt.Sprintf("seeding store: %v", err), err)
	}

	// =========================================================================
	// Start API Service

	logger.Info(fmt.Sprintf("dev API listening on %s%s : version %q", conf.DevAPI.Address, echoapi.BasePath, conf.Build))
	server := echoapi.NewServer(echoapi.Options{
		Address:            conf.DevAPI.Address,
		Debug:              conf.Debug,
		DisableReqLogs:     conf.DevAPI.DisableReqLogs,
		SecretKey:          conf.DevAPI.SecretKey,
		JWTExpirationDelta: conf.DevAPI.JWTExpirationDelta,
		Store:              store,
		Logger:             logger,
	})

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- server.Start()
	}()

	// =========================================================================
	// Shutdown

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err = <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			logger.Fatal(fmt.Sprintf("server error: %v", err), err)
		}

	case sig := <-shutdown:
		logger.Info(fmt.Sprintf("%v: Start shutdown...", sig))

		// give outstanding requests a deadline for completion
		ctx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()

		if err = server.Stop(ctx); err != nil {
			logger.Error(fmt.Sprintf("could not stop server gracefully: %v", err), err)
		}
	}
}
