// Command api runs the DevFlow HTTP server.
package main

import (
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/samber/do/v2"

	"github.com/devflowhq/devflow-server/internal/di"
	"github.com/devflowhq/devflow-server/internal/di/providers"
	"github.com/devflowhq/devflow-server/internal/logger"
)

func main() {
	injector := di.NewContainer()

	if err := di.Bootstrap(injector); err != nil {
		fmt.Fprintln(os.Stderr, "bootstrap failed:", err)
		os.Exit(1)
	}

	log := do.MustInvoke[*logger.Logger](injector)

	// Block until asked to stop.
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutdown signal received, draining...")

	if err := injector.Shutdown(); err != nil {
		log.Error("Container shutdown error", "error", err)
	}

	// The store sits behind a handle type, so close it explicitly.
	if st, err := do.Invoke[*providers.StoreHandle](injector); err == nil {
		if err := st.Shutdown(); err != nil {
			log.Error("Database close error", "error", err)
		} else {
			log.Info("Database closed")
		}
	}

	log.Info("Goodbye")
}
