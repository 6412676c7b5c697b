package main

import (
	"context"
	"os"
	"promptscrape/cmd/promptscrape/commands"
	"promptscrape/lib/serviceutil"
	"promptscrape/lib/telemetry"
	"time"
)

func main() {
	ctx := serviceutil.SignalContext()

	tel, err := telemetry.SetupFromEnv(ctx, "promptscrape")
	if err != nil {
		serviceutil.Fatal("failed to setup telemetry", err)
	}

	err = commands.ExecuteContext(ctx)

	shutdownCtx, cancel := context.WithTimeout(context.Background(), time.Second*5)
	defer cancel()
	shutdownErr := tel.Shutdown(shutdownCtx)
	if shutdownErr != nil {
		serviceutil.Fatal("failed to shutdown telemetry", shutdownErr)
	}

	if err != nil {
		os.Exit(1)
	}
}
