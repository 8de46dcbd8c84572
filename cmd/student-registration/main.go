// main is the entry point of the student registration application.
//
// STARTUP SEQUENCE:
//  1. Load configuration (YAML file and/or environment)
//  2. Initialise the logger
//  3. Open the database and ensure the students table exists
//  4. Run the requested command (the interactive form by default)
//
// If step 1 or 3 fails the process prints the error and exits with
// status 1 without showing the form.
//
// RUNNING:
//
//	go run ./cmd/student-registration --config=config/local.yaml
//
// or (with environment variables only):
//
//	STORAGE_PATH=students.db go run ./cmd/student-registration list
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/aanand-mishra/student-registration/cmd/student-registration/commands"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	err := commands.Execute(ctx)
	stop()

	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1) // non-zero exit code signals failure to the shell
	}
}
