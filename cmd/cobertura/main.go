package main

import (
	"fmt"
	"os"

	"github.com/zjy-dev/cobertura/cmd/cobertura/app"
)

func main() {
	if err := app.NewCoberturaCommand().Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
