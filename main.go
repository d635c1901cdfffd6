package main

import (
	"fmt"
	"log/slog"
	"os"
)

// Version is stamped at release time via -ldflags.
var Version = "dev"

func main() {
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, nil)))
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "go-xmldoc:", err)
		os.Exit(1)
	}
}
