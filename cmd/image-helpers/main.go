package main

import (
	"fmt"
	"os"

	"github.com/jtmiller/image-helpers/internal/cli"
)

// Version information - set by ldflags during build
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func main() {
	if len(os.Args) > 1 {
		switch os.Args[1] {
		case "--version", "-v", "version":
			fmt.Printf("image-helpers %s\n", Version)
			fmt.Printf("  Build time: %s\n", BuildTime)
			fmt.Printf("  Git commit: %s\n", GitCommit)
			return
		case "--help", "-h", "help":
			fmt.Print(cli.Usage())
			return
		}
	}

	app := cli.New()
	if err := app.Run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "image-helpers: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'image-helpers --help' for usage.")
		os.Exit(1)
	}
}
