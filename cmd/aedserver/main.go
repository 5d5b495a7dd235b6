// Command aedserver runs the mock judge server standalone, for local
// testing against aedcli or any judge.Client without a real contest
// endpoint.
package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/dshills/aedificium/pkg/mockserver"
	"github.com/dshills/aedificium/pkg/session"
)

const version = "0.1.0"

var (
	addr       = flag.String("addr", ":8080", "Listen address")
	persistDir = flag.String("persist", "", "Directory for per-session JSON files (empty disables persistence)")
	versionF   = flag.Bool("version", false, "Print version and exit")
	help       = flag.Bool("help", false, "Show help message")
)

func main() {
	flag.Parse()

	if *versionF {
		fmt.Printf("aedserver version %s\n", version)
		os.Exit(0)
	}
	if *help {
		printHelp()
		os.Exit(0)
	}

	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	var store *session.Store
	if *persistDir != "" {
		var err error
		store, err = session.NewStore(*persistDir)
		if err != nil {
			return fmt.Errorf("setting up persistence: %w", err)
		}
	}

	srv := mockserver.New(store)
	fmt.Printf("aedserver listening on %s\n", *addr)
	return srv.Router().Run(*addr)
}

func printHelp() {
	fmt.Printf("aedserver version %s\n\n", version)
	fmt.Println("Runs the mock judge server (/register /select /explore /guess /spoiler).")
	fmt.Println("\nFlags:")
	flag.PrintDefaults()
}
