package main

import (
	"flag"
	"fmt"

	"github.com/yaron8/ops-dashboard/dashboard/bootstrap"
)

func main() {
	plain := flag.Bool("plain", false, "print one summary line per poll instead of the interactive UI")
	flag.Parse()

	bootstrap, err := bootstrap.NewBootstrap(*plain)
	if err != nil {
		panic(fmt.Sprintf("Failed to create dashboard bootstrap: %v", err))
	}

	if err := bootstrap.Start(); err != nil {
		panic(fmt.Sprintf("Failed to run dashboard: %v", err))
	}
}
