package main

import (
	"fmt"

	"github.com/yaron8/ops-dashboard/sampler/bootstrap"
)

func main() {
	bootstrap, err := bootstrap.NewBootstrap()
	if err != nil {
		panic(fmt.Sprintf("Failed to create sampler bootstrap: %v", err))
	}

	if err := bootstrap.Start(); err != nil {
		panic(fmt.Sprintf("Failed to start sampler server: %v", err))
	}
}
