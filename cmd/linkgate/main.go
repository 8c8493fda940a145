package main

import (
	"log"

	"github.com/beaconbio/linkgate/internal/app"
)

func main() {
	if err := app.New().Run(); err != nil {
		log.Fatalf("linkgate failed to start: %v", err)
	}
}
