package main

import (
	"log"

	"github.com/pinstash/pinstash/cmd"
	"github.com/pinstash/pinstash/config"
)

func main() {
	log.Printf("pinstash %s (%s)", config.Version, config.CommitHash)
	cmd.Execute()
}
