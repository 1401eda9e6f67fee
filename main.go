package main

import (
	"log"

	"github.com/kaspa-auth/siwk/cmd"
)

func main() {
	if err := cmd.RootCommand().Execute(); err != nil {
		log.Fatal(err)
	}
}
