package main

import (
	"log"

	"event-studio/cmd"
	_ "event-studio/migrations"
)

func main() {
	if err := cmd.Start(); err != nil {
		log.Fatal(err)
	}
}
