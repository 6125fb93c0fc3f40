package main

import (
	"log"
	"os"

	"github.com/ellielalafontaine/trackmaniabottime/app"
	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/health"
)

func main() {
	application, err := app.New()
	if err != nil {
		log.Fatal(err)
	}

	// HTTP server for the hosting platform's health checks
	port := os.Getenv("PORT")
	if port == "" {
		port = constants.DefaultHTTPPort
	}
	health.StartHealthServer(port, application.Store())

	if err := application.Run(); err != nil {
		log.Fatal(err)
	}
}
