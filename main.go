package main

import (
	"os"

	"github.com/signalfire/auto-featured/app"
)

func main() {
	err := app.Execute()
	if err != nil {
		os.Exit(1)
	}
}
