package main

import (
	"os"

	"github.com/tibiasim/gear_roster/internal/app"
)

func main() {
	os.Exit(app.RunWithOptions(app.Options{Args: os.Args[1:]}))
}
