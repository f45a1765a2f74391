package main

import (
	"fmt"
	"os"

	"github.com/OriKozok/movie-town-server/internal/app"
)

func main() {
	err := app.Run()
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
