package main

import (
	"os"

	"horse.fit/mtran/internal/app"
)

func main() {
	os.Exit(app.Run(os.Args[1:]))
}
