package main

import (
	"context"
	"os"

	"github.com/charmbracelet/fang"
	"github.com/temu-compare/extinstall/cmd"
)

// set by the release build
var version = "dev"

func main() {
	if err := fang.Execute(context.Background(), cmd.Root(), fang.WithVersion(version)); err != nil {
		os.Exit(1)
	}
}
