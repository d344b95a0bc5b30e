package main

import (
	"os"

	"github.com/idilsaglam/todolist/internal/cli"
	"github.com/idilsaglam/todolist/internal/ui"
)

func main() {
	os.Exit(run())
}

func run() int {
	err := cli.NewRootCommand().Execute()
	if err != nil {
		ui.ThemeNamed("").Fail(os.Stderr, err.Error())
	}
	return cli.ExitCode(err)
}
