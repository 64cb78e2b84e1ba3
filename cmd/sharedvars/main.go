package main

import (
	"context"
	"fmt"
	"os"

	"github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/app"
	apperrors "github.com/GrassBlock2016/SHU-Computer-Architecture-Experiments/internal/errors"
)

func main() {
	if app.HasVersionFlag(os.Args[1:]) {
		app.PrintVersion(os.Stdout)
		return
	}

	a, err := app.New(os.Args, os.Stderr)
	if err != nil {
		if app.IsHelpError(err) {
			os.Exit(apperrors.ExitSuccess)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(apperrors.ExitCodeForError(err))
	}

	os.Exit(a.Run(context.Background(), os.Stdout))
}
