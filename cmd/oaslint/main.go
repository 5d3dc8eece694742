package main

import (
	"errors"
	"fmt"
	"os"

	"github.com/kolah/oaslint/internal/cli"
)

func main() {
	cmd := cli.RootCmd()
	err := cmd.Execute()
	if err == nil {
		return
	}

	var exitErr *cli.ExitError
	if errors.As(err, &exitErr) {
		if exitErr.Err != nil {
			fmt.Fprintln(os.Stderr, exitErr.Err.Error())
		}
		os.Exit(exitErr.Code)
	}

	fmt.Fprintln(os.Stderr, err.Error())
	os.Exit(2)
}
