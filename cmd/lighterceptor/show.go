package main

import (
	"fmt"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/fs"
)

// Run executes the show command.
func (c *ShowCmd) Run(deps *Dependencies) error {
	capture, err := deps.Captures.FindCaptureByID(deps.Ctx, c.ID)
	if err != nil {
		if lighterceptor.ErrorCode(err) == lighterceptor.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: capture %q not found. Use 'lighterceptor list' to see saved captures.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}

	return fs.Encode(deps.Stdout, capture)
}
