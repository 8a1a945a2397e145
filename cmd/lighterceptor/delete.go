package main

import (
	"fmt"

	"github.com/fwojciec/lighterceptor"
)

// Run executes the delete command.
func (c *DeleteCmd) Run(deps *Dependencies) error {
	if !c.Force {
		fmt.Fprintf(deps.Stderr, "error: use --force to confirm deletion\n")
		return lighterceptor.Errorf(lighterceptor.EINVALID, "use --force to confirm deletion")
	}

	if err := deps.Captures.DeleteCapture(deps.Ctx, c.ID); err != nil {
		if lighterceptor.ErrorCode(err) == lighterceptor.ENOTFOUND {
			fmt.Fprintf(deps.Stderr, "error: capture %q not found. Use 'lighterceptor list' to see saved captures.\n", c.ID)
			return err
		}
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}

	fmt.Fprintf(deps.Stdout, "Deleted capture %s\n", c.ID)
	return nil
}
