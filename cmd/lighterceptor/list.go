package main

import (
	"fmt"
	"time"

	"github.com/fwojciec/lighterceptor"
)

// maxInputWidth bounds the input column of the listing.
const maxInputWidth = 60

// Run executes the list command.
func (c *ListCmd) Run(deps *Dependencies) error {
	filter := lighterceptor.CaptureFilter{Limit: c.Limit, Offset: c.Offset}
	if c.Input != "" {
		filter.Input = &c.Input
	}

	captures, err := deps.Captures.FindCaptures(deps.Ctx, filter)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}

	if len(captures) == 0 {
		fmt.Fprintln(deps.Stdout, "No captures found. Use 'lighterceptor discover --save' to record one.")
		return nil
	}

	for _, capture := range captures {
		kind := string(capture.InputType)
		if kind == "" {
			kind = "-"
		}
		fmt.Fprintf(deps.Stdout, "%s  %s  %-4s  %s\n", capture.ID, capture.CapturedAt.Local().Format(time.DateTime), kind, TruncateURL(capture.Input, maxInputWidth))
	}

	return nil
}
