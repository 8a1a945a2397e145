package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/discover"
	"github.com/fwojciec/lighterceptor/fs"
	"github.com/fwojciec/lighterceptor/glob"
)

// Run executes the discover command.
func (c *DiscoverCmd) Run(deps *Dependencies) error {
	opts, err := c.options()
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}

	input, baseURL, err := c.readInput(deps)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}
	if opts.BaseURL == "" {
		opts.BaseURL = baseURL
	}

	capture, err := deps.Engine.Discover(deps.Ctx, input, opts)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
		return err
	}
	capture.Input = c.Input

	if c.Save {
		if err := deps.Captures.CreateCapture(deps.Ctx, capture); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Saved capture %s\n", capture.ID)
	}

	if c.Output != "" {
		if err := deps.Writer.WriteCapture(c.Output, capture); err != nil {
			fmt.Fprintf(deps.Stderr, "error: %s\n", lighterceptor.ErrorMessage(err))
			return err
		}
		fmt.Fprintf(deps.Stderr, "Wrote %d requests to %s\n", len(capture.Requests), c.Output)
		if len(capture.Resources) > 0 {
			fmt.Fprintf(deps.Stderr, "  Retrieved %d resources (%s)\n", len(capture.Resources), FormatBytes(retrievedBytes(capture)))
		}
		return nil
	}

	return fs.Encode(deps.Stdout, capture)
}

// options maps flags onto engine options.
func (c *DiscoverCmd) options() (discover.Options, error) {
	kind, err := lighterceptor.ParseResourceKind(c.Kind)
	if err != nil {
		return discover.Options{}, err
	}

	if c.Settle < 0 {
		return discover.Options{}, lighterceptor.Errorf(lighterceptor.EINVALID, "settle time must not be negative")
	}
	settle := c.Settle
	if settle == 0 {
		settle = discover.NoSettle
	}

	opts := discover.Options{
		SettleTime:  settle,
		Recursive:   c.Recursive,
		Kind:        kind,
		BaseURL:     c.BaseURL,
		Concurrency: c.Concurrency,
	}

	if len(c.Scope) > 0 {
		scope, err := glob.NewScope(c.Scope...)
		if err != nil {
			return discover.Options{}, err
		}
		opts.Scope = scope
	}

	return opts, opts.Validate()
}

// readInput loads the content to analyze. A URL input is retrieved with
// the engine's fetcher and its final URL becomes the default base URL.
func (c *DiscoverCmd) readInput(deps *Dependencies) (content, baseURL string, err error) {
	switch {
	case c.Input == "-":
		if deps.Stdin == nil {
			return "", "", lighterceptor.Errorf(lighterceptor.EINVALID, "no standard input available")
		}
		b, err := io.ReadAll(deps.Stdin)
		if err != nil {
			return "", "", fmt.Errorf("read stdin: %w", err)
		}
		return string(b), "", nil

	case isURL(c.Input):
		if deps.Engine.Fetcher == nil {
			return "", "", lighterceptor.Errorf(lighterceptor.EINVALID, "cannot retrieve %s: no fetcher configured", c.Input)
		}
		res, err := deps.Engine.Fetcher.Fetch(deps.Ctx, c.Input)
		if err != nil {
			return "", "", lighterceptor.Errorf(lighterceptor.EINVALID, "cannot retrieve %s: %v", c.Input, err)
		}
		base := res.URL
		if base == "" {
			base = c.Input
		}
		return res.Text, base, nil

	default:
		b, err := os.ReadFile(c.Input)
		if err != nil {
			return "", "", lighterceptor.Errorf(lighterceptor.EINVALID, "cannot read input: %v", err)
		}
		return string(b), "", nil
	}
}

func retrievedBytes(capture *lighterceptor.Capture) int {
	var n int
	for _, r := range capture.Resources {
		n += r.Bytes
	}
	return n
}

func isURL(s string) bool {
	lower := strings.ToLower(s)
	return strings.HasPrefix(lower, "http://") || strings.HasPrefix(lower, "https://")
}
