package main

import (
	"context"
	"io"
	"log/slog"
	"time"

	"github.com/fwojciec/lighterceptor"
	"github.com/fwojciec/lighterceptor/discover"
	"github.com/fwojciec/lighterceptor/fs"
	"github.com/fwojciec/lighterceptor/sqlite"
)

// Dependencies holds all services and configuration for command execution.
type Dependencies struct {
	Ctx      context.Context
	Stdin    io.Reader
	Stdout   io.Writer
	Stderr   io.Writer
	Logger   *slog.Logger
	DB       *sqlite.DB
	Captures lighterceptor.CaptureService
	Engine   *discover.Engine
	Writer   *fs.Writer
}

// CLI defines the command-line interface structure for Kong.
type CLI struct {
	Discover DiscoverCmd `cmd:"" help:"Discover the requests made by an HTML, CSS or JavaScript input"`
	List     ListCmd     `cmd:"" help:"List saved captures"`
	Show     ShowCmd     `cmd:"" help:"Print a saved capture as JSON"`
	Delete   DeleteCmd   `cmd:"" help:"Delete a saved capture"`
}

// DiscoverCmd is the "discover" subcommand.
type DiscoverCmd struct {
	Input string `arg:"" help:"File path, http(s) URL, or - for stdin"`

	Kind        string        `short:"k" help:"Input kind override (html, css, js); detected when empty"`
	Recursive   bool          `short:"r" help:"Retrieve and analyze discovered stylesheets, scripts and frames"`
	Settle      time.Duration `default:"50ms" help:"Wait for asynchronous script effects per rendering pass; 0 disables the wait"`
	BaseURL     string        `name:"base-url" short:"b" help:"Base URL for resolving relative references"`
	Concurrency int           `short:"c" default:"1" help:"Parallel retrievals per queue wave"`
	Scope       []string      `short:"s" help:"Host or URL glob bounding recursion; prefix with ! to exclude (repeatable)"`

	MaxBodyBytes  int64         `name:"max-body-bytes" default:"10485760" help:"Maximum bytes read per retrieved resource"`
	Timeout       time.Duration `short:"t" default:"10s" help:"Timeout per retrieval"`
	RPS           float64       `name:"rps" default:"0" help:"Retrievals per second per host (0 = unlimited)"`
	Retries       int           `default:"0" help:"Retry attempts per failed retrieval"`
	RespectRobots bool          `name:"respect-robots" help:"Treat URLs disallowed by robots.txt as absent"`
	Browser       bool          `help:"Render markup in headless Chrome instead of the static environment"`

	Output  string `short:"o" type:"path" help:"Write the capture to a file instead of stdout"`
	Save    bool   `help:"Save the capture to the history database"`
	Verbose bool   `short:"v" help:"Log retrievals and queue progress to stderr"`
}

// ListCmd is the "list" subcommand.
type ListCmd struct {
	Input  string `short:"i" help:"Only list captures of this input"`
	Limit  int    `short:"n" default:"20" help:"Maximum captures to list"`
	Offset int    `help:"Captures to skip"`
}

// ShowCmd is the "show" subcommand.
type ShowCmd struct {
	ID string `arg:"" help:"Capture ID"`
}

// DeleteCmd is the "delete" subcommand.
type DeleteCmd struct {
	ID    string `arg:"" help:"Capture ID"`
	Force bool   `help:"Confirm deletion"`
}
