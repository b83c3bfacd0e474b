// Command concertscout extracts concert recommendations from agent responses.
//
// Usage:
//
//	concertscout parse response.txt
//	cat response.txt | concertscout parse --display-defaults
//	concertscout ask "Country concerts in Seattle this month"
//	concertscout serve --port 8080
//
// Settings also come from the environment and from a .env file in the
// working directory.
package main

import (
	"errors"
	"os"

	"github.com/jessevdk/go-flags"
	_ "github.com/joho/godotenv/autoload"
)

func main() {
	app := newApp(os.Stdin, os.Stdout)

	parser := flags.NewParser(&app.options, flags.Default)
	parser.LongDescription = "Extracts structured concert recommendations from Concert Scout agent responses."

	mustAddCommand(parser, "parse", "Parse a response from a file or stdin",
		"Reads a model response from FILE (or stdin when omitted) and prints the parse result as JSON.",
		&parseCommand{app: app})
	mustAddCommand(parser, "ask", "Ask the agent backend and parse its reply",
		"Sends MESSAGE to the agent backend's /chat endpoint and prints the session and parse result as JSON.",
		&askCommand{app: app})
	mustAddCommand(parser, "serve", "Serve the parser over HTTP",
		"Starts an HTTP server exposing /parse, /chat, /sessions and /health.",
		&serveCommand{app: app})

	if _, err := parser.Parse(); err != nil {
		var flagsErr *flags.Error
		if errors.As(err, &flagsErr) && flagsErr.Type == flags.ErrHelp {
			return
		}
		os.Exit(1)
	}
}

func mustAddCommand(parser *flags.Parser, name, short, long string, data any) {
	if _, err := parser.AddCommand(name, short, long, data); err != nil {
		panic(err)
	}
}
