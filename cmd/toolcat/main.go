// Command toolcat ingests an AI tool directory workbook and reports,
// exports or trains on the normalized catalog.
package main

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"os/signal"
)

const usage = `usage: toolcat <command> [flags] <source>

commands:
  load       ingest a workbook, JSONL dump or feed and print the catalog
  export     ingest a workbook and write its normalized form
  train      train the fallback classifier from categorized rows
  tutorials  print the tutorials of a workbook
`

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := run(ctx, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, args []string, stdout io.Writer) error {
	if len(args) == 0 {
		return fmt.Errorf("%s", usage)
	}
	switch args[0] {
	case "load":
		return runLoad(ctx, args[1:], stdout)
	case "export":
		return runExport(ctx, args[1:], stdout)
	case "train":
		return runTrain(ctx, args[1:], stdout)
	case "tutorials":
		return runTutorials(ctx, args[1:], stdout)
	case "-h", "--help", "help":
		fmt.Fprint(stdout, usage)
		return nil
	default:
		return fmt.Errorf("unknown command %q\n%s", args[0], usage)
	}
}
