// logview - directory log viewer
//
// logview reads plain-text and JSON-lines log files from a directory and
// offers filtering, pagination, summaries, charts, and CSV export.
package main

import (
	"os"

	"github.com/ccollicutt/logview/internal/cli"
)

func main() {
	os.Exit(cli.Execute())
}
