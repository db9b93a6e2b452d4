// Command timeutc runs the timeutc analyzer as a standalone vet tool.
package main

import (
	"golang.org/x/tools/go/analysis/singlechecker"

	"github.com/rezkam/todos/tools/linters/timeutc"
)

func main() {
	singlechecker.Main(timeutc.Analyzer)
}
