// Command cborpath compiles a CBOR-encoded query and evaluates it
// against a CBOR-encoded argument, for ad-hoc inspection of query
// results from the shell.
package main

import (
	"encoding/hex"
	"flag"
	"fmt"
	"os"

	"github.com/cborpath/cborpath/cborpath"
	"github.com/cborpath/cborpath/cborval"
	"github.com/cborpath/cborpath/internal/exit"
)

func main() {
	os.Exit(run(os.Args[1:]))
}

func run(args []string) int {
	fs := flag.NewFlagSet("cborpath", flag.ContinueOnError)
	argPath := fs.String("arg", "", "path to a file holding the CBOR-encoded argument")
	queryPath := fs.String("query", "", "path to a file holding the CBOR-encoded query")
	locate := fs.Bool("locate", false, "print locators instead of values")

	if err := fs.Parse(args); err != nil {
		return exitResult(exit.Errorf("cborpath: %v", err))
	}
	if *argPath == "" || *queryPath == "" {
		return exitResult(exit.Error("cborpath: both -arg and -query are required"))
	}

	argData, err := os.ReadFile(*argPath)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: reading argument: %v", err))
	}
	queryData, err := os.ReadFile(*queryPath)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: reading query: %v", err))
	}

	argument, err := cborval.Unmarshal(argData)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: decoding argument: %v", err))
	}
	queryValue, err := cborval.Unmarshal(queryData)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: decoding query: %v", err))
	}

	path, err := cborpath.Compile(queryValue)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: %v", err))
	}

	if *locate {
		return exitResult(exit.Success(formatLocators(path.EvaluatePaths(argument))))
	}

	data, err := path.EvaluateToCBOR(argument)
	if err != nil {
		return exitResult(exit.Errorf("cborpath: encoding result: %v", err))
	}
	return exitResult(exit.Success(hex.EncodeToString(data) + "\n"))
}

func formatLocators(locs []cborpath.Locator) string {
	out := ""
	for _, loc := range locs {
		out += "$"
		for _, elem := range loc {
			if elem.IsKey {
				if text, ok := elem.Key.Text(); ok {
					out += fmt.Sprintf(".%s", text)
					continue
				}
				out += fmt.Sprintf("[%v]", elem.Key)
				continue
			}
			out += fmt.Sprintf("[%d]", elem.Index)
		}
		out += "\n"
	}
	return out
}

func exitResult(r *exit.Result) int {
	r.Print()
	return r.ExitCode
}
