// The siafile-dump command writes a readable representation of a SHSM model
// file.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/siafile/siafile/shsm"
)

const usage = `usage: siafile-dump [-strict] [-json] [INPUT] [OUTPUT]

Reads a SIA file from INPUT, and dumps a readable representation of the binary
format to OUTPUT. With -json, the decoded model is written as JSON instead, in
the form accepted by siafile-rewrite -json.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Options:
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	strict := flag.Bool("strict", false, "reject unknown vertex layouts and ill-formed strings")
	asJSON := flag.Bool("json", false, "write the decoded model as JSON")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()
	args := flag.Args()
	if len(args) >= 1 && args[0] != "-" {
		in, err := os.Open(args[0])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("open input: %w", err))
			return
		}
		input = in
		defer in.Close()
	}
	if len(args) >= 2 && args[1] != "-" {
		out, err := os.Create(args[1])
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("create output: %w", err))
			return
		}
		defer out.Close()
		defer func() {
			err := out.Sync()
			if err != nil {
				fmt.Fprintln(os.Stderr, fmt.Errorf("sync output: %w", err))
				return
			}
		}()
		output = out
	}

	decoder := shsm.Decoder{StrictLayout: *strict, StrictStrings: *strict}
	if *asJSON {
		model, warn, err := decoder.Decode(input)
		if warn != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
			return
		}
		je := json.NewEncoder(output)
		je.SetEscapeHTML(false)
		je.SetIndent("", "\t")
		if err := je.Encode(model); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("encode json: %w", err))
		}
		return
	}
	warn, err := decoder.Dump(output, input)
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("error: %w", err))
	}
}
