// The siafile-rewrite command decodes a SHSM model file and encodes it again.
package main

import (
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/siafile/siafile"
	"github.com/siafile/siafile/shsm"
)

const usage = `usage: siafile-rewrite [-json] [INPUT] [OUTPUT]

Reads a SIA file from INPUT, and writes to OUTPUT the file produced by encoding
the decoded model. Count fields are recomputed from the decoded lists, so a
well-formed input is reproduced byte for byte.

With -json, INPUT is instead a model in the JSON form written by
siafile-dump -json.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.
`

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	asJSON := flag.Bool("json", false, "read INPUT as a JSON model")
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

	var model *siafile.Model
	if *asJSON {
		model = new(siafile.Model)
		if err := json.NewDecoder(input).Decode(model); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("decode json: %w", err))
			return
		}
	} else {
		var warn, err error
		model, warn, err = shsm.Decoder{}.Decode(input)
		if warn != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("decode warning: %w", warn))
		}
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("decode error: %w", err))
			return
		}
	}

	// The output is created only once the input has decoded.
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

	if err := (shsm.Encoder{}).Encode(output, model); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("encode error: %w", err))
	}
}
