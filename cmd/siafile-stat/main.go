// The siafile-stat command displays stats for a SHSM model file.
package main

import (
	"bytes"
	"encoding/json"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/siafile/siafile"
	"github.com/siafile/siafile/shsm"
)

const usage = `usage: siafile-stat [INPUT] [OUTPUT]

Reads a SIA file from INPUT, and writes to OUTPUT statistics for the file,
including whether re-encoding the decoded model reproduces the input.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.
`

type Stats struct {
	// Binary format data.
	Format shsm.DecoderStats

	// Result of re-encoding the decoded model.
	RoundTrip *shsm.Report `json:",omitempty"`

	// Number of textures per kind.
	TextureKinds map[string]int

	// Number of meshes per material kind.
	MaterialKinds map[string]int

	// Number of instances per path.
	InstancePaths map[string]int `json:",omitempty"`
}

func (s *Stats) Fill(model *siafile.Model) {
	if model == nil {
		return
	}

	s.TextureKinds = map[string]int{}
	s.MaterialKinds = map[string]int{}
	for _, mesh := range model.Meshes {
		s.MaterialKinds[mesh.MaterialKind]++
		for _, mat := range mesh.Materials {
			for _, tex := range mat.Textures {
				s.TextureKinds[tex.Kind.String()]++
			}
		}
	}

	s.InstancePaths = map[string]int{}
	for _, inst := range model.Instances {
		s.InstancePaths[inst.Path]++
	}
}

func main() {
	var input io.Reader = os.Stdin
	var output io.Writer = os.Stdout

	flag.Usage = func() { fmt.Fprintf(flag.CommandLine.Output(), usage) }
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

	b, err := io.ReadAll(input)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("read input: %w", err))
		return
	}

	var stats Stats
	decoder := shsm.Decoder{Stats: &stats.Format}
	model, warn, err := decoder.Decode(bytes.NewReader(b))
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("decode warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("decode error: %w", err))
	}

	stats.Fill(model)
	if model != nil {
		report, _, err := shsm.Decoder{}.Verify(b)
		if err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("verify error: %w", err))
		}
		stats.RoundTrip = report
	}

	je := json.NewEncoder(output)
	je.SetEscapeHTML(false)
	je.SetIndent("", "\t")
	if err := je.Encode(stats); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write error: %w", err))
	}
}
