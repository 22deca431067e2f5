// The siafile-gltf command converts a SHSM model file to glTF.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/siafile/siafile/export"
	"github.com/siafile/siafile/shsm"
)

const usage = `usage: siafile-gltf [OPTIONS] [INPUT] [OUTPUT]

Reads a SIA file from INPUT, and writes to OUTPUT a glTF document containing
its meshes, materials, and instances.

INPUT and OUTPUT are paths to files. If INPUT is "-" or unspecified, then stdin
is used. If OUTPUT is "-" or unspecified, then stdout is used. Warnings and
errors are written to stderr.

Options are read from the YAML file given by -config, then overridden by any
flags that are set.

Options:
`

func main() {
	var input io.Reader = os.Stdin

	config := flag.String("config", "", "path to a YAML options file")
	textureRoot := flag.String("texture-root", "", "directory prepended to texture URIs")
	textureExt := flag.String("texture-ext", "", "extension appended to texture URIs")
	flipV := flag.Bool("flip-v", false, "flip V texture coordinates")
	scale := flag.Float64("scale", 0, "scale applied to positions")
	text := flag.Bool("json", false, "write JSON with embedded buffers instead of GLB")
	flag.Usage = func() {
		fmt.Fprintf(flag.CommandLine.Output(), usage)
		flag.PrintDefaults()
	}
	flag.Parse()

	opts := export.DefaultOptions()
	if *config != "" {
		var err error
		if opts, err = export.LoadOptions(*config); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("load options: %w", err))
			return
		}
	}
	flag.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "texture-root":
			opts.TextureRoot = *textureRoot
		case "texture-ext":
			opts.TextureExt = *textureExt
		case "flip-v":
			opts.FlipV = *flipV
		case "scale":
			opts.Scale = float32(*scale)
		case "json":
			opts.Binary = !*text
		}
	})

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

	model, warn, err := shsm.Decoder{}.Decode(input)
	if warn != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("decode warning: %w", warn))
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("decode error: %w", err))
		return
	}

	doc, err := export.ToGLTF(model, opts)
	if err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("convert error: %w", err))
		return
	}

	if len(args) >= 2 && args[1] != "-" {
		if err := export.Save(doc, args[1], opts.Binary); err != nil {
			fmt.Fprintln(os.Stderr, fmt.Errorf("save error: %w", err))
		}
		return
	}
	if err := export.Write(os.Stdout, doc, opts.Binary); err != nil {
		fmt.Fprintln(os.Stderr, fmt.Errorf("write error: %w", err))
	}
}
