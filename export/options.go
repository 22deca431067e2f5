package export

import (
	"os"

	yaml "gopkg.in/yaml.v2"
)

// Options controls the conversion of a model to glTF.
type Options struct {
	// TextureRoot is prepended to texture paths to form image URIs.
	TextureRoot string `yaml:"texture_root"`
	// TextureExt is appended to texture paths, which are stored without an
	// extension.
	TextureExt string `yaml:"texture_ext"`
	// FlipV replaces each V texture coordinate with 1-V.
	FlipV bool `yaml:"flip_v"`
	// Scale multiplies every position.
	Scale float32 `yaml:"scale"`
	// Binary selects the GLB container instead of JSON with embedded
	// buffers.
	Binary bool `yaml:"binary"`
}

// DefaultOptions returns the options used when none are given.
func DefaultOptions() Options {
	return Options{
		TextureExt: ".dds",
		Scale:      1,
		Binary:     true,
	}
}

// LoadOptions reads options from a YAML file. Fields missing from the file
// keep their default values.
func LoadOptions(path string) (Options, error) {
	opts := DefaultOptions()
	f, err := os.Open(path)
	if err != nil {
		return opts, err
	}
	defer f.Close()
	d := yaml.NewDecoder(f)
	d.SetStrict(true)
	if err := d.Decode(&opts); err != nil {
		return opts, err
	}
	return opts, nil
}
