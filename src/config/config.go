//Package config loads simulation settings from a YAML file
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"gopkg.in/yaml.v3"

	"gameoflife/src/universe"
)

//File is the on-disk layout of a configuration file
type File struct {
	Width     int            `yaml:"width"`
	Height    int            `yaml:"height"`
	Interval  time.Duration  `yaml:"interval"`
	Fill      string         `yaml:"fill"`
	Seed      uint64         `yaml:"seed"`
	Engine    string         `yaml:"engine"`
	Template  string         `yaml:"template"`
	Templates []TemplateSpec `yaml:"templates"`
}

//TemplateSpec describes a seeding template, cells are [row, column] pairs
type TemplateSpec struct {
	Name        string   `yaml:"name"`
	Description string   `yaml:"description"`
	Cells       [][2]int `yaml:"cells"`
}

//Load reads and parses the file at path
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	f, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return f, nil
}

//Parse decodes a YAML document. Unknown keys are rejected, an empty document is valid
func Parse(data []byte) (*File, error) {
	var f File
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil && !errors.Is(err, io.EOF) {
		return nil, err
	}
	return &f, nil
}

//Options converts the file into simulation options, unset fields stay zero
func (f *File) Options() universe.Options {
	return universe.Options{
		Width:    f.Width,
		Height:   f.Height,
		Interval: f.Interval,
		Fill:     f.Fill,
		Seed:     f.Seed,
		Engine:   universe.Engine(f.Engine),
	}
}

//UniverseTemplates converts the template specs
func (f *File) UniverseTemplates() []universe.Template {
	list := make([]universe.Template, 0, len(f.Templates))
	for _, t := range f.Templates {
		list = append(list, universe.Template{Name: t.Name, Descr: t.Description, Coordinates: t.Cells})
	}
	return list
}
