package tileset

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// fileTile is one entry of a tile-set file.
type fileTile struct {
	Borders       []string `yaml:"borders"`
	Asset         string   `yaml:"asset"`
	SelfExcluding bool     `yaml:"self_excluding"`
}

// file is the top-level layout of a tile-set file:
//
//	tiles:
//	  - borders: [AAA, AAA, AAA, AAA]
//	    asset: circuit/0.png
//	  - borders: [ABB, BBB, BBB, BBA]
//	    asset: circuit/5.png
//	    self_excluding: true
type file struct {
	Tiles []fileTile `yaml:"tiles"`
}

// Load decodes base tiles from a YAML tile-set definition.
// The asset field is kept as a string handle. Border counts are not
// checked here; Build reports them as ErrInvalidTileDefinition.
func Load(r io.Reader) ([]BaseTile, error) {
	var f file
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&f); err != nil {
		if err == io.EOF {
			return nil, ErrEmptyTileSet
		}
		return nil, fmt.Errorf("tileset: decode: %w", err)
	}
	if len(f.Tiles) == 0 {
		return nil, ErrEmptyTileSet
	}
	out := make([]BaseTile, len(f.Tiles))
	for i, ft := range f.Tiles {
		borders := make([]Signature, len(ft.Borders))
		for j, s := range ft.Borders {
			borders[j] = Signature(s)
		}
		out[i] = BaseTile{Borders: borders, Asset: ft.Asset, SelfExcluding: ft.SelfExcluding}
	}
	return out, nil
}
