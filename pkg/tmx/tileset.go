package tmx

import (
	"encoding/xml"
)

// Tileset is a parsed tileset, either embedded in a map or loaded from an
// external .tsx file. External tilesets are shared through the resource
// cache and must not be mutated after parsing.
type Tileset struct {
	// Source is the canonical path of the .tsx file, or the path of the
	// containing map for embedded tilesets.
	Source string

	Name       string
	Class      string
	TileWidth  uint32
	TileHeight uint32
	Spacing    uint32
	Margin     uint32
	TileCount  uint32
	Columns    uint32

	// Image is the spritesheet image, nil for image-collection tilesets.
	Image *Image

	// OffsetX and OffsetY shift tiles of this set when drawn.
	OffsetX int32
	OffsetY int32

	Properties Properties
	WangSets   []WangSet

	tiles map[uint32]*TilesetTile
}

// Tile returns the explicit definition of the tile with the given local ID,
// if the tileset carries one. Tiles that only exist as spritesheet cells
// have no explicit definition.
func (t *Tileset) Tile(id uint32) (*TilesetTile, bool) {
	tile, ok := t.tiles[id]
	return tile, ok
}

// TilesetTile is a tile with explicit data: its own image (for image
// collection tilesets), properties, or animation frames.
type TilesetTile struct {
	ID         uint32
	Class      string
	Image      *Image
	Properties Properties
	Animation  []Frame
}

// Frame is one step of a tile animation.
type Frame struct {
	TileID     uint32
	DurationMS uint32
}

// Image describes a referenced image file.
type Image struct {
	Source string
	Width  int32
	Height int32
	// Transparent is the color to treat as transparent, if declared.
	Transparent *Color
}

type tilesetXML struct {
	FirstGID   uint32  `xml:"firstgid,attr"`
	Source     string  `xml:"source,attr"`
	Name       string  `xml:"name,attr"`
	Class      string  `xml:"class,attr"`
	TileWidth  uint32  `xml:"tilewidth,attr"`
	TileHeight uint32  `xml:"tileheight,attr"`
	Spacing    uint32  `xml:"spacing,attr"`
	Margin     uint32  `xml:"margin,attr"`
	TileCount  uint32  `xml:"tilecount,attr"`
	Columns    uint32  `xml:"columns,attr"`
	TileOffset *struct {
		X int32 `xml:"x,attr"`
		Y int32 `xml:"y,attr"`
	} `xml:"tileoffset"`
	Image      *imageXML    `xml:"image"`
	Tiles      []tileXML    `xml:"tile"`
	WangSets   []wangSetXML `xml:"wangsets>wangset"`
	Properties Properties   `xml:"properties"`
}

type tileXML struct {
	ID         uint32     `xml:"id,attr"`
	Class      string     `xml:"type,attr"`
	Image      *imageXML  `xml:"image"`
	Properties Properties `xml:"properties"`
	Animation  []struct {
		TileID   uint32 `xml:"tileid,attr"`
		Duration uint32 `xml:"duration,attr"`
	} `xml:"animation>frame"`
}

type imageXML struct {
	Source string `xml:"source,attr"`
	Trans  string `xml:"trans,attr"`
	Width  int32  `xml:"width,attr"`
	Height int32  `xml:"height,attr"`
}

func (i *imageXML) convert() (*Image, error) {
	if i == nil {
		return nil, nil
	}
	img := &Image{Source: i.Source, Width: i.Width, Height: i.Height}
	if i.Trans != "" {
		c, err := ParseColor(i.Trans)
		if err != nil {
			return nil, err
		}
		img.Transparent = &c
	}
	return img, nil
}

// convertTileset builds a Tileset from its document form. Zero tile
// dimensions are rejected here, before any tile is looked at.
func convertTileset(raw *tilesetXML, source string) (*Tileset, error) {
	if raw.TileWidth == 0 || raw.TileHeight == 0 {
		return nil, ErrInvalidTileDimensions
	}

	ts := &Tileset{
		Source:     source,
		Name:       raw.Name,
		Class:      raw.Class,
		TileWidth:  raw.TileWidth,
		TileHeight: raw.TileHeight,
		Spacing:    raw.Spacing,
		Margin:     raw.Margin,
		TileCount:  raw.TileCount,
		Columns:    raw.Columns,
		Properties: raw.Properties,
		tiles:      make(map[uint32]*TilesetTile, len(raw.Tiles)),
	}
	if raw.TileOffset != nil {
		ts.OffsetX = raw.TileOffset.X
		ts.OffsetY = raw.TileOffset.Y
	}

	img, err := raw.Image.convert()
	if err != nil {
		return nil, err
	}
	ts.Image = img

	for _, t := range raw.Tiles {
		tile := &TilesetTile{
			ID:         t.ID,
			Class:      t.Class,
			Properties: t.Properties,
		}
		tile.Image, err = t.Image.convert()
		if err != nil {
			return nil, err
		}
		for _, f := range t.Animation {
			tile.Animation = append(tile.Animation, Frame{TileID: f.TileID, DurationMS: f.Duration})
		}
		ts.tiles[t.ID] = tile
	}

	for _, ws := range raw.WangSets {
		wangSet, err := ws.convert()
		if err != nil {
			return nil, err
		}
		ts.WangSets = append(ts.WangSets, wangSet)
	}

	return ts, nil
}

// parseTileset parses a standalone .tsx document.
func parseTileset(data []byte, source string) (*Tileset, error) {
	var raw tilesetXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, wrapXMLError(source, err)
	}
	return convertTileset(&raw, source)
}
