package tmx

import "strings"

// Layer holds the attributes common to every layer kind.
type Layer struct {
	ID        uint32
	Name      string
	Class     string
	Opacity   float64
	Visible   bool
	OffsetX   float64
	OffsetY   float64
	ParallaxX float64
	ParallaxY float64
	TintColor *Color

	Properties Properties
}

// TileLayer is a layer of tile references. Finite layers fill Tiles in
// row-major order; infinite layers carry a sparse set of Chunks instead.
type TileLayer struct {
	Layer

	Width  uint32
	Height uint32

	// Tiles has Width*Height entries for finite layers, nil for infinite.
	Tiles []RawTileID

	// Chunks is the sparse cell storage of infinite layers.
	Chunks []Chunk
}

// TileAt returns the raw tile at (x, y). For infinite layers the
// coordinates address the sparse chunk space; cells outside every chunk
// are empty.
func (l *TileLayer) TileAt(x, y int) RawTileID {
	if l.Tiles != nil {
		if x < 0 || y < 0 || x >= int(l.Width) || y >= int(l.Height) {
			return 0
		}
		return l.Tiles[y*int(l.Width)+x]
	}
	for i := range l.Chunks {
		c := &l.Chunks[i]
		if x >= c.X && y >= c.Y && x < c.X+int(c.Width) && y < c.Y+int(c.Height) {
			return c.Tiles[(y-c.Y)*int(c.Width)+(x-c.X)]
		}
	}
	return 0
}

// Chunk is a rectangular region of an infinite layer, decoded
// independently and placed at its own origin.
type Chunk struct {
	X, Y   int
	Width  uint32
	Height uint32
	Tiles  []RawTileID
}

// ObjectGroup is a layer of placed objects.
type ObjectGroup struct {
	Layer

	Color     *Color
	DrawOrder string
	Objects   []*Object
}

// ImageLayer is a layer consisting of a single image.
type ImageLayer struct {
	Layer

	Image   *Image
	RepeatX bool
	RepeatY bool
}

// GroupLayer nests other layers.
type GroupLayer struct {
	Layer

	TileLayers   []*TileLayer
	ObjectGroups []*ObjectGroup
	ImageLayers  []*ImageLayer
	Groups       []*GroupLayer
}

type layerAttrsXML struct {
	ID        uint32   `xml:"id,attr"`
	Name      string   `xml:"name,attr"`
	Class     string   `xml:"class,attr"`
	Opacity   *float64 `xml:"opacity,attr"`
	Visible   *bool    `xml:"visible,attr"`
	OffsetX   float64  `xml:"offsetx,attr"`
	OffsetY   float64  `xml:"offsety,attr"`
	ParallaxX *float64 `xml:"parallaxx,attr"`
	ParallaxY *float64 `xml:"parallaxy,attr"`
	TintColor string   `xml:"tintcolor,attr"`

	Properties Properties `xml:"properties"`
}

func (a layerAttrsXML) convert() (Layer, error) {
	l := Layer{
		ID:         a.ID,
		Name:       a.Name,
		Class:      a.Class,
		Opacity:    1,
		Visible:    true,
		OffsetX:    a.OffsetX,
		OffsetY:    a.OffsetY,
		ParallaxX:  1,
		ParallaxY:  1,
		Properties: a.Properties,
	}
	if a.Opacity != nil {
		l.Opacity = *a.Opacity
	}
	if a.Visible != nil {
		l.Visible = *a.Visible
	}
	if a.ParallaxX != nil {
		l.ParallaxX = *a.ParallaxX
	}
	if a.ParallaxY != nil {
		l.ParallaxY = *a.ParallaxY
	}
	if a.TintColor != "" {
		c, err := ParseColor(a.TintColor)
		if err != nil {
			return Layer{}, err
		}
		l.TintColor = &c
	}
	return l, nil
}

type tileLayerXML struct {
	layerAttrsXML
	Width  uint32   `xml:"width,attr"`
	Height uint32   `xml:"height,attr"`
	Data   *dataXML `xml:"data"`
}

type dataXML struct {
	Encoding    string       `xml:"encoding,attr"`
	Compression string       `xml:"compression,attr"`
	Chunks      []chunkXML   `xml:"chunk"`
	Tiles       []tileGIDXML `xml:"tile"`
	Text        string       `xml:",chardata"`
}

type chunkXML struct {
	X      int          `xml:"x,attr"`
	Y      int          `xml:"y,attr"`
	Width  uint32       `xml:"width,attr"`
	Height uint32       `xml:"height,attr"`
	Tiles  []tileGIDXML `xml:"tile"`
	Text   string       `xml:",chardata"`
}

type tileGIDXML struct {
	GID uint32 `xml:"gid,attr"`
}

func (raw *tileLayerXML) convert() (*TileLayer, error) {
	base, err := raw.layerAttrsXML.convert()
	if err != nil {
		return nil, err
	}
	layer := &TileLayer{
		Layer:  base,
		Width:  raw.Width,
		Height: raw.Height,
	}

	if raw.Data == nil {
		return nil, &MalformedAttributeError{Attr: "data"}
	}

	format, err := parseDataFormat(raw.Data.Encoding, raw.Data.Compression)
	if err != nil {
		return nil, err
	}

	if len(raw.Data.Chunks) > 0 {
		for _, c := range raw.Data.Chunks {
			tiles, err := decodeCells(format, c.Text, c.Tiles, int(c.Width), int(c.Height))
			if err != nil {
				return nil, err
			}
			layer.Chunks = append(layer.Chunks, Chunk{
				X:      c.X,
				Y:      c.Y,
				Width:  c.Width,
				Height: c.Height,
				Tiles:  tiles,
			})
		}
		return layer, nil
	}

	layer.Tiles, err = decodeCells(format, raw.Data.Text, raw.Data.Tiles, int(raw.Width), int(raw.Height))
	if err != nil {
		return nil, err
	}
	return layer, nil
}

// decodeCells decodes one blob (finite layer or single chunk) into raw
// tile IDs, dispatching between the per-element plain format and the
// text/binary formats.
func decodeCells(format DataFormat, text string, elems []tileGIDXML, width, height int) ([]RawTileID, error) {
	if format.Encoding == EncodingPlain {
		// Raw text with no declared encoding and no per-tile elements is
		// the deprecated attribute combination, not decodable data.
		if len(elems) == 0 && strings.TrimSpace(text) != "" {
			return nil, &EncodingError{}
		}
		if len(elems) != width*height {
			return nil, &TileDataSizeError{Got: len(elems), Want: width * height, Unit: "cells"}
		}
		tiles := make([]RawTileID, len(elems))
		for i, e := range elems {
			tiles[i] = RawTileID(e.GID)
		}
		return tiles, nil
	}
	return decodeTileData(format, text, width, height)
}

type objectGroupXML struct {
	layerAttrsXML
	Color     string      `xml:"color,attr"`
	DrawOrder string      `xml:"draworder,attr"`
	Objects   []objectXML `xml:"object"`
}

func (raw *objectGroupXML) convert(res *resolver) (*ObjectGroup, error) {
	base, err := raw.layerAttrsXML.convert()
	if err != nil {
		return nil, err
	}
	group := &ObjectGroup{
		Layer:     base,
		DrawOrder: raw.DrawOrder,
	}
	if raw.Color != "" {
		c, err := ParseColor(raw.Color)
		if err != nil {
			return nil, err
		}
		group.Color = &c
	}

	for _, o := range raw.Objects {
		obj, err := res.resolveObject(o)
		if err != nil {
			return nil, err
		}
		group.Objects = append(group.Objects, obj)
	}
	return group, nil
}

type imageLayerXML struct {
	layerAttrsXML
	Image   *imageXML `xml:"image"`
	RepeatX uint8     `xml:"repeatx,attr"`
	RepeatY uint8     `xml:"repeaty,attr"`
}

func (raw *imageLayerXML) convert() (*ImageLayer, error) {
	base, err := raw.layerAttrsXML.convert()
	if err != nil {
		return nil, err
	}
	img, err := raw.Image.convert()
	if err != nil {
		return nil, err
	}
	return &ImageLayer{
		Layer:   base,
		Image:   img,
		RepeatX: raw.RepeatX != 0,
		RepeatY: raw.RepeatY != 0,
	}, nil
}

type groupLayerXML struct {
	layerAttrsXML
	TileLayers   []tileLayerXML   `xml:"layer"`
	ObjectGroups []objectGroupXML `xml:"objectgroup"`
	ImageLayers  []imageLayerXML  `xml:"imagelayer"`
	Groups       []groupLayerXML  `xml:"group"`
}

func (raw *groupLayerXML) convert(res *resolver) (*GroupLayer, error) {
	base, err := raw.layerAttrsXML.convert()
	if err != nil {
		return nil, err
	}
	group := &GroupLayer{Layer: base}

	for i := range raw.TileLayers {
		l, err := raw.TileLayers[i].convert()
		if err != nil {
			return nil, err
		}
		group.TileLayers = append(group.TileLayers, l)
	}
	for i := range raw.ObjectGroups {
		g, err := raw.ObjectGroups[i].convert(res)
		if err != nil {
			return nil, err
		}
		group.ObjectGroups = append(group.ObjectGroups, g)
	}
	for i := range raw.ImageLayers {
		l, err := raw.ImageLayers[i].convert()
		if err != nil {
			return nil, err
		}
		group.ImageLayers = append(group.ImageLayers, l)
	}
	for i := range raw.Groups {
		g, err := raw.Groups[i].convert(res)
		if err != nil {
			return nil, err
		}
		group.Groups = append(group.Groups, g)
	}
	return group, nil
}
