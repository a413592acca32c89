package tmx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"strings"
)

// wrapXMLError attaches the document path to an XML decoding failure,
// normalizing truncated documents to ErrPrematureEnd.
func wrapXMLError(source string, err error) error {
	var syn *xml.SyntaxError
	if errors.Is(err, io.ErrUnexpectedEOF) || errors.Is(err, io.EOF) ||
		(errors.As(err, &syn) && strings.Contains(syn.Msg, "unexpected EOF")) {
		return fmt.Errorf("tmx: parsing %s: %w", source, ErrPrematureEnd)
	}
	return fmt.Errorf("tmx: parsing %s: %w", source, err)
}

// Orientation is the map projection declared by the document.
type Orientation string

const (
	Orthogonal Orientation = "orthogonal"
	Isometric  Orientation = "isometric"
	Staggered  Orientation = "staggered"
	Hexagonal  Orientation = "hexagonal"
)

// Map is a fully linked parsed map: every external tileset and template
// reference has been resolved through the loader's cache.
type Map struct {
	// Source is the path the map was loaded from.
	Source string

	Version     string
	Class       string
	Orientation Orientation
	RenderOrder string
	Width       uint32
	Height      uint32
	TileWidth   uint32
	TileHeight  uint32
	Infinite    bool

	BackgroundColor *Color
	Properties      Properties

	// Tilesets are ordered by appearance in the document. External
	// tilesets are shared cache objects; two maps referencing the same
	// .tsx file hold the same *Tileset.
	Tilesets []*TilesetRef

	TileLayers   []*TileLayer
	ObjectGroups []*ObjectGroup
	ImageLayers  []*ImageLayer
	Groups       []*GroupLayer
}

// TilesetRef binds a tileset to the GID range it occupies in one map.
type TilesetRef struct {
	FirstGID uint32
	Tileset  *Tileset
}

// TilesetForGID returns the tileset reference a global tile ID falls into,
// or nil for GID 0 and out-of-range IDs.
func (m *Map) TilesetForGID(gid uint32) *TilesetRef {
	if gid == 0 {
		return nil
	}
	var best *TilesetRef
	for _, ref := range m.Tilesets {
		if ref.FirstGID <= gid && (best == nil || ref.FirstGID > best.FirstGID) {
			best = ref
		}
	}
	return best
}

type mapXML struct {
	Version         string `xml:"version,attr"`
	Class           string `xml:"class,attr"`
	Orientation     string `xml:"orientation,attr"`
	RenderOrder     string `xml:"renderorder,attr"`
	Width           uint32 `xml:"width,attr"`
	Height          uint32 `xml:"height,attr"`
	TileWidth       uint32 `xml:"tilewidth,attr"`
	TileHeight      uint32 `xml:"tileheight,attr"`
	Infinite        uint8  `xml:"infinite,attr"`
	BackgroundColor string `xml:"backgroundcolor,attr"`

	Properties   Properties       `xml:"properties"`
	Tilesets     []tilesetXML     `xml:"tileset"`
	TileLayers   []tileLayerXML   `xml:"layer"`
	ObjectGroups []objectGroupXML `xml:"objectgroup"`
	ImageLayers  []imageLayerXML  `xml:"imagelayer"`
	Groups       []groupLayerXML  `xml:"group"`
}

// resolver carries the context needed while converting one document:
// the loader for external references and the document's own path for
// relative resolution.
type resolver struct {
	loader *Loader
	source string
}

// resolveObject converts one placed object, instantiating its template
// first when it references one.
func (r *resolver) resolveObject(o objectXML) (*Object, error) {
	if o.Template == "" {
		return o.convert()
	}

	tmpl, err := r.loader.LoadTemplate(resolveRelative(r.source, o.Template))
	if err != nil {
		return nil, err
	}

	obj, err := o.merge(tmpl.raw).convert()
	if err != nil {
		return nil, err
	}
	obj.Template = tmpl
	return obj, nil
}

// resolveTileset turns one <tileset> element into a TilesetRef, going
// through the cache for external references.
func (r *resolver) resolveTileset(raw *tilesetXML) (*TilesetRef, error) {
	if raw.Source == "" {
		ts, err := convertTileset(raw, r.source)
		if err != nil {
			return nil, err
		}
		return &TilesetRef{FirstGID: raw.FirstGID, Tileset: ts}, nil
	}

	ts, err := r.loader.LoadTileset(resolveRelative(r.source, raw.Source))
	if err != nil {
		return nil, err
	}
	return &TilesetRef{FirstGID: raw.FirstGID, Tileset: ts}, nil
}

// parseMap parses a .tmx document, resolving external references through
// the loader. Either a complete map is returned or the first error.
func parseMap(loader *Loader, data []byte, source string) (*Map, error) {
	var raw mapXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, wrapXMLError(source, err)
	}

	orientation := Orientation(raw.Orientation)
	switch orientation {
	case Orthogonal, Isometric, Staggered, Hexagonal:
	default:
		return nil, &MalformedAttributeError{Attr: "orientation"}
	}

	m := &Map{
		Source:      source,
		Version:     raw.Version,
		Class:       raw.Class,
		Orientation: orientation,
		RenderOrder: raw.RenderOrder,
		Width:       raw.Width,
		Height:      raw.Height,
		TileWidth:   raw.TileWidth,
		TileHeight:  raw.TileHeight,
		Infinite:    raw.Infinite != 0,
		Properties:  raw.Properties,
	}
	if raw.BackgroundColor != "" {
		c, err := ParseColor(raw.BackgroundColor)
		if err != nil {
			return nil, err
		}
		m.BackgroundColor = &c
	}

	res := &resolver{loader: loader, source: source}

	for i := range raw.Tilesets {
		ref, err := res.resolveTileset(&raw.Tilesets[i])
		if err != nil {
			return nil, err
		}
		m.Tilesets = append(m.Tilesets, ref)
	}

	for i := range raw.TileLayers {
		l, err := raw.TileLayers[i].convert()
		if err != nil {
			return nil, err
		}
		m.TileLayers = append(m.TileLayers, l)
	}
	for i := range raw.ObjectGroups {
		g, err := raw.ObjectGroups[i].convert(res)
		if err != nil {
			return nil, err
		}
		m.ObjectGroups = append(m.ObjectGroups, g)
	}
	for i := range raw.ImageLayers {
		l, err := raw.ImageLayers[i].convert()
		if err != nil {
			return nil, err
		}
		m.ImageLayers = append(m.ImageLayers, l)
	}
	for i := range raw.Groups {
		g, err := raw.Groups[i].convert(res)
		if err != nil {
			return nil, err
		}
		m.Groups = append(m.Groups, g)
	}

	return m, nil
}

type templateXML struct {
	Tileset *tilesetXML `xml:"tileset"`
	Object  *objectXML  `xml:"object"`
}

// parseTemplate parses a .tx document. The template's object element is
// mandatory; its tileset reference, if any, resolves through the cache.
func parseTemplate(loader *Loader, data []byte, source string) (*Template, error) {
	var raw templateXML
	if err := xml.Unmarshal(data, &raw); err != nil {
		return nil, wrapXMLError(source, err)
	}

	if raw.Object == nil {
		return nil, ErrTemplateNoObject
	}

	tmpl := &Template{Source: source, raw: *raw.Object}

	if raw.Tileset != nil {
		res := &resolver{loader: loader, source: source}
		ref, err := res.resolveTileset(raw.Tileset)
		if err != nil {
			return nil, err
		}
		tmpl.Tileset = ref
	}

	obj, err := raw.Object.convert()
	if err != nil {
		return nil, err
	}
	tmpl.Object = obj

	return tmpl, nil
}
