package tmx

import (
	"fmt"
	"strconv"
	"strings"
)

// Object is a placed map object. Position and size are in pixels.
type Object struct {
	ID       uint32
	Name     string
	Class    string
	X, Y     float64
	Width    float64
	Height   float64
	Rotation float64
	Visible  bool

	// Tile is the raw tile reference for tile objects, 0 otherwise.
	Tile RawTileID

	Shape      ObjectShape
	Properties Properties

	// Template is the resolved template this object was instantiated
	// from, nil for plain objects.
	Template *Template
}

// ObjectShape is the geometry variant of an object. An object with a nil
// shape is a plain rectangle.
type ObjectShape interface{ objectShape() }

type EllipseShape struct{}
type PointShape struct{}

type PolygonShape struct{ Points []Point }
type PolylineShape struct{ Points []Point }

// TextShape is a text object. Only the attributes needed to reconstruct
// the content are kept.
type TextShape struct {
	Content    string
	FontFamily string
	PixelSize  uint32
	Wrap       bool
	Color      *Color
}

func (EllipseShape) objectShape()  {}
func (PointShape) objectShape()    {}
func (PolygonShape) objectShape()  {}
func (PolylineShape) objectShape() {}
func (TextShape) objectShape()     {}

// Point is a polygon/polyline vertex relative to the object position.
type Point struct {
	X, Y float64
}

// Template is a reusable object definition loaded from a .tx file and
// shared through the resource cache.
type Template struct {
	Source string
	// Tileset is the tileset referenced by the template's tile object,
	// nil when the template object is not a tile object.
	Tileset *TilesetRef
	Object  *Object

	raw objectXML
}

type objectXML struct {
	ID       uint32   `xml:"id,attr"`
	Name     *string  `xml:"name,attr"`
	Class    *string  `xml:"type,attr"`
	Template string   `xml:"template,attr"`
	GID      *uint32  `xml:"gid,attr"`
	X        *float64 `xml:"x,attr"`
	Y        *float64 `xml:"y,attr"`
	Width    *float64 `xml:"width,attr"`
	Height   *float64 `xml:"height,attr"`
	Rotation *float64 `xml:"rotation,attr"`
	Visible  *bool    `xml:"visible,attr"`

	Ellipse  *struct{}  `xml:"ellipse"`
	Point    *struct{}  `xml:"point"`
	Polygon  *pointsXML `xml:"polygon"`
	Polyline *pointsXML `xml:"polyline"`
	Text     *textXML   `xml:"text"`

	Properties Properties `xml:"properties"`
}

type pointsXML struct {
	Points string `xml:"points,attr"`
}

type textXML struct {
	Content    string `xml:",chardata"`
	FontFamily string `xml:"fontfamily,attr"`
	PixelSize  uint32 `xml:"pixelsize,attr"`
	Wrap       uint8  `xml:"wrap,attr"`
	Color      string `xml:"color,attr"`
}

// merge overlays instance attributes on top of a template's object.
// Instance attributes always win; id, x and y are never inherited.
func (o objectXML) merge(tmpl objectXML) objectXML {
	merged := tmpl
	merged.ID = o.ID
	merged.X = o.X
	merged.Y = o.Y
	merged.Template = o.Template
	if o.Name != nil {
		merged.Name = o.Name
	}
	if o.Class != nil {
		merged.Class = o.Class
	}
	if o.GID != nil {
		merged.GID = o.GID
	}
	if o.Width != nil {
		merged.Width = o.Width
	}
	if o.Height != nil {
		merged.Height = o.Height
	}
	if o.Rotation != nil {
		merged.Rotation = o.Rotation
	}
	if o.Visible != nil {
		merged.Visible = o.Visible
	}
	if o.Ellipse != nil || o.Point != nil || o.Polygon != nil || o.Polyline != nil || o.Text != nil {
		merged.Ellipse, merged.Point = o.Ellipse, o.Point
		merged.Polygon, merged.Polyline = o.Polygon, o.Polyline
		merged.Text = o.Text
	}
	if o.Properties != nil {
		if merged.Properties == nil {
			merged.Properties = o.Properties
		} else {
			props := make(Properties, len(merged.Properties)+len(o.Properties))
			for k, v := range merged.Properties {
				props[k] = v
			}
			for k, v := range o.Properties {
				props[k] = v
			}
			merged.Properties = props
		}
	}
	return merged
}

func (o objectXML) convert() (*Object, error) {
	obj := &Object{
		ID:      o.ID,
		Visible: true,
	}
	if o.Name != nil {
		obj.Name = *o.Name
	}
	if o.Class != nil {
		obj.Class = *o.Class
	}
	if o.X != nil {
		obj.X = *o.X
	}
	if o.Y != nil {
		obj.Y = *o.Y
	}
	if o.Width != nil {
		obj.Width = *o.Width
	}
	if o.Height != nil {
		obj.Height = *o.Height
	}
	if o.Rotation != nil {
		obj.Rotation = *o.Rotation
	}
	if o.Visible != nil {
		obj.Visible = *o.Visible
	}
	if o.GID != nil {
		obj.Tile = RawTileID(*o.GID)
	}
	obj.Properties = o.Properties

	shape, err := o.shape()
	if err != nil {
		return nil, err
	}
	obj.Shape = shape
	return obj, nil
}

func (o objectXML) shape() (ObjectShape, error) {
	switch {
	case o.Ellipse != nil:
		return EllipseShape{}, nil
	case o.Point != nil:
		return PointShape{}, nil
	case o.Polygon != nil:
		points, err := parsePoints(o.Polygon.Points)
		if err != nil {
			return nil, err
		}
		return PolygonShape{Points: points}, nil
	case o.Polyline != nil:
		points, err := parsePoints(o.Polyline.Points)
		if err != nil {
			return nil, err
		}
		return PolylineShape{Points: points}, nil
	case o.Text != nil:
		text := TextShape{
			Content:    strings.TrimSpace(o.Text.Content),
			FontFamily: o.Text.FontFamily,
			PixelSize:  o.Text.PixelSize,
			Wrap:       o.Text.Wrap != 0,
		}
		if o.Text.Color != "" {
			c, err := ParseColor(o.Text.Color)
			if err != nil {
				return nil, err
			}
			text.Color = &c
		}
		return text, nil
	default:
		return nil, nil
	}
}

// parsePoints parses a points attribute: space-separated "x,y" pairs.
func parsePoints(s string) ([]Point, error) {
	fields := strings.Fields(s)
	points := make([]Point, 0, len(fields))
	for _, field := range fields {
		xs, ys, ok := strings.Cut(field, ",")
		if !ok {
			return nil, &ObjectDataError{Description: fmt.Sprintf("bad point %q", field)}
		}
		x, err := strconv.ParseFloat(xs, 64)
		if err != nil {
			return nil, &ObjectDataError{Description: fmt.Sprintf("bad point %q", field)}
		}
		y, err := strconv.ParseFloat(ys, 64)
		if err != nil {
			return nil, &ObjectDataError{Description: fmt.Sprintf("bad point %q", field)}
		}
		points = append(points, Point{X: x, Y: y})
	}
	return points, nil
}
