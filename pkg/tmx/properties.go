package tmx

import (
	"encoding/xml"
	"fmt"
	"strconv"
)

// PropertyValue is a typed custom property value.
type PropertyValue interface{ propertyValue() }

type StringValue string
type IntValue int64
type FloatValue float64
type BoolValue bool
type ColorValue Color
type FileValue string

// ObjectValue references an object by ID; 0 means no object.
type ObjectValue uint32

func (StringValue) propertyValue() {}
func (IntValue) propertyValue()    {}
func (FloatValue) propertyValue()  {}
func (BoolValue) propertyValue()   {}
func (ColorValue) propertyValue()  {}
func (FileValue) propertyValue()   {}
func (ObjectValue) propertyValue() {}

// Properties maps property names to their typed values.
type Properties map[string]PropertyValue

// GetString returns the named string property, or "" if absent or not a string.
func (p Properties) GetString(name string) string {
	if v, ok := p[name].(StringValue); ok {
		return string(v)
	}
	return ""
}

// GetInt returns the named int property, or 0 if absent or not an int.
func (p Properties) GetInt(name string) int64 {
	if v, ok := p[name].(IntValue); ok {
		return int64(v)
	}
	return 0
}

// GetBool returns the named bool property, or false if absent or not a bool.
func (p Properties) GetBool(name string) bool {
	if v, ok := p[name].(BoolValue); ok {
		return bool(v)
	}
	return false
}

// Color is an ARGB color parsed from "#AARRGGBB", "#RRGGBB" or the same
// forms without the leading '#'.
type Color struct {
	A, R, G, B uint8
}

// ParseColor parses a Tiled color string. The alpha defaults to opaque
// when the six-digit form is used.
func ParseColor(s string) (Color, error) {
	hex := s
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	switch len(hex) {
	case 6:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, &PropertyValueError{Description: fmt.Sprintf("bad color %q", s)}
		}
		return Color{A: 0xff, R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	case 8:
		v, err := strconv.ParseUint(hex, 16, 32)
		if err != nil {
			return Color{}, &PropertyValueError{Description: fmt.Sprintf("bad color %q", s)}
		}
		return Color{A: uint8(v >> 24), R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v)}, nil
	default:
		return Color{}, &PropertyValueError{Description: fmt.Sprintf("bad color %q", s)}
	}
}

func (c Color) String() string {
	return fmt.Sprintf("#%02x%02x%02x%02x", c.A, c.R, c.G, c.B)
}

// propertiesXML is the on-document shape of a <properties> element.
type propertiesXML struct {
	Properties []propertyXML `xml:"property"`
}

type propertyXML struct {
	Name      string `xml:"name,attr"`
	Type      string `xml:"type,attr"`
	ValueAttr string `xml:"value,attr"`
	// Multiline string properties store the value as element content.
	ValueBody string `xml:",chardata"`
}

func (p propertyXML) value() string {
	if p.ValueAttr != "" {
		return p.ValueAttr
	}
	return p.ValueBody
}

// UnmarshalXML decodes <properties>, coercing each value to its declared type.
func (p *Properties) UnmarshalXML(d *xml.Decoder, start xml.StartElement) error {
	var raw propertiesXML
	if err := d.DecodeElement(&raw, &start); err != nil {
		return err
	}

	out := make(Properties, len(raw.Properties))
	for _, prop := range raw.Properties {
		v, err := coerceProperty(prop.Type, prop.value())
		if err != nil {
			return err
		}
		out[prop.Name] = v
	}
	*p = out
	return nil
}

func coerceProperty(typeName, value string) (PropertyValue, error) {
	switch typeName {
	case "", "string":
		return StringValue(value), nil
	case "int":
		v, err := strconv.ParseInt(value, 10, 64)
		if err != nil {
			return nil, &PropertyValueError{Description: fmt.Sprintf("bad int %q", value)}
		}
		return IntValue(v), nil
	case "float":
		v, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return nil, &PropertyValueError{Description: fmt.Sprintf("bad float %q", value)}
		}
		return FloatValue(v), nil
	case "bool":
		switch value {
		case "true":
			return BoolValue(true), nil
		case "false":
			return BoolValue(false), nil
		}
		return nil, &PropertyValueError{Description: fmt.Sprintf("bad bool %q", value)}
	case "color":
		c, err := ParseColor(value)
		if err != nil {
			return nil, err
		}
		return ColorValue(c), nil
	case "file":
		return FileValue(value), nil
	case "object":
		if value == "" {
			return ObjectValue(0), nil
		}
		v, err := strconv.ParseUint(value, 10, 32)
		if err != nil {
			return nil, &PropertyValueError{Description: fmt.Sprintf("bad object id %q", value)}
		}
		return ObjectValue(v), nil
	default:
		return nil, &UnknownPropertyTypeError{TypeName: typeName}
	}
}
