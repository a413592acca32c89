package tmx

import (
	"errors"
	"fmt"
)

// Parse errors that carry no extra data.
var (
	// ErrInvalidTileDimensions reports a tileset whose tile width or height is zero.
	ErrInvalidTileDimensions = errors.New("tmx: invalid tile dimensions (zero width or height)")

	// ErrTemplateNoObject reports a template file without an object element.
	ErrTemplateNoObject = errors.New("tmx: template has no object element")

	// ErrPathNotFile reports a path that is not contained in any directory.
	ErrPathNotFile = errors.New("tmx: path is not contained in any directory")

	// ErrPrematureEnd reports an XML document that ended before it was fully parsed.
	ErrPrematureEnd = errors.New("tmx: premature end of document")

	// ErrNoPatternMatch reports a candidate path matched by none of a world's patterns.
	ErrNoPatternMatch = errors.New("tmx: no world pattern matched")
)

// MalformedAttributeError reports an attribute that was missing, had the
// wrong type or was not formatted correctly.
type MalformedAttributeError struct {
	Attr string
	Err  error
}

func (e *MalformedAttributeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("tmx: malformed attribute %q: %v", e.Attr, e.Err)
	}
	return fmt.Sprintf("tmx: malformed attribute %q", e.Attr)
}

func (e *MalformedAttributeError) Unwrap() error { return e.Err }

// EncodingError reports an unknown encoding or compression format, or an
// invalid combination of both, on a tile layer. Either field may be empty
// when the corresponding attribute was absent.
type EncodingError struct {
	Encoding    string
	Compression string
}

func (e *EncodingError) Error() string {
	if e.Encoding == "" && e.Compression == "" {
		return "tmx: deprecated combination of encoding and compression"
	}
	enc, comp := e.Encoding, e.Compression
	if enc == "" {
		enc = "no"
	}
	if comp == "" {
		comp = "no"
	}
	return fmt.Sprintf("tmx: unsupported tile layer format: %s encoding with %s compression", enc, comp)
}

// CSVDecodeError reports a tile token that failed to parse as an integer.
type CSVDecodeError struct {
	Token string
	Err   error
}

func (e *CSVDecodeError) Error() string {
	return fmt.Sprintf("tmx: csv tile data: bad token %q: %v", e.Token, e.Err)
}

func (e *CSVDecodeError) Unwrap() error { return e.Err }

// DecompressError reports a failure inflating compressed tile data.
type DecompressError struct {
	Compression Compression
	Err         error
}

func (e *DecompressError) Error() string {
	return fmt.Sprintf("tmx: decompressing %s data: %v", e.Compression, e.Err)
}

func (e *DecompressError) Unwrap() error { return e.Err }

// TileDataSizeError reports decoded tile data whose size does not agree
// with the declared layer or chunk geometry.
type TileDataSizeError struct {
	Got  int // bytes or cells, see Unit
	Want int
	Unit string // "bytes" or "cells"
}

func (e *TileDataSizeError) Error() string {
	return fmt.Sprintf("tmx: tile data size mismatch: got %d %s, want %d", e.Got, e.Unit, e.Want)
}

// PropertyValueError reports a property value that could not be coerced
// to its declared type.
type PropertyValueError struct {
	Description string
}

func (e *PropertyValueError) Error() string {
	return fmt.Sprintf("tmx: invalid property value: %s", e.Description)
}

// UnknownPropertyTypeError reports an unrecognized property type name.
// Supported types are string, int, float, bool, color, file and object.
type UnknownPropertyTypeError struct {
	TypeName string
}

func (e *UnknownPropertyTypeError) Error() string {
	return fmt.Sprintf("tmx: unknown property type %q", e.TypeName)
}

// ObjectDataError reports malformed object geometry or attributes.
type ObjectDataError struct {
	Description string
}

func (e *ObjectDataError) Error() string {
	return fmt.Sprintf("tmx: invalid object data: %s", e.Description)
}

// WangIDError reports a wangid attribute that is not a list of eight
// unsigned integers.
type WangIDError struct {
	Read string
}

func (e *WangIDError) Error() string {
	return fmt.Sprintf("tmx: %q is not a valid wangid", e.Read)
}

// ResourceError wraps a failure to open or read a resource, keeping the
// requested path and the underlying cause.
type ResourceError struct {
	Path string
	Err  error
}

func (e *ResourceError) Error() string {
	return fmt.Sprintf("tmx: could not load %q: %v", e.Path, e.Err)
}

func (e *ResourceError) Unwrap() error { return e.Err }

// OverflowError reports overflow in world pattern placement arithmetic.
// Op names the operation that overflowed, e.g. "multiplierX".
type OverflowError struct {
	Op string
}

func (e *OverflowError) Error() string {
	return fmt.Sprintf("tmx: arithmetic overflow on %s", e.Op)
}
