package tmx

import (
	"bytes"
	"compress/gzip"
	"compress/zlib"
	"encoding/base64"
	"encoding/binary"
	"io"
	"strconv"
	"strings"

	"github.com/klauspost/compress/zstd"
)

// Encoding identifies how a tile layer's payload is stored in the document.
type Encoding int

const (
	// EncodingPlain is the legacy one-XML-element-per-tile format.
	EncodingPlain Encoding = iota
	EncodingCSV
	EncodingBase64
)

func (e Encoding) String() string {
	switch e {
	case EncodingPlain:
		return "plain"
	case EncodingCSV:
		return "csv"
	case EncodingBase64:
		return "base64"
	default:
		return "unknown"
	}
}

// Compression identifies the stream format wrapped around base64 payloads.
type Compression int

const (
	CompressionNone Compression = iota
	CompressionZlib
	CompressionGzip
	CompressionZstd
)

func (c Compression) String() string {
	switch c {
	case CompressionNone:
		return "none"
	case CompressionZlib:
		return "zlib"
	case CompressionGzip:
		return "gzip"
	case CompressionZstd:
		return "zstd"
	default:
		return "unknown"
	}
}

// DataFormat is an explicit (encoding, compression) pairing. Only the
// combinations Tiled emits are representable; everything else is rejected
// by parseDataFormat with an EncodingError.
type DataFormat struct {
	Encoding    Encoding
	Compression Compression
}

// parseDataFormat maps the encoding/compression attribute pair of a <data>
// element to a DataFormat. Absent attributes come in as empty strings; the
// legacy default of both absent is the plain per-tile-element format.
func parseDataFormat(encoding, compression string) (DataFormat, error) {
	switch {
	case encoding == "" && compression == "":
		return DataFormat{EncodingPlain, CompressionNone}, nil
	case encoding == "csv" && compression == "":
		return DataFormat{EncodingCSV, CompressionNone}, nil
	case encoding == "base64":
		switch compression {
		case "":
			return DataFormat{EncodingBase64, CompressionNone}, nil
		case "zlib":
			return DataFormat{EncodingBase64, CompressionZlib}, nil
		case "gzip":
			return DataFormat{EncodingBase64, CompressionGzip}, nil
		case "zstd":
			return DataFormat{EncodingBase64, CompressionZstd}, nil
		}
	}
	return DataFormat{}, &EncodingError{Encoding: encoding, Compression: compression}
}

// decodeTileData turns one payload into raw tile IDs for a region of
// width x height cells. For EncodingPlain the caller already has per-tile
// elements and must not call this.
func decodeTileData(format DataFormat, payload string, width, height int) ([]RawTileID, error) {
	var tiles []RawTileID
	var err error

	switch format.Encoding {
	case EncodingCSV:
		tiles, err = decodeCSV(payload)
	case EncodingBase64:
		tiles, err = decodeBase64(payload, format.Compression)
	default:
		return nil, &EncodingError{Encoding: format.Encoding.String(), Compression: format.Compression.String()}
	}
	if err != nil {
		return nil, err
	}

	if want := width * height; len(tiles) != want {
		return nil, &TileDataSizeError{Got: len(tiles), Want: want, Unit: "cells"}
	}
	return tiles, nil
}

// decodeCSV parses a comma-separated list of decimal tile IDs. Whitespace
// around tokens is ignored; the first bad token aborts the decode.
func decodeCSV(payload string) ([]RawTileID, error) {
	fields := strings.Split(payload, ",")
	tiles := make([]RawTileID, 0, len(fields))
	for _, field := range fields {
		token := strings.TrimSpace(field)
		if token == "" {
			continue
		}
		v, err := strconv.ParseUint(token, 10, 32)
		if err != nil {
			return nil, &CSVDecodeError{Token: token, Err: err}
		}
		tiles = append(tiles, RawTileID(v))
	}
	return tiles, nil
}

// decodeBase64 decodes a base64 payload, inflates it if compressed, and
// reads the result as little-endian 32-bit tile IDs.
func decodeBase64(payload string, compression Compression) ([]RawTileID, error) {
	data, err := base64.StdEncoding.DecodeString(strings.TrimSpace(payload))
	if err != nil {
		return nil, err
	}

	data, err = decompress(data, compression)
	if err != nil {
		return nil, err
	}

	if len(data)%4 != 0 {
		return nil, &TileDataSizeError{Got: len(data), Want: len(data) &^ 3, Unit: "bytes"}
	}

	tiles := make([]RawTileID, len(data)/4)
	for i := range tiles {
		tiles[i] = RawTileID(binary.LittleEndian.Uint32(data[i*4:]))
	}
	return tiles, nil
}

func decompress(data []byte, compression Compression) ([]byte, error) {
	switch compression {
	case CompressionNone:
		return data, nil

	case CompressionZlib:
		reader, err := zlib.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		defer reader.Close()
		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		return result, nil

	case CompressionGzip:
		reader, err := gzip.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		defer reader.Close()
		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		return result, nil

	case CompressionZstd:
		reader, err := zstd.NewReader(bytes.NewReader(data))
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		defer reader.Close()
		result, err := io.ReadAll(reader)
		if err != nil {
			return nil, &DecompressError{Compression: compression, Err: err}
		}
		return result, nil

	default:
		return nil, &EncodingError{Encoding: EncodingBase64.String(), Compression: compression.String()}
	}
}
