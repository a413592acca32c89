package tmx

import (
	"strconv"
	"strings"
)

// WangSet groups wang colors and per-tile wang IDs for terrain matching.
type WangSet struct {
	Name       string
	Tile       int64
	Colors     []WangColor
	Tiles      map[uint32]WangID
	Properties Properties
}

// WangColor is one corner/edge color of a wang set.
type WangColor struct {
	Name        string
	Color       Color
	Tile        int64
	Probability float64
	Properties  Properties
}

// WangID is the eight corner/edge color indices of a tile, clockwise from
// the top edge. 0 means unset.
type WangID [8]uint32

type wangSetXML struct {
	Name   string `xml:"name,attr"`
	Tile   int64  `xml:"tile,attr"`
	Colors []struct {
		Name        string     `xml:"name,attr"`
		Color       string     `xml:"color,attr"`
		Tile        int64      `xml:"tile,attr"`
		Probability float64    `xml:"probability,attr"`
		Properties  Properties `xml:"properties"`
	} `xml:"wangcolor"`
	Tiles []struct {
		TileID uint32 `xml:"tileid,attr"`
		WangID string `xml:"wangid,attr"`
	} `xml:"wangtile"`
	Properties Properties `xml:"properties"`
}

func (raw wangSetXML) convert() (WangSet, error) {
	ws := WangSet{
		Name:       raw.Name,
		Tile:       raw.Tile,
		Tiles:      make(map[uint32]WangID, len(raw.Tiles)),
		Properties: raw.Properties,
	}

	for _, c := range raw.Colors {
		color, err := ParseColor(c.Color)
		if err != nil {
			return WangSet{}, err
		}
		ws.Colors = append(ws.Colors, WangColor{
			Name:        c.Name,
			Color:       color,
			Tile:        c.Tile,
			Probability: c.Probability,
			Properties:  c.Properties,
		})
	}

	for _, t := range raw.Tiles {
		id, err := parseWangID(t.WangID)
		if err != nil {
			return WangSet{}, err
		}
		ws.Tiles[t.TileID] = id
	}

	return ws, nil
}

// parseWangID parses a wangid attribute: eight comma-separated unsigned
// integers, e.g. "0,1,0,1,0,1,0,1".
func parseWangID(s string) (WangID, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 8 {
		return WangID{}, &WangIDError{Read: s}
	}
	var id WangID
	for i, part := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(part), 10, 32)
		if err != nil {
			return WangID{}, &WangIDError{Read: s}
		}
		id[i] = uint32(v)
	}
	return id, nil
}
