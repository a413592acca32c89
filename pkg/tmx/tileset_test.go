package tmx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestParseTileset_Sheet(t *testing.T) {
	ts, err := parseTileset([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<tileset version="1.10" name="terrain" tilewidth="16" tileheight="16" spacing="1" margin="2" tilecount="64" columns="8">
 <tileoffset x="0" y="-8"/>
 <image source="terrain.png" trans="ff00ff" width="135" height="135"/>
</tileset>`), "terrain.tsx")
	if err != nil {
		t.Fatalf("parseTileset failed: %v", err)
	}

	if ts.Name != "terrain" || ts.TileWidth != 16 || ts.TileHeight != 16 {
		t.Errorf("attributes = %+v", ts)
	}
	if ts.Spacing != 1 || ts.Margin != 2 || ts.TileCount != 64 || ts.Columns != 8 {
		t.Errorf("sheet geometry = %+v", ts)
	}
	if ts.OffsetY != -8 {
		t.Errorf("tile offset y = %d", ts.OffsetY)
	}
	if ts.Image == nil || ts.Image.Source != "terrain.png" {
		t.Fatal("image not parsed")
	}
	if ts.Image.Transparent == nil || (*ts.Image.Transparent != Color{A: 0xff, R: 0xff, G: 0, B: 0xff}) {
		t.Errorf("transparent color = %v", ts.Image.Transparent)
	}
}

func TestParseTileset_ZeroDimensions(t *testing.T) {
	for _, doc := range []string{
		`<tileset name="w0" tilewidth="0" tileheight="16" tilecount="1" columns="1"/>`,
		`<tileset name="h0" tilewidth="16" tileheight="0" tilecount="1" columns="1"/>`,
	} {
		_, err := parseTileset([]byte(doc), "zero.tsx")
		if !errors.Is(err, ErrInvalidTileDimensions) {
			t.Errorf("expected ErrInvalidTileDimensions, got %v", err)
		}
	}
}

func TestParseTileset_TileData(t *testing.T) {
	ts, err := parseTileset([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<tileset name="props" tilewidth="16" tileheight="16" tilecount="4" columns="0">
 <tile id="0" type="water">
  <image source="water.png" width="16" height="16"/>
  <properties>
   <property name="swim" type="bool" value="true"/>
  </properties>
  <animation>
   <frame tileid="0" duration="100"/>
   <frame tileid="1" duration="150"/>
  </animation>
 </tile>
 <tile id="1">
  <image source="rock.png" width="16" height="16"/>
 </tile>
</tileset>`), "props.tsx")
	if err != nil {
		t.Fatalf("parseTileset failed: %v", err)
	}

	water, ok := ts.Tile(0)
	if !ok {
		t.Fatal("tile 0 missing")
	}
	if water.Class != "water" || water.Image.Source != "water.png" {
		t.Errorf("tile 0 = %+v", water)
	}
	if !water.Properties.GetBool("swim") {
		t.Error("tile property lost")
	}
	wantFrames := []Frame{{TileID: 0, DurationMS: 100}, {TileID: 1, DurationMS: 150}}
	if diff := cmp.Diff(wantFrames, water.Animation); diff != "" {
		t.Errorf("animation mismatch (-want +got):\n%s", diff)
	}

	if _, ok := ts.Tile(2); ok {
		t.Error("tile 2 has no explicit definition")
	}
}

func TestParseTileset_WangSets(t *testing.T) {
	ts, err := parseTileset([]byte(`<?xml version="1.0" encoding="UTF-8"?>
<tileset name="terrain" tilewidth="16" tileheight="16" tilecount="16" columns="4">
 <image source="terrain.png" width="64" height="64"/>
 <wangsets>
  <wangset name="cliffs" tile="-1">
   <wangcolor name="grass" color="#00ff00" tile="-1" probability="1"/>
   <wangcolor name="dirt" color="#aa5500" tile="-1" probability="0.5"/>
   <wangtile tileid="0" wangid="1,1,1,1,1,1,1,1"/>
   <wangtile tileid="5" wangid="1,1,2,2,2,2,1,1"/>
  </wangset>
 </wangsets>
</tileset>`), "wang.tsx")
	if err != nil {
		t.Fatalf("parseTileset failed: %v", err)
	}

	if len(ts.WangSets) != 1 {
		t.Fatalf("expected 1 wangset, got %d", len(ts.WangSets))
	}
	ws := ts.WangSets[0]
	if ws.Name != "cliffs" || len(ws.Colors) != 2 {
		t.Errorf("wangset = %+v", ws)
	}
	if ws.Colors[1].Name != "dirt" || ws.Colors[1].Probability != 0.5 {
		t.Errorf("wang color = %+v", ws.Colors[1])
	}
	if ws.Tiles[5] != (WangID{1, 1, 2, 2, 2, 2, 1, 1}) {
		t.Errorf("wangid = %v", ws.Tiles[5])
	}
}

func TestParseWangID_Invalid(t *testing.T) {
	for _, bad := range []string{"", "1,2,3", "1,1,1,1,1,1,1,x", "1,1,1,1,1,1,1,1,1"} {
		_, err := parseWangID(bad)
		var wangErr *WangIDError
		if !errors.As(err, &wangErr) {
			t.Errorf("%q: expected WangIDError, got %v", bad, err)
			continue
		}
		if wangErr.Read != bad {
			t.Errorf("%q: error carries %q", bad, wangErr.Read)
		}
	}
}
