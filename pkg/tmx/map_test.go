package tmx

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
)

// loadTestMap parses a single-document map with no external references.
func loadTestMap(t *testing.T, doc string) *Map {
	t.Helper()
	m, err := parseMap(NewLoader(), []byte(doc), "test.tmx")
	if err != nil {
		t.Fatalf("parseMap failed: %v", err)
	}
	return m
}

func TestParseMap_Attributes(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" class="dungeon" orientation="isometric" renderorder="left-up"
     width="4" height="3" tilewidth="32" tileheight="16" backgroundcolor="#ff00ff00">
 <properties>
  <property name="difficulty" type="int" value="3"/>
  <property name="theme" value="swamp"/>
 </properties>
</map>`)

	if m.Orientation != Isometric {
		t.Errorf("orientation = %q", m.Orientation)
	}
	if m.RenderOrder != "left-up" {
		t.Errorf("renderorder = %q", m.RenderOrder)
	}
	if m.Width != 4 || m.Height != 3 || m.TileWidth != 32 || m.TileHeight != 16 {
		t.Errorf("geometry = %dx%d tiles of %dx%d", m.Width, m.Height, m.TileWidth, m.TileHeight)
	}
	if m.BackgroundColor == nil || (*m.BackgroundColor != Color{A: 0xff, R: 0, G: 0xff, B: 0}) {
		t.Errorf("background = %v", m.BackgroundColor)
	}
	if m.Properties.GetInt("difficulty") != 3 || m.Properties.GetString("theme") != "swamp" {
		t.Errorf("properties = %v", m.Properties)
	}
}

func TestParseMap_BadOrientation(t *testing.T) {
	_, err := parseMap(NewLoader(), []byte(`<map orientation="spherical" width="1" height="1" tilewidth="16" tileheight="16"/>`), "bad.tmx")
	var attrErr *MalformedAttributeError
	if !errors.As(err, &attrErr) {
		t.Fatalf("expected MalformedAttributeError, got %v", err)
	}
}

func TestParseMap_EmbeddedTileset(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <tileset firstgid="1" name="inline" tilewidth="16" tileheight="16" tilecount="2" columns="2">
  <image source="inline.png" width="32" height="16"/>
 </tileset>
 <layer id="1" name="ground" width="1" height="1">
  <data encoding="csv">2</data>
 </layer>
</map>`)

	if len(m.Tilesets) != 1 {
		t.Fatalf("expected 1 tileset, got %d", len(m.Tilesets))
	}
	ts := m.Tilesets[0]
	if ts.FirstGID != 1 || ts.Tileset.Name != "inline" {
		t.Errorf("tileset ref = %+v", ts)
	}
	// Embedded tilesets belong to the map document.
	if ts.Tileset.Source != "test.tmx" {
		t.Errorf("embedded tileset source = %q", ts.Tileset.Source)
	}
}

func TestParseMap_PlainTileElements(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.0" orientation="orthogonal" width="2" height="1" tilewidth="16" tileheight="16">
 <layer name="old" width="2" height="1">
  <data>
   <tile gid="5"/>
   <tile gid="0"/>
  </data>
 </layer>
</map>`)

	want := []RawTileID{5, 0}
	if diff := cmp.Diff(want, m.TileLayers[0].Tiles); diff != "" {
		t.Errorf("tiles mismatch (-want +got):\n%s", diff)
	}
}

func TestParseMap_DeprecatedRawData(t *testing.T) {
	_, err := parseMap(NewLoader(), []byte(`<?xml version="1.0"?>
<map orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <layer name="x" width="1" height="1">
  <data>12345</data>
 </layer>
</map>`), "legacy.tmx")

	var encErr *EncodingError
	if !errors.As(err, &encErr) {
		t.Fatalf("expected EncodingError, got %v", err)
	}
	if encErr.Encoding != "" || encErr.Compression != "" {
		t.Errorf("error should carry the absent attributes, got (%q, %q)", encErr.Encoding, encErr.Compression)
	}
}

func TestParseMap_InfiniteChunks(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0" encoding="UTF-8"?>
<map version="1.10" orientation="orthogonal" width="0" height="0" tilewidth="16" tileheight="16" infinite="1">
 <layer id="1" name="sparse" width="0" height="0">
  <data encoding="csv">
   <chunk x="-16" y="0" width="2" height="2">1,2,3,4</chunk>
   <chunk x="16" y="32" width="2" height="2">5,6,7,8</chunk>
  </data>
 </layer>
</map>`)

	if !m.Infinite {
		t.Error("infinite flag lost")
	}
	layer := m.TileLayers[0]
	if layer.Tiles != nil {
		t.Error("infinite layer must not have a flat tile array")
	}
	if len(layer.Chunks) != 2 {
		t.Fatalf("expected 2 chunks, got %d", len(layer.Chunks))
	}

	first := layer.Chunks[0]
	if first.X != -16 || first.Y != 0 {
		t.Errorf("chunk origin = (%d, %d)", first.X, first.Y)
	}
	if diff := cmp.Diff([]RawTileID{1, 2, 3, 4}, first.Tiles); diff != "" {
		t.Errorf("chunk tiles mismatch (-want +got):\n%s", diff)
	}

	// Sparse addressing goes through the chunk origins.
	if got := layer.TileAt(-15, 1); got != 4 {
		t.Errorf("TileAt(-15, 1) = %d, want 4", got)
	}
	if got := layer.TileAt(17, 33); got != 8 {
		t.Errorf("TileAt(17, 33) = %d, want 8", got)
	}
	if got := layer.TileAt(0, 0); got != 0 {
		t.Errorf("TileAt outside all chunks = %d, want 0", got)
	}
}

func TestParseMap_ChunkSizeMismatch(t *testing.T) {
	_, err := parseMap(NewLoader(), []byte(`<?xml version="1.0"?>
<map orientation="orthogonal" width="0" height="0" tilewidth="16" tileheight="16" infinite="1">
 <layer name="sparse" width="0" height="0">
  <data encoding="csv">
   <chunk x="0" y="0" width="2" height="2">1,2,3</chunk>
  </data>
 </layer>
</map>`), "short.tmx")

	var sizeErr *TileDataSizeError
	if !errors.As(err, &sizeErr) {
		t.Fatalf("expected TileDataSizeError, got %v", err)
	}
}

func TestParseMap_LayerDefaults(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0"?>
<map orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <layer id="3" name="ground" width="1" height="1" opacity="0.5" visible="0" offsetx="4" offsety="-2">
  <data encoding="csv">0</data>
 </layer>
 <layer id="4" name="plain" width="1" height="1">
  <data encoding="csv">0</data>
 </layer>
</map>`)

	custom := m.TileLayers[0]
	if custom.Opacity != 0.5 || custom.Visible || custom.OffsetX != 4 || custom.OffsetY != -2 {
		t.Errorf("explicit attributes lost: %+v", custom.Layer)
	}

	plain := m.TileLayers[1]
	if plain.Opacity != 1 || !plain.Visible || plain.ParallaxX != 1 || plain.ParallaxY != 1 {
		t.Errorf("defaults wrong: %+v", plain.Layer)
	}
}

func TestParseMap_GroupLayers(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0"?>
<map orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <group id="1" name="background">
  <imagelayer id="2" name="sky">
   <image source="sky.png" width="256" height="256"/>
  </imagelayer>
  <group id="3" name="far">
   <layer id="4" name="hills" width="1" height="1">
    <data encoding="csv">0</data>
   </layer>
  </group>
 </group>
</map>`)

	if len(m.Groups) != 1 {
		t.Fatalf("expected 1 group, got %d", len(m.Groups))
	}
	bg := m.Groups[0]
	if len(bg.ImageLayers) != 1 || bg.ImageLayers[0].Image.Source != "sky.png" {
		t.Error("image layer not parsed inside group")
	}
	if len(bg.Groups) != 1 || len(bg.Groups[0].TileLayers) != 1 {
		t.Error("nested group not parsed")
	}
}

func TestParseMap_Objects(t *testing.T) {
	m := loadTestMap(t, `<?xml version="1.0"?>
<map orientation="orthogonal" width="1" height="1" tilewidth="16" tileheight="16">
 <objectgroup id="1" name="shapes" draworder="index">
  <object id="1" name="zone" x="0" y="0" width="64" height="32"/>
  <object id="2" x="8" y="8"><ellipse/></object>
  <object id="3" x="1" y="2"><point/></object>
  <object id="4" x="0" y="0"><polygon points="0,0 16,0 16,16"/></object>
  <object id="5" x="4" y="4" gid="2684354561"/>
 </objectgroup>
</map>`)

	objects := m.ObjectGroups[0].Objects
	if len(objects) != 5 {
		t.Fatalf("expected 5 objects, got %d", len(objects))
	}

	if objects[0].Shape != nil {
		t.Error("plain rectangle should have nil shape")
	}
	if _, ok := objects[1].Shape.(EllipseShape); !ok {
		t.Errorf("object 2 shape = %T", objects[1].Shape)
	}
	if _, ok := objects[2].Shape.(PointShape); !ok {
		t.Errorf("object 3 shape = %T", objects[2].Shape)
	}
	poly, ok := objects[3].Shape.(PolygonShape)
	if !ok || len(poly.Points) != 3 || poly.Points[1] != (Point{X: 16, Y: 0}) {
		t.Errorf("object 4 shape = %+v", objects[3].Shape)
	}

	// Tile object: gid 2684354561 = 0xA0000001, flipped H+D tile 1.
	gid, h, v, d := objects[4].Tile.Split()
	if gid != 1 || !h || v || !d {
		t.Errorf("tile object split = (%d, %v, %v, %v)", gid, h, v, d)
	}
}

func TestTilesetForGID(t *testing.T) {
	a := &Tileset{Name: "a"}
	b := &Tileset{Name: "b"}
	m := &Map{Tilesets: []*TilesetRef{
		{FirstGID: 1, Tileset: a},
		{FirstGID: 17, Tileset: b},
	}}

	if ref := m.TilesetForGID(0); ref != nil {
		t.Error("gid 0 is the empty cell")
	}
	if ref := m.TilesetForGID(5); ref == nil || ref.Tileset != a {
		t.Error("gid 5 should land in tileset a")
	}
	if ref := m.TilesetForGID(17); ref == nil || ref.Tileset != b {
		t.Error("gid 17 should land in tileset b")
	}
	if ref := m.TilesetForGID(400); ref == nil || ref.Tileset != b {
		t.Error("high gids land in the last tileset")
	}
}
