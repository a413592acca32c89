package tmx

// RawTileID is a tile reference exactly as stored in layer data: the low 29
// bits are the global tile ID, the high 3 bits are orientation flags.
type RawTileID uint32

// Orientation flag bits. This is the only place the bit layout lives;
// every layer cell and tile object goes through Split/Combine.
const (
	flagFlippedHorizontally RawTileID = 0x80000000
	flagFlippedVertically   RawTileID = 0x40000000
	flagFlippedDiagonally   RawTileID = 0x20000000
	flagMask                          = flagFlippedHorizontally | flagFlippedVertically | flagFlippedDiagonally
)

// Split separates a raw tile ID into its global tile ID and flip flags.
// Any 32-bit value is valid input; a GID of 0 means an empty cell.
func (r RawTileID) Split() (gid uint32, flipH, flipV, flipD bool) {
	return uint32(r &^ flagMask),
		r&flagFlippedHorizontally != 0,
		r&flagFlippedVertically != 0,
		r&flagFlippedDiagonally != 0
}

// GID returns the global tile ID with the flip flags cleared.
func (r RawTileID) GID() uint32 {
	gid, _, _, _ := r.Split()
	return gid
}

// IsEmpty reports whether the cell holds no tile.
func (r RawTileID) IsEmpty() bool { return r.GID() == 0 }

// CombineRawTileID rebuilds a raw tile ID from a GID and flip flags.
// Split and CombineRawTileID are exact inverses.
func CombineRawTileID(gid uint32, flipH, flipV, flipD bool) RawTileID {
	r := RawTileID(gid) &^ flagMask
	if flipH {
		r |= flagFlippedHorizontally
	}
	if flipV {
		r |= flagFlippedVertically
	}
	if flipD {
		r |= flagFlippedDiagonally
	}
	return r
}
