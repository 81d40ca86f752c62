package mountain

// TileType enumerates the terrain kinds a tile can hold. The zero value is
// TileSnow, the default before the classifier or a placer writes a tile.
type TileType uint8

const (
	TileSnow TileType = iota
	TileIce
	TileRock
	TileTree
	TileRamp
	TileObstacle

	// TileTypeCount is the number of tile types.
	TileTypeCount = int(TileObstacle) + 1
)

// String returns the lowercase name of the tile type.
func (t TileType) String() string {
	switch t {
	case TileSnow:
		return "snow"
	case TileIce:
		return "ice"
	case TileRock:
		return "rock"
	case TileTree:
		return "tree"
	case TileRamp:
		return "ramp"
	case TileObstacle:
		return "obstacle"
	default:
		return "unknown"
	}
}

// Valid reports whether t is one of the declared tile types.
func (t TileType) Valid() bool {
	switch t {
	case TileSnow, TileIce, TileRock, TileTree, TileRamp, TileObstacle:
		return true
	default:
		return false
	}
}

// Hazard reports whether riding into the tile ends in a crash.
func (t TileType) Hazard() bool {
	switch t {
	case TileTree, TileObstacle:
		return true
	case TileSnow, TileIce, TileRock, TileRamp:
		return false
	default:
		return false
	}
}

// Tile is one classified terrain cell. Tiles are values; callers always get
// copies.
type Tile struct {
	Type TileType
	// Altitude is the absolute world Y of the tile's lower edge.
	Altitude int
	// Color is the cosmetic bucket derived from the layer's relative height.
	Color int
	// Variant selects between sprites of the same type.
	Variant int
}
