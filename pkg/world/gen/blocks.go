package gen

// Voxel material ids. Zero is air; every other value is solid.
const (
	Air uint8 = iota
	Sand
	Grass
	Dirt
	Stone
	Snow
	SakuraLeaves
	Wood
	TNT
	OakPlank
	DiamondOre
	NormalLeaves
	Beehive
	OakLeaves
	GoldBlock
)

// MaxMaterial is the highest material id in the table.
const MaxMaterial = GoldBlock

// Strata levels in world voxels. A surface voxel takes the material of the
// highest level at or below its jittered elevation.
const (
	SandLevel  = 7
	GrassLevel = 8
	DirtLevel  = 40
	StoneLevel = 49
	SnowLevel  = 54
)

var materialNames = [...]string{
	Air:          "air",
	Sand:         "sand",
	Grass:        "grass",
	Dirt:         "dirt",
	Stone:        "stone",
	Snow:         "snow",
	SakuraLeaves: "sakura_leaves",
	Wood:         "wood",
	TNT:          "tnt",
	OakPlank:     "oak_plank",
	DiamondOre:   "diamond_ore",
	NormalLeaves: "normal_leaves",
	Beehive:      "beehive",
	OakLeaves:    "oak_leaves",
	GoldBlock:    "gold_block",
}

// MaterialName returns the lower-case name of a material id, or "unknown".
func MaterialName(id uint8) string {
	if int(id) < len(materialNames) {
		return materialNames[id]
	}
	return "unknown"
}

// IsLeaves reports whether id is one of the leaf materials.
func IsLeaves(id uint8) bool {
	return id == SakuraLeaves || id == NormalLeaves || id == OakLeaves
}
