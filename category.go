package orbit5

import "fmt"

// Category names a mastergroup: one top-level container of versioned groups.
type Category int

// Mastergroup categories. The declaration order is not significant; the fixed
// aggregate and offload orders are AllCategories and OffloadOrder below.
const (
	Options Category = iota
	BField
	EField
	Wall
	Plasma
	Marker
	Neutral
	Boozer
	MHD
	Metadata
	States
	Orbits
	Dists
	Results
	numCategories
)

var categoryNames = [numCategories]string{
	Options:  "options",
	BField:   "bfield",
	EField:   "efield",
	Wall:     "wall",
	Plasma:   "plasma",
	Marker:   "marker",
	Neutral:  "neutral",
	Boozer:   "boozer",
	MHD:      "mhd",
	Metadata: "metadata",
	States:   "states",
	Orbits:   "orbits",
	Dists:    "dists",
	Results:  "results",
}

// String returns the mastergroup name as stored in the file.
func (c Category) String() string {
	if c < 0 || c >= numCategories {
		return fmt.Sprintf("category(%d)", int(c))
	}
	return categoryNames[c]
}

// CategoryByName maps a stored mastergroup name back to its Category.
func CategoryByName(name string) (Category, bool) {
	for c, n := range categoryNames {
		if n == name {
			return Category(c), true
		}
	}
	return 0, false
}

// AllCategories is the fixed category order used by the aggregate reader.
var AllCategories = []Category{
	Options, BField, EField, Wall, Plasma, Marker,
	Metadata, States, Orbits, Dists, Results,
}

// OffloadOrder is the fixed order in which per-category buffers are merged
// when packing for the native simulation routine.
var OffloadOrder = []Category{BField, EField, Plasma, Neutral, Wall, Boozer, MHD}

// TypePrefix tags the concrete representation of a versioned group. It forms
// the leading part of the group's storage name.
type TypePrefix string

// Recognized group type prefixes.
const (
	PrefixB2DS          TypePrefix = "B_2DS"
	PrefixB3DS          TypePrefix = "B_3DS"
	PrefixBTC           TypePrefix = "B_TC"
	PrefixBGS           TypePrefix = "B_GS"
	PrefixBST           TypePrefix = "B_ST"
	PrefixE1D           TypePrefix = "E_1D"
	PrefixETC           TypePrefix = "E_TC"
	PrefixE3D           TypePrefix = "E_3D"
	PrefixWall2D        TypePrefix = "wall_2D"
	PrefixWall3D        TypePrefix = "wall_3D"
	PrefixPlasma1D      TypePrefix = "plasma_1D"
	PrefixParticle      TypePrefix = "particle"
	PrefixGuidingCenter TypePrefix = "guiding_center"
	PrefixFieldLine     TypePrefix = "field_line"
	PrefixN03D          TypePrefix = "N0_3D"
	PrefixBoozer        TypePrefix = "Boozer"
	PrefixMHD           TypePrefix = "MHD"
	PrefixOpt           TypePrefix = "opt"
	PrefixRun           TypePrefix = "run"
)

// typePrefixes lists the recognized representations per input category, in
// the original detection precedence.
var typePrefixes = map[Category][]TypePrefix{
	Options: {PrefixOpt},
	BField:  {PrefixB2DS, PrefixB3DS, PrefixBTC, PrefixBGS, PrefixBST},
	EField:  {PrefixE1D, PrefixETC, PrefixE3D},
	Wall:    {PrefixWall2D, PrefixWall3D},
	Plasma:  {PrefixPlasma1D},
	Marker:  {PrefixParticle, PrefixGuidingCenter, PrefixFieldLine},
	Neutral: {PrefixN03D},
	Boozer:  {PrefixBoozer},
	MHD:     {PrefixMHD},
}

// GroupName builds the storage name of a versioned group.
func (p TypePrefix) GroupName(q QID) string {
	return string(p) + "-" + string(q)
}
