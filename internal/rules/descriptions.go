package rules

// Catalog descriptions the rules match on. Matching is exact after trimming,
// so these must stay byte-for-byte identical to the catalog rows.
const (
	// Shingle removal.
	RemoveLaminatedNoFelt = "Remove Laminated - comp. shingle rfg. - w/out felt"
	RemoveLaminatedFelt   = "Remove Laminated - comp. shingle rfg. - w/ felt"
	RemoveThreeTabNoFelt  = "Remove 3 tab - 25 yr. - comp. shingle roofing - w/out felt"
	RemoveThreeTabFelt    = "Remove 3 tab - 25 yr. - composition shingle roofing - incl. felt"

	// Shingle installation.
	LaminatedNoFelt = "Laminated - comp. shingle rfg. - w/out felt"
	LaminatedFelt   = "Laminated - comp. shingle rfg. - w/ felt"
	ThreeTabNoFelt  = "3 tab - 25 yr. - comp. shingle roofing - w/out felt"
	ThreeTabFelt    = "3 tab - 25 yr. - composition shingle roofing - incl. felt"

	// Starter.
	StarterUniversal   = "Asphalt starter - universal starter course"
	StarterPeelStick   = "Asphalt starter - peel and stick"
	StarterDoubleLayer = "Asphalt starter - laminated double layer starter"

	// Steep charges.
	RemoveSteep7to9   = "Remove Additional charge for steep roof - 7/12 to 9/12 slope"
	Steep7to9         = "Additional charge for steep roof - 7/12 to 9/12 slope"
	RemoveSteep10to12 = "Remove Additional charge for steep roof - 10/12 - 12/12 slope"
	Steep10to12       = "Additional charge for steep roof - 10/12 - 12/12 slope"
	RemoveSteep12Plus = "Remove Additional charge for steep roof greater than 12/12 slope"
	Steep12Plus       = "Additional charge for steep roof greater than 12/12 slope"

	// Ridge vents and caps.
	RidgeVentDetachReset = "Continuous ridge vent - Detach & reset"
	RidgeVentAluminum    = "Continuous ridge vent - aluminum"
	RidgeVentShingleOver = "Continuous ridge vent - shingle-over style"
	CapHighProfile       = "Hip / Ridge cap - High profile - composition shingles"
	CapStandardProfile   = "Hip / Ridge cap - Standard profile - composition shingles"
	CapCutFromThreeTab   = "Hip / Ridge cap - cut from 3 tab - composition shingles"

	// Edges and flashing.
	DripEdgeGutterApron = "Drip edge/gutter apron"
	DripEdge            = "Drip edge"
	DripEdgeCapitalized = "Drip Edge"
	StepFlashing        = "Step flashing"
	AluminumFlashing    = "Aluminum sidewall/endwall flashing - mill finish"
	ValleyMetal         = "Valley metal"
	ValleyMetalW        = "Valley metal - (W) profile"

	// Felt.
	FeltLowSlope = "Roofing felt - 15 lb. double coverage/low slope"
	Felt15       = "Roofing felt - 15 lb."
	Felt30       = "Roofing felt - 30 lb."

	// Chimneys.
	ChimneyAverage = `Chimney flashing average (32" x 36")`
	ChimneyLarge   = `Chimney flashing- large (32" x 60")`
	SaddleUpTo25   = "Saddle or cricket up to 25 SF"
	Saddle26to50   = "Saddle or cricket 26 to 50 SF"
)

// Description families, in the order rules visit them.
var (
	removalShingles      = []string{RemoveLaminatedNoFelt, RemoveThreeTabNoFelt, RemoveThreeTabFelt, RemoveLaminatedFelt}
	installationShingles = []string{LaminatedNoFelt, ThreeTabNoFelt, ThreeTabFelt, LaminatedFelt}
	laminatedShingles    = []string{RemoveLaminatedNoFelt, LaminatedNoFelt, RemoveLaminatedFelt, LaminatedFelt}
	threeTabShingles     = []string{RemoveThreeTabNoFelt, ThreeTabNoFelt, RemoveThreeTabFelt, ThreeTabFelt}
	starters             = []string{StarterUniversal, StarterPeelStick, StarterDoubleLayer}
	profileCaps          = []string{CapHighProfile, CapStandardProfile}
	allCaps              = []string{CapHighProfile, CapCutFromThreeTab, CapStandardProfile}
	dripEdges            = []string{DripEdgeGutterApron, DripEdge, DripEdgeCapitalized}
	valleyMetals         = []string{ValleyMetal, ValleyMetalW}
)
