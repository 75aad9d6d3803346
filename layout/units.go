package layout

// This file keeps the pt/mm conversion used at the measurement and render boundary.
// Page coordinates stay in mm; font sizes travel in pt inside draw commands.

// Conversion constants between pt and mm.
const (
	PtToMm = 0.352777
	MmToPt = 1.0 / PtToMm
)
