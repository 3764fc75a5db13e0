package core

// Color represents a foreground color for a screen cell.
// Values are semantic roles; the platform maps them to terminal colors.
type Color uint8

const (
	ColorDefault   Color = iota
	ColorTile            // untaken tile value
	ColorTaken           // visited tile
	ColorLegal           // tile the player may move to next
	ColorPlayer          // the player token
	ColorCursor          // start-tile cursor before the first move
	ColorPlus            // positive sign / positive score
	ColorMinus           // negative sign / negative score
	ColorDimmed          // hints, borders
	ColorHighlight       // titles and overlays
	ColorFinished        // final tile once no move remains
)
