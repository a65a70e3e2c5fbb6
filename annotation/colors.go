package annotation

// Color is a hex editor note or font colour.
//
// Colours are fixed per field category. Symmetric fields share a colour:
// xmin/xmax are both red-light, both halves of a block number are
// blue-light, the sibling links of a B-tree page are both black.
type Color string

const (
	ColorFontStandard Color = "#313739"

	ColorBlack       Color = "#515A5A"
	ColorBlueDark    Color = "#2980B9"
	ColorBlueLight   Color = "#3498DB"
	ColorBrown       Color = "#97333D"
	ColorGreenBright Color = "#50E964"
	ColorGreenDark   Color = "#16A085"
	ColorGreenLight  Color = "#1ABC9C"
	ColorMaroon      Color = "#E96950"
	ColorPink        Color = "#E949D1"
	ColorRedDark     Color = "#912C21"
	ColorRedLight    Color = "#E74C3C"
	ColorWhite       Color = "#CCD1D1"
	ColorYellowDark  Color = "#F1C40F"
	ColorYellowLight Color = "#E9E850"
)
