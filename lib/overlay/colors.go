package overlay

import "image/color"

var (
	ColorWhite            = color.White
	ColorTeal             = color.RGBA{0, 255, 255, 255}
	ColorSelection        = color.RGBA{255, 255, 255, 255}
	ColorBlackTransparent = color.RGBA{0, 0, 0, 120}
	ColorLabelBackground  = color.RGBA{0, 0, 0, 200}
)
