package overlay

import (
	"image/color"
	"strings"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/ebitenutil"
	"github.com/hajimehoshi/ebiten/v2/text"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

// ScreenPrint writes lines of text top to bottom onto a screen image.
type ScreenPrint struct {
	currentY int
	image    *ebiten.Image

	Color color.Color
	Font  font.Face

	// 0b00 - align left
	// 0b11 - align center
	// 0b01 - align right
	AlignX byte

	Border      int
	LineSpacing int
}

func NewScreenPrint() *ScreenPrint {
	return &ScreenPrint{
		Color:       ColorWhite,
		Font:        basicfont.Face7x13,
		AlignX:      0b11,
		Border:      20,
		LineSpacing: 6,
	}
}

func (scrp *ScreenPrint) Reset(screen *ebiten.Image) {
	scrp.currentY = 0
	scrp.image = screen
}

func (scrp *ScreenPrint) Println(str string) {
	for _, line := range strings.Split(str, "\n") {
		if line == "" {
			line = " "
		}
		textB := text.BoundString(scrp.Font, line)
		imageB := scrp.image.Bounds()

		x := scrp.Border / 2
		if scrp.AlignX&0b11 == 0b11 {
			x = imageB.Dx()/2 - textB.Dx()/2
		} else if scrp.AlignX&0b01 == 0b01 {
			x = imageB.Dx() - textB.Dx() - scrp.Border/2
		}
		y := scrp.currentY + textB.Dy() + scrp.Border/2

		textColor := scrp.Color
		if textColor == nil {
			textColor = color.Black
		}

		text.Draw(scrp.image, line, scrp.Font, x, y, textColor)
		scrp.currentY += textB.Dy() + scrp.LineSpacing
	}
}

// Label draws str on a dark box whose top-left corner is at (x, y).
func (scrp *ScreenPrint) Label(x, y int, str string) {
	textB := text.BoundString(scrp.Font, str)
	pad := 3
	ebitenutil.DrawRect(
		scrp.image,
		float64(x),
		float64(y),
		float64(textB.Dx()+pad*2),
		float64(textB.Dy()+pad*2),
		ColorLabelBackground,
	)
	text.Draw(scrp.image, str, scrp.Font, x+pad-textB.Min.X, y+pad-textB.Min.Y, scrp.Color)
}
