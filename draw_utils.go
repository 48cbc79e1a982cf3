package main

import (
	"image"
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/text"
	"github.com/hajimehoshi/ebiten/v2/vector"
	"golang.org/x/image/font"

	"github.com/marisvali/cutrope/world"
)

// SubImage returns a sub-region of screen.
// r indicates a rectangle inside of screen, in the following coordinate system:
// - The top-left pixel of screen has coordinates (0, 0).
// - The bottom-right pixel of screen has coordinates
// (screenWidth - 1, screenHeight - 1).
func SubImage(screen *ebiten.Image, r image.Rectangle) *ebiten.Image {
	// Ebitengine keeps the coordinates of the parent in a sub-image: img2 =
	// img1.SubImage(pt1, pt2) still needs img2.At(pt1) to reach pixel
	// img1.At(pt1). I prefer local coordinates, where img2.At(0, 0) is the
	// same pixel as img1.At(pt1), so r is shifted here and every drawing
	// function below adds Bounds().Min back.
	minPt := screen.Bounds().Min
	r.Min = r.Min.Add(minPt)
	r.Max = r.Max.Add(minPt)
	return screen.SubImage(r).(*ebiten.Image)
}

// Canvas draws world shapes on an image, going through a Viewport. The
// viewport is relative to the image, like SubImage coordinates.
type Canvas struct {
	Img *ebiten.Image
	Vp  Viewport
}

func (c Canvas) pt(p world.Pt) (float32, float32) {
	x, y := c.Vp.ToPixels(p)
	minPt := c.Img.Bounds().Min
	return x + float32(minPt.X), y + float32(minPt.Y)
}

func (c Canvas) FillCircle(center world.Pt, radius float64, clr color.Color) {
	x, y := c.pt(center)
	vector.DrawFilledCircle(c.Img, x, y, c.Vp.Len(radius), clr, true)
}

func (c Canvas) StrokeCircle(center world.Pt, radius float64, width float32,
	clr color.Color) {
	x, y := c.pt(center)
	vector.StrokeCircle(c.Img, x, y, c.Vp.Len(radius), width, clr, true)
}

func (c Canvas) Line(s world.Segment, width float32, clr color.Color) {
	x0, y0 := c.pt(s.Start)
	x1, y1 := c.pt(s.End)
	vector.StrokeLine(c.Img, x0, y0, x1, y1, width, clr, true)
}

func (c Canvas) FillRect(r world.Rect, clr color.Color) {
	x, y := c.pt(world.Pt{X: r.X.Lo, Y: r.Y.Lo})
	vector.DrawFilledRect(c.Img, x, y, c.Vp.Len(r.Width()),
		c.Vp.Len(r.Height()), clr, false)
}

func (c Canvas) StrokeRect(r world.Rect, width float32, clr color.Color) {
	x, y := c.pt(world.Pt{X: r.X.Lo, Y: r.Y.Lo})
	vector.StrokeRect(c.Img, x, y, c.Vp.Len(r.Width()),
		c.Vp.Len(r.Height()), width, clr, false)
}

// FillArea fills r, given in the coordinates of img.
func FillArea(img *ebiten.Image, r image.Rectangle, clr color.Color) {
	minPt := img.Bounds().Min
	vector.DrawFilledRect(img, float32(minPt.X+r.Min.X),
		float32(minPt.Y+r.Min.Y), float32(r.Dx()), float32(r.Dy()), clr, false)
}

func WithAlpha(c color.NRGBA, alpha float64) color.NRGBA {
	c.A = uint8(float64(c.A) * max(0, min(alpha, 1)))
	return c
}

func DrawText(screen *ebiten.Image, face font.Face, message string,
	centerX bool, centerY bool, color color.Color) {
	// There is an origin point for the text. That origin point is kind of the
	// lower-left corner of the bounds of the text. Kind of. Read the
	// BoundString docs to understand, particularly this image:
	// https://developer.apple.com/library/archive/documentation/TextFonts/Conceptual/CocoaTextArchitecture/Art/glyphterms_2x.png
	// This means that if you do text.Draw at (x, y), most of the text will
	// appear above y, and a little bit under y. If you want all the pixels in
	// your text to be above y, you should do text.Draw at
	// (x, y - text.BoundString().Max.Y).
	textSize := text.BoundString(face, message)
	var offsetX int
	if centerX {
		offsetX = (screen.Bounds().Dx() - textSize.Dx()) / 2
	}

	var offsetY int
	if centerY {
		offsetY = (screen.Bounds().Dy() - textSize.Dy()) / 2
	}

	textX := screen.Bounds().Min.X + offsetX
	textY := screen.Bounds().Max.Y - offsetY - textSize.Max.Y
	text.Draw(screen, message, face, textX, textY, color)
}
