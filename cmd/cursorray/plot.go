package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"github.com/go-gl/mathgl/mgl32"
	"golang.org/x/image/colornames"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

const (
	plotMargin = 0.9
	dotRadius  = 3
)

// planeAxes returns two unit vectors spanning the plane.
func planeAxes(normal mgl32.Vec3) (mgl32.Vec3, mgl32.Vec3) {
	n := normal.Normalize()
	helper := mgl32.Vec3{1, 0, 0}
	if math.Abs(float64(n.X())) > 0.9 {
		helper = mgl32.Vec3{0, 0, 1}
	}
	u := helper.Sub(n.Mul(helper.Dot(n))).Normalize()
	return u, n.Cross(u)
}

// planeCoords projects world points onto the plane's 2D frame.
func planeCoords(hits []mgl32.Vec3, plane PlaneConfig) []mgl32.Vec2 {
	u, v := planeAxes(plane.Normal)
	out := make([]mgl32.Vec2, len(hits))
	for i, p := range hits {
		d := p.Sub(plane.Origin)
		out[i] = mgl32.Vec2{d.Dot(u), d.Dot(v)}
	}
	return out
}

// RenderPlot draws the hits as dots on a size x size image centred on the
// plane origin. The scale fits the farthest hit.
func RenderPlot(hits []mgl32.Vec3, plane PlaneConfig, size int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, size, size))
	draw.Draw(img, img.Bounds(), image.NewUniform(colornames.White), image.Point{}, draw.Src)

	coords := planeCoords(hits, plane)
	var extent float32 = 1
	for _, c := range coords {
		extent = max(extent, float32(math.Abs(float64(c.X()))), float32(math.Abs(float64(c.Y()))))
	}

	half := float32(size) / 2
	toPixel := func(c mgl32.Vec2) (float32, float32) {
		return half + c.X()/extent*half*plotMargin, half - c.Y()/extent*half*plotMargin
	}

	axes := vector.NewRasterizer(size, size)
	axes.DrawOp = draw.Over
	rect(axes, 0, half-0.5, float32(size), half+0.5)
	rect(axes, half-0.5, 0, half+0.5, float32(size))
	axes.Draw(img, img.Bounds(), image.NewUniform(colornames.Lightgray), image.Point{})

	if len(coords) > 0 {
		dots := vector.NewRasterizer(size, size)
		dots.DrawOp = draw.Over
		for _, c := range coords {
			x, y := toPixel(c)
			dots.MoveTo(x, y-dotRadius)
			dots.LineTo(x+dotRadius, y)
			dots.LineTo(x, y+dotRadius)
			dots.LineTo(x-dotRadius, y)
			dots.ClosePath()
		}
		dots.Draw(img, img.Bounds(), image.NewUniform(colornames.Crimson), image.Point{})
	}

	label := font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(color.Black),
		Face: basicfont.Face7x13,
		Dot:  fixed.P(4, 14),
	}
	label.DrawString(fmt.Sprintf("%d hits, extent %.2f", len(hits), extent))

	return img
}

func rect(z *vector.Rasterizer, x0, y0, x1, y1 float32) {
	z.MoveTo(x0, y0)
	z.LineTo(x1, y0)
	z.LineTo(x1, y1)
	z.LineTo(x0, y1)
	z.ClosePath()
}

func WritePlot(path string, hits []mgl32.Vec3, plane PlaneConfig, size int) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create plot: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, RenderPlot(hits, plane, size)); err != nil {
		return fmt.Errorf("encode plot: %w", err)
	}
	return f.Close()
}
