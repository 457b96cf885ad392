package main

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"math"
	"os"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

const (
	defaultCellSize = 12

	labelMarginLeft = 24
	labelMarginTop  = 16
	labelEvery      = 10
)

var (
	baseYellow  = color.RGBA{255, 207, 67, 255} // #FFCF43
	baseRed     = color.RGBA{242, 78, 66, 255}  // #F24E42
	baseDarkRed = color.RGBA{169, 39, 39, 255}  // #A92727
	background  = color.RGBA{255, 255, 255, 255}
	labelColor  = color.RGBA{0, 0, 0, 255}
)

func renderPNG(path string, g *Grid, cellSize int) error {
	clog.Infof("rendering heatmap to [%v]...", path)
	return savePNG(path, drawHeatmap(g, cellSize))
}

// drawHeatmap lays the grid out like the text output: X buckets top to
// bottom, Y buckets left to right.
func drawHeatmap(g *Grid, cellSize int) *image.RGBA {
	if cellSize <= 0 {
		cellSize = defaultCellSize
	}

	img := image.NewRGBA(image.Rect(0, 0, labelMarginLeft+gridSize*cellSize, labelMarginTop+gridSize*cellSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{background}, image.Point{}, draw.Src)

	maxCount := g.Max()
	for x := range gridSize {
		for y := range gridSize {
			if g[x][y] == 0 {
				continue
			}
			minX := labelMarginLeft + y*cellSize
			minY := labelMarginTop + x*cellSize
			rect := image.Rect(minX, minY, minX+cellSize, minY+cellSize)
			draw.Draw(img, rect, &image.Uniform{heatColor(g[x][y], maxCount)}, image.Point{}, draw.Src)
		}
	}

	addAxisLabels(img, cellSize)
	return img
}

// heatColor scales count logarithmically from yellow through red to dark red.
func heatColor(count, maxCount int) color.RGBA {
	if count <= 0 || maxCount <= 0 {
		return background
	}

	frac := math.Log1p(float64(count)) / math.Log1p(float64(maxCount))
	if frac <= 0.5 {
		return blend(baseYellow, baseRed, frac*2)
	}
	return blend(baseRed, baseDarkRed, (frac-0.5)*2)
}

func blend(from, to color.RGBA, t float64) color.RGBA {
	mix := func(a, b uint8) uint8 {
		return uint8(math.Round(float64(a) + (float64(b)-float64(a))*t))
	}
	return color.RGBA{mix(from.R, to.R), mix(from.G, to.G), mix(from.B, to.B), 255}
}

func addAxisLabels(img *image.RGBA, cellSize int) {
	d := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(labelColor),
		Face: basicfont.Face7x13,
	}

	for b := 0; b <= granularity; b += labelEvery {
		// Y along the top
		d.Dot = fixed.Point26_6{X: fixed.Int26_6((labelMarginLeft + b*cellSize) * 64), Y: fixed.Int26_6((labelMarginTop - 3) * 64)}
		d.DrawString(fmt.Sprint(b))

		// X down the left side
		d.Dot = fixed.Point26_6{X: fixed.Int26_6(2 * 64), Y: fixed.Int26_6((labelMarginTop + b*cellSize + 10) * 64)}
		d.DrawString(fmt.Sprint(b))
	}
}

func savePNG(path string, img image.Image) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("error creating file [%v]: %w", path, err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			clog.Errorf("error in closing file [%v]: %v", path, err)
		}
	}()

	enc := png.Encoder{CompressionLevel: png.BestCompression}
	if err := enc.Encode(file, img); err != nil {
		return fmt.Errorf("error encoding png [%v]: %w", path, err)
	}
	return nil
}
