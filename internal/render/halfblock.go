// ABOUTME: ANSI half-block renderer for previewing rasterized drawings in a terminal
// ABOUTME: Uses ▄ with fg/bg true-color escapes to double vertical resolution

package render

import (
	"fmt"
	"image"
	"strings"

	"golang.org/x/image/draw"
)

// HalfBlock converts an image to ANSI art using the lower-half block character (▄).
// For every 2 rows of pixels: background = top pixel color, foreground = bottom pixel color.
// The image is scaled down to maxCols width preserving aspect ratio; it is never scaled up.
func HalfBlock(img image.Image, maxCols int) []string {
	bounds := img.Bounds()
	srcW, srcH := bounds.Dx(), bounds.Dy()
	if srcW == 0 || srcH == 0 || maxCols <= 0 {
		return nil
	}

	targetW, targetH := srcW, srcH
	if targetW > maxCols {
		targetH = targetH * maxCols / targetW
		targetW = maxCols
	}
	targetW, targetH = max(targetW, 1), max(targetH, 1)

	scaled := img
	if targetW != srcW || targetH != srcH {
		dst := image.NewRGBA(image.Rect(0, 0, targetW, targetH))
		draw.CatmullRom.Scale(dst, dst.Bounds(), img, bounds, draw.Over, nil)
		scaled = dst
	}
	origin := scaled.Bounds().Min

	lines := make([]string, 0, (targetH+1)/2)
	for y := 0; y < targetH; y += 2 {
		var b strings.Builder
		for x := range targetW {
			topR, topG, topB := rgbAt(scaled, origin.X+x, origin.Y+y)

			// Bottom pixel is black past the last row.
			var botR, botG, botB uint8
			if y+1 < targetH {
				botR, botG, botB = rgbAt(scaled, origin.X+x, origin.Y+y+1)
			}

			fmt.Fprintf(&b, "\x1b[48;2;%d;%d;%dm\x1b[38;2;%d;%d;%dm▄",
				topR, topG, topB, botR, botG, botB)
		}
		b.WriteString("\x1b[0m")
		lines = append(lines, b.String())
	}
	return lines
}

func rgbAt(img image.Image, x, y int) (uint8, uint8, uint8) {
	r, g, b, _ := img.At(x, y).RGBA()
	return uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)
}
