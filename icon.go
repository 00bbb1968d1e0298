package main

import (
	"fmt"

	"github.com/fogleman/gg"
)

// RenderAppIcon draws the window icon: a rising growth line on a rounded tile
func RenderAppIcon(size int) ([]byte, error) {
	if size < 16 {
		return nil, fmt.Errorf("icon size must be at least 16px, got %d", size)
	}
	s := float64(size)
	dc := gg.NewContext(size, size)

	dc.DrawRoundedRectangle(0, 0, s, s, s*0.18)
	setRGB(dc, seriesColor(0))
	dc.Fill()

	pad := s * 0.2
	points := []float64{0.15, 0.35, 0.3, 0.6, 0.85}
	step := (s - 2*pad) / float64(len(points)-1)
	for i, p := range points {
		x := pad + float64(i)*step
		y := s - pad - p*(s-2*pad)
		if i == 0 {
			dc.MoveTo(x, y)
		} else {
			dc.LineTo(x, y)
		}
	}
	dc.SetRGB(1, 1, 1)
	dc.SetLineWidth(s * 0.08)
	dc.SetLineCap(gg.LineCapRound)
	dc.SetLineJoin(gg.LineJoinRound)
	dc.Stroke()

	last := points[len(points)-1]
	dc.DrawCircle(s-pad, s-pad-last*(s-2*pad), s*0.08)
	setRGB(dc, seriesColor(1))
	dc.Fill()

	return encodePNG(dc)
}
