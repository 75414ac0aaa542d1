package draw

import "math"

// Rotate returns p rotated by angle radians around (cx, cy).
func Rotate(p Point, cx, cy, angle float64) Point {
	sin, cos := math.Sincos(angle)
	dx, dy := p.X-cx, p.Y-cy
	return Point{
		X: cx + dx*cos - dy*sin,
		Y: cy + dx*sin + dy*cos,
	}
}

// DiamondPoints fills dst with a rhombus of the given width and height centred
// on (cx, cy), rotated by angle. dst must have length 4.
func DiamondPoints(dst []Point, cx, cy, width, height, angle float64) []Point {
	hw, hh := width/2, height/2
	dst[0] = Point{X: cx, Y: cy - hh}
	dst[1] = Point{X: cx + hw, Y: cy}
	dst[2] = Point{X: cx, Y: cy + hh}
	dst[3] = Point{X: cx - hw, Y: cy}
	if angle != 0 {
		for i := range dst[:4] {
			dst[i] = Rotate(dst[i], cx, cy, angle)
		}
	}
	return dst[:4]
}

// Transform maps shape points, given relative to an origin, onto the canvas:
// each point is mirrored horizontally when flip is set, rotated by angle and
// translated to (x, y). The result is written to dst.
func Transform(dst, shape []Point, x, y, angle float64, flip bool) []Point {
	for i, p := range shape {
		if flip {
			p.X = -p.X
		}
		if angle != 0 {
			p = Rotate(p, 0, 0, angle)
		}
		dst[i] = Point{X: p.X + x, Y: p.Y + y}
	}
	return dst[:len(shape)]
}
