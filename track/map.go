package track

import "racelens/models"

// Outline is a lap's path annotated with the sector every point falls in.
type Outline struct {
	Points []models.Trackpoint
	Closed bool // the lap ends within the start radius of where it began
}

// BuildOutline maps a lap's samples to path points and sector numbers.
// closeRadius decides whether the outline counts as a closed loop.
func BuildOutline(samples []models.Sample, closeRadius float64) Outline {
	pts := BuildPath(samples)
	for i := range pts {
		pts[i].Sector = SectorOf(i, len(pts))
	}
	return Outline{Points: pts, Closed: IsLoopByProximity(pts, closeRadius)}
}

// SectorPoints returns the outline points that belong to sector.
func (o Outline) SectorPoints(sector int) []models.Trackpoint {
	var out []models.Trackpoint
	for _, p := range o.Points {
		if p.Sector == sector {
			out = append(out, p)
		}
	}
	return out
}

// Bounds returns the bounding box of the outline.
func (o Outline) Bounds() (minX, minY, maxX, maxY float64) {
	if len(o.Points) == 0 {
		return 0, 0, 0, 0
	}
	xs := make([]float64, len(o.Points))
	ys := make([]float64, len(o.Points))
	for i, p := range o.Points {
		xs[i], ys[i] = p.X, p.Y
	}
	minX, maxX = minMax(xs)
	minY, maxY = minMax(ys)
	return minX, minY, maxX, maxY
}
