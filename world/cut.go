package world

// CutResult describes one severed rope, for the cut animation: the two
// pieces of the rope and the point where it was cut.
type CutResult struct {
	Rope  RopeId
	Upper Segment // from the anchor to the cut point
	Lower Segment // from the cut point to the candy
	Point Pt
	Frame int64
}

// TryCut cuts every live rope the touch reaches and returns what was cut.
//
// A rope is reached if:
// - the current touch point is closer than Params.CutThreshold to the rope,
// or
// - the swipe from prev to cur crosses the rope.
// prev is nil for the first point of a touch.
//
// Ropes are tested against their current position, from the anchor to where
// the candy is now. A cut rope is removed immediately, so it can never be cut
// twice.
func (w *World) TryCut(prev *Pt, cur Pt) (cuts []CutResult) {
	if w.State != Playing || !finite(cur) {
		return nil
	}

	var swipe Segment
	if prev != nil {
		swipe = Segment{Start: *prev, End: cur}
	}

	for _, id := range sortedKeys(w.Ropes) {
		r := w.Ropes[id]
		seg := r.Segment(&w.Candy)
		near := DistToSegment(cur, seg) < w.Params.CutThreshold
		crossed := prev != nil && SegmentsIntersect(swipe, seg)
		if !near && !crossed {
			continue
		}

		t := Clamp(SegmentParam(cur, seg), w.Params.CutParamMin,
			w.Params.CutParamMax)
		p := seg.At(t)
		delete(w.Ropes, id)
		cuts = append(cuts, CutResult{
			Rope:  id,
			Upper: Segment{Start: seg.Start, End: p},
			Lower: Segment{Start: p, End: seg.End},
			Point: p,
			Frame: w.Frame,
		})
	}
	return cuts
}
