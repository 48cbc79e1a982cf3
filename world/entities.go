package world

type AnchorId string
type RopeId string
type StarId string
type BubbleId string
type WindId string
type SpikeId string
type WallId string

type Anchor struct {
	Id  AnchorId
	Pos Pt
}

type Star struct {
	Id        StarId
	Pos       Pt
	Radius    float64
	Collected bool
}

// Bubble lifts the candy while the candy is inside it. A tap pops it for the
// rest of the session.
type Bubble struct {
	Id             BubbleId
	Pos            Pt
	Radius         float64
	Active         bool
	CapturedByBody bool
}

// WindZone pushes the candy along Dir while the candy is within Range of
// Pos. The push fades linearly to zero at Range.
type WindZone struct {
	Id       WindId
	Pos      Pt
	Dir      Pt // unit vector
	Range    float64
	Strength float64
	Active   bool
}

// Spike is a hazard strip. Touching it loses the level.
type Spike struct {
	Id     SpikeId
	Bounds Rect
}

// Wall is a static obstacle the candy bounces off.
type Wall struct {
	Id     WallId
	Bounds Rect
}

// Goal is the monster's mouth.
type Goal struct {
	Pos    Pt
	Radius float64
}
