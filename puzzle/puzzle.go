// puzzle is the pull-and-shoot shape matching game shown on the TV. Each shape has to be flung into its own hole;
// the holes move around the grid every few seconds, except for the ones already filled. Filling every hole wins.
package puzzle

import (
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/solarlune/flightpath/math32"
	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// Shape is one of the game's pieces.
type Shape int

const (
	Circle Shape = iota
	Square
	Triangle
	Star
	ShapeCount = int(Star) + 1
)

func (s Shape) String() string {
	switch s {
	case Circle:
		return "circle"
	case Square:
		return "square"
	case Triangle:
		return "triangle"
	case Star:
		return "star"
	}
	return fmt.Sprintf("Shape(%d)", int(s))
}

// Point is a position in screen pixels.
type Point struct {
	X, Y float32
}

func (p Point) Add(o Point) Point        { return Point{p.X + o.X, p.Y + o.Y} }
func (p Point) Sub(o Point) Point        { return Point{p.X - o.X, p.Y - o.Y} }
func (p Point) Scale(s float32) Point    { return Point{p.X * s, p.Y * s} }
func (p Point) Length() float32          { return math32.Sqrt(p.X*p.X + p.Y*p.Y) }
func (p Point) Distance(o Point) float32 { return p.Sub(o).Length() }

// Config lays out the board and sets how the shapes fly.
type Config struct {
	GridSize        int           // Holes per row and column
	CellSize        float32       // Distance between neighbouring holes
	HoleSize        float32       // Width and height of a hole
	LeftOffset      float32       // X of the first column
	ShelfY          float32       // Y of the row the unplaced shapes rest on
	ShuffleInterval time.Duration // How often unfilled holes move
	HitRadius       float32       // How close a shape's center must pass to its hole's center
	MobileHitRadius float32       // HitRadius on narrow screens
	MobileWidth     float32       // Screens narrower than this are narrow
	PullScale       float32       // Drag distance that gives a strength of 1
	MaxStrength     float32
	FlingDuration   float32 // Seconds
	ReturnDuration  float32 // Seconds
	SnapDuration    float32 // Seconds
}

// DefaultConfig returns the standard 3x3 board.
func DefaultConfig() Config {
	return Config{
		GridSize:        3,
		CellSize:        150,
		HoleSize:        130,
		LeftOffset:      100,
		ShelfY:          500,
		ShuffleInterval: 5 * time.Second,
		HitRadius:       100,
		MobileHitRadius: 120,
		MobileWidth:     768,
		PullScale:       100,
		MaxStrength:     2.5,
		FlingDuration:   0.5,
		ReturnDuration:  0.3,
		SnapDuration:    1,
	}
}

// Slots returns the top-left corner of every hole position on the grid, row by row.
func (c Config) Slots() []Point {
	slots := make([]Point, 0, c.GridSize*c.GridSize)
	for row := 0; row < c.GridSize; row++ {
		for col := 0; col < c.GridSize; col++ {
			slots = append(slots, Point{c.LeftOffset + float32(col)*c.CellSize, float32(row) * c.CellSize})
		}
	}
	return slots
}

// Hole is where a shape has to go.
type Hole struct {
	Shape  Shape
	Corner Point // Top-left corner
	Filled bool
}

// Center returns the middle of the hole.
func (h Hole) Center(size float32) Point {
	return h.Corner.Add(Point{size / 2, size / 2})
}

// PieceState is what a piece is currently doing.
type PieceState int

const (
	Resting PieceState = iota
	Dragging
	Flying
	Returning
	Snapping
	Placed
)

// Piece is a draggable shape. Its position is its rest position plus Offset.
type Piece struct {
	Shape  Shape
	Rest   Point
	Offset Point
	State  PieceState

	tweenX, tweenY *gween.Tween
}

// Center returns the current center of the piece.
func (p *Piece) Center(size float32) Point {
	return p.Rest.Add(p.Offset).Add(Point{size / 2, size / 2})
}

// Game is a round of the shape matching game.
type Game struct {
	Config Config
	Width  float32 // Screen width, which picks the hit radius

	holes   [ShapeCount]Hole
	pieces  [ShapeCount]*Piece
	held    *Piece
	shuffle float32
	random  *rand.Rand
	won     bool
	onWin   func()
}

// NewGame starts a round. onWin, if set, runs once when the last hole is filled. seed drives the hole shuffle.
func NewGame(config Config, seed int64, onWin func()) (*Game, error) {

	if config.GridSize*config.GridSize < ShapeCount {
		return nil, fmt.Errorf("puzzle: a %dx%d grid can't hold %d holes", config.GridSize, config.GridSize, ShapeCount)
	}

	if config.ShuffleInterval <= 0 || config.FlingDuration <= 0 || config.ReturnDuration <= 0 || config.SnapDuration <= 0 {
		return nil, fmt.Errorf("puzzle: durations must be positive")
	}

	g := &Game{
		Config: config,
		Width:  1280,
		random: rand.New(rand.NewSource(seed)),
		onWin:  onWin,
	}

	for i := range g.pieces {
		g.holes[i].Shape = Shape(i)
		g.pieces[i] = &Piece{
			Shape: Shape(i),
			Rest:  Point{config.LeftOffset + float32(i)*config.CellSize, config.ShelfY},
		}
	}

	g.reshuffle()

	return g, nil

}

// reshuffle moves every unfilled hole to a free random slot.
func (g *Game) reshuffle() {

	free := make([]Point, 0, g.Config.GridSize*g.Config.GridSize)

	for _, slot := range g.Config.Slots() {
		taken := false
		for _, h := range g.holes {
			if h.Filled && h.Corner == slot {
				taken = true
				break
			}
		}
		if !taken {
			free = append(free, slot)
		}
	}

	g.random.Shuffle(len(free), func(i, j int) { free[i], free[j] = free[j], free[i] })

	for i := range g.holes {
		if g.holes[i].Filled {
			continue
		}
		g.holes[i].Corner = free[len(free)-1]
		free = free[:len(free)-1]
	}

}

// Holes returns the holes, indexed by Shape.
func (g *Game) Holes() [ShapeCount]Hole {
	return g.holes
}

// Piece returns the piece for the given shape.
func (g *Game) Piece(shape Shape) *Piece {
	return g.pieces[shape]
}

// Won returns if every hole is filled.
func (g *Game) Won() bool {
	return g.won
}

func (g *Game) hitRadius() float32 {
	if g.Width < g.Config.MobileWidth {
		return g.Config.MobileHitRadius
	}
	return g.Config.HitRadius
}

// PieceAt returns the unplaced piece under the given point, or nil.
func (g *Game) PieceAt(p Point) *Piece {
	for _, piece := range g.pieces {
		if piece.State == Placed || piece.State == Snapping {
			continue
		}
		corner := piece.Rest.Add(piece.Offset)
		if p.X >= corner.X && p.X < corner.X+g.Config.HoleSize && p.Y >= corner.Y && p.Y < corner.Y+g.Config.HoleSize {
			return piece
		}
	}
	return nil
}

// Grab starts pulling the piece for shape. A grabbed piece jumps back to its rest position.
func (g *Game) Grab(shape Shape) bool {

	piece := g.pieces[shape]
	if piece.State == Placed || piece.State == Snapping || g.held != nil {
		return false
	}

	piece.State = Dragging
	piece.Offset = Point{}
	piece.tweenX, piece.tweenY = nil, nil
	g.held = piece

	return true

}

// Drag moves the held piece to movement away from its rest position.
func (g *Game) Drag(movement Point) {
	if g.held != nil {
		g.held.Offset = movement
	}
}

// Release lets go of the held piece, flinging it the opposite way it was pulled, harder the further it was pulled.
func (g *Game) Release() {

	piece := g.held
	if piece == nil {
		return
	}
	g.held = nil

	pull := piece.Offset
	strength := math32.Min(pull.Length()/g.Config.PullScale, g.Config.MaxStrength)
	target := pull.Scale(-strength)

	piece.State = Flying
	piece.tweenX = gween.New(pull.X, target.X, g.Config.FlingDuration, ease.Linear)
	piece.tweenY = gween.New(pull.Y, target.Y, g.Config.FlingDuration, ease.Linear)

}

// Update advances the hole shuffle and every moving piece by dt seconds. The holes stop moving once the game is won.
func (g *Game) Update(dt float32) {

	if dt <= 0 {
		return
	}

	if !g.won {
		g.shuffle += dt
		if interval := float32(g.Config.ShuffleInterval.Seconds()); g.shuffle >= interval {
			g.shuffle -= interval * math32.Floor(g.shuffle/interval)
			g.reshuffle()
		}
	}

	for _, piece := range g.pieces {
		g.updatePiece(piece, dt)
	}

}

func (g *Game) updatePiece(piece *Piece, dt float32) {

	if piece.tweenX == nil {
		return
	}

	x, done := piece.tweenX.Update(dt)
	y, _ := piece.tweenY.Update(dt)
	piece.Offset = Point{x, y}

	switch piece.State {

	case Flying:

		hole := &g.holes[piece.Shape]
		if piece.Center(g.Config.HoleSize).Distance(hole.Center(g.Config.HoleSize)) < g.hitRadius() {
			g.place(piece, hole)
			return
		}

		if done {
			piece.State = Returning
			piece.tweenX = gween.New(piece.Offset.X, 0, g.Config.ReturnDuration, ease.Linear)
			piece.tweenY = gween.New(piece.Offset.Y, 0, g.Config.ReturnDuration, ease.Linear)
		}

	case Returning:
		if done {
			piece.State = Resting
			piece.tweenX, piece.tweenY = nil, nil
		}

	case Snapping:
		if done {
			piece.State = Placed
			piece.tweenX, piece.tweenY = nil, nil
		}

	}

}

// place locks hole and snaps piece into it.
func (g *Game) place(piece *Piece, hole *Hole) {

	hole.Filled = true

	target := hole.Corner.Sub(piece.Rest)
	piece.State = Snapping
	piece.tweenX = gween.New(piece.Offset.X, target.X, g.Config.SnapDuration, ease.OutElastic)
	piece.tweenY = gween.New(piece.Offset.Y, target.Y, g.Config.SnapDuration, ease.OutElastic)

	log.Printf("[Puzzle] Placed %s", piece.Shape)

	for _, h := range g.holes {
		if !h.Filled {
			return
		}
	}

	g.won = true
	log.Printf("[Puzzle] All shapes placed")
	if g.onWin != nil {
		g.onWin()
	}

}
