//----------------------------------------------------------------------
// This file is part of antgen.
// Copyright (C) 2024-present Bernd Fix >Y<,  DO3YQ
//
// antgen is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published
// by the Free Software Foundation, either version 3 of the License,
// or (at your option) any later version.
//
// antgen is distributed in the hope that it will be useful, but
// WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the GNU
// Affero General Public License for more details.
//
// You should have received a copy of the GNU Affero General Public License
// along with this program.  If not, see <http://www.gnu.org/licenses/>.
//
// SPDX-License-Identifier: AGPL3.0-or-later
//----------------------------------------------------------------------

package lib

import (
	"fmt"
	"image/color"
	"math"
	"sync"
	"sync/atomic"
	"time"

	"github.com/tfriedel6/canvas"
	"github.com/tfriedel6/canvas/sdlcanvas"
)

//----------------------------------------------------------------------
// SDL canvas
//----------------------------------------------------------------------

// Task sent via channel to the render engine: one frame of a replay.
type Task struct {
	Walls []Wall
	Rays  []Ray
	Msg   string
}

// SDLCanvas for windowed display
type SDLCanvas struct {
	w, h              float64 // model size
	cw, ch            int     // current canvas size
	scale, offX, offY float64 // active scale and margin
	txtSize           float64 // text size (large)

	win *sdlcanvas.Window
	cv  *canvas.Canvas

	taskCh  chan Task   // channel to render loop
	curr    Task        // current render task
	lock    sync.Mutex  // lock for updating parameters
	count   int         // number of tasks processed
	waiting atomic.Bool // pause rendering?
	stepper atomic.Bool // single-step?
	hint    string      // hint for display
}

// NewSDLCanvas creates a new SDL canvas for display
func NewSDLCanvas(width, height int, side float64) (c *SDLCanvas, err error) {
	c = new(SDLCanvas)
	c.taskCh = make(chan Task)
	c.count = -1
	// create window
	if c.win, c.cv, err = sdlcanvas.CreateWindow(width, height, "RF coverage replay"); err != nil {
		return
	}
	c.cw, c.ch = width, height
	c.rescale(1.2 * side)
	c.offX, c.offY = float64(width)/2, float64(height)/2
	return
}

// rescale for larger/small geometry extends
func (c *SDLCanvas) rescale(side float64) {
	c.w, c.h = 2*side, 2*side
	c.scale = min(float64(c.cw)/c.w, float64(c.ch)/c.h)
	c.txtSize = 36 / c.scale
}

// Close a canvas. No further operations are allowed
func (c *SDLCanvas) Close() error {
	close(c.taskCh)
	return nil
}

// Show the environment's walls and a frame's worth of rays.
func (c *SDLCanvas) Show(walls []Wall, rays []Ray, msg string) {
	c.taskCh <- Task{walls, rays, msg}
}

func (c *SDLCanvas) SetHint(m string) {
	c.hint = m
}

// Run the canvas (new rendering begins)
func (c *SDLCanvas) Run(cb Action) {

	// get render task from channel
	go func() {
		for task := range c.taskCh {
			// idle on wait
			for c.waiting.Load() {
				time.Sleep(100 * time.Millisecond)
			}
			// update geometry and message
			c.lock.Lock()
			c.curr = task
			if c.stepper.Load() {
				c.waiting.Store(true)
			}
			c.count++
			c.lock.Unlock()
		}
	}()

	// pause/resume on key press ("Enter" key)
	c.waiting.Store(false)
	c.win.KeyDown = func(scancode int, rn rune, name string) {
		// handle custom callback
		if cb != nil {
			if cb(c.count, rn) {
				c.waiting.Store(!c.waiting.Load())
				c.stepper.Store(false)
				return
			}
		}
		// handle key presses
		switch name {
		case "Enter":
			c.waiting.Store(!c.waiting.Load())
			c.stepper.Store(false)
		case "Space":
			if c.waiting.Load() {
				c.stepper.Store(true)
				c.waiting.Store(false)
			}
		}
	}

	// render loop
	c.win.MainLoop(func() {
		c.lock.Lock()
		if len(c.curr.Walls) == 0 && len(c.curr.Rays) == 0 {
			c.lock.Unlock()
			return
		}

		// clear screen
		c.cv.SetFillStyle("#FFF")
		c.cv.FillRect(0, 0, float64(c.cw), float64(c.ch))

		box := NewBoundingBox()
		for _, w := range c.curr.Walls {
			box.Include(w.A)
			box.Include(w.B)
		}
		extend := math.Max(box.Xmax-box.Xmin, box.Ymax-box.Ymin)
		c.rescale(0.6 * extend)

		y := 2*c.txtSize - c.h/2
		if len(c.curr.Msg) > 0 {
			c.Text(0, y, c.txtSize, c.curr.Msg, ClrBlack)
		} else {
			c.Text(0, y, c.txtSize, fmt.Sprintf("Frame #%d", c.count), ClrBlack)
		}
		for _, w := range c.curr.Walls {
			c.Line(w.A.X, w.A.Y, w.B.X, w.B.Y, 0.05, ClrBlack)
		}
		for _, r := range c.curr.Rays {
			clr := ClrBlue
			if r.NumReflections == 0 {
				clr = ClrCyan
			}
			for i := 1; i < len(r.Path); i++ {
				a, b := r.Path[i-1], r.Path[i]
				c.Line(a.X, a.Y, b.X, b.Y, 0.02, clr)
			}
		}

		y += c.txtSize
		info := fmt.Sprintf("%d rays", len(c.curr.Rays))
		c.Text(0, y, c.txtSize/2, info, ClrRed)

		y = c.h/2 - 2*c.txtSize
		c.Text(0, y, c.txtSize/2, c.hint, ClrPink)

		c.lock.Unlock()
	})
}

// Line primitive
func (c *SDLCanvas) Line(x1, y1, x2, y2, w float64, clr *color.RGBA) {
	cx1, cy1 := c.xlate(x1, y1)
	cx2, cy2 := c.xlate(x2, y2)
	cw := c.scale * w
	c.cv.SetStrokeStyle(clr.R, clr.G, clr.B)
	c.cv.SetLineWidth(cw)
	c.cv.BeginPath()
	c.cv.MoveTo(cx1, cy1)
	c.cv.LineTo(cx2, cy2)
	c.cv.ClosePath()
	c.cv.Stroke()
}

// Circle primitive
func (c *SDLCanvas) Circle(x, y, r, w float64, clrBorder, clrFill *color.RGBA) {
	cx, cy := c.xlate(x, y)
	cr := c.scale * r
	cw := c.scale * w
	if clrFill != nil {
		c.cv.SetFillStyle(clrFill.R, clrFill.G, clrFill.B)
		c.cv.BeginPath()
		c.cv.Arc(cx, cy, cr, 0, math.Pi*2, false)
		c.cv.ClosePath()
		c.cv.Fill()
	}
	if clrBorder != nil {
		c.cv.SetStrokeStyle(clrBorder.R, clrBorder.G, clrBorder.B)
		c.cv.SetLineWidth(cw)
		c.cv.BeginPath()
		c.cv.Arc(cx, cy, cr, 0, math.Pi*2, false)
		c.cv.ClosePath()
		c.cv.Stroke()
	}
}

// Text primitive
func (c *SDLCanvas) Text(x, y, fs float64, s string, clr *color.RGBA) {
	cx, cy := c.xlate(x, y)
	cfs := c.scale * fs
	c.cv.SetFillStyle(clr.R, clr.G, clr.B)
	c.cv.SetTextAlign(canvas.Center)
	c.cv.SetTextBaseline(canvas.Middle)
	c.cv.SetFont(nil, cfs)
	c.cv.FillText(s, cx, cy)
}

// Dump canvas to file
func (c *SDLCanvas) Dump(fName string) error {
	return nil
}

// coordinate translation
func (c *SDLCanvas) xlate(x, y float64) (float64, float64) {
	return x*c.scale + c.offX, y*c.scale + c.offY
}
