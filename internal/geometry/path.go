package geometry

import (
	"errors"
	"fmt"
	"math"
	"strconv"
)

// Rect is an axis-aligned box in viewBox units.
type Rect struct {
	MinX, MinY, MaxX, MaxY float64
}

// EmptyRect is the identity for Extend.
func EmptyRect() Rect {
	return Rect{MinX: math.Inf(1), MinY: math.Inf(1), MaxX: math.Inf(-1), MaxY: math.Inf(-1)}
}

// Empty reports whether the rect contains no points.
func (r Rect) Empty() bool {
	return r.MinX > r.MaxX || r.MinY > r.MaxY
}

// Extend grows r to include (x, y).
func (r Rect) Extend(x, y float64) Rect {
	r.MinX = math.Min(r.MinX, x)
	r.MinY = math.Min(r.MinY, y)
	r.MaxX = math.Max(r.MaxX, x)
	r.MaxY = math.Max(r.MaxY, y)
	return r
}

// Center returns the midpoint of the box.
func (r Rect) Center() (float64, float64) {
	return (r.MinX + r.MaxX) / 2, (r.MinY + r.MaxY) / 2
}

func (r Rect) Width() float64  { return r.MaxX - r.MinX }
func (r Rect) Height() float64 { return r.MaxY - r.MinY }

// ErrEmptyPath is returned for path data with no drawable segments.
var ErrEmptyPath = errors.New("empty path")

// PathBounds returns the bounding box of SVG path data. Curves are bounded by
// their control points, which contains the true curve; arcs are bounded
// exactly. Supported commands are M L H V C S Q T A Z in absolute and
// relative form.
func PathBounds(d string) (Rect, error) {
	p := &pathScanner{s: d}
	box := EmptyRect()
	var (
		cmd            byte
		x, y           float64
		startX, startY float64
	)

	for {
		p.skipSep()
		if p.eof() {
			break
		}
		if c := p.peek(); isCommand(c) {
			cmd = c
			p.i++
		} else if cmd == 0 {
			return Rect{}, fmt.Errorf("expected a command at offset %d, got %q", p.i, c)
		}

		rel := cmd >= 'a' && cmd <= 'z'
		abs := func(dx, dy float64) (float64, float64) {
			if rel {
				return x + dx, y + dy
			}
			return dx, dy
		}

		switch cmd {
		case 'M', 'm':
			nx, ny, err := p.pair()
			if err != nil {
				return Rect{}, err
			}
			x, y = abs(nx, ny)
			startX, startY = x, y
			box = box.Extend(x, y)
			// Subsequent pairs are implicit linetos.
			if rel {
				cmd = 'l'
			} else {
				cmd = 'L'
			}
		case 'L', 'l', 'T', 't':
			nx, ny, err := p.pair()
			if err != nil {
				return Rect{}, err
			}
			x, y = abs(nx, ny)
			box = box.Extend(x, y)
		case 'H', 'h':
			n, err := p.number()
			if err != nil {
				return Rect{}, err
			}
			if rel {
				x += n
			} else {
				x = n
			}
			box = box.Extend(x, y)
		case 'V', 'v':
			n, err := p.number()
			if err != nil {
				return Rect{}, err
			}
			if rel {
				y += n
			} else {
				y = n
			}
			box = box.Extend(x, y)
		case 'C', 'c', 'S', 's', 'Q', 'q':
			pairs := 3
			switch cmd {
			case 'S', 's', 'Q', 'q':
				pairs = 2
			}
			var ex, ey float64
			for k := 0; k < pairs; k++ {
				nx, ny, err := p.pair()
				if err != nil {
					return Rect{}, err
				}
				ex, ey = abs(nx, ny)
				box = box.Extend(ex, ey)
			}
			x, y = ex, ey
		case 'A', 'a':
			rx, ry, err := p.pair()
			if err != nil {
				return Rect{}, err
			}
			rot, err := p.number()
			if err != nil {
				return Rect{}, err
			}
			large, err := p.flag()
			if err != nil {
				return Rect{}, err
			}
			sweep, err := p.flag()
			if err != nil {
				return Rect{}, err
			}
			nx, ny, err := p.pair()
			if err != nil {
				return Rect{}, err
			}
			ex, ey := abs(nx, ny)
			box = arcBounds(box, x, y, ex, ey, rx, ry, rot, large, sweep)
			x, y = ex, ey
		case 'Z', 'z':
			x, y = startX, startY
			// Closepath takes no arguments, so it cannot repeat implicitly.
			cmd = 0
		default:
			return Rect{}, fmt.Errorf("unsupported path command %q", cmd)
		}
	}

	if box.Empty() {
		return Rect{}, ErrEmptyPath
	}
	return box, nil
}

func isCommand(c byte) bool {
	switch c {
	case 'M', 'm', 'L', 'l', 'H', 'h', 'V', 'v', 'C', 'c', 'S', 's', 'Q', 'q', 'T', 't', 'A', 'a', 'Z', 'z':
		return true
	}
	return false
}

type pathScanner struct {
	s string
	i int
}

func (p *pathScanner) eof() bool  { return p.i >= len(p.s) }
func (p *pathScanner) peek() byte { return p.s[p.i] }

func (p *pathScanner) skipSep() {
	for !p.eof() {
		switch p.s[p.i] {
		case ' ', '\t', '\n', '\r', ',':
			p.i++
		default:
			return
		}
	}
}

func (p *pathScanner) pair() (float64, float64, error) {
	x, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	y, err := p.number()
	if err != nil {
		return 0, 0, err
	}
	return x, y, nil
}

// flag scans an arc flag. Flags are a single 0 or 1 and need no separator,
// so "1110" is two flags followed by the number 10.
func (p *pathScanner) flag() (bool, error) {
	p.skipSep()
	if p.eof() {
		return false, fmt.Errorf("expected flag at offset %d", p.i)
	}
	switch p.peek() {
	case '0':
		p.i++
		return false, nil
	case '1':
		p.i++
		return true, nil
	}
	return false, fmt.Errorf("expected flag at offset %d, got %q", p.i, p.peek())
}

// number scans one SVG number. "1-2" is two numbers and ".5.5" is two numbers.
func (p *pathScanner) number() (float64, error) {
	p.skipSep()
	start := p.i
	if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
		p.i++
	}
	sawDot, sawDigit := false, false
scan:
	for !p.eof() {
		c := p.peek()
		switch {
		case c >= '0' && c <= '9':
			sawDigit = true
		case c == '.' && !sawDot:
			sawDot = true
		case (c == 'e' || c == 'E') && sawDigit:
			p.i++
			if !p.eof() && (p.peek() == '+' || p.peek() == '-') {
				p.i++
			}
			continue
		default:
			break scan
		}
		p.i++
	}
	if !sawDigit {
		return 0, fmt.Errorf("expected number at offset %d", start)
	}
	v, err := strconv.ParseFloat(p.s[start:p.i], 64)
	if err != nil {
		return 0, fmt.Errorf("parsing number at offset %d: %w", start, err)
	}
	return v, nil
}

// arcBounds extends box by the elliptical arc from (x1,y1) to (x2,y2), using
// the endpoint to center conversion of the SVG implementation notes. Only the
// axis extremes that fall inside the swept angle are added.
func arcBounds(box Rect, x1, y1, x2, y2, rx, ry, rotDeg float64, large, sweep bool) Rect {
	box = box.Extend(x1, y1).Extend(x2, y2)
	rx, ry = math.Abs(rx), math.Abs(ry)
	if rx == 0 || ry == 0 || (x1 == x2 && y1 == y2) {
		return box
	}

	sinPhi, cosPhi := math.Sincos(rotDeg * math.Pi / 180)
	dx, dy := (x1-x2)/2, (y1-y2)/2
	x1p := cosPhi*dx + sinPhi*dy
	y1p := -sinPhi*dx + cosPhi*dy

	if lambda := x1p*x1p/(rx*rx) + y1p*y1p/(ry*ry); lambda > 1 {
		k := math.Sqrt(lambda)
		rx, ry = rx*k, ry*k
	}

	num := rx*rx*ry*ry - rx*rx*y1p*y1p - ry*ry*x1p*x1p
	den := rx*rx*y1p*y1p + ry*ry*x1p*x1p
	coef := math.Sqrt(math.Max(0, num/den))
	if large == sweep {
		coef = -coef
	}
	cxp, cyp := coef*rx*y1p/ry, -coef*ry*x1p/rx
	cx := cosPhi*cxp - sinPhi*cyp + (x1+x2)/2
	cy := sinPhi*cxp + cosPhi*cyp + (y1+y2)/2

	theta1 := vectorAngle(1, 0, (x1p-cxp)/rx, (y1p-cyp)/ry)
	delta := vectorAngle((x1p-cxp)/rx, (y1p-cyp)/ry, (-x1p-cxp)/rx, (-y1p-cyp)/ry)
	if !sweep && delta > 0 {
		delta -= 2 * math.Pi
	} else if sweep && delta < 0 {
		delta += 2 * math.Pi
	}

	tx := math.Atan2(-ry*sinPhi, rx*cosPhi)
	ty := math.Atan2(ry*cosPhi, rx*sinPhi)
	for _, t := range []float64{tx, tx + math.Pi, ty, ty + math.Pi} {
		if !inSweep(t, theta1, delta) {
			continue
		}
		st, ct := math.Sincos(t)
		box = box.Extend(cx+rx*cosPhi*ct-ry*sinPhi*st, cy+rx*sinPhi*ct+ry*cosPhi*st)
	}
	return box
}

func vectorAngle(ux, uy, vx, vy float64) float64 {
	return math.Atan2(ux*vy-uy*vx, ux*vx+uy*vy)
}

// inSweep reports whether angle t lies on the arc starting at start and
// turning by delta radians.
func inSweep(t, start, delta float64) bool {
	var off float64
	if delta >= 0 {
		off = math.Mod(t-start, 2*math.Pi)
	} else {
		off = math.Mod(start-t, 2*math.Pi)
	}
	if off < 0 {
		off += 2 * math.Pi
	}
	return off <= math.Abs(delta)
}
