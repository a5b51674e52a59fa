package spring

import "math"

// solution is the closed form of one motion segment, relative to the
// equilibrium, as a function of elapsed seconds.
type solution interface {
	position(t float64) float64
	velocity(t float64) float64
}

// rest is the solution after a snap: sitting on the equilibrium.
type rest struct{}

func (rest) position(float64) float64 { return 0 }
func (rest) velocity(float64) float64 { return 0 }

// critical: x(t) = (c1 + c2·t)·e^(rt)
type critical struct {
	r, c1, c2 float64
}

func (s critical) position(t float64) float64 {
	return (s.c1 + s.c2*t) * math.Exp(s.r*t)
}

func (s critical) velocity(t float64) float64 {
	e := math.Exp(s.r * t)
	return s.r*(s.c1+s.c2*t)*e + s.c2*e
}

// overdamped: x(t) = c1·e^(r1·t) + c2·e^(r2·t)
type overdamped struct {
	r1, r2, c1, c2 float64
}

func (s overdamped) position(t float64) float64 {
	return s.c1*math.Exp(s.r1*t) + s.c2*math.Exp(s.r2*t)
}

func (s overdamped) velocity(t float64) float64 {
	return s.c1*s.r1*math.Exp(s.r1*t) + s.c2*s.r2*math.Exp(s.r2*t)
}

// underdamped: x(t) = e^(rt)·(c1·cos(wt) + c2·sin(wt))
type underdamped struct {
	r, w, c1, c2 float64
}

func (s underdamped) position(t float64) float64 {
	return math.Exp(s.r*t) * (s.c1*math.Cos(s.w*t) + s.c2*math.Sin(s.w*t))
}

func (s underdamped) velocity(t float64) float64 {
	e := math.Exp(s.r * t)
	cos := math.Cos(s.w * t)
	sin := math.Sin(s.w * t)
	return e * (s.r*(s.c1*cos+s.c2*sin) + s.w*(s.c2*cos-s.c1*sin))
}
