// Package testkit builds deterministic demo snapshots with known
// statistical structure, used by tests and the demo table the server
// registers at startup.
package testkit

import (
	"math"

	"tablelens/domain/table"
)

// Generator produces reproducible pseudo-random data. The linear
// congruential state makes every run identical without seeding plumbing.
type Generator struct {
	state float64
}

// NewGenerator creates a generator with a fixed seed
func NewGenerator() *Generator {
	return &Generator{state: 12345.0}
}

// Norm returns a standard-normal draw via the Box-Muller transform
func (g *Generator) Norm() float64 {
	u1 := g.uniform()
	u2 := g.uniform()
	return math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)
}

func (g *Generator) uniform() float64 {
	g.state = math.Mod(g.state*1103515245+12345, 2147483648)
	u := g.state / 2147483648.0
	if u <= 0 {
		return 1e-9
	}
	return u
}

// LinearSeries returns slope*x + intercept + noise over x = i/n
func (g *Generator) LinearSeries(n int, slope, intercept, noise float64) []float64 {
	data := make([]float64, n)
	for i := 0; i < n; i++ {
		x := float64(i) / float64(n)
		data[i] = slope*x + intercept + g.Norm()*noise
	}
	return data
}

// StepSeries returns a level shift from low to high at the given index
func StepSeries(n, shiftAt int, low, high float64) []float64 {
	data := make([]float64, n)
	for i := range data {
		if i < shiftAt {
			data[i] = low
		} else {
			data[i] = high
		}
	}
	return data
}

// DemoTable builds a snapshot with known structure across every analysis:
// y = 2x+1 exactly, c = a+b and d = a-b for canonical correlation, a level
// shift in "load", and two categorical columns where region=north implies
// tier=gold.
func DemoTable(name string, n int) *table.Table {
	g := NewGenerator()
	columns := []string{"x", "y", "a", "b", "c", "d", "load", "region", "tier"}
	rows := make([][]table.Value, 0, n)

	for i := 0; i < n; i++ {
		x := float64(i)
		a := 3 + g.Norm()
		b := 10 + 2*g.Norm()

		load := 50.0
		if i >= n/2 {
			load = 120.0
		}
		load += g.Norm()

		region := "south"
		tier := "silver"
		if i%3 == 0 {
			region = "north"
			tier = "gold"
		} else if i%5 == 0 {
			tier = "gold"
		}

		rows = append(rows, []table.Value{
			table.NumberValue(x),
			table.NumberValue(2*x + 1),
			table.NumberValue(a),
			table.NumberValue(b),
			table.NumberValue(a + b),
			table.NumberValue(a - b),
			table.NumberValue(load),
			table.TextValue(region),
			table.TextValue(tier),
		})
	}

	return table.New(name, columns, rows)
}
