package symbol

// Matrix is a square grid of modules. Dark modules are true.
type Matrix struct {
	n    int
	dark []bool
}

func newMatrix(n int) *Matrix {
	return &Matrix{n: n, dark: make([]bool, n*n)}
}

// Size returns the number of modules per side.
func (m *Matrix) Size() int { return m.n }

// Dark reports whether the module at row, col is dark.
func (m *Matrix) Dark(row, col int) bool {
	return m.dark[row*m.n+col]
}

func (m *Matrix) set(row, col int, v bool) {
	m.dark[row*m.n+col] = v
}

func (m *Matrix) flip(row, col int) {
	m.dark[row*m.n+col] = !m.dark[row*m.n+col]
}
