package symbol

import "strings"

// mode is a data encoding mode.
type mode int

const (
	modeNumeric mode = iota
	modeAlphanumeric
	modeByte
)

const alphanumericChars = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ $%*+-./:"

// microLevel is one error-correction variant of a Micro QR version.
type microLevel struct {
	level        Level
	symbolNumber uint
	dataBits     int
	ecCodewords  int
}

type microVersion struct {
	name       string
	size       int
	modeBits   int
	countBits  [3]int // per mode; 0 means the mode is unavailable
	terminator int
	levels     []microLevel // lowest level first
}

var microVersions = []microVersion{
	{
		name: "M1", size: 11, modeBits: 0, countBits: [3]int{3, 0, 0}, terminator: 3,
		levels: []microLevel{{LevelDetect, 0, 20, 2}},
	},
	{
		name: "M2", size: 13, modeBits: 1, countBits: [3]int{4, 3, 0}, terminator: 5,
		levels: []microLevel{{LevelL, 1, 40, 5}, {LevelM, 2, 32, 6}},
	},
	{
		name: "M3", size: 15, modeBits: 2, countBits: [3]int{5, 4, 4}, terminator: 7,
		levels: []microLevel{{LevelL, 3, 84, 6}, {LevelM, 4, 68, 8}},
	},
	{
		name: "M4", size: 17, modeBits: 3, countBits: [3]int{6, 5, 5}, terminator: 9,
		levels: []microLevel{{LevelL, 5, 128, 8}, {LevelM, 6, 112, 10}, {LevelQ, 7, 80, 14}},
	},
}

// detectMode returns the most compact mode able to represent code.
func detectMode(code string) mode {
	numeric, alnum := true, true
	for i := 0; i < len(code); i++ {
		c := code[i]
		if c < '0' || c > '9' {
			numeric = false
		}
		if strings.IndexByte(alphanumericChars, c) < 0 {
			alnum = false
		}
	}
	switch {
	case numeric:
		return modeNumeric
	case alnum:
		return modeAlphanumeric
	}
	return modeByte
}

// payloadBits is the length of the encoded characters without header.
func payloadBits(m mode, n int) int {
	switch m {
	case modeNumeric:
		bits := n / 3 * 10
		switch n % 3 {
		case 1:
			bits += 4
		case 2:
			bits += 7
		}
		return bits
	case modeAlphanumeric:
		return n/2*11 + n%2*6
	}
	return n * 8
}

// fits reports whether a code of n characters in mode m fits v at lvl.
func (v microVersion) fits(m mode, n int, lvl microLevel) bool {
	cb := v.countBits[m]
	if cb == 0 || n >= 1<<uint(cb) {
		return false
	}
	return v.modeBits+cb+payloadBits(m, n) <= lvl.dataBits
}

// selectMicro picks the smallest Micro QR version that holds code at its
// lowest level, then the highest level of that version that still fits.
func selectMicro(code string) (microVersion, microLevel, mode, bool) {
	m := detectMode(code)
	n := len(code)
	if n == 0 {
		return microVersion{}, microLevel{}, m, false
	}
	for _, v := range microVersions {
		if !v.fits(m, n, v.levels[0]) {
			continue
		}
		for i := len(v.levels) - 1; i >= 0; i-- {
			if v.fits(m, n, v.levels[i]) {
				return v, v.levels[i], m, true
			}
		}
	}
	return microVersion{}, microLevel{}, m, false
}

// dataCodewords builds the padded data codewords for code. When the data
// capacity is not a multiple of 8 the last codeword holds 4 bits in its high
// nibble.
func dataCodewords(v microVersion, lvl microLevel, m mode, code string) []byte {
	var b bitBuffer
	b.append(uint(m), v.modeBits)
	b.append(uint(len(code)), v.countBits[m])

	switch m {
	case modeNumeric:
		for i := 0; i < len(code); i += 3 {
			group := code[i:min(i+3, len(code))]
			val := 0
			for j := 0; j < len(group); j++ {
				val = val*10 + int(group[j]-'0')
			}
			b.append(uint(val), []int{0, 4, 7, 10}[len(group)])
		}
	case modeAlphanumeric:
		for i := 0; i < len(code); i += 2 {
			a := strings.IndexByte(alphanumericChars, code[i])
			if i+1 < len(code) {
				c := strings.IndexByte(alphanumericChars, code[i+1])
				b.append(uint(a*45+c), 11)
			} else {
				b.append(uint(a), 6)
			}
		}
	default:
		for i := 0; i < len(code); i++ {
			b.append(uint(code[i]), 8)
		}
	}

	capacity := lvl.dataBits
	b.zeros(min(v.terminator, capacity-b.Len()))
	if r := b.Len() % 8; r != 0 {
		b.zeros(min(8-r, capacity-b.Len()))
	}
	for pad := uint(0xEC); capacity-b.Len() >= 8; {
		b.append(pad, 8)
		pad ^= 0xEC ^ 0x11
	}
	b.zeros(capacity - b.Len())
	return b.bytes()
}

// codewordBits appends error correction to data and returns the bit stream
// placed into the symbol.
func codewordBits(lvl microLevel, data []byte) []bool {
	ec := rsEncode(data, lvl.ecCodewords)
	var b bitBuffer
	for i, d := range data {
		if i == len(data)-1 && lvl.dataBits%8 != 0 {
			b.append(uint(d>>4), 4)
			continue
		}
		b.append(uint(d), 8)
	}
	for _, e := range ec {
		b.append(uint(e), 8)
	}
	return b.bits
}

var microMasks = [4]func(i, j int) bool{
	func(i, j int) bool { return i%2 == 0 },
	func(i, j int) bool { return (i/2+j/3)%2 == 0 },
	func(i, j int) bool { return ((i*j)%2+(i*j)%3)%2 == 0 },
	func(i, j int) bool { return ((i+j)%2+(i*j)%3)%2 == 0 },
}

// microLayout holds a symbol under construction together with the map of
// function modules that data and masks must skip.
type microLayout struct {
	m        *Matrix
	function []bool
}

func newMicroLayout(n int) *microLayout {
	l := &microLayout{m: newMatrix(n), function: make([]bool, n*n)}

	// finder pattern with its separator
	for r := 0; r <= 7; r++ {
		for c := 0; c <= 7; c++ {
			l.function[r*n+c] = true
			if r == 7 || c == 7 {
				continue
			}
			ring := r == 0 || r == 6 || c == 0 || c == 6
			core := r >= 2 && r <= 4 && c >= 2 && c <= 4
			l.m.set(r, c, ring || core)
		}
	}

	// timing patterns along the top row and left column
	for i := 8; i < n; i++ {
		l.function[i] = true
		l.function[i*n] = true
		l.m.set(0, i, i%2 == 0)
		l.m.set(i, 0, i%2 == 0)
	}

	// format information area
	for i := 1; i <= 8; i++ {
		l.function[8*n+i] = true
		l.function[i*n+8] = true
	}
	return l
}

// place writes bits in the two-column zigzag order starting at the bottom
// right corner. It returns the number of data modules visited.
func (l *microLayout) place(bits []bool) int {
	n := l.m.n
	idx := 0
	upward := true
	for right := n - 1; right >= 1; right -= 2 {
		for v := range n {
			row := v
			if upward {
				row = n - 1 - v
			}
			for z := range 2 {
				col := right - z
				if l.function[row*n+col] {
					continue
				}
				if idx < len(bits) {
					l.m.set(row, col, bits[idx])
				}
				idx++
			}
		}
		upward = !upward
	}
	return idx
}

func (l *microLayout) applyMask(k int) {
	n := l.m.n
	for i := range n {
		for j := range n {
			if !l.function[i*n+j] && microMasks[k](i, j) {
				l.m.flip(i, j)
			}
		}
	}
}

// maskScore rates a masked symbol by the dark modules along its right and
// bottom edges. Higher is better.
func (l *microLayout) maskScore() int {
	n := l.m.n
	sum1, sum2 := 0, 0
	for i := 1; i < n; i++ {
		if l.m.Dark(i, n-1) {
			sum1++
		}
		if l.m.Dark(n-1, i) {
			sum2++
		}
	}
	if sum1 <= sum2 {
		return sum1*16 + sum2
	}
	return sum2*16 + sum1
}

// formatBits returns the 15 bit BCH protected format word.
func formatBits(symbolNumber uint, mask int) uint {
	data := symbolNumber<<2 | uint(mask)
	rem := data << 10
	for i := 14; i >= 10; i-- {
		if rem&(1<<uint(i)) != 0 {
			rem ^= 0x537 << uint(i-10)
		}
	}
	return (data<<10 | rem) ^ 0x4445
}

func (l *microLayout) writeFormat(word uint) {
	for i := range 8 {
		l.m.set(i+1, 8, word>>uint(i)&1 == 1)
		l.m.set(8, i+1, word>>uint(14-i)&1 == 1)
	}
}

// encodeMicro builds the Micro QR matrix for code.
func encodeMicro(code string) (*Matrix, Info, bool) {
	v, lvl, m, ok := selectMicro(code)
	if !ok {
		return nil, Info{}, false
	}
	matrix, mask := buildMicro(v, lvl, m, code)
	return matrix, Info{
		Tier:    TierMicro,
		Version: v.name,
		Level:   lvl.level,
		Mask:    mask,
		Modules: v.size,
	}, true
}

// buildMicro lays out code in version v at lvl under each mask and keeps the
// best scoring symbol.
func buildMicro(v microVersion, lvl microLevel, m mode, code string) (*Matrix, int) {
	bits := codewordBits(lvl, dataCodewords(v, lvl, m, code))

	best, bestScore := -1, -1
	var bestMatrix *Matrix
	for k := range microMasks {
		l := newMicroLayout(v.size)
		l.place(bits)
		l.applyMask(k)
		if s := l.maskScore(); s > bestScore {
			best, bestScore = k, s
			bestMatrix = l.m
			l.writeFormat(formatBits(lvl.symbolNumber, k))
		}
	}
	return bestMatrix, best
}
