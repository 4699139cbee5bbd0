package symbol

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSelectMicroVersion(t *testing.T) {
	tests := []struct {
		code    string
		version string
		level   Level
	}{
		{"1", "M1", LevelDetect},
		{"12345", "M1", LevelDetect},
		{"123456", "M2", LevelM},
		{"ABC", "M2", LevelM},
		{"ABC-123", "M3", LevelM},
		{"hello", "M3", LevelM},
		{"123456789012345678901", "M3", LevelL},
		{"abcdefghijklmno", "M4", LevelL},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			v, lvl, _, ok := selectMicro(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.version, v.name)
			assert.Equal(t, tt.level, lvl.level)
		})
	}
}

func TestSelectMicroTooLong(t *testing.T) {
	for _, code := range []string{
		"abcdefghijklmnop", // 16 bytes exceeds M4-L
		"https://example.com/product/12345",
		"",
	} {
		_, _, _, ok := selectMicro(code)
		assert.False(t, ok, "%q should not fit a micro symbol", code)
	}
}

func TestDetectMode(t *testing.T) {
	assert.Equal(t, modeNumeric, detectMode("0123"))
	assert.Equal(t, modeAlphanumeric, detectMode("AB CD$%*+-./:"))
	assert.Equal(t, modeByte, detectMode("abc"))
	assert.Equal(t, modeByte, detectMode("café"))
}

func TestDataCodewordsNumeric(t *testing.T) {
	// 01234567 in M2-L: mode 0, count 1000, then 10+10+7 data bits,
	// 5 terminator bits and 3 bits of byte padding.
	v, lvl := microVersions[1], microVersions[1].levels[0]
	got := dataCodewords(v, lvl, modeNumeric, "01234567")
	assert.Equal(t, []byte{0x40, 0x18, 0xAC, 0xC3, 0x00}, got)
}

func TestDataCodewordsPadding(t *testing.T) {
	// "1" in M1: 3 count bits, 4 data bits and 3 terminator bits padded to
	// two bytes. The remaining nibble is too short for a pad codeword.
	v, lvl := microVersions[0], microVersions[0].levels[0]
	assert.Equal(t, []byte{0x22, 0x00, 0x00}, dataCodewords(v, lvl, modeNumeric, "1"))

	// "12345" fills M1 exactly.
	assert.Equal(t, []byte{0xA3, 0xDA, 0xD0}, dataCodewords(v, lvl, modeNumeric, "12345"))

	// "1" in M2-L leaves room for alternating pad codewords.
	v, lvl = microVersions[1], microVersions[1].levels[0]
	assert.Equal(t, []byte{0x08, 0x80, 0xEC, 0x11, 0xEC}, dataCodewords(v, lvl, modeNumeric, "1"))
}

func TestReedSolomon(t *testing.T) {
	// Reference 1-M symbol for "01234567".
	data := []byte{0x10, 0x20, 0x0C, 0x56, 0x61, 0x80, 0xEC, 0x11,
		0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11, 0xEC, 0x11}
	want := []byte{0xA5, 0x24, 0xD4, 0xC1, 0xED, 0x36, 0xC7, 0x87, 0x2C, 0x55}
	assert.Equal(t, want, rsEncode(data, 10))
}

func TestFormatBits(t *testing.T) {
	assert.Equal(t, uint(0x4445), formatBits(0, 0))
	seen := map[uint]bool{}
	for sn := uint(0); sn < 8; sn++ {
		for mask := range 4 {
			w := formatBits(sn, mask)
			assert.Less(t, w, uint(1<<15))
			assert.False(t, seen[w], "duplicate format word %x", w)
			seen[w] = true
		}
	}
}

func TestPlacementFillsDataModules(t *testing.T) {
	// Data modules equal the codeword capacity in bits.
	for _, v := range microVersions {
		lvl := v.levels[0]
		want := (lvl.dataBits+7)/8*8 + lvl.ecCodewords*8
		if lvl.dataBits%8 != 0 {
			want -= 4
		}
		l := newMicroLayout(v.size)
		assert.Equal(t, want, l.place(nil), v.name)
	}
}

func TestEncodeMicroStructure(t *testing.T) {
	m, info, ok := encodeMicro("ABC-123")
	require.True(t, ok)
	assert.Equal(t, TierMicro, info.Tier)
	assert.Equal(t, 15, m.Size())
	assert.GreaterOrEqual(t, info.Mask, 0)

	// finder corners and center
	assert.True(t, m.Dark(0, 0))
	assert.True(t, m.Dark(6, 6))
	assert.True(t, m.Dark(3, 3))
	assert.False(t, m.Dark(1, 1))
	// separator
	for i := 0; i <= 7; i++ {
		assert.False(t, m.Dark(7, i))
		assert.False(t, m.Dark(i, 7))
	}
	// timing
	for i := 8; i < m.Size(); i++ {
		assert.Equal(t, i%2 == 0, m.Dark(0, i))
		assert.Equal(t, i%2 == 0, m.Dark(i, 0))
	}
}

func TestEncodeMicroDeterministic(t *testing.T) {
	a, _, _ := encodeMicro("12345")
	b, _, _ := encodeMicro("12345")
	assert.Equal(t, a.dark, b.dark)
}

func TestBitBuffer(t *testing.T) {
	var b bitBuffer
	b.append(0b101, 3)
	b.zeros(2)
	b.append(0xF, 4)
	assert.Equal(t, 9, b.Len())
	assert.True(t, bytes.Equal([]byte{0xA7, 0x80}, b.bytes()))
}

func TestReedSolomonMicroM2L(t *testing.T) {
	// 01234567 in M2-L, ISO/IEC 18004 annex example.
	data := []byte{0x40, 0x18, 0xAC, 0xC3, 0x00}
	assert.Equal(t, []byte{0x86, 0x0D, 0x22, 0xAE, 0x30}, rsEncode(data, 5))
}

// readMicro decodes the format word and codeword bits of a Micro QR matrix.
// Function modules are the 9x9 top-left block, row 0 and column 0.
func readMicro(t *testing.T, m *Matrix) (symbolNumber uint, mask int, bits []bool) {
	t.Helper()
	n := m.Size()

	var word uint
	for i := range 8 {
		if m.Dark(i+1, 8) {
			word |= 1 << uint(i)
		}
	}
	for i := range 7 {
		if m.Dark(8, 7-i) {
			word |= 1 << uint(8+i)
		}
	}
	word ^= 0x4445
	rem := word
	for i := 14; i >= 10; i-- {
		if rem&(1<<uint(i)) != 0 {
			rem ^= 0x537 << uint(i-10)
		}
	}
	require.Zero(t, rem, "format word %015b is not a BCH codeword", word)
	symbolNumber, mask = word>>12, int(word>>10&3)

	masked := [4]func(i, j int) bool{
		func(i, j int) bool { return i%2 == 0 },
		func(i, j int) bool { return (i/2+j/3)%2 == 0 },
		func(i, j int) bool { return (i*j%2+i*j%3)%2 == 0 },
		func(i, j int) bool { return ((i+j)%2+i*j%3)%2 == 0 },
	}[mask]
	isFunction := func(i, j int) bool { return i == 0 || j == 0 || (i <= 8 && j <= 8) }

	up := true
	for col := n - 1; col > 0; col -= 2 {
		for k := range n {
			i := k
			if up {
				i = n - 1 - k
			}
			for _, j := range []int{col, col - 1} {
				if isFunction(i, j) {
					continue
				}
				bits = append(bits, m.Dark(i, j) != masked(i, j))
			}
		}
		up = !up
	}
	return symbolNumber, mask, bits
}

// streamBits expands codewords into placement order. A data codeword listed in
// nibble holds only its high 4 bits.
func streamBits(codewords []byte, nibble int) []bool {
	var out []bool
	for i, c := range codewords {
		n := 8
		if i == nibble {
			n = 4
		}
		for k := 7; k > 7-n; k-- {
			out = append(out, c>>uint(k)&1 == 1)
		}
	}
	return out
}

func TestBuildMicroM2L(t *testing.T) {
	// "01234567" selects M2-M on its own; pin M2-L to check the annex symbol.
	v := microVersions[1]
	m, mask := buildMicro(v, v.levels[0], modeNumeric, "01234567")
	require.Equal(t, 13, m.Size())

	sn, gotMask, bits := readMicro(t, m)
	assert.Equal(t, uint(1), sn)
	assert.Equal(t, mask, gotMask)
	want := []byte{0x40, 0x18, 0xAC, 0xC3, 0x00, 0x86, 0x0D, 0x22, 0xAE, 0x30}
	assert.Equal(t, streamBits(want, -1), bits)
}

func TestEncodeMicroRoundTrip(t *testing.T) {
	tests := []struct {
		code         string
		version      string
		modules      int
		symbolNumber uint
		codewords    []byte // data then error correction
		nibble       int    // index of the 4-bit data codeword, -1 for none
	}{
		{
			code: "12345", version: "M1", modules: 11, symbolNumber: 0,
			codewords: []byte{0xA3, 0xDA, 0xD0, 0x6E, 0xC7},
			nibble:    2,
		},
		{
			code: "ABC", version: "M2", modules: 13, symbolNumber: 2,
			codewords: []byte{0xB3, 0x9A, 0x60, 0x00, 0xC4, 0xED, 0x0B, 0xA9, 0xE5, 0x27},
			nibble:    -1,
		},
		{
			code: "ABC-123", version: "M3", modules: 15, symbolNumber: 4,
			codewords: []byte{0x5C, 0xE6, 0xA4, 0x50, 0x5E, 0x18, 0x00, 0xEC, 0x00,
				0xE0, 0x0E, 0xF3, 0xA9, 0x44, 0xEA, 0x0F, 0xF1},
			nibble: 8,
		},
		{
			code: "abcdefghijklmno", version: "M4", modules: 17, symbolNumber: 5,
			codewords: []byte{0x4F, 0x61, 0x62, 0x63, 0x64, 0x65, 0x66, 0x67,
				0x68, 0x69, 0x6A, 0x6B, 0x6C, 0x6D, 0x6E, 0x6F,
				0x2B, 0x26, 0x0A, 0xFF, 0x30, 0xA9, 0x70, 0x3E},
			nibble: -1,
		},
	}
	for _, tt := range tests {
		t.Run(tt.code, func(t *testing.T) {
			m, info, ok := encodeMicro(tt.code)
			require.True(t, ok)
			assert.Equal(t, tt.version, info.Version)
			require.Equal(t, tt.modules, m.Size())

			sn, mask, bits := readMicro(t, m)
			assert.Equal(t, tt.symbolNumber, sn)
			assert.Equal(t, info.Mask, mask)
			assert.Equal(t, streamBits(tt.codewords, tt.nibble), bits)
		})
	}
}
