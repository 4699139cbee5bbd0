package symbol

// bitBuffer is an append-only MSB-first bit sequence.
type bitBuffer struct {
	bits []bool
}

func (b *bitBuffer) Len() int { return len(b.bits) }

// append adds the low n bits of v, most significant first.
func (b *bitBuffer) append(v uint, n int) {
	for i := n - 1; i >= 0; i-- {
		b.bits = append(b.bits, v&(1<<uint(i)) != 0)
	}
}

func (b *bitBuffer) zeros(n int) {
	for range n {
		b.bits = append(b.bits, false)
	}
}

// bytes packs the bits into bytes. A trailing partial byte is left aligned.
func (b *bitBuffer) bytes() []byte {
	out := make([]byte, (len(b.bits)+7)/8)
	for i, bit := range b.bits {
		if bit {
			out[i/8] |= 0x80 >> uint(i%8)
		}
	}
	return out
}
