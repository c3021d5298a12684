package qr

// bitBuffer is an append-only sequence of bits, most significant bit first.
type bitBuffer struct {
	n    int
	data []byte
}

// appendBits appends the low n bits of v, high bit first.
func (b *bitBuffer) appendBits(v uint32, n int) {
	for i := n - 1; i >= 0; i-- {
		if b.n%8 == 0 {
			b.data = append(b.data, 0)
		}
		if v&(1<<uint(i)) != 0 {
			b.data[b.n/8] |= 0x80 >> uint(b.n%8)
		}
		b.n++
	}
}

func (b *bitBuffer) len() int { return b.n }

// bytes returns the buffer packed into bytes. Trailing bits of the last
// byte are zero.
func (b *bitBuffer) bytes() []byte {
	out := make([]byte, len(b.data))
	copy(out, b.data)
	return out
}
