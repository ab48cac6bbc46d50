package codegen

import (
	"encoding/hex"
	"fmt"
	"math"
	"strconv"

	"github.com/funvibe/funbit/pkg/funbit"
)

// writeFloat encodes a 32-bit float so the emitted program decodes the
// exact same value on any host. Integral values are safe as decimal
// literals (with a special case so -0.0 keeps its sign). Everything else
// rides through bin2float as the raw IEEE-754 bit pattern, because the
// host's own float literal parser may round differently than the 32-bit
// source value. The leading decimal argument is a readability hint only;
// the runtime never parses it.
func (g *Generator) writeFloat(f float32) {
	d := float64(f)
	if math.Trunc(d) == d && d >= math.MinInt64 && d <= math.MaxInt64 {
		if f == 0 && math.Signbit(d) {
			g.write("-0.0")
			return
		}
		g.write(strconv.FormatInt(int64(d), 10) + ".0")
		return
	}
	g.writef("bin2float('%s', '%s')", strconv.FormatFloat(d, 'f', 6, 64), floatBitsHex(f))
}

// floatBitsHex returns the little-endian hex encoding of the float's
// 32-bit IEEE-754 pattern, the wire order bin2float expects.
func floatBitsHex(f float32) string {
	b := funbit.NewBuilder()
	funbit.AddFloat(b, float64(f), funbit.WithSize(32))
	bits, err := b.Build()
	if err != nil {
		panic(fmt.Sprintf("codegen: float bit encoding failed: %v", err))
	}
	raw := bits.ToBytes() // big-endian segment order
	le := []byte{raw[3], raw[2], raw[1], raw[0]}
	return hex.EncodeToString(le)
}
