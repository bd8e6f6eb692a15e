package canvas

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// maxPPMLine is the longest data line plain PPM readers must accept
const maxPPMLine = 70

// WritePPM writes the canvas as a plain-text (P3) PPM image
func (c *Canvas) WritePPM(w io.Writer) error {
	bw := bufio.NewWriter(w)
	fmt.Fprintf(bw, "P3\n%d %d\n255\n", c.width, c.height)

	var line strings.Builder
	for y := 0; y < c.height; y++ {
		line.Reset()
		for x := 0; x < c.width; x++ {
			p := c.PixelAt(x, y)
			for _, v := range [3]float64{p.R, p.G, p.B} {
				token := strconv.Itoa(int(quantize(v)))
				if line.Len() > 0 && line.Len()+1+len(token) > maxPPMLine {
					bw.WriteString(line.String())
					bw.WriteByte('\n')
					line.Reset()
				}
				if line.Len() > 0 {
					line.WriteByte(' ')
				}
				line.WriteString(token)
			}
		}
		bw.WriteString(line.String())
		bw.WriteByte('\n')
	}
	return bw.Flush()
}

// ToPPM returns the canvas as a PPM string
func (c *Canvas) ToPPM() string {
	var sb strings.Builder
	_ = c.WritePPM(&sb)
	return sb.String()
}
