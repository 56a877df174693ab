package matrix

import (
	"bufio"
	"fmt"
	"io"
)

// WriteSparse writes a textual snapshot of m: the dimensions on the first
// line, then one "row,col;value" line per non-zero entry. It is the format
// used by the diagnostic matrix sink of the elimination engine.
func WriteSparse(w io.Writer, m *Matrix) error {
	bw := bufio.NewWriter(w)
	if _, err := fmt.Fprintf(bw, "%d,%d\n", m.rows, m.cols); err != nil {
		return err
	}
	for r := 0; r < m.rows; r++ {
		for c := 0; c < m.cols; c++ {
			e := m.At(r, c)
			if e.IsZero() {
				continue
			}
			if _, err := fmt.Fprintf(bw, "%d,%d;%s\n", r, c, e); err != nil {
				return err
			}
		}
	}
	return bw.Flush()
}
