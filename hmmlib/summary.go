package hmmlib

import (
	"bytes"
	"fmt"
	"io"
)

// WriteSummary writes the model parameters as labeled text tables.
func (m *Model) WriteSummary(w io.Writer, title string) error {

	var buf bytes.Buffer

	buf.WriteString(title)
	buf.WriteString("\n")

	buf.WriteString("Initial states distribution:\n")
	writeMatrix(&buf, m.init, m.NState, 1, m.states, nil)
	buf.WriteString("\n")

	buf.WriteString("Transition matrix:\n")
	writeMatrix(&buf, m.trans, m.NState, m.NState, m.states, m.states)
	buf.WriteString("\n")

	buf.WriteString("Emission matrix:\n")
	writeMatrix(&buf, m.emit, m.NState, m.NSymbol, m.states, m.symbols)
	buf.WriteString("\n")

	_, err := w.Write(buf.Bytes())
	return err
}

// writeMatrix writes a row-major matrix in text format to buf.
func writeMatrix(buf *bytes.Buffer, x []float64, nrow, ncol int, rowlabels, collabels []string) {

	if collabels != nil {
		if rowlabels != nil {
			fmt.Fprintf(buf, "%20s", "")
		}
		for _, c := range collabels {
			fmt.Fprintf(buf, "%20s", c)
		}
		buf.WriteString("\n")
	}

	for i := 0; i < nrow; i++ {
		if rowlabels != nil {
			fmt.Fprintf(buf, "%-20s", rowlabels[i])
		}
		for j := 0; j < ncol; j++ {
			fmt.Fprintf(buf, "%20.4f", x[i*ncol+j])
		}
		buf.WriteString("\n")
	}
}
