package scenario

import (
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// printer remembers the first write error so the report code can stay linear.
type printer struct {
	w   io.Writer
	err error
}

func (p *printer) printf(format string, args ...any) {
	if p.err != nil {
		return
	}
	_, p.err = fmt.Fprintf(p.w, format, args...)
}

// WriteText narrates reports for a terminal.
func WriteText(w io.Writer, reports []Report) error {
	p := &printer{w: w}
	for i, rep := range reports {
		if i > 0 {
			p.printf("\n")
		}
		p.printf("== %s: %s\n", rep.Name, rep.Label)
		for _, res := range rep.Results {
			p.printf("-- precision %d\n", res.Precision)
			for _, s := range res.Steps {
				p.printf("   %s: %s\n", s.Label, s.Value)
			}
			for _, m := range res.Measurements {
				p.printf("   %s: %s\n", m.Label, m.Value)
				p.printf("      reference: %s\n", m.Reference)
				p.printf("      error: %s\n", m.Error)
				p.printf("      error > %s: %t\n", rep.Threshold, m.Exceeds)
				p.printf("      equal: %t\n", m.Equal)
			}
			if res.Failed() {
				p.printf("   failed: %s\n", res.Failure)
			}
		}
	}
	return p.err
}

// WriteYAML writes reports as a YAML document.
func WriteYAML(w io.Writer, reports []Report) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(reports); err != nil {
		return Error.Wrap(err)
	}
	return Error.Wrap(enc.Close())
}
