package render

import (
	"bytes"

	"github.com/pkg/errors"
	chart "github.com/wcharczuk/go-chart/v2"
)

// encode renders ch as PNG and stamps the caption, if any.
func encode(ch chart.Chart, opts Options) ([]byte, error) {
	ch.Width, ch.Height = opts.size()

	var buf bytes.Buffer
	if err := ch.Render(chart.PNG, &buf); err != nil {
		return nil, errors.Wrapf(err, "render %q", ch.Title)
	}
	if opts.Caption == "" {
		return buf.Bytes(), nil
	}
	return stampCaption(buf.Bytes(), opts.Caption)
}
