// Package render draws the mortplot charts as PNG images with go-chart.
//
// Each chart has a build function returning the chart.Chart value, so the
// series can be inspected without decoding pixels, and a render function that
// returns the encoded PNG.
package render
