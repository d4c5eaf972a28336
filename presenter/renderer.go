// Package presenter turns quotes and validation failures into something a
// client can display. The calculator itself never writes output; handlers
// pick a Renderer and hand it the result.
package presenter

import "io"

// Renderer is an output sink for one calculation result. Exactly one of
// RenderQuote or RenderError is called per calculation.
type Renderer interface {
	ContentType() string
	RenderQuote(w io.Writer, s Summary) error
	RenderError(w io.Writer, message string) error
}
