package eli5

// Renderer turns assistant markdown into terminal output wrapped to width.
// Rendering is presentation only; history keeps the reply text verbatim.
type Renderer interface {
	Render(source string, width int) string
}
