// Package scroll derives the back-to-top control's progress ring and
// visibility from the page scroll position. The browser listener in
// site/static/scroll.js applies the same formula on every scroll event.
package scroll

// Indicator is the rendered state of the back-to-top control.
type Indicator struct {
	Progress float64 // 0..100
	Visible  bool
}

// Compute returns the indicator for a scroll position. A document no taller
// than the viewport has zero progress.
func Compute(scrollY, documentHeight, viewportHeight float64) Indicator {
	ind := Indicator{Visible: scrollY > viewportHeight}

	scrollable := documentHeight - viewportHeight
	if scrollable <= 0 {
		return ind
	}

	ind.Progress = min(max(scrollY/scrollable*100, 0), 100)
	return ind
}
