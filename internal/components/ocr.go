package components

import (
	g "maragu.dev/gomponents"
	. "maragu.dev/gomponents/html"
)

// OCRShowcase renders the OCR section. The paragraphs are written in full;
// the page script replays them with the scan and typewriter effect.
func OCRShowcase(p1, p2 string) g.Node {
	return Section(
		ID("ocr"),
		Class("section ocr"),
		Div(
			Class("section-heading"),
			P(Class("muted"), g.Text("Read, extract, and understand text instantly")),
			H2(g.Text("AI Optical Character Recognition")),
		),
		Div(
			Class("ocr-grid"),
			Div(
				Class("ocr-viewer"),
				Img(Src("/static/images/optical.png"), Alt("Sample document for OCR"), g.Attr("loading", "lazy")),
				Div(Class("ocr-sweep"), g.Attr("aria-hidden", "true")),
			),
			Div(
				Class("ocr-output"),
				g.Attr("data-ocr", ""),
				P(g.Attr("data-ocr-paragraph", "1"), g.Text(p1)),
				P(g.Attr("data-ocr-paragraph", "2"), g.Text(p2)),
			),
		),
		Ul(
			Class("ocr-features"),
			Li(g.Text("Printed and handwritten text")),
			Li(g.Text("Tables and forms to structured data")),
			Li(g.Text("Thai and English documents")),
		),
	)
}
