package typewriter

// Paragraphs "read" from the sample document of the OCR showcase.
const (
	SampleParagraph1 = "In the fiscal year 2025, the company experienced steady and sustainable growth across all major product categories. Notebooks remained the cornerstone of overall revenue, supported by consistent demand from education and enterprise customers."
	SampleParagraph2 = "Tablets showed remarkable improvement, largely driven by e-learning platforms and the growing adoption of hybrid work. Smartwatches gained traction among health-conscious users, valued for real-time monitoring features."
)
