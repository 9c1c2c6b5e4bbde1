package components

// NavItem is one entry of a navbar dropdown.
type NavItem struct {
	Name        string
	Description string
	Href        string
}

// ProductCategory groups product entries under a heading.
type ProductCategory struct {
	Name        string
	Description string
	Items       []NavItem
}

// SiteContent is the static copy of the landing page.
type SiteContent struct {
	Brand      string
	Products   []ProductCategory
	Resources  []NavItem
	CTA        string
	Subtitle   string
	HeroLines  []string
	Footer     []FooterColumn
	Socials    []NavItem
	LegalLinks []NavItem
}

// FooterColumn is a titled list of footer links.
type FooterColumn struct {
	Title string
	Links []NavItem
}

// DefaultContent is the copy served by the site.
var DefaultContent = SiteContent{
	Brand: "Codelabs",
	Products: []ProductCategory{
		{
			Name:        "Build AI",
			Description: "Custom AI development services",
			Items: []NavItem{
				{Name: "Chat sale by AI", Description: "Conversational assistants that sell for you", Href: "#chat-sale"},
				{Name: "Data platform", Description: "Pipelines and dashboards on your data", Href: "#"},
			},
		},
		{
			Name:        "AI Solutions",
			Description: "Ready-to-deploy AI solutions",
			Items: []NavItem{
				{Name: "Optical Character Recognition", Description: "Read, extract and understand text instantly", Href: "#ocr"},
				{Name: "Face recognition", Description: "Identity checks at the edge", Href: "#"},
			},
		},
	},
	Resources: []NavItem{
		{Name: "Case Studies", Href: "#"},
		{Name: "Blog", Href: "#"},
		{Name: "Partner", Href: "#"},
	},
	CTA:      "Contact us",
	Subtitle: "Unlock AI power for your business",
	HeroLines: []string{
		"From chat sales to document understanding, we ship AI that works on day one.",
		"Tell us what you need and we will build it with you.",
	},
	Footer: []FooterColumn{
		{Title: "Products", Links: []NavItem{
			{Name: "Codelabs Data Platform", Href: "#"},
			{Name: "Codelabs Platform-AI", Href: "#"},
		}},
		{Title: "Resources", Links: []NavItem{
			{Name: "Case Studies", Href: "#"},
			{Name: "Blog", Href: "#"},
			{Name: "Pricing", Href: "#"},
		}},
		{Title: "Your Company", Links: []NavItem{
			{Name: "About", Href: "#"},
			{Name: "Contact us", Href: "#contact"},
		}},
	},
	Socials: []NavItem{
		{Name: "Discord", Href: "#"},
		{Name: "Facebook", Href: "#"},
		{Name: "Instagram", Href: "#"},
		{Name: "LINE", Href: "#"},
	},
	LegalLinks: []NavItem{
		{Name: "Privacy Policy", Href: "#"},
		{Name: "Terms of Service", Href: "#"},
		{Name: "Cookies Settings", Href: "#"},
	},
}
