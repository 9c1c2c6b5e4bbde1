// Package search implements the product search showcase: category detection
// from a partial query, brand, category and spec suggestions, the product
// row and the looping typed-query demo.
package search

import (
	_ "embed"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"sync"
	"unicode"
	"unicode/utf8"

	"gopkg.in/yaml.v3"
)

//go:embed data/catalog.yaml
var embeddedCatalog []byte

// Display limits of the showcase.
const (
	MaxBrands     = 3
	MaxProducts   = 5
	MaxCategories = 2
	MaxSpecs      = 2
)

// Noun is the product category a query is about.
type Noun string

const (
	NounNotebook   Noun = "Notebook"
	NounTablet     Noun = "Tablet"
	NounSmartwatch Noun = "Smartwatch"
	// NounAny means the query names no category; every product set is searched.
	NounAny Noun = "Products"
)

// IsBase reports whether n is a concrete category.
func (n Noun) IsBase() bool {
	return n == NounNotebook || n == NounTablet || n == NounSmartwatch
}

// ErrBadCatalog wraps catalog validation failures.
var ErrBadCatalog = errors.New("invalid search catalog")

// Product is one item of the product row.
type Product struct {
	ID    string `yaml:"id" json:"id"`
	Name  string `yaml:"name" json:"name"`
	Price int    `yaml:"price" json:"price"`
	Image string `yaml:"image" json:"image"`
	Brand string `yaml:"brand" json:"brand"`
}

// BrandOption is a brand chip. Query is the keyword the chip completes to.
type BrandOption struct {
	Brand string `json:"brand"`
	Query string `json:"query"`
}

// Option is a category or spec chip.
type Option struct {
	Label string `json:"label"`
	Query string `json:"query"`
}

// Result is what the showcase shows for one query.
type Result struct {
	Query      string        `json:"query"`
	Noun       Noun          `json:"noun"`
	Base       Noun          `json:"base"`
	Products   []Product     `json:"products"`
	Matched    bool          `json:"matched"`
	Brands     []BrandOption `json:"brands"`
	Categories []Option      `json:"categories"`
	Specs      []Option      `json:"specs"`
	Ghost      string        `json:"ghost,omitempty"`
}

type category struct {
	Noun          Noun      `yaml:"noun"`
	Brands        []string  `yaml:"brands"`
	CategoryBases []string  `yaml:"category_bases"`
	SpecBases     []string  `yaml:"spec_bases"`
	Products      []Product `yaml:"products"`
}

type catalogFile struct {
	Pages         []Noun              `yaml:"pages"`
	Categories    []category          `yaml:"categories"`
	BrandKeywords map[string][]string `yaml:"brand_keywords"`
}

// Catalog is the immutable showcase data.
type Catalog struct {
	pages      []Noun
	categories map[Noun]*category
	all        []Product
	keywords   map[string][]string
}

// Parse decodes and validates a YAML catalog.
func Parse(data []byte) (*Catalog, error) {
	var f catalogFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("decode search catalog: %w", err)
	}

	c := &Catalog{
		pages:      f.Pages,
		categories: make(map[Noun]*category, len(f.Categories)),
		keywords:   make(map[string][]string, len(f.BrandKeywords)),
	}
	for brand, kws := range f.BrandKeywords {
		if len(kws) == 0 {
			return nil, fmt.Errorf("%w: brand %q has no keywords", ErrBadCatalog, brand)
		}
		lowered := make([]string, len(kws))
		for i, k := range kws {
			lowered[i] = strings.ToLower(k)
		}
		c.keywords[brand] = lowered
	}

	for i := range f.Categories {
		cat := &f.Categories[i]
		if !cat.Noun.IsBase() {
			return nil, fmt.Errorf("%w: unknown category %q", ErrBadCatalog, cat.Noun)
		}
		if len(cat.Products) == 0 {
			return nil, fmt.Errorf("%w: category %q has no products", ErrBadCatalog, cat.Noun)
		}
		for _, b := range cat.Brands {
			if _, ok := c.keywords[b]; !ok {
				return nil, fmt.Errorf("%w: brand %q has no keywords", ErrBadCatalog, b)
			}
		}
		c.categories[cat.Noun] = cat
		c.all = append(c.all, cat.Products...)
	}

	for _, n := range []Noun{NounNotebook, NounTablet, NounSmartwatch} {
		if _, ok := c.categories[n]; !ok {
			return nil, fmt.Errorf("%w: missing category %q", ErrBadCatalog, n)
		}
	}
	if len(c.pages) == 0 {
		return nil, fmt.Errorf("%w: no demo pages", ErrBadCatalog)
	}
	for _, p := range c.pages {
		if !p.IsBase() {
			return nil, fmt.Errorf("%w: demo page %q is not a category", ErrBadCatalog, p)
		}
	}
	return c, nil
}

var (
	defaultOnce    sync.Once
	defaultCatalog *Catalog
	defaultErr     error
)

// Default returns the catalog compiled into the binary.
func Default() (*Catalog, error) {
	defaultOnce.Do(func() {
		defaultCatalog, defaultErr = Parse(embeddedCatalog)
	})
	return defaultCatalog, defaultErr
}

// Pages returns the queries the demo types, in order.
func (c *Catalog) Pages() []Noun {
	return c.pages
}

// Brand returns the chip for a brand name.
func (c *Catalog) Brand(name string) (BrandOption, bool) {
	kws, ok := c.keywords[name]
	if !ok {
		return BrandOption{}, false
	}
	return BrandOption{Brand: name, Query: kws[0]}, true
}

// Search computes the showcase state for a query. An empty query shows the
// notebook set.
func (c *Catalog) Search(query string) Result {
	noun := NounNotebook
	if strings.TrimSpace(query) != "" {
		noun = DeriveNoun(query)
	}
	base := noun
	if !base.IsBase() {
		base = NounNotebook
	}
	cat := c.categories[base]

	pool := cat.Products
	if noun == NounAny {
		pool = c.all
	}
	fallback := pool[:min(len(pool), MaxProducts)]

	q := strings.ToLower(strings.TrimSpace(query))
	var matched []Product
	if q == "" {
		matched = fallback
	} else {
		for _, p := range pool {
			if strings.Contains(strings.ToLower(p.Name), q) || strings.Contains(strings.ToLower(p.Brand), q) {
				matched = append(matched, p)
				if len(matched) == MaxProducts {
					break
				}
			}
		}
	}

	brands := c.brandOptions(query, noun)
	if len(brands) == 0 {
		brands = c.brandOptions("", noun)
	}

	return Result{
		Query:      query,
		Noun:       noun,
		Base:       base,
		Products:   padProducts(matched, fallback),
		Matched:    len(matched) > 0,
		Brands:     brands,
		Categories: rankedOptions(query, base, cat.CategoryBases, func(b string) string { return b + " " + string(base) }, MaxCategories),
		Specs:      rankedOptions(query, base, cat.SpecBases, func(b string) string { return string(base) + " " + b }, MaxSpecs),
		Ghost:      ghost(query, base),
	}
}

// padProducts fills the row up to MaxProducts from the fallback set so the
// row never shrinks while a query narrows.
func padProducts(basis, fallback []Product) []Product {
	if len(basis) == 0 {
		basis = fallback
	}
	out := make([]Product, 0, MaxProducts)
	out = append(out, basis[:min(len(basis), MaxProducts)]...)
	for _, f := range fallback {
		if len(out) >= MaxProducts {
			break
		}
		if !containsProduct(out, f.ID) {
			out = append(out, f)
		}
	}
	return out
}

func containsProduct(ps []Product, id string) bool {
	for _, p := range ps {
		if p.ID == id {
			return true
		}
	}
	return false
}

// HoldBrands keeps the brand row full: when next has fewer than MaxBrands
// entries it is padded with previously shown brands it does not contain.
func HoldBrands(prev, next []BrandOption) []BrandOption {
	out := append([]BrandOption(nil), next[:min(len(next), MaxBrands)]...)
	for _, p := range prev {
		if len(out) >= MaxBrands {
			break
		}
		dup := false
		for _, o := range out {
			if o.Brand == p.Brand {
				dup = true
				break
			}
		}
		if !dup {
			out = append(out, p)
		}
	}
	return out
}

// brandOptions ranks the category's brands against the part of the query
// after the category name. Prefix matches on a keyword come first.
func (c *Catalog) brandOptions(query string, noun Noun) []BrandOption {
	base := noun
	if !base.IsBase() {
		base = NounNotebook
	}
	brands := c.categories[base].Brands
	q := stripNounPrefix(query, base)

	var ordered []string
	if q == "" {
		ordered = brands
	} else {
		var starts, contains []string
		for _, b := range brands {
			switch {
			case anyKeyword(c.keywords[b], q, strings.HasPrefix):
				starts = append(starts, b)
			case anyKeyword(c.keywords[b], q, strings.Contains):
				contains = append(contains, b)
			}
		}
		ordered = append(starts, contains...)
	}

	out := make([]BrandOption, 0, MaxBrands)
	for _, b := range ordered[:min(len(ordered), MaxBrands)] {
		out = append(out, BrandOption{Brand: b, Query: c.keywords[b][0]})
	}
	return out
}

func anyKeyword(kws []string, q string, match func(s, sub string) bool) bool {
	for _, k := range kws {
		if match(k, q) {
			return true
		}
	}
	return false
}

func rankedOptions(query string, base Noun, bases []string, label func(string) string, limit int) []Option {
	labels := make([]string, len(bases))
	for i, b := range bases {
		labels[i] = label(b)
	}

	q := stripNounPrefix(query, base)
	ordered := labels
	if q != "" {
		var starts, contains []string
		for _, l := range labels {
			n := normalize(l)
			switch {
			case strings.HasPrefix(n, q):
				starts = append(starts, l)
			case strings.Contains(n, q):
				contains = append(contains, l)
			}
		}
		ordered = append(starts, contains...)
	}

	out := make([]Option, 0, limit)
	for _, l := range ordered[:min(len(ordered), limit)] {
		out = append(out, Option{Label: l, Query: l})
	}
	return out
}

// normalize lowercases s and collapses runs of whitespace.
func normalize(s string) string {
	return strings.Join(strings.Fields(strings.ToLower(s)), " ")
}

// stripNounPrefix drops a leading category word from the normalized query.
func stripNounPrefix(query string, noun Noun) string {
	q := normalize(query)
	n := strings.ToLower(string(noun))
	if !strings.HasPrefix(q, n) {
		return q
	}
	rest := q[len(n):]
	if r, _ := utf8.DecodeRuneInString(rest); rest != "" && isWordRune(r) {
		return q
	}
	return strings.TrimLeft(rest, " ")
}

func isWordRune(r rune) bool {
	return r == '_' || r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r))
}

// ghost returns the inline completion shown after a partially typed
// category name, or "".
func ghost(query string, base Noun) string {
	raw := strings.ToLower(query)
	if raw == "" || len(raw) != len(query) || strings.Contains(raw, " ") {
		return ""
	}
	typingNoun := false
	for _, n := range []Noun{NounNotebook, NounTablet, NounSmartwatch} {
		if strings.HasPrefix(strings.ToLower(string(n)), raw) {
			typingNoun = true
			break
		}
	}
	name := string(base)
	if !typingNoun || !strings.HasPrefix(strings.ToLower(name), raw) || len(name) <= len(query) {
		return ""
	}
	return name[len(query):]
}

var (
	notebookPrefix = regexp.MustCompile(`^(n|โน)`)
	tabletPrefix   = regexp.MustCompile(`^(t|แท|ip|galaxy ?tab)`)
	watchPrefix    = regexp.MustCompile(`^(s|wa|นาฬ|สมาร์ท)`)
	watchWord      = regexp.MustCompile(`smart ?watch|apple ?watch|galaxy ?watch|watch`)
	tabletWord     = regexp.MustCompile(`tablet|ipad|galaxy ?tab|\btab\b`)
	notebookWord   = regexp.MustCompile(`notebook|laptop|macbook|zenbook|xps|thinkpad|pavilion|inspiron|vivobook`)
)

// DeriveNoun guesses the category a query is heading for. Leading letters
// decide first, so "n" already means notebooks; whole words anywhere in the
// query come next. Brand names alone name no category.
func DeriveNoun(query string) Noun {
	q := strings.ToLower(strings.TrimSpace(query))
	switch {
	case q == "":
		return NounAny
	case notebookPrefix.MatchString(q):
		return NounNotebook
	case tabletPrefix.MatchString(q):
		return NounTablet
	case watchPrefix.MatchString(q):
		return NounSmartwatch
	case watchWord.MatchString(q):
		return NounSmartwatch
	case tabletWord.MatchString(q):
		return NounTablet
	case notebookWord.MatchString(q):
		return NounNotebook
	default:
		return NounAny
	}
}

// Highlight splits label around the first case-insensitive occurrence of
// query. ok is false when there is nothing to highlight.
func Highlight(label, query string) (pre, match, post string, ok bool) {
	q := strings.TrimSpace(query)
	if q == "" {
		return label, "", "", false
	}
	ll, lq := strings.ToLower(label), strings.ToLower(q)
	if len(ll) != len(label) || len(lq) != len(q) {
		return label, "", "", false
	}
	i := strings.Index(ll, lq)
	if i < 0 {
		return label, "", "", false
	}
	return label[:i], label[i : i+len(q)], label[i+len(q):], true
}
