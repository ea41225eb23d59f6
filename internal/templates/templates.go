// Package templates holds the built-in meme canvas presets.
package templates

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"

	"github.com/dustin/go-humanize"
)

type Category string

const (
	CategoryPopular    Category = "popular"
	CategoryReactions  Category = "reactions"
	CategoryStory      Category = "story"
	CategoryComparison Category = "comparison"
)

type Template struct {
	ID          string
	Name        string
	Category    Category
	AspectRatio string
	Description string
	UsageCount  int
}

// Ratio parses AspectRatio ("4:3") into its two terms.
func (t Template) Ratio() (w, h int, err error) {
	parts := strings.SplitN(t.AspectRatio, ":", 2)
	if len(parts) != 2 {
		return 0, 0, fmt.Errorf("template %s: bad aspect ratio %q", t.ID, t.AspectRatio)
	}
	w, err = strconv.Atoi(strings.TrimSpace(parts[0]))
	if err != nil || w <= 0 {
		return 0, 0, fmt.Errorf("template %s: bad aspect ratio %q", t.ID, t.AspectRatio)
	}
	h, err = strconv.Atoi(strings.TrimSpace(parts[1]))
	if err != nil || h <= 0 {
		return 0, 0, fmt.Errorf("template %s: bad aspect ratio %q", t.ID, t.AspectRatio)
	}
	return w, h, nil
}

// CanvasSize returns the canvas for this template with the given width.
func (t Template) CanvasSize(width int) (int, int, error) {
	rw, rh, err := t.Ratio()
	if err != nil {
		return 0, 0, err
	}
	height := int(math.Round(float64(width) * float64(rh) / float64(rw)))
	if height < 1 {
		height = 1
	}
	return width, height, nil
}

// FormatUsage renders the usage counter for display, e.g. "12,400 uses".
func FormatUsage(t Template) string {
	if t.UsageCount == 1 {
		return "1 use"
	}
	return humanize.Comma(int64(t.UsageCount)) + " uses"
}

var seed = []Template{
	{ID: "drake", Name: "Drake Hotline Bling", Category: CategoryComparison, AspectRatio: "1:1", Description: "Reject one thing, approve another", UsageCount: 15420},
	{ID: "distracted", Name: "Distracted Boyfriend", Category: CategoryPopular, AspectRatio: "4:3", Description: "Tempted by something new", UsageCount: 12890},
	{ID: "brain", Name: "Expanding Brain", Category: CategoryStory, AspectRatio: "1:1", Description: "Escalating levels of enlightenment", UsageCount: 9870},
	{ID: "this-is-fine", Name: "This Is Fine", Category: CategoryReactions, AspectRatio: "16:9", Description: "Calm in the middle of chaos", UsageCount: 8765},
	{ID: "two-buttons", Name: "Two Buttons", Category: CategoryComparison, AspectRatio: "1:1", Description: "An impossible choice", UsageCount: 7654},
	{ID: "change-my-mind", Name: "Change My Mind", Category: CategoryPopular, AspectRatio: "4:3", Description: "Hot take at a table", UsageCount: 6543},
	{ID: "surprised", Name: "Surprised Pikachu", Category: CategoryReactions, AspectRatio: "4:3", Description: "Shock at a predictable outcome", UsageCount: 5432},
	{ID: "news-panel", Name: "Breaking News Panel", Category: CategoryStory, AspectRatio: "16:9", Description: "Headline on top, punchline below", UsageCount: 1200},
}

// Catalog is an in-memory template list. It is not safe for concurrent use.
type Catalog struct {
	templates []Template
}

func NewCatalog() *Catalog {
	c := &Catalog{templates: make([]Template, len(seed))}
	copy(c.templates, seed)
	return c
}

// All returns the templates, most used first.
func (c *Catalog) All() []Template {
	out := make([]Template, len(c.templates))
	copy(out, c.templates)
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].UsageCount > out[j].UsageCount
	})
	return out
}

func (c *Catalog) Get(id string) (Template, bool) {
	for _, t := range c.templates {
		if t.ID == id {
			return t, true
		}
	}
	return Template{}, false
}

// Search matches query against name and description, case-insensitively.
// An empty category matches all categories.
func (c *Catalog) Search(query string, category Category) []Template {
	query = strings.ToLower(strings.TrimSpace(query))
	var out []Template
	for _, t := range c.All() {
		if category != "" && t.Category != category {
			continue
		}
		if query != "" &&
			!strings.Contains(strings.ToLower(t.Name), query) &&
			!strings.Contains(strings.ToLower(t.Description), query) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Use bumps the usage counter of id and returns the updated template.
func (c *Catalog) Use(id string) (Template, error) {
	for i := range c.templates {
		if c.templates[i].ID == id {
			c.templates[i].UsageCount++
			return c.templates[i], nil
		}
	}
	return Template{}, fmt.Errorf("unknown template %q", id)
}
