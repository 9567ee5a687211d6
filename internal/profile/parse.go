package profile

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"
)

// Selector cascades for public profile pages. Markup differs between the
// logged-out page and cached copies, so each field tries several selectors
// and takes the first that matches.
var (
	nameSelectors = []string{
		"h1.top-card-layout__title",
		".pv-top-card h1",
		"h1",
	}
	headlineSelectors = []string{
		"h2.top-card-layout__headline",
		".top-card-layout__headline",
		".pv-top-card .text-body-medium",
	}
	locationSelectors = []string{
		".top-card-layout__first-subline .top-card__subline-item",
		".top-card__subline-item",
		".pv-top-card .text-body-small",
	}
	summarySelectors = []string{
		"section.summary .core-section-container__content",
		"section[data-section='summary'] p",
		".about-section p",
	}
	experienceItemSelectors = []string{
		"li.experience-item",
		"section.experience li",
	}
	educationItemSelectors = []string{
		"li.education__list-item",
		"section.education li",
	}
	skillSelectors = []string{
		"section.skills li",
		".skills-section li",
	}
)

// Parse extracts profile fields from rendered HTML. The result uses the
// loosely typed map shape the record builder accepts, so partially parsed
// pages still produce usable records.
func Parse(html, profileURL string) (map[string]any, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return nil, fmt.Errorf("failed to parse profile HTML: %w", err)
	}

	doc.Find("nav, footer, script, style, noscript").Remove()

	data := map[string]any{
		"profile_url": profileURL,
		"name":        firstText(doc, nameSelectors),
		"title":       firstText(doc, headlineSelectors),
		"location":    firstText(doc, locationSelectors),
		"summary":     firstText(doc, summarySelectors),
	}

	if company := parseCompanyFromHeadline(data["title"].(string)); company != "" {
		data["company"] = company
	}

	data["experience"] = parseExperience(doc)
	data["education"] = parseEducation(doc)
	data["skills"] = parseSkills(doc)

	return data, nil
}

// PageText returns the visible text of the page body, used for deciding
// whether the HTTP fetch produced a real page or a script shell.
func PageText(html string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return ""
	}
	doc.Find("script, style, noscript").Remove()
	return strings.TrimSpace(doc.Find("body").Text())
}

func parseExperience(doc *goquery.Document) []map[string]any {
	entries := make([]map[string]any, 0, 4)
	eachFirst(doc, experienceItemSelectors, func(item *goquery.Selection) {
		entry := map[string]any{
			"title":    itemText(item, "h3, .experience-item__title"),
			"company":  itemText(item, "h4, .experience-item__subtitle"),
			"duration": itemText(item, ".date-range, .experience-item__duration, time"),
		}
		if desc := itemText(item, "p, .experience-item__description"); desc != "" {
			entry["description"] = desc
		}
		if entry["title"] != "" || entry["company"] != "" {
			entries = append(entries, entry)
		}
	})
	return entries
}

func parseEducation(doc *goquery.Document) []map[string]any {
	entries := make([]map[string]any, 0, 2)
	eachFirst(doc, educationItemSelectors, func(item *goquery.Selection) {
		entry := map[string]any{
			"school": itemText(item, "h3, .education__item-school"),
			"degree": itemText(item, "h4, .education__item-degree"),
			"year":   itemText(item, ".date-range, time"),
		}
		if entry["school"] != "" || entry["degree"] != "" {
			entries = append(entries, entry)
		}
	})
	return entries
}

func parseSkills(doc *goquery.Document) []string {
	skills := make([]string, 0, 8)
	eachFirst(doc, skillSelectors, func(item *goquery.Selection) {
		if skill := strings.TrimSpace(item.Text()); skill != "" {
			skills = append(skills, skill)
		}
	})
	return skills
}

// parseCompanyFromHeadline pulls the employer out of "Title at Company"
// style headlines.
func parseCompanyFromHeadline(headline string) string {
	_, company, found := strings.Cut(headline, " at ")
	if !found {
		return ""
	}
	return strings.TrimSpace(company)
}

func firstText(doc *goquery.Document, selectors []string) string {
	for _, sel := range selectors {
		if s := doc.Find(sel); s.Length() > 0 {
			return normalizeText(s.First().Text())
		}
	}
	return ""
}

// eachFirst iterates the items of the first selector that matches anything.
func eachFirst(doc *goquery.Document, selectors []string, fn func(*goquery.Selection)) {
	for _, sel := range selectors {
		items := doc.Find(sel)
		if items.Length() == 0 {
			continue
		}
		items.Each(func(_ int, item *goquery.Selection) { fn(item) })
		return
	}
}

func itemText(item *goquery.Selection, selector string) string {
	return normalizeText(item.Find(selector).First().Text())
}

func normalizeText(text string) string {
	return strings.Join(strings.Fields(text), " ")
}
