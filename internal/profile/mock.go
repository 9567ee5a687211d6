package profile

import "strings"

// MockProfile builds deterministic placeholder profile data from a profile
// URL. It exists for demos and tests: real pages sit behind aggressive
// anti-bot measures, and the rest of the pipeline still needs plausible
// input when a fetch is blocked. The candidate name comes from the URL slug;
// everything else is fixed.
func MockProfile(profileURL string) map[string]any {
	name := "Unknown"
	if slug := ProfileSlug(profileURL); slug != "" {
		name = titleFromSlug(slug)
	}

	return map[string]any{
		"name":        name,
		"title":       "Senior Software Engineer",
		"company":     "Tech Corporation",
		"location":    "San Francisco, CA",
		"summary":     "Experienced software engineer with 5+ years of experience in full-stack development.",
		"profile_url": profileURL,
		"connections": "500+",
		"skills":      []string{"Python", "JavaScript", "React", "Node.js", "AWS", "Docker"},
		"experience": []map[string]any{
			{
				"title":       "Senior Software Engineer",
				"company":     "Tech Corporation",
				"duration":    "2020 - Present",
				"description": "Leading development of scalable web applications",
			},
		},
		"education": []map[string]any{
			{
				"school": "University of California",
				"degree": "Bachelor of Science in Computer Science",
				"year":   "2018",
			},
		},
	}
}

// MockSearchResults builds placeholder search hits for a candidate name.
func MockSearchResults(name, company string) []map[string]any {
	if company == "" {
		company = "Tech Company"
	}
	slug := strings.ReplaceAll(strings.ToLower(strings.TrimSpace(name)), " ", "-")
	return []map[string]any{
		{
			"name":        name,
			"title":       "Software Engineer",
			"company":     company,
			"location":    "San Francisco, CA",
			"profile_url": "https://linkedin.com/in/" + slug,
			"connections": "500+",
		},
	}
}

func titleFromSlug(slug string) string {
	words := strings.Split(strings.ReplaceAll(slug, "-", " "), " ")
	for i, w := range words {
		if w == "" {
			continue
		}
		words[i] = strings.ToUpper(w[:1]) + strings.ToLower(w[1:])
	}
	return strings.TrimSpace(strings.Join(words, " "))
}
