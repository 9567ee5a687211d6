package extract

import (
	"regexp"

	"github.com/jonathan/candidate-intake/internal/fields"
	"github.com/jonathan/candidate-intake/internal/tagger"
)

// MaxSkills caps the skill list after normalization.
const MaxSkills = 20

// skillRes is the fixed category library mined against the full document.
// Each category collects every match; normalization handles casing and
// duplicates afterwards.
var skillRes = []*regexp.Regexp{
	// Languages
	regexp.MustCompile(`(?i)\b(?:Python|Java|JavaScript|TypeScript|C\+\+|C#|PHP|Ruby|Go|Rust|Swift|Kotlin)\b`),
	// Web frameworks
	regexp.MustCompile(`(?i)\b(?:React|Angular|Vue|Node\.js|Django|Flask|Spring|Laravel|Express)\b`),
	// Cloud and devops tooling
	regexp.MustCompile(`(?i)\b(?:AWS|Azure|GCP|Docker|Kubernetes|Terraform|Jenkins|Git|GitHub|GitLab)\b`),
	// Data stores
	regexp.MustCompile(`(?i)\b(?:SQL|MySQL|PostgreSQL|MongoDB|Redis|Elasticsearch)\b`),
	// ML / AI
	regexp.MustCompile(`(?i)\b(?:Machine Learning|Deep Learning|NLP|Data Science|TensorFlow|PyTorch|Pandas|NumPy)\b`),
	// Markup and build tooling
	regexp.MustCompile(`(?i)\b(?:HTML|CSS|Bootstrap|SASS|LESS|Webpack|Babel)\b`),
	// Process terms
	regexp.MustCompile(`(?i)\b(?:Agile|Scrum|DevOps|CI/CD|REST|API|gRPC|Microservices)\b`),
}

// Skills mines technical terms from the full text via the category library,
// optionally augmented by the POS tagger's noun mining when that capability
// is available, and returns the normalized pool capped at MaxSkills.
func Skills(text string, tg *tagger.Tagger) []string {
	var pool []string
	for _, re := range skillRes {
		pool = append(pool, re.FindAllString(text, -1)...)
	}

	if tg != nil && tg.Available() {
		pool = append(pool, tg.Nouns(text)...)
	}

	out := fields.NormalizeSkills(pool)
	if len(out) > MaxSkills {
		out = out[:MaxSkills]
	}
	return out
}
