package extract

import (
	"regexp"
	"strings"
	"time"

	"github.com/mitchellh/mapstructure"

	"github.com/jonathan/candidate-intake/internal/fields"
	"github.com/jonathan/candidate-intake/internal/sections"
	"github.com/jonathan/candidate-intake/internal/tagger"
	"github.com/jonathan/candidate-intake/internal/types"
)

// summaryHeadings locate the free-text summary section.
var summaryHeadings = []string{"summary", "objective", "profile", "about"}

// maxSummarySentences bounds how much of the summary section is kept.
const maxSummarySentences = 3

// currentPositionRes is a first-match-wins cascade for "current role" phrasing.
var currentPositionRes = []*regexp.Regexp{
	regexp.MustCompile(`(?i)current(?:ly)?\s*:?\s+([A-Za-z&,. \-]+?)\s+at\s+([A-Za-z&,. \-]+)`),
	regexp.MustCompile(`(?i)present(?:ly)?\s*:?\s+([A-Za-z&,. \-]+?)\s+at\s+([A-Za-z&,. \-]+)`),
	regexp.MustCompile(`(?i)([A-Za-z&,. \-]+?)\s*[-–]\s*([A-Za-z&,. \-]+?)\s*\((?:present|current)\)`),
}

// locationRe matches a capitalized place phrase followed by a region: either
// a two-letter state code or another capitalized word ("Austin, TX",
// "Berlin, Germany").
var locationRe = regexp.MustCompile(`\b([A-Z][a-z]+(?: [A-Z][a-z]+)*,\s*(?:[A-Z]{2}|[A-Z][a-z]+))\b`)

// Builder assembles canonical candidate records from raw text or loose
// profile field maps. The zero-value Builder is not usable; construct with
// NewBuilder. Builders are safe for concurrent use across documents since
// each call touches only its inputs.
type Builder struct {
	tagger *tagger.Tagger
	phone  fields.PhoneStrategy
	now    func() time.Time
}

// Option configures a Builder.
type Option func(*Builder)

// WithTagger sets the optional POS tagging capability.
func WithTagger(tg *tagger.Tagger) Option {
	return func(b *Builder) { b.tagger = tg }
}

// WithPhoneStrategy overrides the phone normalization strategy.
func WithPhoneStrategy(s fields.PhoneStrategy) Option {
	return func(b *Builder) { b.phone = s }
}

// WithClock pins the "present" reference time, for tests.
func WithClock(now func() time.Time) Option {
	return func(b *Builder) { b.now = now }
}

// NewBuilder constructs a Builder. By default the shared process-wide tagger,
// the digit-count phone strategy and the wall clock are used.
func NewBuilder(opts ...Option) *Builder {
	b := &Builder{
		tagger: tagger.Default(),
		phone:  fields.DigitCountStrategy{},
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(b)
	}
	return b
}

// BuildRecord runs the full extraction pipeline over already-extracted plain
// document text and returns a canonical record. It never fails: empty or
// unparseable text yields an empty record with all invariants intact.
// Rejecting unreadable documents is the caller's responsibility, before text
// reaches the builder.
func (b *Builder) BuildRecord(text string) types.CandidateRecord {
	rec := types.NewCandidateRecord()

	rec.Email = Email(text)
	rec.Phone = Phone(text)
	rec.Name = Name(text)
	rec.LinkedInURL = LinkedInURL(text)

	rec.Skills = Skills(text, b.tagger)
	rec.Experience = Experience(text)
	rec.Education = Education(text)
	rec.ExperienceYears = ExperienceYears(rec.Experience, b.now())

	rec.CurrentPosition, rec.CurrentCompany = currentPosition(text)
	rec.Location = location(text)
	rec.Summary = summary(text)

	return fields.NormalizeRecord(rec, b.phone)
}

// BuildRecordFromProfile converts a loosely-typed profile field map into a
// canonical record. The profile source already supplies structured fields,
// so no text-structural extraction runs; the finishing normalization pass is
// identical to the document path.
func (b *Builder) BuildRecordFromProfile(raw map[string]any) types.CandidateRecord {
	rec := types.NewCandidateRecord()

	var profile types.ProfileData
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           &profile,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return fields.NormalizeRecord(rec, b.phone)
	}
	if err := decoder.Decode(raw); err != nil {
		// Undecodable input degrades to an empty canonical record.
		return fields.NormalizeRecord(rec, b.phone)
	}

	rec.Name = profile.Name
	rec.Email = profile.Email
	rec.Phone = profile.Phone
	rec.Location = profile.Location
	rec.CurrentPosition = profile.Title
	rec.CurrentCompany = profile.Company
	rec.Summary = profile.Summary
	rec.LinkedInURL = profile.ProfileURL
	rec.Skills = profile.Skills

	for _, exp := range profile.Experience {
		rec.Experience = append(rec.Experience, types.ExperienceEntry{
			Title:     exp.Title,
			Company:   exp.Company,
			DateRange: exp.Duration,
		})
	}
	for _, edu := range profile.Education {
		rec.Education = append(rec.Education, types.EducationEntry{
			Degree:      edu.Degree,
			Institution: edu.School,
			Year:        edu.Year,
		})
	}
	rec.ExperienceYears = ExperienceYears(rec.Experience, b.now())

	return fields.NormalizeRecord(rec, b.phone)
}

// Finalize re-applies the finishing normalization pass to a record that may
// have been assembled elsewhere (for example by the merger).
func (b *Builder) Finalize(rec types.CandidateRecord) types.CandidateRecord {
	return fields.NormalizeRecord(rec, b.phone)
}

// currentPosition finds the candidate's current role and employer via the
// pattern cascade; first match wins.
func currentPosition(text string) (position, company string) {
	for _, re := range currentPositionRes {
		m := re.FindStringSubmatch(text)
		if m == nil {
			continue
		}
		return strings.TrimSpace(m[1]), strings.TrimSpace(m[2])
	}
	return "", ""
}

// location returns the first capitalized "City, Region" phrase in text.
func location(text string) string {
	return strings.TrimSpace(locationRe.FindString(text))
}

// summary returns the first few sentences of the summary section.
func summary(text string) string {
	body := sections.Find(text, summaryHeadings)
	if body == "" {
		return ""
	}

	parts := strings.Split(body, ".")
	if len(parts) > maxSummarySentences {
		parts = parts[:maxSummarySentences]
	}
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	out := strings.Join(parts, ". ")
	return strings.TrimSpace(strings.TrimSuffix(out, ". "))
}
