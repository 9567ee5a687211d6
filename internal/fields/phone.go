package fields

import "strings"

// PhoneStrategy normalizes a raw phone value into a storable string.
// Implementations must return "" rather than a partially-valid number.
type PhoneStrategy interface {
	Normalize(raw any) string
}

// DigitCountStrategy is the baseline strategy: keep digits and an optional
// leading '+', require at least MinPhoneDigits digits. This is the mandatory
// default used throughout the pipeline.
type DigitCountStrategy struct{}

// Normalize implements PhoneStrategy.
func (DigitCountStrategy) Normalize(raw any) string {
	return NormalizePhone(raw)
}

// regionPrefix describes a dialing region the E.164 strategy understands.
type regionPrefix struct {
	code    string // country calling code without '+'
	natural int    // national number length
}

// e164Regions is the small fixed region list tried in order. The strategy is
// deliberately not a full metadata-driven parser; anything it cannot place
// falls back to the digit-count baseline.
var e164Regions = []regionPrefix{
	{code: "1", natural: 10},  // NANP
	{code: "44", natural: 10}, // UK
	{code: "49", natural: 10}, // DE
	{code: "91", natural: 10}, // IN
}

// E164Strategy attempts locale-aware formatting against a fixed region list
// and returns a +<cc><national> number on success. On any miss it defers to
// the digit-count baseline, so its output is never weaker than the default.
type E164Strategy struct{}

// Normalize implements PhoneStrategy.
func (E164Strategy) Normalize(raw any) string {
	baseline := NormalizePhone(raw)
	if baseline == "" {
		return ""
	}

	digits := strings.TrimPrefix(baseline, "+")
	hadPlus := strings.HasPrefix(baseline, "+")

	for _, region := range e164Regions {
		// Already carries the region code.
		if strings.HasPrefix(digits, region.code) && len(digits) == len(region.code)+region.natural {
			return "+" + digits
		}
		// Bare national number; only assume a region when no '+' was given.
		if !hadPlus && region.code == "1" && len(digits) == region.natural {
			return "+" + region.code + digits
		}
	}

	return baseline
}
