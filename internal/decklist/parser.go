// Package decklist parses free-text decklist lines into structured card
// references. Parsing is pure: no network, no storage, deterministic.
package decklist

import (
	"regexp"
	"strconv"
	"strings"
)

// MaxQuantity caps the copies one line may add. Larger quantities are an
// explicit failure, never clamped.
const MaxQuantity = 99

// LineKind classifies a parsed line.
type LineKind int

const (
	// LineSkip — blank line, comment, or section header. Not an error.
	LineSkip LineKind = iota
	// LineCard — the line parsed into a card reference.
	LineCard
	// LineInvalid — the line looked like a card but could not be parsed.
	LineInvalid
)

// ParsedLine is a structured card reference from one decklist line.
type ParsedLine struct {
	Quantity        int
	Name            string
	SetCode         string // "" when the printing is unspecified
	CollectorNumber string // only meaningful with SetCode
	Foil            bool
	Raw             string // original line, trimmed
}

// Line is the result of parsing one raw line.
type Line struct {
	Kind   LineKind
	Card   ParsedLine // valid when Kind == LineCard
	Reason string     // set when Kind == LineInvalid
	Raw    string
}

var (
	// Optional (SET) qualifier followed by an optional collector number.
	// Collector numbers: "148", "307b", or alpha-prefixed "BBD-190".
	setRe = regexp.MustCompile(`\(([A-Za-z0-9]{2,6})\)(?:\s+([A-Za-z0-9][A-Za-z0-9-]*))?`)

	// Foil markers found in the wild, anywhere in the line.
	foilRe = regexp.MustCompile(`(?i)\*f\*|\(foil\)|\[foil\]|<foil>|\+foil|\bfoil\b`)

	// Comment markers and section headers that are skipped outright.
	skipRe = regexp.MustCompile(`(?i)^\s*(//|#|--|SB:|Sideboard\s*$|Commander\s*$|Companion\s*$|Deck\s*$)`)

	// Leading quantity: "4 ", "4x ", "x4 ".
	qtyRe = regexp.MustCompile(`^(?i)(?:x(\d+)|(\d+)x?)\s+`)
)

// ParseLine classifies and parses one raw decklist line.
//
// Accepted card formats:
//
//	4 Lightning Bolt
//	4x Lightning Bolt
//	x4 Lightning Bolt
//	Lightning Bolt              (quantity defaults to 1)
//	4 Lightning Bolt (LEA)
//	4 Lightning Bolt (2X2) 357 *F*
//	4 Lightning Bolt (foil)
func ParseLine(raw string) Line {
	trimmed := strings.TrimSpace(raw)
	if trimmed == "" || skipRe.MatchString(trimmed) {
		return Line{Kind: LineSkip, Raw: trimmed}
	}

	// Strip foil markers before anything else so "(foil)" is never mistaken
	// for a set code.
	foil := foilRe.MatchString(trimmed)
	line := strings.TrimSpace(foilRe.ReplaceAllString(trimmed, ""))

	quantity := 1
	if m := qtyRe.FindStringSubmatch(line); m != nil {
		digits := m[1]
		if digits == "" {
			digits = m[2]
		}
		n, err := strconv.Atoi(digits)
		if err != nil || n < 1 || n > MaxQuantity {
			return Line{
				Kind:   LineInvalid,
				Reason: "quantity must be between 1 and " + strconv.Itoa(MaxQuantity),
				Raw:    trimmed,
			}
		}
		quantity = n
		line = line[len(m[0]):]
	}

	var setCode, collectorNumber string
	if m := setRe.FindStringSubmatchIndex(line); m != nil {
		setCode = strings.ToUpper(line[m[2]:m[3]])
		if m[4] >= 0 {
			collectorNumber = line[m[4]:m[5]]
		}
		line = strings.TrimSpace(line[:m[0]])
	}

	name := strings.Trim(strings.TrimSpace(line), `"'`)
	if name == "" {
		return Line{Kind: LineInvalid, Reason: "missing card name", Raw: trimmed}
	}

	return Line{
		Kind: LineCard,
		Card: ParsedLine{
			Quantity:        quantity,
			Name:            name,
			SetCode:         setCode,
			CollectorNumber: collectorNumber,
			Foil:            foil,
			Raw:             trimmed,
		},
		Raw: trimmed,
	}
}
