package csv

import (
	"strings"
	"unicode/utf8"
)

const delimiterSampleLines = 5

// DetectDelimiter picks the delimiter whose per-line count is highest and
// most consistent across the first non-empty lines. Comma wins ties and
// is the fallback when no candidate appears.
func DetectDelimiter(lines []string) Delimiter {
	sample := make([]string, 0, delimiterSampleLines)
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		sample = append(sample, line)
		if len(sample) == delimiterSampleLines {
			break
		}
	}
	if len(sample) == 0 {
		return DelimiterComma
	}

	best := DelimiterComma
	bestScore := 0.0
	for _, delim := range []Delimiter{DelimiterComma, DelimiterSemicolon, DelimiterTab} {
		counts := make([]float64, len(sample))
		sum := 0.0
		for i, line := range sample {
			counts[i] = float64(strings.Count(line, string(delim)))
			sum += counts[i]
		}
		avg := sum / float64(len(sample))
		if avg == 0 {
			continue
		}

		variance := 0.0
		for _, c := range counts {
			variance += (c - avg) * (c - avg)
		}
		variance /= float64(len(sample))

		if score := avg / (1.0 + variance); score > bestScore {
			bestScore = score
			best = delim
		}
	}
	return best
}

// SplitLine splits one CSV line, honouring quoted fields and doubled quotes.
func SplitLine(line string, delimiter, quote rune) []string {
	fields := make([]string, 0, 3)
	var current strings.Builder
	inQuotes := false

	for i := 0; i < len(line); {
		r, width := utf8.DecodeRuneInString(line[i:])
		i += width

		switch {
		case inQuotes && r == quote:
			if next, w := utf8.DecodeRuneInString(line[i:]); i < len(line) && next == quote {
				current.WriteRune(quote)
				i += w
				continue
			}
			inQuotes = false
		case inQuotes:
			current.WriteRune(r)
		case r == quote:
			inQuotes = true
		case r == delimiter:
			fields = append(fields, current.String())
			current.Reset()
		default:
			current.WriteRune(r)
		}
	}

	return append(fields, current.String())
}
