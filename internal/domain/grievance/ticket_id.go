package grievance

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
)

// TicketFormat describes how ticket ids look: PREFIX-<digits>.
type TicketFormat struct {
	prefix  string
	exact   *regexp.Regexp
	partial *regexp.Regexp
}

// NewTicketFormat builds the matchers for prefix. The prefix is matched case-insensitively.
func NewTicketFormat(prefix string) TicketFormat {
	prefix = strings.ToUpper(strings.TrimSpace(prefix))
	quoted := regexp.QuoteMeta(prefix)
	return TicketFormat{
		prefix:  prefix,
		exact:   regexp.MustCompile(`(?i)^` + quoted + `-\d+$`),
		partial: regexp.MustCompile(`(?i)\b` + quoted + `-\d+\b`),
	}
}

// Prefix returns the upper-cased ticket prefix.
func (f TicketFormat) Prefix() string {
	return f.prefix
}

// Format renders the ticket id for number n.
func (f TicketFormat) Format(n int) string {
	return fmt.Sprintf("%s-%d", f.prefix, n)
}

// Match reports whether id is a complete ticket id.
func (f TicketFormat) Match(id string) bool {
	return f.exact.MatchString(strings.TrimSpace(id))
}

// Find returns the first ticket id embedded in text, upper-cased.
func (f TicketFormat) Find(text string) (string, bool) {
	found := f.partial.FindString(text)
	if found == "" {
		return "", false
	}
	return strings.ToUpper(found), true
}

// Number extracts the numeric suffix of id.
func (f TicketFormat) Number(id string) (int, bool) {
	id = strings.TrimSpace(id)
	if !f.Match(id) {
		return 0, false
	}
	n, err := strconv.Atoi(id[strings.LastIndex(id, "-")+1:])
	if err != nil {
		return 0, false
	}
	return n, true
}

// normalizeID is the case-folded form used as the ledger index key.
func normalizeID(id string) string {
	return strings.ToUpper(strings.TrimSpace(id))
}
