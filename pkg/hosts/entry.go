// Package hosts implements parsing and set algebra for hosts-file style
// blocklists.
package hosts

import (
	"regexp"
	"strings"

	"github.com/miekg/dns"
)

const (
	// BlockAddress is the canonical sinkhole address every entry maps to.
	BlockAddress = "0.0.0.0"

	loopbackPrefix = "127.0.0.1"
)

// Entry is one canonical blocked-domain mapping.
type Entry struct {
	Addr   string
	Domain string
}

// String renders the entry in its serialized hosts-file form.
func (e Entry) String() string {
	return e.Addr + "\t" + e.Domain
}

// reserved names never make it into a set; blocking them would break local
// resolution.
var reserved = map[string]struct{}{
	"localhost":             {},
	"localhost.localdomain": {},
	"broadcasthost":         {},
	"local":                 {},
}

var ipv4Literal = regexp.MustCompile(`^[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}\.[0-9]{1,3}$`)

// Surrounding whitespace plus stray slashes from URL-ish or HTML-wrapped
// lines.
const trimCutset = " \t\r\n/"

// Comment and markup characters; everything from the first occurrence on is
// discarded.
const commentChars = `#*<>:/\{}`

// stripComment cuts trailing comment/markup content from a raw line and
// returns the trimmed remainder.
func stripComment(line string) string {
	line = strings.Trim(line, trimCutset)
	if i := strings.IndexAny(line, commentChars); i >= 0 {
		line = line[:i]
	}
	return strings.Trim(line, trimCutset)
}

// Normalize parses one raw hosts-file line into a canonical entry. The
// second return value is false when the line carries no usable mapping:
// comments, blanks, reserved names, bare IP targets, and anything that does
// not reduce to exactly an address and a domain.
func Normalize(raw string) (Entry, bool) {
	line := stripComment(raw)
	if line == "" {
		return Entry{}, false
	}

	switch {
	case strings.HasPrefix(line, loopbackPrefix):
		line = BlockAddress + line[len(loopbackPrefix):]
	case !strings.HasPrefix(line, BlockAddress):
		line = BlockAddress + "\t" + line
	}

	fields := strings.Fields(line)
	if len(fields) != 2 {
		return Entry{}, false
	}

	domain := strings.ToLower(fields[1])
	if _, ok := reserved[domain]; ok {
		return Entry{}, false
	}
	if ipv4Literal.MatchString(domain) {
		return Entry{}, false
	}
	if !strings.Contains(domain, ".") {
		return Entry{}, false
	}
	if _, ok := dns.IsDomainName(domain); !ok {
		return Entry{}, false
	}

	return Entry{Addr: fields[0], Domain: domain}, true
}
