package filtering

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"

	"hostmerge/pkg/hosts"
)

// LoadTrimRules reads one regular expression per non-empty line and compiles
// them in order. A rule that fails to compile aborts the load.
func LoadTrimRules(path string) ([]*regexp.Regexp, error) {
	f, err := os.Open(path) // #nosec G304 -- path comes from configuration.
	if err != nil {
		return nil, fmt.Errorf("open trim rules: %w", err)
	}
	defer func() {
		_ = f.Close()
	}()

	var rules []*regexp.Regexp
	scanner := bufio.NewScanner(f)
	for lineNum := 1; scanner.Scan(); lineNum++ {
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		rule, err := regexp.Compile(line)
		if err != nil {
			return nil, fmt.Errorf("trim rule on line %d: %w", lineNum, err)
		}
		rules = append(rules, rule)
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("scan trim rules: %w", err)
	}
	return rules, nil
}

// ApplyTrim removes every entry whose domain portion matches any rule. A
// match short-circuits the remaining rules for that entry; since removal is
// boolean the outcome does not depend on rule order. Returns the number
// removed.
func ApplyTrim(set *hosts.Set, rules []*regexp.Regexp) int {
	if len(rules) == 0 {
		return 0
	}
	var marked []hosts.Entry
	for _, entry := range set.Entries() {
		for _, rule := range rules {
			if rule.MatchString(entry.Domain) {
				marked = append(marked, entry)
				break
			}
		}
	}
	for _, entry := range marked {
		set.Remove(entry)
	}
	return len(marked)
}
