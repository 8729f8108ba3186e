package hosts

import (
	"bufio"
	"fmt"
	"io"
)

// maxLineSize bounds a single scanned line; HTML-wrapped fetches can carry
// very long lines.
const maxLineSize = 1024 * 1024

// Build feeds every line of r through Normalize, adding accepted entries to
// set. It returns the total number of lines seen, rejected ones included.
func Build(r io.Reader, set *Set) (int, error) {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)

	lines := 0
	for scanner.Scan() {
		lines++
		if entry, ok := Normalize(scanner.Text()); ok {
			set.Add(entry)
		}
	}
	if err := scanner.Err(); err != nil {
		return lines, fmt.Errorf("scan hosts data: %w", err)
	}
	return lines, nil
}
