package fs

import "regexp"

var digitRun = regexp.MustCompile(`\d+`)

// firstInteger extracts the first run of digits in a filename as an int.
// Ordering chunks by this value keeps files named chunk_2.txt ahead of
// chunk_10.txt, which a lexical sort would invert.
func firstInteger(name string) (int, bool) {
	match := digitRun.FindString(name)
	if match == "" {
		return 0, false
	}
	n := 0
	for _, r := range match {
		n = n*10 + int(r-'0')
		if n < 0 {
			return 0, false
		}
	}
	return n, true
}
