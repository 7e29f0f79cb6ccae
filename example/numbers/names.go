package numbers

var spelledOut = map[int64]string{
	0: "zero", 1: "one", 2: "two", 3: "three", 4: "four", 5: "five",
	6: "six", 7: "seven", 8: "eight", 9: "nine", 10: "ten",
	11: "eleven", 12: "twelve", 13: "thirteen", 14: "fourteen", 15: "fifteen",
	16: "sixteen", 17: "seventeen", 18: "eighteen", 19: "nineteen", 20: "twenty",
}

// name returns v's English spelling for 0..=20, matching the original's
// deliberately small lookup (every value outside that range has no name).
func name(v int64) (string, bool) {
	n, ok := spelledOut[v]
	return n, ok
}

// vowelsInName returns each vowel letter appearing in v's spelled-out
// name, in order, or (nil, false) if v has no name.
func vowelsInName(v int64) ([]string, bool) {
	n, ok := name(v)
	if !ok {
		return nil, false
	}
	var vowels []string
	for _, r := range n {
		switch r {
		case 'a', 'e', 'i', 'o', 'u':
			vowels = append(vowels, string(r))
		}
	}
	return vowels, true
}
