// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package selection parses chapter selection expressions like "1,3,5-7"
// into validated chapter number sets.
package selection

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// InvalidTerm records one rejected selection term with the reason, so the
// caller can report it and carry on with the valid terms.
type InvalidTerm struct {
	Term   string
	Reason string
}

func (t InvalidTerm) String() string {
	return fmt.Sprintf("%q: %s", t.Term, t.Reason)
}

// Selection is the outcome of parsing an expression: the valid chapter
// numbers in ascending order without duplicates, plus the rejected terms.
type Selection struct {
	Numbers []int
	Invalid []InvalidTerm
}

// HasInvalid reports whether any term was rejected.
func (s Selection) HasInvalid() bool {
	return len(s.Invalid) > 0
}

// IsEmpty reports whether no valid chapter numbers remain.
func (s Selection) IsEmpty() bool {
	return len(s.Numbers) == 0
}

// Parse evaluates a comma-separated selection expression against a document
// with chapterCount chapters. Terms are single numbers or inclusive ranges
// "A-B" with A <= B; whitespace around commas and hyphens is ignored.
// Reversed ranges and non-numeric terms are rejected per term; out-of-range
// numbers are rejected naming the offending number. Valid terms always
// proceed. An empty or whitespace-only expression selects all chapters.
func Parse(expr string, chapterCount int) (Selection, error) {
	if chapterCount < 1 {
		return Selection{}, fmt.Errorf("no chapters to select from")
	}

	if strings.TrimSpace(expr) == "" {
		return Selection{Numbers: All(chapterCount)}, nil
	}

	var sel Selection
	seen := make(map[int]bool)

	for _, raw := range strings.Split(expr, ",") {
		term := strings.TrimSpace(raw)
		if term == "" {
			sel.Invalid = append(sel.Invalid, InvalidTerm{Term: raw, Reason: "empty term"})
			continue
		}

		if invalid, ok := parseTerm(term, chapterCount, seen); !ok {
			sel.Invalid = append(sel.Invalid, invalid)
		}
	}

	sel.Numbers = make([]int, 0, len(seen))
	for n := range seen {
		sel.Numbers = append(sel.Numbers, n)
	}
	sort.Ints(sel.Numbers)
	return sel, nil
}

// parseTerm evaluates one term, adding selected numbers to seen. It returns
// the rejection and false when the term (or part of it) is invalid; a range
// that is only partially out of bounds still contributes its valid part.
func parseTerm(term string, chapterCount int, seen map[int]bool) (InvalidTerm, bool) {
	first, rest, isRange := strings.Cut(term, "-")
	if !isRange {
		n, err := strconv.Atoi(first)
		if err != nil {
			return InvalidTerm{Term: term, Reason: "not a number"}, false
		}
		if n < 1 || n > chapterCount {
			return InvalidTerm{
				Term:   term,
				Reason: fmt.Sprintf("chapter %d out of range (1-%d)", n, chapterCount),
			}, false
		}
		seen[n] = true
		return InvalidTerm{}, true
	}

	a, errA := strconv.Atoi(strings.TrimSpace(first))
	b, errB := strconv.Atoi(strings.TrimSpace(rest))
	if errA != nil || errB != nil {
		return InvalidTerm{Term: term, Reason: "not a numeric range"}, false
	}
	if b < a {
		return InvalidTerm{Term: term, Reason: fmt.Sprintf("reversed range (%d > %d)", a, b)}, false
	}

	for n := a; n <= b; n++ {
		if n >= 1 && n <= chapterCount {
			seen[n] = true
		}
	}
	if a < 1 || b > chapterCount {
		return InvalidTerm{
			Term:   term,
			Reason: fmt.Sprintf("chapters outside 1-%d excluded", chapterCount),
		}, false
	}
	return InvalidTerm{}, true
}

// All returns the full chapter number sequence 1..chapterCount.
func All(chapterCount int) []int {
	numbers := make([]int, chapterCount)
	for i := range numbers {
		numbers[i] = i + 1
	}
	return numbers
}

// Canonical serializes a chapter number set back to the minimal expression,
// collapsing consecutive runs into ranges ("1,3,5-7"). Parsing the result
// yields the same set.
func Canonical(numbers []int) string {
	if len(numbers) == 0 {
		return ""
	}

	sorted := make([]int, len(numbers))
	copy(sorted, numbers)
	sort.Ints(sorted)

	var parts []string
	runStart := sorted[0]
	prev := sorted[0]
	flush := func(end int) {
		switch {
		case runStart == end:
			parts = append(parts, strconv.Itoa(runStart))
		case runStart+1 == end:
			parts = append(parts, strconv.Itoa(runStart), strconv.Itoa(end))
		default:
			parts = append(parts, fmt.Sprintf("%d-%d", runStart, end))
		}
	}

	for _, n := range sorted[1:] {
		if n == prev || n == prev+1 {
			if n == prev+1 {
				prev = n
			}
			continue
		}
		flush(prev)
		runStart, prev = n, n
	}
	flush(prev)
	return strings.Join(parts, ",")
}
