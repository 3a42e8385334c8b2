package placelist

import (
	"strings"
)

// windowScanLines is how many lines after a record's name are searched for
// its description and price.
const windowScanLines = 5

// Window is a half-open range [Start, End) of lines belonging to one record.
// The line at Start is the record's name.
type Window struct {
	Start int
	End   int
}

// Lines returns the lines covered by the window.
func (w Window) Lines(lines []string) []string {
	return lines[w.Start:w.End]
}

// Segmenter splits a flat sequence of lines with no card boundaries into
// place records. A record starts at a name line that is immediately followed
// by a rating line. Segmenter holds no state between calls and is safe for
// concurrent use.
type Segmenter struct {
	// Names classifies candidate name lines. Defaults to DefaultNameClassifier.
	Names *NameClassifier
}

// NewSegmenter returns a Segmenter using the default name classifier.
func NewSegmenter() *Segmenter {
	return &Segmenter{Names: DefaultNameClassifier()}
}

func (s *Segmenter) names() *NameClassifier {
	if s == nil || s.Names == nil {
		return DefaultNameClassifier()
	}
	return s.Names
}

// Starts returns the indices of record-start lines in ascending order.
func (s *Segmenter) Starts(lines []string) []int {
	names := s.names()
	var starts []int
	for i := 0; i+1 < len(lines); i++ {
		if names.IsName(lines[i]) && hasRating(lines[i+1]) {
			starts = append(starts, i)
		}
	}
	return starts
}

// Windows partitions lines into one window per record start. Each window
// runs to the next start, the last one to the end of lines.
func (s *Segmenter) Windows(lines []string) []Window {
	starts := s.Starts(lines)
	windows := make([]Window, len(starts))
	for i, start := range starts {
		end := len(lines)
		if i+1 < len(starts) {
			end = starts[i+1]
		}
		windows[i] = Window{Start: start, End: end}
	}
	return windows
}

// Records extracts one place per window, before any filtering.
func (s *Segmenter) Records(lines []string) []Place {
	windows := s.Windows(lines)
	places := make([]Place, len(windows))
	for i, w := range windows {
		places[i] = windowPlace(w.Lines(lines))
	}
	return places
}

// Parse extracts a PlaceList from a flat sequence of lines.
//
// The list description is taken from the header lines that precede the first
// record. Records whose description equals it are dropped, as are records
// with no fields. Input without any record start yields an empty list.
func (s *Segmenter) Parse(lines []string) *PlaceList {
	list := &PlaceList{Items: []Place{}}

	windows := s.Windows(lines)
	if len(windows) == 0 {
		return list
	}

	list.ListDescription = ExtractDescription(lines[:windows[0].Start])
	for _, w := range windows {
		p := windowPlace(w.Lines(lines))
		if keep(p, list.ListDescription) {
			list.Items = append(list.Items, p)
		}
	}
	return list
}

// windowPlace builds a record from the lines of a single window.
// The rating is searched across the whole window while description and
// price only look at the lines right after the name.
func windowPlace(window []string) Place {
	p := Place{
		Name:   window[0],
		Rating: ExtractRating(strings.Join(window, "\n")),
	}
	for _, line := range bounded(window, 1, 1+windowScanLines) {
		if p.Price == "" {
			p.Price = ExtractPrice(line)
		}
		if p.Description == "" && isWindowDescription(line) {
			p.Description = line
		}
		if p.Price != "" && p.Description != "" {
			break
		}
	}
	return p
}

func isWindowDescription(line string) bool {
	if strings.Contains(line, Separator) {
		return true
	}
	return isShortPhrase(line) && !digitRe.MatchString(line)
}

// keep reports whether a place belongs in the items of a list with the given
// description.
func keep(p Place, listDescription string) bool {
	return !p.IsEmpty() && p.Description != listDescription
}
