// Package build converts the raw data files into the records files served
// with the site: the people index, state totals, state and city counts, and
// industry totals, plus a manifest describing the run.
//
// States are canonicalized with textnorm.NormalizeState before ids are
// slugged, and rows whose state is empty are skipped. Ids therefore differ
// from the Python build's ids wherever the source spells a state in a
// non-canonical way ("New York State", "N.Y."), and skipped rows never take
// a duplicate suffix.
package build

import (
	"bufio"
	"fmt"
	"io"
	"regexp"
	"strings"

	"github.com/rotisserie/eris"

	"github.com/sells-group/millionaires/internal/counts"
	"github.com/sells-group/millionaires/internal/model"
	"github.com/sells-group/millionaires/internal/textnorm"
)

const emDash = "—"

// sentenceBreak finds the end of a name written as a sentence, such as
// "John Smith. Banker".
var sentenceBreak = regexp.MustCompile(`\.\s+[A-Z][a-z]`)

// SplitNameDesc separates a combined name and description. An em dash wins;
// otherwise the first sentence break ends the name. Without either the whole
// value is the name.
func SplitNameDesc(value string) (string, string) {
	value = strings.TrimSpace(value)
	if name, desc, ok := strings.Cut(value, emDash); ok {
		return strings.TrimSpace(name), strings.TrimSpace(desc)
	}
	if loc := sentenceBreak.FindStringIndex(value); loc != nil {
		name := strings.TrimRight(strings.TrimSpace(value[:loc[0]]), ".")
		return name, strings.TrimSpace(value[loc[0]+1:])
	}
	return value, ""
}

// cityValue maps an empty or blank-labelled city to nil.
func cityValue(city string) *string {
	if city == "" || city == counts.BlankCity {
		return nil
	}
	return model.CityPtr(city)
}

// ReadPeople parses the pipe-delimited people file. The first line is a
// header. Rows with four or more fields are state|city|name|desc, where a
// description may itself contain pipes; three-field rows carry the name and
// description together. Shorter rows are skipped. Ids are slugs of name, city
// and state, suffixed "-2", "-3" and so on when repeated. States are
// canonicalized to match the counts file, and rows without one are skipped.
func ReadPeople(r io.Reader) ([]model.PersonRecord, error) {
	people := make([]model.PersonRecord, 0)
	seen := make(map[string]int)

	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	if !sc.Scan() {
		return people, eris.Wrap(sc.Err(), "build: read people header")
	}

	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		parts := strings.Split(line, "|")
		for i := range parts {
			parts[i] = strings.TrimSpace(parts[i])
		}

		var state, city, name, desc string
		switch {
		case len(parts) >= 4:
			state, city, name = parts[0], parts[1], parts[2]
			desc = strings.TrimSpace(strings.Join(parts[3:], "|"))
		case len(parts) == 3:
			state, city = parts[0], parts[1]
			name, desc = SplitNameDesc(parts[2])
		default:
			continue
		}
		state = textnorm.NormalizeState(state)
		if state == "" {
			continue
		}

		slug := textnorm.Slugify(fmt.Sprintf("%s-%s-%s", name, city, state))
		if slug == "" {
			slug = "entry"
		}
		seen[slug]++
		id := slug
		if n := seen[slug]; n > 1 {
			id = fmt.Sprintf("%s-%d", slug, n)
		}

		people = append(people, model.PersonRecord{
			ID:       id,
			Name:     name,
			State:    state,
			City:     cityValue(city),
			Desc:     desc,
			NameNorm: textnorm.Normalize(name),
			DescNorm: textnorm.Normalize(desc),
		})
	}
	if err := sc.Err(); err != nil {
		return nil, eris.Wrap(err, "build: read people")
	}
	return people, nil
}
