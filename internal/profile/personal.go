package profile

import (
	"regexp"
	"strings"
	"unicode"

	"github.com/spigell/ats-scorer/internal/nlp"
)

// Provinces lists the Canadian province and territory codes in lookup order.
var Provinces = []string{"on", "qc", "bc", "ab", "mb", "ns", "nb", "nl", "pe", "sk", "nu", "yt", "nwt"}

// MajorCities maps a province code to its recognized major cities.
var MajorCities = map[string][]string{
	"on": {
		"toronto", "mississauga", "hamilton", "brampton", "thunder bay", "windsor", "ottawa",
		"kitchener", "london", "guelph", "waterloo", "sault ste marie", "sudbury", "markham",
		"vaughan", "richmond", "burlington", "gatineau", "brockville", "sarnia", "scarborough",
	},
	"qc":  {"montreal", "quebec city", "sherbrooke", "laval", "trois-rivieres", "lachine"},
	"bc":  {"vancouver", "burnaby", "langley", "surrey", "richmond", "saanich", "sooke", "duncan", "nanaimo", "port coquitlam"},
	"ab":  {"calgary", "edmonton", "red deer", "lethbridge", "medicine hat", "airdrie", "okotoks", "camrose", "st. albert", "fort mcmurray"},
	"mb":  {"winnipeg", "brandon", "regina", "saskatoon", "morden", "portage la prairie", "selkirk", "dauphin", "steinbach", "winkler"},
	"ns":  {"halifax", "truro", "new glasgow", "pictou", "antigonish", "sydney", "inverness", "wolfville", "shelburne", "cape breton"},
	"nb":  {"fredericton", "moncton", "saint john", "dartmouth", "sackville"},
	"nl":  {"st john's", "happy valley", "newfoundland"},
	"pe":  {"charlottetown", "summerside", "cardigan", "cumberland", "greenwood", "new glasgow"},
	"sk":  {"saskatoon", "regina", "moose jaw"},
	"nu":  {"iqaluit", "rankin inlet", "cambridge bay"},
	"yt":  {"whitehorse", "dawson city", "haines"},
	"nwt": {"yellowknife", "inuvik", "tuktoyaktuk"},
}

var (
	emailRegex = regexp.MustCompile(`[a-zA-Z0-9_.+-]+@[a-zA-Z0-9-]+\.[a-zA-Z0-9.-]+`)
	phoneRegex = regexp.MustCompile(`(\+?\d{1,2}\s?)?(\(?\d{3}\)?[\s.-]?\d{3}[\s.-]?\d{4})`)
)

// Extract builds a BasicProfile from résumé text. Entities come from analyzer; when it
// fails, name and city fall back to text heuristics only.
func Extract(analyzer nlp.Analyzer, text string) BasicProfile {
	var doc *nlp.Document
	if analyzer != nil && strings.TrimSpace(text) != "" {
		if d, err := analyzer.Analyze(text); err == nil {
			doc = d
		}
	}
	if doc == nil {
		doc = &nlp.Document{}
	}

	p := BasicProfile{
		Name:        extractName(doc, text),
		Email:       emailRegex.FindString(text),
		PhoneNumber: extractPhone(text),
		Province:    extractProvince(text),
	}

	for _, ent := range doc.EntitiesByLabel(nlp.LabelGPE) {
		if province, ok := CityProvince(ent.Text); ok {
			p.MajorCity = strings.ToLower(strings.TrimSpace(ent.Text))
			if p.Province == "" {
				p.Province = province
			}
			break
		}
	}
	return p
}

func extractName(doc *nlp.Document, text string) string {
	for _, ent := range doc.EntitiesByLabel(nlp.LabelPerson) {
		if name := strings.TrimSpace(ent.Text); name != "" {
			return name
		}
	}

	firstLine, _, _ := strings.Cut(text, "\n")
	firstLine = strings.TrimSpace(firstLine)
	words := strings.Fields(firstLine)
	if len(words) < 2 || len(words) > 4 {
		return ""
	}
	for _, w := range words {
		if !unicode.IsUpper([]rune(w)[0]) {
			return ""
		}
	}
	return firstLine
}

func extractPhone(text string) string {
	m := phoneRegex.FindStringSubmatch(text)
	if m == nil {
		return ""
	}
	return strings.Map(func(r rune) rune {
		if unicode.IsDigit(r) || r == '+' {
			return r
		}
		return -1
	}, m[2])
}

func extractProvince(text string) string {
	for _, w := range strings.Fields(text) {
		w = strings.ToLower(strings.Map(func(r rune) rune {
			if unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_' {
				return r
			}
			return -1
		}, w))
		if isProvince(w) {
			return w
		}
	}
	return ""
}

func isProvince(code string) bool {
	for _, p := range Provinces {
		if p == code {
			return true
		}
	}
	return false
}

// CityProvince returns the province code of a recognized major city. Cities listed
// under several provinces resolve to the first one in Provinces order.
func CityProvince(city string) (string, bool) {
	city = strings.ToLower(strings.TrimSpace(city))
	if city == "" {
		return "", false
	}
	for _, province := range Provinces {
		for _, c := range MajorCities[province] {
			if c == city {
				return province, true
			}
		}
	}
	return "", false
}

// ParseLocation splits a free-form location such as "Toronto, ON" into a province
// code and a recognized city. Unrecognized parts are returned empty.
func ParseLocation(location string) (province, city string) {
	for _, part := range strings.Split(location, ",") {
		part = strings.ToLower(strings.TrimSpace(part))
		if part == "" {
			continue
		}
		if province == "" && isProvince(part) {
			province = part
			continue
		}
		if p, ok := CityProvince(part); ok && city == "" {
			city = part
			if province == "" {
				province = p
			}
		}
	}
	return province, city
}
