package normalize

import (
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"

	"github.com/cognicore/toolcat/pkg/toolcat/catalog"
)

// Country is one canonical country with the raw spellings that resolve
// to it. Aliases match as substrings of the input; Codes (ISO codes and
// other short forms) match whole tokens only, since two-letter codes
// occur inside unrelated words ("us" in "australia").
type Country struct {
	Name    string   `yaml:"name"`
	Aliases []string `yaml:"aliases"`
	Codes   []string `yaml:"codes"`
}

// CountryTable canonicalizes free-text country strings. Table order is
// the tie-break: the first country with a matching alias wins.
type CountryTable struct {
	countries []Country
}

// NewCountryTable builds a table, lower-casing every alias and code.
func NewCountryTable(countries []Country) *CountryTable {
	t := &CountryTable{countries: make([]Country, 0, len(countries))}
	for _, c := range countries {
		t.countries = append(t.countries, Country{
			Name:    c.Name,
			Aliases: lowerAll(c.Aliases),
			Codes:   lowerAll(c.Codes),
		})
	}
	return t
}

// Canonicalize maps raw text to a canonical country name, or
// catalog.OtherCountry when nothing matches.
func (t *CountryTable) Canonicalize(raw string) string {
	text := strings.ToLower(strings.TrimSpace(norm.NFKC.String(raw)))
	if text == "" {
		return catalog.OtherCountry
	}

	var tokens map[string]struct{}
	for _, c := range t.countries {
		for _, alias := range c.Aliases {
			if strings.Contains(text, alias) {
				return c.Name
			}
		}
		if len(c.Codes) == 0 {
			continue
		}
		if tokens == nil {
			tokens = tokenSet(text)
		}
		for _, code := range c.Codes {
			if _, ok := tokens[code]; ok {
				return c.Name
			}
		}
	}
	return catalog.OtherCountry
}

// Names returns the canonical names in table order.
func (t *CountryTable) Names() []string {
	out := make([]string, len(t.countries))
	for i, c := range t.countries {
		out[i] = c.Name
	}
	return out
}

// Has reports whether name is a canonical country of the table.
func (t *CountryTable) Has(name string) bool {
	for _, c := range t.countries {
		if c.Name == name {
			return true
		}
	}
	return false
}

func tokenSet(text string) map[string]struct{} {
	fields := strings.FieldsFunc(text, func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsNumber(r)
	})
	set := make(map[string]struct{}, len(fields))
	for _, f := range fields {
		set[f] = struct{}{}
	}
	return set
}

func lowerAll(in []string) []string {
	out := make([]string, 0, len(in))
	for _, s := range in {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			out = append(out, s)
		}
	}
	return out
}

// DefaultCountries is the built-in alias table. Longer and more specific
// spellings are listed before short ones that could overlap.
var DefaultCountries = []Country{
	{Name: "中国", Aliases: []string{"china", "中国", "中華", "中华", "中国大陆", "prc"}, Codes: []string{"cn"}},
	{Name: "美国", Aliases: []string{"usa", "u.s.", "united states", "america", "美国", "美利坚"}, Codes: []string{"us"}},
	{Name: "英国", Aliases: []string{"united kingdom", "britain", "england", "英国", "大不列颠", "英伦"}, Codes: []string{"uk", "gb"}},
	{Name: "日本", Aliases: []string{"japan", "日本"}, Codes: []string{"jp"}},
	{Name: "韩国", Aliases: []string{"korea", "korean", "韩国", "大韩民国"}, Codes: []string{"kr"}},
	{Name: "法国", Aliases: []string{"france", "法国", "法兰西"}, Codes: []string{"fr"}},
	{Name: "德国", Aliases: []string{"germany", "deutschland", "德国", "德意志"}, Codes: []string{"de"}},
	{Name: "以色列", Aliases: []string{"israel", "以色列", ".il"}, Codes: []string{"il"}},
	{Name: "加拿大", Aliases: []string{"canada", "加拿大"}, Codes: []string{"ca"}},
	{Name: "澳大利亚", Aliases: []string{"australia", "澳大利亚", "澳洲"}, Codes: []string{"au"}},
	{Name: "新西兰", Aliases: []string{"new zealand", "新西兰"}, Codes: []string{"nz"}},
	{Name: "俄罗斯", Aliases: []string{"russia", "俄罗斯"}, Codes: []string{"ru"}},
	{Name: "新加坡", Aliases: []string{"singapore", "新加坡", ".sg"}, Codes: []string{"sg"}},
	{Name: "意大利", Aliases: []string{"italy", "意大利"}, Codes: []string{"it"}},
	{Name: "瑞士", Aliases: []string{"switzerland", "瑞士"}, Codes: []string{"ch"}},
	{Name: "荷兰", Aliases: []string{"netherlands", "holland", "荷兰", "尼德兰"}, Codes: []string{"nl"}},
	{Name: "比利时", Aliases: []string{"belgium", "比利时"}},
	{Name: "奥地利", Aliases: []string{"austria", "奥地利"}},
	{Name: "瑞典", Aliases: []string{"sweden", "瑞典"}, Codes: []string{"se"}},
	{Name: "挪威", Aliases: []string{"norway", "挪威"}},
	{Name: "丹麦", Aliases: []string{"denmark", "丹麦"}, Codes: []string{"dk"}},
	{Name: "芬兰", Aliases: []string{"finland", "芬兰"}, Codes: []string{"fi"}},
	{Name: "爱尔兰", Aliases: []string{"ireland", "爱尔兰"}, Codes: []string{"ie"}},
	{Name: "卢森堡", Aliases: []string{"luxembourg", "卢森堡", ".lu"}, Codes: []string{"lu"}},
	{Name: "西班牙", Aliases: []string{"spain", "西班牙", ".es"}, Codes: []string{"es"}},
	{Name: "葡萄牙", Aliases: []string{"portugal", "葡萄牙", ".pt"}, Codes: []string{"pt"}},
	{Name: "希腊", Aliases: []string{"greece", "希腊", ".gr"}, Codes: []string{"gr"}},
	{Name: "波兰", Aliases: []string{"poland", "波兰", ".pl"}, Codes: []string{"pl"}},
	{Name: "印度", Aliases: []string{"india", "印度"}},
}
