package ui

import(
	"errors"
	"html/template"
	"regexp"
	"sort"
	"strings"
	"time"

	"github.com/skypies/util/date"
)

func TemplateFuncMap() template.FuncMap {
	return template.FuncMap{
		"add": templateAdd,
		"flatten": templateFlatten,
		"sort": templateSort,                 // <p value="{{sort .AStringSlice | flatten}}" />
		"dict": templateDict,                 // {{template "foo" dict "Key" "Val" "OtherArgs" . }}
		"unprefixdict": templateUnprefixDict, // {{template "foo" unprefixdict "foo_prefix" . }}
		"selectdict": templateSelectDict,
		"formatPdt": templateFormatPdt,
	}
}


func templateAdd(a int, b int) int { return a + b }
func templateFlatten(in []string) string { return strings.Join(in, " ") }
func templateSort(in []string) []string {
	sort.Strings(in)
	return in
}

func templateFormatPdt(t time.Time, format string) string {
	return date.InPdt(t).Format(format)
}

// Args are treated as a sequence of keys and vals, and built into a map. Used to let you
// specify parameters for a sub-template.
func templateDict(values ...interface{}) (map[string]interface{}, error) {
	if len(values)%2 != 0 { return nil, errors.New("invalid dict call")	}
	dict := make(map[string]interface{}, len(values)/2)
	for i := 0; i < len(values); i+=2 {
		key, ok := values[i].(string)
		if !ok { return nil, errors.New("dict keys must be strings") }
		dict[key] = values[i+1]
	}
	return dict, nil
}

// First arg is a prefix. Second arg is a map. Result is a map that contains just those keyval
// pairs whose key starts with the prefix; the prefix itself (plus '_' separator) is removed.
func templateUnprefixDict(prefix string, valueMap interface{}) map[string]interface{} {
	dict := map[string]interface{}{}
	for k,v := range valueMap.(map[string]interface{}) {
		strs := regexp.MustCompile("^"+prefix+"_(.*)$").FindStringSubmatch(k)
		if len(strs) < 2 {
			continue
		}
		dict[strs[1]] = v
	}
	return dict
}

// Bundles up everything the widget-select template needs for one dropdown.
func templateSelectDict(name, dflt string, vals interface{}) map[string]interface{} {
	return map[string]interface{}{
		"Name": name,
		"Default": dflt,
		"Vals": vals,
	}
}
