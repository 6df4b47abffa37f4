package validate

import "strings"

var namedFormats = map[string]string{
	"YYYY-MM-DD": "%Y-%m-%d",
	"MM/DD/YYYY": "%m/%d/%Y",
	"DD/MM/YYYY": "%d/%m/%Y",
	"YYYY/MM/DD": "%Y/%m/%d",
}

// Numeric directives use the unpadded Go forms, which also accept zero padding.
var directives = map[byte]string{
	'Y': "2006",
	'y': "06",
	'm': "1",
	'd': "2",
	'H': "15",
	'I': "3",
	'M': "4",
	'S': "5",
	'p': "PM",
	'b': "Jan",
	'B': "January",
	'a': "Mon",
	'A': "Monday",
	'z': "-0700",
	'Z': "MST",
	'%': "%",
}

// padded holds the zero-padded forms numeric directives take next to another
// directive, where unpadded chunks would run together ("%m%S" is not the hour "15").
var padded = map[byte]string{
	'm': "01",
	'd': "02",
	'I': "03",
	'M': "04",
	'S': "05",
}

func isDirective(format string, i int) bool {
	if i+1 >= len(format) || format[i] != '%' || format[i+1] == '%' {
		return false
	}
	_, ok := directives[format[i+1]]
	return ok
}

func dateLayout(format string) string {
	if named, ok := namedFormats[format]; ok {
		format = named
	}
	var b strings.Builder
	afterDirective := false
	for i := 0; i < len(format); i++ {
		c := format[i]
		if c != '%' || i+1 == len(format) {
			b.WriteByte(c)
			afterDirective = false
			continue
		}
		i++
		layout, ok := directives[format[i]]
		if !ok {
			b.WriteByte('%')
			b.WriteByte(format[i])
			afterDirective = false
			continue
		}
		if p, ok := padded[format[i]]; ok && (afterDirective || isDirective(format, i+1)) {
			layout = p
		}
		b.WriteString(layout)
		afterDirective = format[i] != '%'
	}
	return b.String()
}
