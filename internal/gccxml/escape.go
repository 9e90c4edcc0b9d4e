package gccxml

import "strings"

var xmlEscaper = strings.NewReplacer(
	"&", "&amp;",
	"<", "&lt;",
	">", "&gt;",
	"\"", "&quot;",
	"'", "&apos;",
)

// EncodeXML escapes s for embedding in an XML attribute value.
func EncodeXML(s string) string {
	return xmlEscaper.Replace(s)
}
