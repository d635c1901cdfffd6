package xmlcomment

import "regexp"

// TargetKind identifies what sort of declaration a comment id points at.
type TargetKind string

const (
	KindNamespace TargetKind = "Namespace"
	KindType      TargetKind = "Type"
	KindMethod    TargetKind = "Method"
	KindProperty  TargetKind = "Property"
	KindField     TargetKind = "Field"
	KindEvent     TargetKind = "Event"
)

var kindByTag = map[string]TargetKind{
	"N": KindNamespace,
	"T": KindType,
	"M": KindMethod,
	"P": KindProperty,
	"F": KindField,
	"E": KindEvent,
}

var tagByKind = map[TargetKind]string{
	KindNamespace: "N",
	KindType:      "T",
	KindMethod:    "M",
	KindProperty:  "P",
	KindField:     "F",
	KindEvent:     "E",
}

// CommentID is a validated kind-prefixed symbol identifier such as
// "T:System.String" or "M:Widget.Run(System.Int32)".
type CommentID struct {
	Kind       TargetKind
	Identifier string
}

// String reassembles the canonical "K:Identifier" form.
func (id CommentID) String() string {
	return tagByKind[id.Kind] + ":" + id.Identifier
}

// The identifier must start with a non-digit word character; the tail admits
// word characters plus the punctuation that appears in qualified names,
// parameter lists, generic arity markers, and operator ids.
var commentIDPattern = regexp.MustCompile("^(N|T|M|P|F|E):([^\\W\\d][\\w.(){}\\[\\]|*^~#@!`,<>:]*)$")

// ParseCommentID reports whether candidate is a well-formed comment id and, if
// so, returns its kind and bare identifier. It never errors: anything that
// does not match the anchored grammar simply yields ok == false.
func ParseCommentID(candidate string) (CommentID, bool) {
	m := commentIDPattern.FindStringSubmatch(candidate)
	if m == nil {
		return CommentID{}, false
	}
	return CommentID{Kind: kindByTag[m[1]], Identifier: m[2]}, true
}
