package html

import "golang.org/x/net/html/atom"

// selfClosingTags never acquire children.
var selfClosingTags = newTagSet(
	atom.Area, atom.Base, atom.Br, atom.Col, atom.Embed, atom.Hr, atom.Img,
	atom.Input, atom.Link, atom.Meta, atom.Param, atom.Source, atom.Track,
	atom.Wbr,
)

// headTags cause an implicit <head> instead of an implicit <body>.
var headTags = newTagSet(
	atom.Base, atom.Basefont, atom.Bgsound, atom.Noscript, atom.Link,
	atom.Meta, atom.Title, atom.Style, atom.Script,
)

type tagSet map[atom.Atom]struct{}

func newTagSet(atoms ...atom.Atom) tagSet {
	s := make(tagSet, len(atoms))
	for _, a := range atoms {
		s[a] = struct{}{}
	}
	return s
}

// has looks tag up by name. Tags without an atom are never members.
func (s tagSet) has(tag string) bool {
	a := atom.Lookup([]byte(tag))
	if a == 0 {
		return false
	}
	_, ok := s[a]
	return ok
}

// IsSelfClosing reports whether tag is a void element.
func IsSelfClosing(tag string) bool {
	return selfClosingTags.has(tag)
}

// IsHeadTag reports whether tag belongs inside <head>.
func IsHeadTag(tag string) bool {
	return headTags.has(tag)
}
