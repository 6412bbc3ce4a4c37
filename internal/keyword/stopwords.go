package keyword

var stopWords = map[string]bool{
	"the": true, "be": true, "to": true, "of": true, "and": true, "a": true, "in": true,
	"that": true, "have": true, "i": true, "it": true, "for": true, "not": true, "on": true,
	"with": true, "he": true, "as": true, "you": true, "do": true, "at": true, "this": true,
	"but": true, "his": true, "by": true, "from": true, "they": true, "we": true, "say": true,
	"her": true, "she": true, "or": true, "an": true, "will": true, "my": true, "one": true,
	"all": true, "would": true, "there": true, "their": true, "what": true, "so": true,
	"up": true, "out": true, "if": true, "about": true, "who": true, "get": true, "which": true,
	"go": true, "me": true, "when": true, "make": true, "can": true, "like": true, "time": true,
	"no": true, "just": true, "him": true, "know": true, "take": true, "people": true,
	"into": true, "year": true, "your": true, "good": true, "some": true, "could": true,
	"them": true, "see": true, "other": true, "than": true, "then": true, "now": true,
	"look": true, "only": true, "come": true, "its": true, "over": true, "think": true,
	"also": true, "back": true, "after": true, "use": true, "two": true, "how": true,
	"our": true, "work": true, "first": true, "well": true, "way": true, "even": true,
	"new": true, "want": true, "because": true, "any": true, "these": true, "give": true,
	"day": true, "most": true, "us": true, "is": true, "was": true, "are": true, "been": true,
	"has": true, "had": true, "were": true, "said": true, "did": true, "having": true,
	"may": true, "should": true, "am": true, "being": true,
}

// IsStopWord reports whether the lowercased word is ignored by extraction.
func IsStopWord(word string) bool {
	return stopWords[word]
}
