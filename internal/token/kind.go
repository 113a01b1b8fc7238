package token

// Kind represents the category of a source token.
type Kind uint8

const (
	// Invalid is the zero Kind; the lexer never emits it.
	Invalid Kind = iota
	// Whitespace is a maximal run of whitespace characters.
	Whitespace
	// Comment is a line comment, from "//" up to the newline.
	Comment
	// Keyword is an identifier from the closed keyword set.
	Keyword
	// Identifier is any other [A-Za-z_$][A-Za-z0-9_$]* word.
	Identifier
	// Number is a run of digits and dots.
	Number
	// String is a quoted literal, including its quotes.
	String
	// Bracket is one of ( ) { } [ ].
	Bracket
	// Operator is a one- or two-character operator.
	Operator
	// Punctuation is ';' or ','.
	Punctuation
	// Other is any character no other rule claims.
	Other
)

var kindNames = [...]string{
	Invalid:     "Invalid",
	Whitespace:  "Whitespace",
	Comment:     "Comment",
	Keyword:     "Keyword",
	Identifier:  "Identifier",
	Number:      "Number",
	String:      "String",
	Bracket:     "Bracket",
	Operator:    "Operator",
	Punctuation: "Punctuation",
	Other:       "Other",
}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return "Kind(?)"
}

// Kinds lists every kind the lexer can produce, in declaration order.
func Kinds() []Kind {
	return []Kind{Whitespace, Comment, Keyword, Identifier, Number, String, Bracket, Operator, Punctuation, Other}
}

// IsSignificant reports whether tokens of this kind take part in spacing
// decisions. Everything except whitespace does.
func (k Kind) IsSignificant() bool {
	return k != Whitespace && k != Invalid
}
