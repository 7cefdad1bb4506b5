package parser

import (
	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// rqlLexer splits RQL text into operators, words and punctuation. Words hold
// property names and values, including converter prefixes (date:...),
// placeholders ($1) and percent-encoded characters.
var rqlLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Op", Pattern: `=[A-Za-z]+=|[<>!]?==?|[<>]`},
	{Name: "Word", Pattern: `[\w+*?$\-:%.~'@]+`},
	{Name: "Punct", Pattern: `[(),&|/]`},
	{Name: "Whitespace", Pattern: `[ \t\r\n]+`},
})

// rawGroup is a list of terms joined by conjunctions.
type rawGroup struct {
	Head *rawTerm   `@@`
	Tail []*rawLink `@@*`
}

type rawLink struct {
	Conj string   `@( "&" | "," | "|" )`
	Term *rawTerm `@@`
}

type rawTerm struct {
	Call    *rawCall    `  @@`
	Group   *rawGroup   `| "(" @@ ")"`
	Compare *rawCompare `| @@`
}

// rawCall is the normalized form name(arg,...).
type rawCall struct {
	Name string    `@Word "("`
	Args []*rawArg `( @@ ( "," @@ )* )? ")"`
}

// rawCompare is the FIQL form property=op=value.
type rawCompare struct {
	Property *rawValue `@@`
	Op       string    `@Op`
	Value    *rawArg   `@@`
}

type rawArg struct {
	Call  *rawCall  `  @@`
	Array *rawArray `| @@`
	Value *rawValue `| @@`
}

type rawArray struct {
	Open  bool      `@"("`
	Items []*rawArg `( @@ ( "," @@ )* )? ")"`
}

// rawValue is a single word or a slash separated path like a/b/c.
type rawValue struct {
	Parts []string `@Word ( "/" @Word )*`
}

var grammar = participle.MustBuild[rawGroup](
	participle.Lexer(rqlLexer),
	participle.Elide("Whitespace"),
	participle.UseLookahead(4),
)
