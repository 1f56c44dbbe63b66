package symregex_test

import (
	"errors"
	"fmt"

	"github.com/coregx/symregex"
)

// ExampleCompile demonstrates basic pattern compilation and matching.
func ExampleCompile() {
	re, err := symregex.Compile(`\d+`)
	if err != nil {
		panic(err)
	}

	fmt.Println(re.Match([]byte("hello 123")))
	// Output: true
}

// ExampleCompile_nullable shows that patterns matching the empty string
// are rejected.
func ExampleCompile_nullable() {
	_, err := symregex.Compile(`a*`)
	fmt.Println(errors.Is(err, symregex.ErrNullablePattern))
	// Output: true
}

// ExampleMustCompile demonstrates panic-on-error compilation.
func ExampleMustCompile() {
	re := symregex.MustCompile(`hello`)
	fmt.Println(re.MatchString("hello world"))
	// Output: true
}

// ExampleRegex_FindIndex demonstrates finding match positions.
func ExampleRegex_FindIndex() {
	re := symregex.MustCompile(`\d+`)
	loc := re.FindIndex([]byte("age: 42"))
	fmt.Printf("Match at [%d:%d]\n", loc[0], loc[1])
	// Output: Match at [5:7]
}

// ExampleRegex_FindIndex_earliestEnd shows that the match ending first is
// reported, extended to its longest end.
func ExampleRegex_FindIndex_earliestEnd() {
	re := symregex.MustCompile(`abcd|bc`)
	fmt.Println(re.FindIndex([]byte("abcd")))
	// Output: [1 3]
}

// ExampleRegex_FindAllString demonstrates finding all matches.
func ExampleRegex_FindAllString() {
	re := symregex.MustCompile(`\d`)
	fmt.Println(re.FindAllString("a1b2c3", -1))
	// Output: [1 2 3]
}

// ExampleRegex_FindMatches demonstrates searching a range with a limit.
func ExampleRegex_FindMatches() {
	re := symregex.MustCompile(`a+`)
	matches, err := re.FindMatches([]byte("a aa aaa"), 2, 1, -1)
	if err != nil {
		panic(err)
	}
	for _, m := range matches {
		fmt.Println(m)
	}
	// Output:
	// [2, 4)
	// [5, 8)
}

// ExampleRegex_All demonstrates iterating over matches.
func ExampleRegex_All() {
	re := symregex.MustCompile(`\w+`)
	input := []byte("to be")
	for m := range re.All(input) {
		fmt.Println(string(input[m.Index:m.End()]))
	}
	// Output:
	// to
	// be
}

// ExampleCompileWithConfig demonstrates parse flags.
func ExampleCompileWithConfig() {
	config := symregex.DefaultConfig()
	config.IgnoreCase = true
	config.Multiline = true
	re, err := symregex.CompileWithConfig(`^error`, config)
	if err != nil {
		panic(err)
	}
	fmt.Println(re.CountString("Error: x\nok\nERROR: y", -1))
	// Output: 2
}

// ExampleQuoteMeta demonstrates escaping special characters.
func ExampleQuoteMeta() {
	escaped := symregex.QuoteMeta("1.5+2")
	fmt.Println(escaped)
	// Output: 1\.5\+2
}
