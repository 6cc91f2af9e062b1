package shortener

import "github.com/jaevor/go-nanoid"

// CodeLength is the fixed length of generated short codes.
const CodeLength = 6

// codeAlphabet is the 62-symbol alphanumeric alphabet codes are drawn from.
const codeAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// CodeGenerator generates short codes. Generated codes carry no uniqueness
// guarantee; collisions are resolved at insert time.
type CodeGenerator func() Code

// NewCodeGenerator creates a generator producing fixed-length alphanumeric codes.
func NewCodeGenerator() (CodeGenerator, error) {
	gen, err := nanoid.CustomASCII(codeAlphabet, CodeLength)
	if err != nil {
		return nil, err
	}

	return func() Code {
		return Code(gen())
	}, nil
}
