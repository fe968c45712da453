package semantic

// builtinSignature describes a pre-populated global function from the
// built-in library.
type builtinSignature struct {
	Params []string
	Return string
}

var builtins = map[string]builtinSignature{
	"strlen":   {Params: []string{TString}, Return: TInt},
	"substr":   {Params: []string{TString, TInt, TInt}, Return: TString},
	"charat":   {Params: []string{TString, TInt}, Return: TString},
	"indexof":  {Params: []string{TString, TString}, Return: TInt},
	"parseint": {Params: []string{TString}, Return: TInt},
	"print":    {Params: []string{TString}, Return: TVoid},
	"input":    {Params: nil, Return: TString},
}
