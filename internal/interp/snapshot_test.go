package interp

import (
	"bytes"
	"testing"

	"github.com/gkampitakis/go-snaps/snaps"

	"github.com/minipar-lang/minipar/internal/lexer"
	"github.com/minipar-lang/minipar/internal/parser"
)

// TestMain lets go-snaps prune obsolete snapshots left over from a renamed
// or removed scenario once the whole package's tests have run.
func TestMain(m *testing.M) {
	v := m.Run()
	snaps.Clean(m)
	_ = v
}

// runScenario lexes, parses, and executes source, feeding lines to any
// input()/InputStmt calls in order, and returns the captured output and
// final error state rendered as a single snapshot-friendly string.
func runScenario(t *testing.T, source string, lines ...string) string {
	t.Helper()
	l := lexer.New(source)
	p := parser.New(l)
	program := p.ParseProgram()
	if len(p.Errors()) > 0 {
		t.Fatalf("parse errors: %v", p.Errors())
	}

	var buf bytes.Buffer
	in := New(&buf, NewSliceProvider(lines))
	err := in.Run(program)

	result := "output: " + buf.String() + "\n"
	if err != nil {
		result += "error: " + err.Error() + "\n"
	} else {
		result += "error: <nil>\n"
	}
	return result
}

func TestWholeProgramScenarios(t *testing.T) {
	scenarios := []struct {
		name   string
		source string
		lines  []string
	}{
		{
			name:   "hello world",
			source: `seq { print("hello, minipar"); }`,
		},
		{
			name: "arithmetic widening",
			source: `seq {
				int a = 7;
				float b = 2.0;
				float c = a / b;
				print(c);
			}`,
		},
		{
			name: "loop accumulator",
			source: `seq {
				int total = 0;
				int i = 0;
				while (i < 5) {
					total = total + i;
					i = i + 1;
				}
				print(total);
			}`,
		},
		{
			name: "class and inheritance",
			source: `class Animal {
				string name;

				void announce() {
					print(this.name);
				}
			}

			class Dog extends Animal {
				void bark() {
					print("woof");
				}
			}

			seq {
				Dog d = new Dog();
				d.name = "Rex";
				d.announce();
				d.bark();
			}`,
		},
		{
			name: "channel rendezvous",
			source: `c_channel ch[a b];

			par {
				seq {
					ch.send(1, 2);
				}
				seq {
					int x = 0;
					int y = 0;
					ch.receive(x, y);
					print(x + y);
				}
			}`,
		},
		{
			name: "interactive input with coercion error",
			source: `seq {
				int age = 0;
				age = input("age? ");
				print(age);
			}`,
			lines: []string{"not-a-number"},
		},
	}

	for _, sc := range scenarios {
		t.Run(sc.name, func(t *testing.T) {
			got := runScenario(t, sc.source, sc.lines...)
			snaps.MatchSnapshot(t, got)
		})
	}
}
