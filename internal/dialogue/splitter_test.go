package dialogue

import (
	"slices"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestUtterances(t *testing.T) {
	cases := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "single line", raw: "Hello!", want: []string{"Hello!"}},
		{name: "multi line", raw: "Hi!\nBye!", want: []string{"Hi!", "Bye!"}},
		{name: "blank lines dropped", raw: "Hi!\n\n\nBye!", want: []string{"Hi!", "Bye!"}},
		{name: "whitespace trimmed", raw: "  Hi!  \n\t\n Bye!\t", want: []string{"Hi!", "Bye!"}},
		{name: "only whitespace", raw: " \n\t\n  ", want: nil},
		{name: "trailing newline", raw: "Hello!\n", want: []string{"Hello!"}},
		{name: "crlf", raw: "Hi!\r\nBye!\r\n", want: []string{"Hi!", "Bye!"}},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := slices.Collect(Utterances(tc.raw))
			require.Equal(t, tc.want, got)
		})
	}
}

func TestUtterancesAllNonEmptyAfterTrim(t *testing.T) {
	inputs := []string{
		"a\n \nb\n\nc",
		"\n\n\n",
		"  leading\ntrailing  \n",
		"one",
	}
	for _, raw := range inputs {
		for u := range Utterances(raw) {
			require.NotEmpty(t, u)
			require.Equal(t, strings.TrimSpace(u), u)
		}
	}
}

func TestUtterancesRestartable(t *testing.T) {
	seq := Utterances("Hi!\nBye!")
	first := slices.Collect(seq)
	second := slices.Collect(seq)
	require.Equal(t, first, second)
}

func TestUtterancesEarlyStop(t *testing.T) {
	var got []string
	for u := range Utterances("a\nb\nc") {
		got = append(got, u)
		if len(got) == 2 {
			break
		}
	}
	require.Equal(t, []string{"a", "b"}, got)
}
