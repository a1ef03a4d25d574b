package smstext

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/require"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{name: "smart quotes and em dash", in: "\u201cHello\u201d \u2014 50%", want: `"Hello" - 50%`},
		{name: "plain ascii untouched", in: "Sunny, high near 72F. Winds 5-10 mph.", want: "Sunny, high near 72F. Winds 5-10 mph."},
		{name: "apostrophes removed", in: "It\u2019s cold", want: "Its cold"},
		{name: "fractions expand", in: "\u00bd inch of rain, \u00bc mile", want: "1/2 inch of rain, 1/4 mile"},
		{name: "ellipsis expands", in: "Wait\u2026", want: "Wait..."},
		{name: "fullwidth forms", in: "\uff21\uff22\uff23\uff11\uff12\uff13\uff01", want: "ABC123!"},
		{name: "exotic spaces dropped", in: "a\u00a0b\u200bc\u3000d", want: "abcd"},
		{name: "markdown asterisks", in: "\u2731 bold \u2217", want: "* bold *"},
		{name: "backticks dropped", in: "`code`", want: "code"},
		{name: "bullets become dashes", in: "\u2022 Tonight\n\u2022 Friday", want: "- Tonight\n- Friday"},
		{name: "astral code points pass through", in: "snow \u2744\ufe0f \U0001F3D4", want: "snow \u2744\ufe0f \U0001F3D4"},
		{name: "empty", in: "", want: ""},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			require.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalizeKeepsInvalidUTF8Bytes(t *testing.T) {
	in := "ok\xffok\u2013"
	require.Equal(t, "ok\xffok-", Normalize(in))
}

func TestNormalizeIsIdempotent(t *testing.T) {
	var all strings.Builder
	for r := range substitutions {
		all.WriteRune(r)
		all.WriteString(" x ")
	}
	inputs := []string{
		all.String(),
		"\u201cHello\u201d \u2014 50%",
		"Tonight: \u00bd\u201d snow \u2026 winds \uff0d 10mph",
	}
	for _, in := range inputs {
		once := Normalize(in)
		require.Equal(t, once, Normalize(once))
	}
}

func TestNormalizeNeverEmitsRemovedCodePoints(t *testing.T) {
	var all strings.Builder
	for r := range substitutions {
		all.WriteRune(r)
	}
	out := Normalize(all.String())
	require.True(t, utf8.ValidString(out))
	for _, r := range out {
		replacement, ok := substitutions[r]
		if ok {
			require.NotEmpty(t, replacement, "removed code point %U survived", r)
		}
	}
}

func TestReplacementsAreTableFixedPoints(t *testing.T) {
	for r, replacement := range substitutions {
		for _, out := range replacement {
			_, ok := substitutions[out]
			require.False(t, ok, "replacement for %U contains table key %U", r, out)
		}
	}
}
