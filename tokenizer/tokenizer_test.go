package tokenizer

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"text2phenotype.com/ukstem/types"
)

func texts(tokens []types.Token) []string {
	out := make([]string, len(tokens))
	for i, token := range tokens {
		out[i] = token.Text
	}
	return out
}

func TestTokenize(t *testing.T) {
	tests := []struct {
		text string
		want []string
	}{
		{"", nil},
		{"слово", []string{"слово"}},
		{"Привіт,як  справи?", []string{"Привіт", ",", "як", " ", " ", "справи", "?"}},
		{"(це ж тест??)", []string{"(", "це", " ", "ж", " ", "тест", "?", "?", ")"}},
		{"борг/заборгованостей.", []string{"борг", "/", "заборгованостей", "."}},
		{"v2_beta 42", []string{"v2_beta", " ", "42"}},
		{"пам'ять і м’ясо", []string{"пам'ять", " ", "і", " ", "м’ясо"}},
		{"памʼять", []string{"памʼять"}},
		{"'слово'", []string{"'", "слово", "'"}},
		{"рок'н'рол", []string{"рок'н'рол"}},
		{"7'5", []string{"7", "'", "5"}},
		{"ї", []string{"ї"}},
		{"рядок\nінший", []string{"рядок", "\n", "інший"}},
	}
	for _, tt := range tests {
		got := texts(Tokenize(tt.text))
		if tt.want == nil {
			assert.Empty(t, got, tt.text)
			continue
		}
		if diff := cmp.Diff(tt.want, got); diff != "" {
			t.Errorf("Tokenize(%q) mismatch (-want +got):\n%s", tt.text, diff)
		}
	}
}

func TestTokenizeOffsets(t *testing.T) {
	tokens := Tokenize("Як справи, друже?")
	want := []types.Token{
		{Span: types.Span{Begin: 0, End: 2, Text: "Як"}, IsWord: true},
		{Span: types.Span{Begin: 2, End: 3, Text: " "}},
		{Span: types.Span{Begin: 3, End: 9, Text: "справи"}, IsWord: true},
		{Span: types.Span{Begin: 9, End: 10, Text: ","}},
		{Span: types.Span{Begin: 10, End: 11, Text: " "}},
		{Span: types.Span{Begin: 11, End: 16, Text: "друже"}, IsWord: true},
		{Span: types.Span{Begin: 16, End: 17, Text: "?"}},
	}
	if diff := cmp.Diff(want, tokens); diff != "" {
		t.Errorf("offsets mismatch (-want +got):\n%s", diff)
	}
}

func TestTokenizeRoundTrip(t *testing.T) {
	samples := []string{
		"Привіт,як твої  справи?  (це ж тест??) Зберігайте спокойствіе.Оплатіте ласка, зробіть погашення боргу/заборгованостей. Рефлексивного и тямущий",
		"\t\n  ...  ",
		"емодзі 🙂 та ℕ символи",
		"a'b' 'c ’d’",
	}
	for _, text := range samples {
		var sb strings.Builder
		var prevEnd int32
		for _, token := range Tokenize(text) {
			require.Equal(t, prevEnd, token.Begin)
			require.Equal(t, int32(len([]rune(token.Text))), token.Len())
			prevEnd = token.End
			sb.WriteString(token.Text)
		}
		assert.Equal(t, text, sb.String())
		assert.Equal(t, int32(len([]rune(text))), prevEnd)
	}
}
