package langtag

import (
	"errors"
	"slices"
	"testing"
)

func TestParseCanonicalisesCase(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{in: "en", want: "en"},
		{in: "EN-us", want: "en-US"},
		{in: "sr_cyrl_rs", want: "sr-Cyrl-RS"},
		{in: "es-419", want: "es-419"},
		{in: "ja-JP-mac", want: "ja-JP-mac"},
		{in: "de-DE-1996-1901", want: "de-DE-1901-1996"},
		{in: "de-DE-1996-1996", want: "de-DE-1996"},
		{in: "zh-yue-HK", want: "zh-yue-HK"},
		{in: "und", want: "und"},
		{in: "und-Latn", want: "und-Latn"},
		{in: "en-US-u-ca-gregory", want: "en-US-u-ca-gregory"},
		{in: "en-x-Private-1", want: "en-x-private-1"},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			tag, err := Parse(tc.in)
			if err != nil {
				t.Fatalf("Parse(%q) returned error: %v", tc.in, err)
			}
			if got := tag.String(); got != tc.want {
				t.Fatalf("Parse(%q).String() = %q, want %q", tc.in, got, tc.want)
			}
		})
	}
}

func TestParseRejectsMalformedTags(t *testing.T) {
	cases := []struct {
		in   string
		want error
	}{
		{in: "", want: ErrEmptyTag},
		{in: "   ", want: ErrEmptyTag},
		{in: "e", want: ErrInvalidLanguage},
		{in: "1234", want: ErrInvalidLanguage},
		{in: "en--US", want: ErrInvalidSubtag},
		{in: "en-US!", want: ErrInvalidSubtag},
		{in: "en-toolongsubtag", want: ErrInvalidSubtag},
		{in: "en-US-u", want: ErrInvalidSubtag},
		{in: "en-US-GB", want: ErrInvalidSubtag},
	}

	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			_, err := Parse(tc.in)
			if !errors.Is(err, tc.want) {
				t.Fatalf("Parse(%q) error = %v, want %v", tc.in, err, tc.want)
			}
		})
	}
}

func TestParseExposesSubtags(t *testing.T) {
	tag := MustParse("sr-latn-rs-ekavsk")
	if tag.Language() != "sr" || tag.Script() != "Latn" || tag.Region() != "RS" {
		t.Fatalf("unexpected subtags: %q %q %q", tag.Language(), tag.Script(), tag.Region())
	}
	if got := tag.Variants(); !slices.Equal(got, []string{"ekavsk"}) {
		t.Fatalf("unexpected variants: %v", got)
	}
	if tag.IsUndetermined() {
		t.Fatal("expected determined tag")
	}
	if !MustParse("und").IsUndetermined() {
		t.Fatal("expected und to be undetermined")
	}
}

func TestDerivationsDoNotAlias(t *testing.T) {
	original := MustParse("ja-JP-mac")

	cleared := original.ClearVariants()
	if cleared.String() != "ja-JP" {
		t.Fatalf("ClearVariants = %q, want ja-JP", cleared.String())
	}

	stripped, err := original.SetRegion("")
	if err != nil {
		t.Fatalf("SetRegion(\"\") returned error: %v", err)
	}
	if stripped.String() != "ja-mac" {
		t.Fatalf("SetRegion(\"\") = %q, want ja-mac", stripped.String())
	}

	if original.String() != "ja-JP-mac" {
		t.Fatalf("original mutated: %q", original.String())
	}
}

func TestSetRegionValidates(t *testing.T) {
	tag := MustParse("en")

	updated, err := tag.SetRegion("gb")
	if err != nil {
		t.Fatalf("SetRegion returned error: %v", err)
	}
	if updated.String() != "en-GB" {
		t.Fatalf("SetRegion = %q, want en-GB", updated.String())
	}

	if _, err := tag.SetRegion("GBR"); !errors.Is(err, ErrInvalidRegion) {
		t.Fatalf("expected ErrInvalidRegion, got %v", err)
	}
}
