// Package language detects which supported language a farmer message is
// written in, using ordered keyword lists and character patterns.
package language

import (
	"regexp"
	"strings"
)

// Language is one of the supported regional languages.
type Language string

const (
	English  Language = "english"
	Swahili  Language = "swahili"
	Kikuyu   Language = "kikuyu"
	Luo      Language = "luo"
	Kalenjin Language = "kalenjin"
	Kamba    Language = "kamba"
	Maasai   Language = "maasai"
	Meru     Language = "meru"
)

// rule pairs a language with its keyword set and an optional character
// pattern. Order in the rules slice encodes precedence: keyword sets
// overlap, and the first matching rule wins.
type rule struct {
	lang     Language
	keywords []string
	pattern  *regexp.Regexp
}

// rules is evaluated top to bottom. Swahili is tested first because it is
// the most widely mixed into other-language messages; English is the
// fallback when nothing matches.
//
// The Kalenjin particles ("ko", "ak", "ab") are very short and collide with
// ordinary English and Swahili text. This is a known accuracy limitation
// kept for compatibility: testing Kalenjin after Swahili, Kikuyu and Luo
// only partially mitigates it.
var rules = []rule{
	{
		lang: Swahili,
		keywords: []string{
			"habari", "jambo", "mambo", "asante", "shukrani", "bei", "soko",
			"mahindi", "maharagwe", "viazi", "nyanya", "sukuma", "shamba",
			"mazao", "mbegu", "mbolea", "mvua", "ngapi", "wapi", "nunua",
			"uza", "mkulima", "ghala", "usafiri", "magonjwa", "hifadhi",
		},
	},
	{
		lang: Kikuyu,
		keywords: []string{
			"wĩra", "mũrĩmi", "mbembe", "mĩgũnda", "thoko", "irio",
			"atĩrĩrĩ", "ngai", "wendia", "thogora", "mbeca", "nĩatĩa",
		},
		pattern: regexp.MustCompile(`[ũĩ]`),
	},
	{
		lang: Luo,
		keywords: []string{
			"oduma", "chiro", "puodho", "japur", "nengo", "ohala",
			"winjo", "chiemo", "kisumo", "adhi", "nade", "apenji",
		},
	},
	{
		lang: Kalenjin,
		keywords: []string{
			"chamgei", "bandek", "imbaret", "korosek", "kiptaiyat",
			"ko", "ak", "ab",
		},
	},
	{
		lang: Kamba,
		keywords: []string{
			"mbemba", "ngetha", "museo", "uvoo", "kyalo", "syindu",
			"mundu", "wakwa", "nthini", "muunda",
		},
	},
	{
		lang: Maasai,
		keywords: []string{
			"supa", "sopa", "ashe", "enkare", "inkishu", "olmurrani",
			"emurua", "engishon", "olchani",
		},
	},
	{
		lang: Meru,
		keywords: []string{
			"mpempe", "murime", "baite", "nkatho", "kiria", "naria",
			"muga", "muthetu",
		},
	},
}

// Detect classifies the message into one of the supported languages.
// It lower-cases the input and tests each rule in fixed priority order;
// a rule matches when any keyword appears as a substring or the rule's
// character pattern matches. The first match wins. Returns English when
// nothing matches. Pure function, always returns a value.
func Detect(message string) Language {
	text := strings.ToLower(message)
	for _, r := range rules {
		if r.pattern != nil && r.pattern.MatchString(text) {
			return r.lang
		}
		for _, kw := range r.keywords {
			if strings.Contains(text, kw) {
				return r.lang
			}
		}
	}
	return English
}

// Supported lists every language Detect can return, in precedence order
// with the English fallback last.
func Supported() []Language {
	out := make([]Language, 0, len(rules)+1)
	for _, r := range rules {
		out = append(out, r.lang)
	}
	return append(out, English)
}
