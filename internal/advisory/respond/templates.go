// Package respond produces the final natural-language reply for a
// classified intent: localized conversational templates for regional
// languages, an English dispatch per intent, and the data-attribution
// footer appended to every synthesized response.
package respond

import (
	"shamba-workers/internal/advisory/intent"
	"shamba-workers/internal/advisory/language"
)

// pattern keys a localized conversational template.
type pattern string

const (
	patGreeting         pattern = "greeting"
	patThanks           pattern = "thanks"
	patHelp             pattern = "help"
	patLocationQuestion pattern = "locationQuestion"
	patPriceQuestion    pattern = "priceQuestion"
	patCropMention      pattern = "cropMention"
	patStorage          pattern = "storage"
	patTransport        pattern = "transport"
	patNoMatch          pattern = "noMatch"
)

// localizedRule pairs a conversational pattern with the keywords that
// trigger it and the response variants to choose from. Rules are evaluated
// in order; the first match wins.
type localizedRule struct {
	pat       pattern
	keywords  []string
	responses []string
}

// localizedSet is the full template set for one language. Languages
// without a noMatch response are partially localized: when no pattern
// matches, synthesis falls through to the English intent path.
type localizedSet struct {
	rules   []localizedRule
	noMatch string
	// enhance is the localized one-line market-price clause appended when
	// a crop and at least one relevant market were resolved.
	enhance func(crop, market string, price float64, unit string) string
}

// maizePricesResponses are the fixed Swahili replies for maize price
// questions. One of the three is returned verbatim.
var maizePricesResponses = []string{
	"Bei ya mahindi inabadilika kila siku sokoni. Kwa sasa bei ya wastani ni kati ya KES 40 na KES 55 kwa kilo kulingana na soko. Angalia sehemu ya masoko kwenye programu kwa bei za leo.",
	"Mahindi yanauzwa kati ya KES 40 na KES 55 kwa kilo katika masoko makubwa wiki hii. Bei hutofautiana kulingana na ubora na eneo.",
	"Kwa wiki hii, bei ya mahindi sokoni ni wastani wa KES 45 kwa kilo. Masoko ya miji mikubwa hulipa zaidi kuliko masoko ya mashambani.",
}

var localizedSets = map[language.Language]*localizedSet{
	language.Swahili: {
		rules: []localizedRule{
			{patGreeting, []string{"habari", "jambo", "mambo", "hujambo"}, []string{
				"Habari yako mkulima! Mimi ni msaidizi wako wa kilimo. Naweza kukusaidia na bei za soko, utabiri wa mavuno, maghala, usafiri na zaidi. Unahitaji nini leo?",
			}},
			{patThanks, []string{"asante", "shukrani"}, []string{
				"Karibu sana! Nipo hapa wakati wowote unapohitaji msaada wa kilimo.",
			}},
			{patPriceQuestion, []string{"bei", "ngapi", "gharama"}, nil},
			{patStorage, []string{"ghala", "hifadhi", "kuhifadhi"}, []string{
				"Kuna maghala kadhaa yaliyosajiliwa kwenye mfumo wetu. Tafuta ghala lililo karibu nawe kwenye sehemu ya maghala, ukichagua aina ya mazao yako.",
			}},
			{patTransport, []string{"usafiri", "kusafirisha", "lori"}, []string{
				"Wasafirishaji waliosajiliwa wanapatikana kwenye sehemu ya usafiri. Chagua kaunti yako kuona wasafirishaji wanaohudumia eneo lako.",
			}},
			{patLocationQuestion, []string{"wapi", "mahali"}, []string{
				"Tafadhali taja kaunti yako ili nikupe taarifa za eneo lako.",
			}},
			{patCropMention, []string{"mahindi", "maharagwe", "viazi", "nyanya", "sukuma", "mazao"}, []string{
				"Nimeona unauliza kuhusu mazao yako. Naweza kukupa bei za soko, utabiri wa mahitaji, au mahali pa kuhifadhi. Uliza swali mahususi zaidi.",
			}},
			{patHelp, []string{"msaada", "saidia", "nisaidie"}, []string{
				"Naweza kukusaidia na: bei za soko, utabiri wa mavuno na mahitaji, maghala, usafiri, wanunuzi, na ripoti za wakulima wenzako. Uliza swali lako.",
			}},
		},
		noMatch: "Samahani, sijaelewa swali lako vizuri. Jaribu kuuliza kuhusu bei, soko, ghala, usafiri au mavuno.",
		enhance: func(crop, market string, price float64, unit string) string {
			return swahiliEnhancement(crop, market, price, unit)
		},
	},
	language.Kikuyu: {
		rules: []localizedRule{
			{patGreeting, []string{"wĩmwega", "nĩatĩa", "atĩrĩrĩ"}, []string{
				"Nĩ wega mũrĩmi! Nĩ niĩ mũteithia waku wa ũrĩmi. No ngũteithie na thogora wa thoko, ũhoro wa magetha, na makĩria. Ũrenda atĩa ũmũthĩ?",
			}},
			{patThanks, []string{"nĩ ngatho", "ngatho"}, []string{
				"Nĩ wega mũno! Ndĩ haha hĩndĩ ĩrĩa yothe ũkwenda ũteithio.",
			}},
			{patPriceQuestion, []string{"thogora", "mbeca"}, []string{
				"Thogora wa thoko ũgarũrũkaga o mũthenya. Rora gĩcunjĩ kĩa thoko thĩinĩ wa programu nĩguo wone thogora wa ũmũthĩ.",
			}},
			{patCropMention, []string{"mbembe", "irio", "mĩgũnda"}, []string{
				"Nĩ ndona ũroria ũhoro wa irio ciaku. No ngwĩre thogora wa thoko kana ũhoro wa magetha. Ũria kĩũria gĩaku wega.",
			}},
		},
		noMatch: "Nĩ ndakũhoya kĩhooto, ndinataũkĩrwo nĩ kĩũria gĩaku. Geria kũũria ũhoro wa thogora, thoko kana magetha.",
		enhance: func(crop, market string, price float64, unit string) string {
			return kikuyuEnhancement(crop, market, price, unit)
		},
	},
	language.Luo: {
		rules: []localizedRule{
			{patGreeting, []string{"nade", "ber", "amosi"}, []string{
				"Amosi japur! An jakony mari mar pur. Anyalo konyi gi nengo mag chiro, koro mar cham, kod mamoko. Idwaro ango kawuono?",
			}},
			{patThanks, []string{"erokamano"}, []string{
				"Oriti ahinya! An ka seche duto ma idwaro kony.",
			}},
			{patPriceQuestion, []string{"nengo", "adi"}, []string{
				"Nengo mag chiro lokore pile. Ne kama ondik chiro e programu mondo ine nengo mar kawuono.",
			}},
			{patCropMention, []string{"oduma", "cham", "puodho"}, []string{
				"Aneno ni ipenjo kuom chambi. Anyalo nyisi nengo mag chiro kata koro mar cham. Penj penjo moro machielo.",
			}},
		},
		noMatch: "Akwayo ng'wono, ok awinjo penjoni maber. Tem penjo kuom nengo, chiro kata keno.",
		enhance: func(crop, market string, price float64, unit string) string {
			return luoEnhancement(crop, market, price, unit)
		},
	},
	// Partially localized languages: greetings and thanks only. Anything
	// else falls through to English synthesis.
	language.Kalenjin: {
		rules: []localizedRule{
			{patGreeting, []string{"chamgei"}, []string{
				"Chamgei! An konyuun ne bo minutik. Tebenge agobo oret ab bandek ak tuguk che terchin.",
			}},
		},
	},
	language.Kamba: {
		rules: []localizedRule{
			{patGreeting, []string{"uvoo", "wakwa"}, []string{
				"Uvoo museo mulimi! Ninengae utethyo wa uimi. Ukulya ata umunthi?",
			}},
			{patThanks, []string{"nimuvea"}, []string{
				"Museo muno! Ninengae utethyo ivinda yonthe.",
			}},
		},
	},
	language.Maasai: {
		rules: []localizedRule{
			{patGreeting, []string{"supa", "sopa"}, []string{
				"Supa! Nanu oltungani le enkiteng'ena e shamba. Kainyoo nikiyieu taata?",
			}},
			{patThanks, []string{"ashe"}, []string{
				"Ashe oleng! Aaitobiraki pooki oloshon.",
			}},
		},
	},
	language.Meru: {
		rules: []localizedRule{
			{patGreeting, []string{"muga"}, []string{
				"Muga murimi! Ni niwe muteithia waku wa urimi. Ukwenda ki narua?",
			}},
			{patThanks, []string{"nkatho"}, []string{
				"Nkatho nyingi! Ndi aja igita ria wendaga uteithio.",
			}},
		},
	},
}

// apologies are the only user-visible error strings. Keyed by the language
// already detected for the turn; English is the fallback for languages
// without a localized apology.
var apologies = map[language.Language]string{
	language.English: "Sorry, something went wrong while preparing your answer. Please try asking again in a moment.",
	language.Swahili: "Samahani, kuna hitilafu imetokea wakati wa kuandaa jibu lako. Tafadhali jaribu tena baada ya muda mfupi.",
	language.Kikuyu:  "Nĩ ndakũhoya kĩhooto, nĩ kũrĩ na thĩna wagĩrĩire rĩrĩa twathondekaga macookio maku. Geria rĩngĩ thutha wa kahinda.",
	language.Luo:     "Akwayo ng'wono, nitie rach moro motimore sama ne wachano dwoko mari. Tem kendo bang' kinde matin.",
}

// Apology returns the localized failure string for the detected language.
func Apology(lang language.Language) string {
	if msg, ok := apologies[lang]; ok {
		return msg
	}
	return apologies[language.English]
}

// attributionSources is the fixed per-intent source citation line.
// Attribution is appended unconditionally to every intent branch,
// including conversational ones; that is intentional.
var attributionSources = map[intent.Type]string{
	intent.Greeting:       "Source: ShambaConnect advisory service.",
	intent.Thanks:         "Source: ShambaConnect advisory service.",
	intent.Counterfeit:    "Source: verified farmer reports on the ShambaConnect network.",
	intent.Disease:        "Source: verified farmer reports and county extension advisories.",
	intent.Policy:         "Source: farmer sentiment reports on the ShambaConnect network.",
	intent.Technology:     "Source: farmer adoption reports on the ShambaConnect network.",
	intent.Insights:       "Source: aggregated farmer sentiment reports.",
	intent.Forecast:       "Source: county production surveys and KALRO seasonal projections.",
	intent.Market:         "Source: daily county market price surveys.",
	intent.Warehouse:      "Source: registered warehouse listings on ShambaConnect.",
	intent.Transport:      "Source: registered transporter listings on ShambaConnect.",
	intent.Buyers:         "Source: registered buyer and market listings on ShambaConnect.",
	intent.SupplyChain:    "Source: ShambaConnect market linkage data.",
	intent.QualityControl: "Source: KEBS and county quality control guidelines.",
	intent.AboutAI:        "Source: ShambaConnect advisory service.",
	intent.General:        "Source: ShambaConnect advisory service.",
}

const moreInformation = "For more details, open the Data & Sources page in the ShambaConnect app."

// appendAttribution adds the fixed citation footer to a synthesized body.
func appendAttribution(t intent.Type, body string) string {
	source, ok := attributionSources[t]
	if !ok {
		source = attributionSources[intent.General]
	}
	return body + "\n\n" + source + " " + moreInformation
}
