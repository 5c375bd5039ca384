package languages

// countryLanguages maps ISO 3166-1 alpha-2 country codes, as encoded by flag emojis,
// to the language translations for that flag are produced in
var countryLanguages = map[string]string{
	"US": "en",
	"GB": "en",
	"FR": "fr",
	"DE": "de",
	"ES": "es",
	"IT": "it",
	"PT": "pt",
	"BR": "pt",
	"RU": "ru",
	"JP": "ja",
	"KR": "ko",
	"CN": "zh",
	"TW": "zh",
	"HK": "zh",
	"IN": "hi",
	"SA": "ar",
	"AE": "ar",
	"EG": "ar",
	"NL": "nl",
	"BE": "nl",
	"SE": "sv",
	"NO": "no",
	"DK": "da",
	"FI": "fi",
	"PL": "pl",
	"CZ": "cs",
	"SK": "sk",
	"HU": "hu",
	"RO": "ro",
	"BG": "bg",
	"HR": "hr",
	"RS": "sr",
	"SI": "sl",
	"BA": "bs",
	"MK": "mk",
	"AL": "sq",
	"GR": "el",
	"TR": "tr",
	"IL": "he",
	"IR": "fa",
	"AF": "fa",
	"PK": "ur",
	"BD": "bn",
	"LK": "si",
	"TH": "th",
	"VN": "vi",
	"MY": "ms",
	"ID": "id",
	"PH": "tl",
	"SG": "en",
	"AU": "en",
	"NZ": "en",
	"CA": "en",
	"MX": "es",
	"AR": "es",
	"CL": "es",
	"CO": "es",
	"PE": "es",
	"VE": "es",
	"UY": "es",
	"EC": "es",
	"BO": "es",
	"PY": "es",
	"CU": "es",
	"DO": "es",
	"GT": "es",
	"HN": "es",
	"SV": "es",
	"NI": "es",
	"CR": "es",
	"PA": "es",
	"UA": "uk",
	"BY": "be",
	"LT": "lt",
	"LV": "lv",
	"EE": "et",
	"AT": "de",
	"CH": "de",
	"LU": "fr",
	"MC": "fr",
	"AD": "ca",
	"VA": "it",
	"SM": "it",
	"IE": "ga",
	"IS": "is",
	"MT": "mt",
	"CY": "el",
	"GE": "ka",
	"AM": "hy",
	"AZ": "az",
	"KZ": "kk",
	"KG": "ky",
	"TJ": "tg",
	"TM": "tk",
	"UZ": "uz",
	"MN": "mn",
	"KH": "km",
	"LA": "lo",
	"MM": "my",
	"NP": "ne",
	"BT": "dz",
	"MV": "dv",
	"MU": "en",
	"ZA": "en",
	"KE": "sw",
	"TZ": "sw",
	"UG": "en",
	"RW": "rw",
	"ET": "am",
	"SN": "wo",
	"GH": "en",
	"NG": "en",
	"CI": "fr",
	"MA": "ar",
	"TN": "ar",
	"DZ": "ar",
	"LY": "ar",
	"SD": "ar",
	"SO": "so",
	"DJ": "fr",
	"ER": "ti",
	"SS": "en",
	"CF": "fr",
	"TD": "fr",
	"NE": "fr",
	"BF": "fr",
	"ML": "fr",
	"GN": "fr",
	"SL": "en",
	"LR": "en",
	"GM": "en",
	"GW": "pt",
	"CV": "pt",
	"ST": "pt",
	"AO": "pt",
	"MZ": "pt",
	"ZW": "en",
	"BW": "en",
	"NA": "en",
	"ZM": "en",
	"MW": "en",
	"LS": "en",
	"SZ": "en",
	"KM": "ar",
	"MG": "mg",
	"SC": "en",
	"RE": "fr",
	"YT": "fr",
	"JO": "ar",
	"LB": "ar",
	"SY": "ar",
	"IQ": "ar",
	"KW": "ar",
	"BH": "ar",
	"QA": "ar",
	"OM": "ar",
	"YE": "ar",
	"GY": "en",
	"SR": "nl",
	"FK": "en",
	"GF": "fr",
}

// subdivisionLanguages covers the tag-sequence flags of the UK constituent countries
var subdivisionLanguages = map[string]string{
	"gbeng": "en",
	"gbsct": "gd",
	"gbwls": "cy",
}

var languageAliases = map[string]string{
	"english":     "en",
	"spanish":     "es",
	"french":      "fr",
	"german":      "de",
	"italian":     "it",
	"portuguese":  "pt",
	"russian":     "ru",
	"japanese":    "ja",
	"korean":      "ko",
	"chinese":     "zh",
	"arabic":      "ar",
	"hindi":       "hi",
	"dutch":       "nl",
	"swedish":     "sv",
	"norwegian":   "no",
	"danish":      "da",
	"finnish":     "fi",
	"polish":      "pl",
	"czech":       "cs",
	"hungarian":   "hu",
	"romanian":    "ro",
	"bulgarian":   "bg",
	"croatian":    "hr",
	"serbian":     "sr",
	"greek":       "el",
	"turkish":     "tr",
	"hebrew":      "he",
	"persian":     "fa",
	"urdu":        "ur",
	"bengali":     "bn",
	"thai":        "th",
	"vietnamese":  "vi",
	"indonesian":  "id",
	"malay":       "ms",
	"filipino":    "tl",
	"ukrainian":   "uk",
	"belarusian":  "be",
	"lithuanian":  "lt",
	"latvian":     "lv",
	"estonian":    "et",
	"slovak":      "sk",
	"slovenian":   "sl",
	"bosnian":     "bs",
	"macedonian":  "mk",
	"albanian":    "sq",
	"georgian":    "ka",
	"armenian":    "hy",
	"azerbaijani": "az",
	"kazakh":      "kk",
	"kyrgyz":      "ky",
	"tajik":       "tg",
	"uzbek":       "uz",
	"mongolian":   "mn",
	"khmer":       "km",
	"lao":         "lo",
	"myanmar":     "my",
	"nepali":      "ne",
	"swahili":     "sw",
	"amharic":     "am",
	"somali":      "so",
	"malagasy":    "mg",
	"irish":       "ga",
	"icelandic":   "is",
	"maltese":     "mt",
	"catalan":     "ca",
	"basque":      "eu",
	"galician":    "gl",
	"welsh":       "cy",
	"scottish":    "gd",
	"yiddish":     "yi",
	"esperanto":   "eo",
	"latin":       "la",
}

// languageNames holds the display names shown in translation embeds.
// Codes missing here fall back to golang.org/x/text display names.
var languageNames = map[string]string{
	"af": "Afrikaans", "sq": "Albanian", "am": "Amharic", "ar": "Arabic",
	"hy": "Armenian", "az": "Azerbaijani", "eu": "Basque", "be": "Belarusian",
	"bn": "Bengali", "bs": "Bosnian", "bg": "Bulgarian", "ca": "Catalan",
	"ceb": "Cebuano", "ny": "Chichewa", "zh": "Chinese", "co": "Corsican",
	"hr": "Croatian", "cs": "Czech", "da": "Danish", "nl": "Dutch",
	"en": "English", "eo": "Esperanto", "et": "Estonian", "tl": "Filipino",
	"fi": "Finnish", "fr": "French", "fy": "Frisian", "gl": "Galician",
	"ka": "Georgian", "de": "German", "el": "Greek", "gu": "Gujarati",
	"ht": "Haitian Creole", "ha": "Hausa", "haw": "Hawaiian", "he": "Hebrew",
	"hi": "Hindi", "hmn": "Hmong", "hu": "Hungarian", "is": "Icelandic",
	"ig": "Igbo", "id": "Indonesian", "ga": "Irish", "it": "Italian",
	"ja": "Japanese", "jw": "Javanese", "kn": "Kannada", "kk": "Kazakh",
	"km": "Khmer", "ko": "Korean", "ku": "Kurdish", "ky": "Kyrgyz",
	"lo": "Lao", "la": "Latin", "lv": "Latvian", "lt": "Lithuanian",
	"lb": "Luxembourgish", "mk": "Macedonian", "mg": "Malagasy", "ms": "Malay",
	"ml": "Malayalam", "mt": "Maltese", "mi": "Maori", "mr": "Marathi",
	"mn": "Mongolian", "my": "Myanmar", "ne": "Nepali", "no": "Norwegian",
	"ps": "Pashto", "fa": "Persian", "pl": "Polish", "pt": "Portuguese",
	"pa": "Punjabi", "ro": "Romanian", "ru": "Russian", "sm": "Samoan",
	"gd": "Scottish Gaelic", "sr": "Serbian", "st": "Sesotho", "sn": "Shona",
	"sd": "Sindhi", "si": "Sinhala", "sk": "Slovak", "sl": "Slovenian",
	"so": "Somali", "es": "Spanish", "su": "Sundanese", "sw": "Swahili",
	"sv": "Swedish", "tg": "Tajik", "ta": "Tamil", "te": "Telugu",
	"th": "Thai", "tr": "Turkish", "uk": "Ukrainian", "ur": "Urdu",
	"uz": "Uzbek", "vi": "Vietnamese", "cy": "Welsh", "xh": "Xhosa",
	"yi": "Yiddish", "yo": "Yoruba", "zu": "Zulu",
}
