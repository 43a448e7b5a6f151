package timezone

// countryZones maps lowercase country and region names to a default IANA
// zone. Countries spanning several zones get their most populous one.
var countryZones = map[string]string{
	// Africa
	"algeria":      "Africa/Algiers",
	"angola":       "Africa/Luanda",
	"egypt":        "Africa/Cairo",
	"ethiopia":     "Africa/Addis_Ababa",
	"ghana":        "Africa/Accra",
	"ivory coast":  "Africa/Abidjan",
	"kenya":        "Africa/Nairobi",
	"libya":        "Africa/Tripoli",
	"madagascar":   "Indian/Antananarivo",
	"mauritius":    "Indian/Mauritius",
	"morocco":      "Africa/Casablanca",
	"mozambique":   "Africa/Maputo",
	"namibia":      "Africa/Windhoek",
	"nigeria":      "Africa/Lagos",
	"senegal":      "Africa/Dakar",
	"seychelles":   "Indian/Mahe",
	"somalia":      "Africa/Mogadishu",
	"south africa": "Africa/Johannesburg",
	"south sudan":  "Africa/Juba",
	"sudan":        "Africa/Khartoum",
	"tanzania":     "Africa/Dar_es_Salaam",
	"tunisia":      "Africa/Tunis",
	"uganda":       "Africa/Kampala",
	"zambia":       "Africa/Lusaka",
	"zimbabwe":     "Africa/Harare",

	// Asia
	"afghanistan":          "Asia/Kabul",
	"armenia":              "Asia/Yerevan",
	"azerbaijan":           "Asia/Baku",
	"bahrain":              "Asia/Bahrain",
	"bangladesh":           "Asia/Dhaka",
	"bhutan":               "Asia/Thimphu",
	"cambodia":             "Asia/Phnom_Penh",
	"china":                "Asia/Shanghai",
	"georgia":              "Asia/Tbilisi",
	"hong kong":            "Asia/Hong_Kong",
	"india":                "Asia/Kolkata",
	"indonesia":            "Asia/Jakarta",
	"iran":                 "Asia/Tehran",
	"iraq":                 "Asia/Baghdad",
	"israel":               "Asia/Jerusalem",
	"japan":                "Asia/Tokyo",
	"jordan":               "Asia/Amman",
	"kazakhstan":           "Asia/Almaty",
	"kuwait":               "Asia/Kuwait",
	"laos":                 "Asia/Vientiane",
	"lebanon":              "Asia/Beirut",
	"malaysia":             "Asia/Kuala_Lumpur",
	"maldives":             "Indian/Maldives",
	"mongolia":             "Asia/Ulaanbaatar",
	"myanmar":              "Asia/Yangon",
	"nepal":                "Asia/Kathmandu",
	"north korea":          "Asia/Pyongyang",
	"oman":                 "Asia/Muscat",
	"pakistan":             "Asia/Karachi",
	"philippines":          "Asia/Manila",
	"qatar":                "Asia/Qatar",
	"saudi arabia":         "Asia/Riyadh",
	"singapore":            "Asia/Singapore",
	"south korea":          "Asia/Seoul",
	"sri lanka":            "Asia/Colombo",
	"syria":                "Asia/Damascus",
	"taiwan":               "Asia/Taipei",
	"thailand":             "Asia/Bangkok",
	"turkey":               "Europe/Istanbul",
	"uae":                  "Asia/Dubai",
	"united arab emirates": "Asia/Dubai",
	"uzbekistan":           "Asia/Tashkent",
	"vietnam":              "Asia/Ho_Chi_Minh",
	"yemen":                "Asia/Aden",

	// Europe
	"austria":        "Europe/Vienna",
	"belgium":        "Europe/Brussels",
	"bulgaria":       "Europe/Sofia",
	"croatia":        "Europe/Zagreb",
	"czech republic": "Europe/Prague",
	"denmark":        "Europe/Copenhagen",
	"estonia":        "Europe/Tallinn",
	"finland":        "Europe/Helsinki",
	"france":         "Europe/Paris",
	"germany":        "Europe/Berlin",
	"greece":         "Europe/Athens",
	"hungary":        "Europe/Budapest",
	"iceland":        "Atlantic/Reykjavik",
	"ireland":        "Europe/Dublin",
	"italy":          "Europe/Rome",
	"latvia":         "Europe/Riga",
	"lithuania":      "Europe/Vilnius",
	"netherlands":    "Europe/Amsterdam",
	"norway":         "Europe/Oslo",
	"poland":         "Europe/Warsaw",
	"portugal":       "Europe/Lisbon",
	"romania":        "Europe/Bucharest",
	"russia":         "Europe/Moscow",
	"serbia":         "Europe/Belgrade",
	"slovakia":       "Europe/Bratislava",
	"slovenia":       "Europe/Ljubljana",
	"spain":          "Europe/Madrid",
	"sweden":         "Europe/Stockholm",
	"switzerland":    "Europe/Zurich",
	"ukraine":        "Europe/Kyiv",
	"united kingdom": "Europe/London",
	"uk":             "Europe/London",
	"england":        "Europe/London",

	// Americas
	"argentina":     "America/Argentina/Buenos_Aires",
	"bolivia":       "America/La_Paz",
	"brazil":        "America/Sao_Paulo",
	"canada":        "America/Toronto",
	"chile":         "America/Santiago",
	"colombia":      "America/Bogota",
	"costa rica":    "America/Costa_Rica",
	"cuba":          "America/Havana",
	"ecuador":       "America/Guayaquil",
	"guatemala":     "America/Guatemala",
	"jamaica":       "America/Jamaica",
	"mexico":        "America/Mexico_City",
	"panama":        "America/Panama",
	"paraguay":      "America/Asuncion",
	"peru":          "America/Lima",
	"united states": "America/New_York",
	"usa":           "America/New_York",
	"us":            "America/New_York",
	"uruguay":       "America/Montevideo",
	"venezuela":     "America/Caracas",

	// Oceania
	"australia":   "Australia/Sydney",
	"fiji":        "Pacific/Fiji",
	"new zealand": "Pacific/Auckland",
	"tonga":       "Pacific/Tongatapu",

	// Generic region shortcuts
	"asia":          "Asia/Singapore",
	"europe":        "Europe/Paris",
	"africa":        "Africa/Cairo",
	"north america": "America/New_York",
	"south america": "America/Sao_Paulo",
	"australasia":   "Australia/Sydney",
	"middle east":   "Asia/Dubai",
}
