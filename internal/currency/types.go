package currency

// frankfurterResponse is the Frankfurter fallback API response
type frankfurterResponse struct {
	Base  string             `json:"base"`
	Date  string             `json:"date"`
	Rates map[string]float64 `json:"rates"`
}

// Conversion is one completed currency conversion
type Conversion struct {
	Amount    float64 `json:"amount"`
	From      string  `json:"from"`
	To        string  `json:"to"`
	Rate      float64 `json:"rate"`
	Converted float64 `json:"converted"`
	Symbol    string  `json:"symbol,omitempty"`
}

// symbols maps ISO codes to display symbols for the formatted output.
var symbols = map[string]string{
	// Major
	"USD": "$", "EUR": "€", "GBP": "£", "JPY": "¥", "CNY": "¥", "INR": "₹",
	"RUB": "₽", "KRW": "₩", "BRL": "R$", "TRY": "₺", "IDR": "Rp", "ZAR": "R",

	// Americas
	"CAD": "C$", "MXN": "$", "ARS": "$", "CLP": "$", "COP": "$", "PEN": "S/",
	"UYU": "$U", "CRC": "₡", "GTQ": "Q", "NIO": "C$", "PYG": "Gs",
	"BOB": "Bs.", "VES": "Bs.", "JMD": "J$", "TTD": "TT$", "XCD": "$", "BZD": "BZ$",

	// Europe
	"CHF": "Fr", "SEK": "kr", "NOK": "kr", "DKK": "kr", "PLN": "zł", "CZK": "Kč",
	"HUF": "Ft", "ISK": "kr", "RSD": "din", "BGN": "лв", "RON": "lei", "UAH": "₴",
	"BYN": "Br", "GEL": "₾", "ALL": "L", "HNL": "L", "MDL": "L", "MKD": "ден",

	// Asia / Pacific
	"AUD": "A$", "NZD": "NZ$", "SGD": "S$", "HKD": "HK$", "TWD": "NT$", "THB": "฿",
	"VND": "₫", "PHP": "₱", "MYR": "RM", "PKR": "₨", "BDT": "৳", "LKR": "₨",
	"NPR": "₨", "AFN": "؋", "KZT": "₸", "UZS": "so'm", "MNT": "₮", "MMK": "K",
	"LAK": "₭", "KHR": "៛", "PGK": "K", "MVR": "Rf",

	// Middle East / Africa
	"AED": "د.إ", "SAR": "﷼", "QAR": "﷼", "KWD": "د.ك", "BHD": ".د.ب", "OMR": "﷼",
	"JOD": "د.ا", "ILS": "₪", "EGP": "E£", "NGN": "₦", "GHS": "₵", "KES": "KSh",
	"TZS": "TSh", "UGX": "USh", "ETB": "Br", "MAD": "د.م.", "ZMW": "ZK",

	// Crypto
	"BTC": "₿", "ETH": "Ξ", "USDT": "₮", "BNB": "BNB", "SOL": "◎", "XRP": "XRP",
	"USDC": "$", "ADA": "₳", "DOGE": "Ð", "AVAX": "AVAX", "DOT": "●", "LTC": "Ł",
}

// Symbol returns the display symbol for an ISO code, or empty.
func Symbol(code string) string {
	return symbols[code]
}
