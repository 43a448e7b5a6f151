package weather

// geocodeResponse is the Open-Meteo geocoding API response
type geocodeResponse struct {
	Results []geocodeResult `json:"results"`
}

type geocodeResult struct {
	Name      string  `json:"name"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Country   string  `json:"country"`
	Timezone  string  `json:"timezone"`
}

// forecastResponse is the Open-Meteo forecast API response
type forecastResponse struct {
	Current currentWeather `json:"current"`
}

type currentWeather struct {
	Time          string  `json:"time"`
	Precipitation float64 `json:"precipitation"`
	WeatherCode   int     `json:"weather_code"`
	Temperature   float64 `json:"temperature_2m"`
}

// Location is a resolved place
type Location struct {
	Name      string  `json:"name"`
	Country   string  `json:"country"`
	Latitude  float64 `json:"latitude"`
	Longitude float64 `json:"longitude"`
	Timezone  string  `json:"timezone,omitempty"`
}

// Report is the assembled weather report for a city
type Report struct {
	Location      Location `json:"location"`
	LocalTime     string   `json:"local_time"`
	Condition     string   `json:"condition"`
	Raining       bool     `json:"raining"`
	Precipitation float64  `json:"precipitation_mm"`
	Temperature   float64  `json:"temperature_c"`
}

// describeWeatherCode converts a WMO weather code to text and reports
// whether the code implies precipitation.
func describeWeatherCode(code int) (string, bool) {
	switch code {
	case 0:
		return "Clear sky", false
	case 1, 2, 3:
		return "Partly cloudy", false
	case 45, 48:
		return "Foggy", false
	case 51, 53, 55:
		return "Drizzle", true
	case 56, 57:
		return "Freezing drizzle", true
	case 61, 63, 65:
		return "Rain", true
	case 66, 67:
		return "Freezing rain", true
	case 71, 73, 75:
		return "Snow fall", true
	case 77:
		return "Snow grains", true
	case 80, 81, 82:
		return "Rain showers", true
	case 85, 86:
		return "Snow showers", true
	case 95:
		return "Thunderstorm", true
	case 96, 99:
		return "Thunderstorm with hail", true
	default:
		return "Unknown conditions", false
	}
}
