package almanac

// TokenType classifies a whitespace-delimited word from a normalized query.
type TokenType int

const (
	TokenNoise TokenType = iota
	TokenYear
	TokenNumericMonth
	TokenNamedMonth
	TokenConnector
)

func (t TokenType) String() string {
	switch t {
	case TokenYear:
		return "year"
	case TokenNumericMonth:
		return "numeric_month"
	case TokenNamedMonth:
		return "named_month"
	case TokenConnector:
		return "connector"
	default:
		return "noise"
	}
}

// Token is one classified word. Val carries the month number (1-12) for
// month tokens and the year for year tokens; it is zero for noise and
// connectors.
type Token struct {
	Type TokenType
	Val  int
}

// MonthYear is a resolved calendar target.
type MonthYear struct {
	Month int `json:"month"`
	Year  int `json:"year"`
}

// Cell is one slot in a calendar grid. Adjacent cells belong to the
// previous or next month and only pad the display.
type Cell struct {
	Day      int  `json:"day"`
	Adjacent bool `json:"adjacent,omitempty"`
}

// GridRows and GridCols fix the display grid shape.
const (
	GridRows = 6
	GridCols = 7
)

// Grid is the 6x7 display grid for one month, week start Sunday.
type Grid [GridRows][GridCols]Cell
