package websearch

import (
	"encoding/json"
	"fmt"
)

// flexString unmarshals fields DuckDuckGo returns as either a string
// or a number.
type flexString string

func (fs *flexString) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err == nil {
		*fs = flexString(s)
		return nil
	}

	var n json.Number
	if err := json.Unmarshal(data, &n); err == nil {
		*fs = flexString(n.String())
		return nil
	}

	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*fs = flexString(fmt.Sprintf("%v", v))
	return nil
}

// instantAnswer is the DuckDuckGo Instant Answer API response
type instantAnswer struct {
	Heading        string         `json:"Heading"`
	Abstract       string         `json:"Abstract"`
	AbstractText   string         `json:"AbstractText"`
	AbstractSource string         `json:"AbstractSource"`
	AbstractURL    string         `json:"AbstractURL"`
	Answer         string         `json:"Answer"`
	AnswerType     string         `json:"AnswerType"`
	Redirect       string         `json:"Redirect"`
	ImageWidth     flexString     `json:"ImageWidth"`
	ImageHeight    flexString     `json:"ImageHeight"`
	RelatedTopics  []relatedTopic `json:"RelatedTopics"`
}

// relatedTopic is a related result. Category groupings carry a nested
// Topics list instead of a direct link.
type relatedTopic struct {
	Text     string         `json:"Text"`
	FirstURL string         `json:"FirstURL"`
	Topics   []relatedTopic `json:"Topics"`
}

// Result is one ranked search result
type Result struct {
	Rank    int    `json:"rank"`
	Title   string `json:"title"`
	URL     string `json:"url"`
	Snippet string `json:"snippet,omitempty"`
}
