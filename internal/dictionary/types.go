package dictionary

// apiEntry is one entry from dictionaryapi.dev
type apiEntry struct {
	Word      string        `json:"word"`
	Phonetics []apiPhonetic `json:"phonetics"`
	Meanings  []apiMeaning  `json:"meanings"`
}

type apiPhonetic struct {
	Text  string `json:"text"`
	Audio string `json:"audio"`
}

type apiMeaning struct {
	PartOfSpeech string          `json:"partOfSpeech"`
	Definitions  []apiDefinition `json:"definitions"`
}

type apiDefinition struct {
	Definition string   `json:"definition"`
	Example    string   `json:"example"`
	Synonyms   []string `json:"synonyms"`
	Antonyms   []string `json:"antonyms"`
}

// Entry is the simplified dictionary entry returned to callers
type Entry struct {
	Word     string    `json:"word"`
	Phonetic string    `json:"phonetic,omitempty"`
	Meanings []Meaning `json:"meanings"`
}

// Meaning groups definitions under one part of speech
type Meaning struct {
	PartOfSpeech string       `json:"part_of_speech"`
	Definitions  []Definition `json:"definitions"`
}

// Definition is a single sense with an optional usage example
type Definition struct {
	Definition string `json:"definition"`
	Example    string `json:"example,omitempty"`
}
