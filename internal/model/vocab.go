package model

// VocabularyWord is a word/translation pair from the vocabulary bank.
// One is drawn at random per challenge; the player must supply the
// translation before their move is accepted.
type VocabularyWord struct {
	Word        string `json:"word"`
	Translation string `json:"translation"`
}
