package models

// TermPair is one english/chinese entry of the term bank
type TermPair struct {
	English string `json:"english"`
	Chinese string `json:"chinese"`
}
