package models

type VerseOfTheDay struct {
	Verse_ID  string `json:"id" firestore:"id"`
	Verse     string `json:"verse" firestore:"verse"`
	Reference string `json:"reference" firestore:"reference"`
	Date      string `json:"date" firestore:"date"` // YYYY-MM-DD
}
