package models

// Prayer is a single catalog entry. Prayers are owned by the remote Firestore
// collection; the service only ever holds read-only copies.
type Prayer struct {
	Prayer_ID        string   `json:"id" firestore:"id"`
	Title            string   `json:"title" firestore:"title"`
	Content          string   `json:"content" firestore:"content"`
	Category         string   `json:"category" firestore:"category"`
	Subcategory      string   `json:"subcategory,omitempty" firestore:"subcategory,omitempty"`
	Description      string   `json:"description,omitempty" firestore:"description,omitempty"`
	Tags             []string `json:"tags,omitempty" firestore:"tags,omitempty"`
	Image_URL        string   `json:"imageUrl,omitempty" firestore:"imageUrl,omitempty"`
	Display_Order    *int     `json:"displayOrder,omitempty" firestore:"displayOrder,omitempty"`
	Is_Suggested     bool     `json:"isSuggested,omitempty" firestore:"isSuggested,omitempty"`
	Suggestion_Order *int     `json:"suggestionOrder,omitempty" firestore:"suggestionOrder,omitempty"`
}

// PrayerCategory groups prayers. A prayer belongs to exactly one category.
type PrayerCategory struct {
	Category_ID string   `json:"id" firestore:"id"`
	Title       string   `json:"title" firestore:"title"`
	Description string   `json:"description" firestore:"description"`
	Icon        string   `json:"icon" firestore:"icon"`
	Prayers     []Prayer `json:"prayers" firestore:"-"`
}
