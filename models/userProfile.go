package models

import "time"

type UserProfile struct {
	User_ID         string          `json:"id" firestore:"id"`
	Display_Name    string          `json:"displayName" firestore:"displayName"`
	Email           string          `json:"email" firestore:"email"`
	First_Name      string          `json:"firstName,omitempty" firestore:"firstName,omitempty"`
	Last_Name       string          `json:"lastName,omitempty" firestore:"lastName,omitempty"`
	Student_Number  string          `json:"studentNumber,omitempty" firestore:"studentNumber,omitempty"`
	Role            string          `json:"role" firestore:"role"`
	Bookmarks       []string        `json:"bookmarks" firestore:"bookmarks"`
	Preferences     UserPreferences `json:"preferences" firestore:"preferences"`
	Push_Token      string          `json:"pushToken,omitempty" firestore:"pushToken,omitempty"`
	Datetime_Create time.Time       `json:"datetimeCreate" firestore:"createdAt"`
	Datetime_Update time.Time       `json:"datetimeUpdate" firestore:"updatedAt"`
}

// UserPreferences is the nested reminder block on the user document.
type UserPreferences struct {
	Morning_Reminder bool   `json:"morningReminder" firestore:"morningReminder"`
	Evening_Reminder bool   `json:"eveningReminder" firestore:"eveningReminder"`
	Reminder_Time    string `json:"reminderTime" firestore:"reminderTime"` // "HH:MM", 24h
}

type UserPreferencesUpdate struct {
	Morning_Reminder *bool   `json:"morningReminder"`
	Evening_Reminder *bool   `json:"eveningReminder"`
	Reminder_Time    *string `json:"reminderTime"`
}
