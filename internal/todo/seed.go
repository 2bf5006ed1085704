package todo

import "time"

// DefaultCategories returns the category set used on first start and when the
// persisted categories cannot be read.
func DefaultCategories() []Category {
	return []Category{
		{ID: "work", Name: "Work", Color: "#3498DB", Icon: "briefcase"},
		{ID: "personal", Name: "Personal", Color: "#2ECC71", Icon: "user"},
		{ID: "shopping", Name: "Shopping", Color: "#9B59B6", Icon: "shopping-cart"},
		{ID: "health", Name: "Health", Color: "#E74C3C", Icon: "heart"},
	}
}

// SampleTasks returns the seed task list shown on first start.
func SampleTasks() []Task {
	return []Task{
		{
			ID:          "sample-1",
			Title:       "Finish hackathon submission",
			Description: "Complete the to-do app with all features and deploy it",
			Priority:    PriorityHigh,
			Category:    "work",
			DueDate:     datePtr(2025, time.January, 20),
			CreatedAt:   ts("2025-01-15T10:00:00Z"),
		},
		{
			ID:          "sample-2",
			Title:       "Buy groceries for the week",
			Description: "Fresh vegetables, fruits and pantry essentials",
			Priority:    PriorityMedium,
			Category:    "shopping",
			DueDate:     datePtr(2025, time.January, 18),
			CreatedAt:   ts("2025-01-15T09:30:00Z"),
		},
		{
			ID:          "sample-3",
			Title:       "Morning yoga session",
			Description: "Start the day with 30 minutes of yoga and meditation",
			Completed:   true,
			Priority:    PriorityLow,
			Category:    "health",
			CreatedAt:   ts("2025-01-15T06:00:00Z"),
			CompletedAt: tsPtr("2025-01-15T07:00:00Z"),
		},
		{
			ID:          "sample-4",
			Title:       "Plan weekend adventure",
			Description: "Research hiking trails and plan an outdoor trip with friends",
			Priority:    PriorityLow,
			Category:    "personal",
			DueDate:     datePtr(2025, time.January, 19),
			CreatedAt:   ts("2025-01-14T20:00:00Z"),
		},
		{
			ID:          "sample-5",
			Title:       "Team meeting preparation",
			Description: "Prepare slides and agenda for the quarterly review",
			Priority:    PriorityHigh,
			Category:    "work",
			DueDate:     datePtr(2025, time.January, 17),
			CreatedAt:   ts("2025-01-14T15:00:00Z"),
		},
		{
			ID:          "sample-6",
			Title:       "Call mom and dad",
			Description: "Catch up with parents and share updates",
			Completed:   true,
			Priority:    PriorityMedium,
			Category:    "personal",
			CreatedAt:   ts("2025-01-13T18:00:00Z"),
			CompletedAt: tsPtr("2025-01-14T19:30:00Z"),
		},
		{
			ID:          "sample-7",
			Title:       "Book dentist appointment",
			Description: "Schedule routine cleaning and checkup for next month",
			Priority:    PriorityMedium,
			Category:    "health",
			DueDate:     datePtr(2025, time.January, 25),
			CreatedAt:   ts("2025-01-13T12:00:00Z"),
		},
		{
			ID:          "sample-8",
			Title:       "Order birthday gift for Sarah",
			Description: "Find a gift before the party next week",
			Priority:    PriorityHigh,
			Category:    "shopping",
			DueDate:     datePtr(2025, time.January, 22),
			CreatedAt:   ts("2025-01-12T16:00:00Z"),
		},
		{
			ID:          "sample-9",
			Title:       "Learn new recipe",
			Description: "Try making homemade pasta",
			Priority:    PriorityLow,
			Category:    "personal",
			CreatedAt:   ts("2025-01-12T14:00:00Z"),
		},
		{
			ID:          "sample-10",
			Title:       "Update portfolio website",
			Description: "Add recent projects and refresh the design",
			Completed:   true,
			Priority:    PriorityMedium,
			Category:    "work",
			CreatedAt:   ts("2025-01-10T11:00:00Z"),
			CompletedAt: tsPtr("2025-01-11T16:45:00Z"),
		},
	}
}

func datePtr(y int, m time.Month, d int) *Date {
	return &Date{Year: y, Month: m, Day: d}
}

func ts(s string) time.Time {
	t, _ := time.Parse(time.RFC3339, s)
	return t
}

func tsPtr(s string) *time.Time {
	t := ts(s)
	return &t
}
