package viewmodel

import (
	"github.com/Veraticus/procure/internal/app"
	"github.com/Veraticus/procure/internal/model"
)

// AppState represents the overall application state.
type AppState int

const (
	// StateLoading indicates the catalog is being fetched.
	StateLoading AppState = iota
	// StateBrowsing indicates the user is working in a screen.
	StateBrowsing
	// StateSubmitting indicates a cart submission is in flight.
	StateSubmitting
	// StateError indicates the last load failed.
	StateError
)

// KeyBinding represents a keyboard shortcut.
type KeyBinding struct {
	Key         string
	Description string
	IsActive    bool
}

// Dimensions represents size constraints.
type Dimensions struct {
	Width  int
	Height int
}

// NavEntry is one entry of the navigation bar.
type NavEntry struct {
	Route    app.Route
	Title    string
	Key      string
	IsActive bool
}

// HomeView is the signed-in landing screen.
type HomeView struct {
	Welcome string
	Nav     []NavEntry
}

// NewHomeView builds the landing screen for session with active highlighted.
func NewHomeView(session model.Session, active app.Route, keys map[app.Route]string) HomeView {
	routes := app.PrivateRoutes()
	nav := make([]NavEntry, 0, len(routes))
	for _, route := range routes {
		nav = append(nav, NavEntry{
			Route:    route,
			Title:    route.Title(),
			Key:      keys[route],
			IsActive: route == active,
		})
	}
	return HomeView{
		Welcome: app.WelcomeMessage(session),
		Nav:     nav,
	}
}

// SubmissionView is one row of the order history.
type SubmissionView struct {
	ID       string
	When     string
	Owner    string
	Status   string
	Error    string
	Lines    int
	Quantity int
	Failed   bool
}

// NewSubmissionViews converts stored submissions for display, newest first as given.
func NewSubmissionViews(submissions []model.Submission) []SubmissionView {
	out := make([]SubmissionView, len(submissions))
	for i, s := range submissions {
		out[i] = SubmissionView{
			ID:       ShortID(s.ID),
			When:     FormatDateTime(s.SubmittedAt),
			Owner:    s.Owner,
			Status:   string(s.Status),
			Error:    SanitizeForDisplay(s.Error),
			Lines:    len(s.Lines),
			Quantity: s.TotalQuantity(),
			Failed:   s.Status == model.SubmissionFailed,
		}
	}
	return out
}

// IsReady returns true if the application is ready for user interaction.
func (s AppState) IsReady() bool {
	return s != StateLoading && s != StateError
}
