package models

// Page is the screen a session is currently showing.
type Page string

const (
	PageAuth           Page = "AUTH"
	PageHome           Page = "HOME"
	PageDiagnosis      Page = "DIAGNOSIS"
	PageTechSelect     Page = "TECH_SELECT"
	PageBookingConfirm Page = "BOOKING_CONFIRM"
	PageTracking       Page = "TRACKING"
	PageRating         Page = "RATING"
	PageHistory        Page = "HISTORY"
	PageAdmin          Page = "ADMIN"
	PageTechDashboard  Page = "TECH_DASHBOARD"
	PageTechJobDetails Page = "TECH_JOB_DETAILS"
	PageChat           Page = "CHAT"
)

// Valid reports whether p is a known page.
func (p Page) Valid() bool {
	switch p {
	case PageAuth, PageHome, PageDiagnosis, PageTechSelect, PageBookingConfirm,
		PageTracking, PageRating, PageHistory, PageAdmin, PageTechDashboard,
		PageTechJobDetails, PageChat:
		return true
	}
	return false
}
