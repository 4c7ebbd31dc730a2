package scheduling

// Booking session monetization kinds.
const (
	TypeFree       = "FREE"
	TypePaid       = "PAID"
	TypeCommitment = "COMMITMENT"
)

// Booking lifecycle statuses.
const (
	StatusPending   = "pending"
	StatusConfirmed = "confirmed"
	StatusCompleted = "completed"
	StatusCancelled = "cancelled"
	StatusRefunded  = "refunded"
)

// SessionDurations are the allowed session lengths in minutes.
var SessionDurations = []int{15, 30, 45}

// TimeBreaks are the allowed inter-session breaks in minutes.
var TimeBreaks = []int{5, 10, 15, 20, 25, 30, 35, 40, 45, 50, 55, 60}

// TokenSymbols are the payment tokens accepted for paid sessions.
var TokenSymbols = []string{"USDC", "USDT", "mockUSDC", "mockUSDT"}

var dayNames = [7]string{
	"Sunday",
	"Monday",
	"Tuesday",
	"Wednesday",
	"Thursday",
	"Friday",
	"Saturday",
}

// DayName returns the English weekday label for a 0=Sunday..6=Saturday index.
func DayName(day int) string {
	if day < 0 || day > 6 {
		return "Unknown"
	}
	return dayNames[day]
}

func ValidType(t string) bool {
	return t == TypeFree || t == TypePaid || t == TypeCommitment
}

func ValidDuration(d int) bool {
	return containsInt(SessionDurations, d)
}

func ValidTimeBreak(b int) bool {
	return containsInt(TimeBreaks, b)
}

func ValidToken(symbol string) bool {
	for _, s := range TokenSymbols {
		if s == symbol {
			return true
		}
	}
	return false
}

func containsInt(set []int, v int) bool {
	for _, s := range set {
		if s == v {
			return true
		}
	}
	return false
}
