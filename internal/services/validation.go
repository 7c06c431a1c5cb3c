package services

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/dimitrije/pickup-api/internal/models"
)

const (
	dateLayout   = "2006-01-02"
	timeLayout   = "15:04"
	maxTextRunes = 500

	defaultMaxPlayers = 10
	minMaxPlayers     = 2
)

// sanitizeText trims, strips angle brackets and caps user-supplied text.
func sanitizeText(s string) string {
	s = strings.TrimSpace(s)
	s = strings.NewReplacer("<", "", ">", "").Replace(s)
	if utf8.RuneCountInString(s) > maxTextRunes {
		s = string([]rune(s)[:maxTextRunes])
	}
	return s
}

func today(now time.Time) string {
	return now.Format(dateLayout)
}

func validateDate(date string, now time.Time) error {
	d, err := time.ParseInLocation(dateLayout, date, now.Location())
	if err != nil {
		return invalid("date", "must be formatted as YYYY-MM-DD")
	}
	if d.Format(dateLayout) < today(now) {
		return &ValidationError{Field: "date", Message: ErrPastDate.Error(), Err: ErrPastDate}
	}
	return nil
}

func validateTime(value string) error {
	if _, err := time.Parse(timeLayout, value); err != nil {
		return invalid("time", "must be formatted as HH:MM")
	}
	return nil
}

func validateSport(sport string) error {
	if !models.ValidSport(sport) {
		return invalid("sport", "must be one of "+strings.Join(models.Sports, ", "))
	}
	return nil
}

func validateMaxPlayers(n int) error {
	if n < minMaxPlayers {
		return invalid("max_players", "must be at least 2")
	}
	return nil
}

func validatePrice(p int) error {
	if p < 0 {
		return invalid("price_per_person", "must not be negative")
	}
	return nil
}
