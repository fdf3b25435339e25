package utils

import "time"

// AgeFromBirthDate derives an age in whole years from a "2006-01-02" birth
// date. Returns 0 for empty or unparseable input so callers can treat the
// age as unknown instead of failing.
func AgeFromBirthDate(birthDate string, now time.Time) int {
	if birthDate == "" {
		return 0
	}
	born, err := time.Parse("2006-01-02", birthDate)
	if err != nil {
		return 0
	}
	age := now.Year() - born.Year()
	if now.YearDay() < born.YearDay() {
		age--
	}
	if age < 0 {
		return 0
	}
	return age
}
