package validation

import "regexp"

var (
	leaguePattern    = regexp.MustCompile(`^[a-z][a-z-]{1,30}$`)
	referencePattern = regexp.MustCompile(`^[A-Za-z0-9:_.-]{0,64}$`)
	deckNamePattern  = regexp.MustCompile(`^[A-Za-zА-Яа-яЁё0-9][A-Za-zА-Яа-яЁё0-9 '_-]{0,98}[A-Za-zА-Яа-яЁё0-9]$`)
	subjectPattern   = regexp.MustCompile(`^[A-Za-z0-9|:_.-]{1,255}$`)
)

func ValidateLeague(league string) bool {
	return leaguePattern.MatchString(league)
}

func ValidateReferenceID(referenceID string) bool {
	return referencePattern.MatchString(referenceID)
}

func ValidateDeckName(name string) bool {
	return deckNamePattern.MatchString(name)
}

func ValidateSubject(subject string) bool {
	return subjectPattern.MatchString(subject)
}
