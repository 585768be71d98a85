package services

import (
  "time"
)

// LastLog is the streak machine's view of a user's most recent logging day:
// either never logged, or logged on some UTC calendar day. Modeling the
// first-log case explicitly keeps the three transitions exhaustive instead of
// hiding one behind a nullable date.
type LastLog struct {
  logged bool
  day    time.Time
}

func NeverLogged() LastLog {
  return LastLog{}
}

func LoggedOn(day time.Time) LastLog {
  return LastLog{logged: true, day: UTCDay(day)}
}

// StreakTransition is the outcome of advancing the streak machine by one log.
// Changed reports whether the user's streak fields need to be written at all;
// logging twice on the same day leaves them untouched.
type StreakTransition struct {
  Changed        bool
  CurrentStreak  int
  LastLoggedDate time.Time
}

// UTCDay truncates t to its UTC calendar day. Day arithmetic runs on fixed
// UTC days so daylight-saving shifts cannot produce 23h or 25h "days".
func UTCDay(t time.Time) time.Time {
  u := t.UTC()
  return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}

// AdvanceStreak computes the streak transition for a log happening at "today".
// First log ever starts a streak at 1, a consecutive-day log increments, a gap
// of two or more days resets to 1 (logging today counts as day one), and a
// same-day repeat is a no-op.
func AdvanceStreak(last LastLog, today time.Time, currentStreak int) StreakTransition {
  day := UTCDay(today)
  if !last.logged {
    return StreakTransition{Changed: true, CurrentStreak: 1, LastLoggedDate: day}
  }
  diffDays := int(day.Sub(last.day).Hours() / 24)
  switch {
  case diffDays == 1:
    return StreakTransition{Changed: true, CurrentStreak: currentStreak + 1, LastLoggedDate: day}
  case diffDays >= 2:
    return StreakTransition{Changed: true, CurrentStreak: 1, LastLoggedDate: day}
  default:
    // Same day, or a clock that ran backwards: leave the streak fields alone.
    return StreakTransition{Changed: false, CurrentStreak: currentStreak, LastLoggedDate: last.day}
  }
}
