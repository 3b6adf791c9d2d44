package habit

// TrailingStreak counts the contiguous run of checked days at the newest end
// of a window (oldest first), stopping at the first gap. It only sees the
// window, so it is bounded by len(window) and is not the all-time streak the
// profile tracks.
func TrailingStreak(window []bool) int {
	streak := 0
	for i := len(window) - 1; i >= 0; i-- {
		if !window[i] {
			break
		}
		streak++
	}
	return streak
}
