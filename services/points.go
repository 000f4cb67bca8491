package services

// PointsConfig is the reward schedule for the referral points ledger. All
// awards are additive; there is no spending path.
type PointsConfig struct {
	ReferralSignup    int
	DailyEarning      int
	Streak7Days       int
	Streak30Days      int
	Streak100Days     int
	MonthlyVolume100  int
	MonthlyVolume500  int
	MonthlyVolume1000 int
}

// DefaultPointsConfig returns the stock award schedule.
func DefaultPointsConfig() PointsConfig {
	return PointsConfig{
		ReferralSignup:    25,
		DailyEarning:      1,
		Streak7Days:       10,
		Streak30Days:      50,
		Streak100Days:     200,
		MonthlyVolume100:  10,
		MonthlyVolume500:  30,
		MonthlyVolume1000: 75,
	}
}

// StreakMilestoneAward returns the bonus for landing exactly on a streak
// milestone, 0 otherwise. Exact match keeps the award single-shot: the streak
// only passes each value once per run.
func (c PointsConfig) StreakMilestoneAward(streak int) int {
	switch streak {
	case 7:
		return c.Streak7Days
	case 30:
		return c.Streak30Days
	case 100:
		return c.Streak100Days
	}
	return 0
}

// MonthlyVolumeAward returns the bonus for calendar-month volume thresholds
// crossed by moving from prevTotal to newTotal. Crossing detection makes the
// award idempotent per month and threshold.
func (c PointsConfig) MonthlyVolumeAward(prevTotal, newTotal float64) int {
	award := 0
	thresholds := []struct {
		volume float64
		points int
	}{
		{100, c.MonthlyVolume100},
		{500, c.MonthlyVolume500},
		{1000, c.MonthlyVolume1000},
	}
	for _, t := range thresholds {
		if prevTotal < t.volume && newTotal >= t.volume {
			award += t.points
		}
	}
	return award
}
