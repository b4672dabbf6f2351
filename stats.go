package truegate

import (
	"sort"
	"time"
)

// LoginTrend is one day's login count for the admin chart.
type LoginTrend struct {
	Date   string `json:"date"`
	Logins int    `json:"logins"`
}

// RoleCount is one slice of the admin role-distribution chart.
type RoleCount struct {
	Role  UserRole `json:"role"`
	Count int      `json:"count"`
}

// PortalStats is the aggregate the admin dashboard renders.
type PortalStats struct {
	TotalUsers   int          `json:"totalUsers"`
	ActiveUsers  int          `json:"activeUsers"`
	TotalLogins  int          `json:"totalLogins"`
	FailedLogins int          `json:"failedLogins"`
	LockedUsers  int          `json:"lockedUsers"`
	LoginTrends  []LoginTrend `json:"loginTrends"`
	UserRoles    []RoleCount  `json:"userRoles"`
}

// trendWindowDays is how far back the login trend chart reaches.
const trendWindowDays = 7

// AggregateStats summarizes a user list for the admin dashboard. Active
// means verified and not locked; failed logins sum the per-account
// attempt counters; the trend buckets last-login dates over the past week.
func AggregateStats(users []User, now time.Time) PortalStats {
	stats := PortalStats{TotalUsers: len(users)}

	roles := map[UserRole]int{}
	trend := map[string]int{}
	windowStart := now.AddDate(0, 0, -(trendWindowDays - 1)).Truncate(24 * time.Hour)

	for _, u := range users {
		if u.Verified && !u.Locked {
			stats.ActiveUsers++
		}
		if u.Locked {
			stats.LockedUsers++
		}
		stats.FailedLogins += u.LoginAttempts

		role := u.Role
		if !IsValidRole(role) {
			role = RoleUser
		}
		roles[role]++

		if !u.LastLogin.IsZero() {
			stats.TotalLogins++
			if !u.LastLogin.Before(windowStart) {
				trend[u.LastLogin.Format("2006-01-02")]++
			}
		}
	}

	for _, role := range AllRoles() {
		if count, ok := roles[role]; ok {
			stats.UserRoles = append(stats.UserRoles, RoleCount{Role: role, Count: count})
		}
	}

	for day := range trend {
		stats.LoginTrends = append(stats.LoginTrends, LoginTrend{Date: day, Logins: trend[day]})
	}
	sort.Slice(stats.LoginTrends, func(i, j int) bool {
		return stats.LoginTrends[i].Date < stats.LoginTrends[j].Date
	})

	return stats
}
