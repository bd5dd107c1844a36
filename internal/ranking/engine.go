// Package ranking scores users and groups from their completion history.
// The scoring functions are pure; Service loads the history in bulk.
package ranking

import (
	"sort"

	"zerowaste/internal/calendar"
	"zerowaste/internal/models"
	"zerowaste/internal/store"
)

const (
	// DailyCap is the most personal points one date can earn.
	DailyCap = 3

	GroupPoints     = 2
	FullGroupPoints = 4
	FullGroupSize   = 3
)

// History is everything the scores are computed from.
type History struct {
	Users  []models.User
	Groups []models.GroupMission
	// Days holds completed record counts per (user, date).
	Days    []store.CompletedDay
	Members []models.GroupMember
	// Checks holds completed group checks only.
	Checks []models.GroupMissionCheck
}

type Score struct {
	Personal int
	Group    int
	Streak   int
}

func (s Score) Total() int { return s.Personal + s.Group }

// Scores computes every user's score with streaks ending at today.
func Scores(h History, today calendar.Date) map[int]Score {
	out := make(map[int]Score, len(h.Users))
	active := map[int]map[string]bool{}
	for _, d := range h.Days {
		if d.Completed <= 0 {
			continue
		}
		s := out[d.UserID]
		s.Personal += min(d.Completed, DailyCap)
		out[d.UserID] = s
		if active[d.UserID] == nil {
			active[d.UserID] = map[string]bool{}
		}
		active[d.UserID][d.Date.String()] = true
	}
	for uid, dates := range active {
		s := out[uid]
		s.Streak = streak(dates, today)
		out[uid] = s
	}
	for uid, pts := range groupPoints(h.Members, h.Checks) {
		s := out[uid]
		s.Group = pts
		out[uid] = s
	}
	return out
}

// streak counts consecutive active days walking back from today.
func streak(active map[string]bool, today calendar.Date) int {
	n := 0
	for active[today.AddDays(-n).String()] {
		n++
	}
	return n
}

type groupDay struct {
	groupID int
	date    string
}

// groupPoints returns each member's best single (group, date) contribution.
// A full group where every member checked earns FullGroupPoints; any other
// completed check earns GroupPoints.
func groupPoints(members []models.GroupMember, checks []models.GroupMissionCheck) map[int]int {
	size := map[int]int{}
	isMember := map[[2]int]bool{}
	for _, m := range members {
		size[m.GroupMissionID]++
		isMember[[2]int{m.GroupMissionID, m.UserID}] = true
	}

	done := map[groupDay][]int{}
	for _, c := range checks {
		if !c.Completed {
			continue
		}
		k := groupDay{c.GroupMissionID, c.Date.String()}
		done[k] = append(done[k], c.UserID)
	}

	out := map[int]int{}
	for k, users := range done {
		pts := GroupPoints
		if size[k.groupID] == FullGroupSize && len(users) == FullGroupSize {
			pts = FullGroupPoints
		}
		for _, uid := range users {
			if !isMember[[2]int{k.groupID, uid}] {
				continue
			}
			if pts > out[uid] {
				out[uid] = pts
			}
		}
	}
	return out
}

type PersonalRank struct {
	Rank         int    `json:"rank"`
	ID           int    `json:"id"`
	Name         string `json:"name"`
	Score        int    `json:"score"`
	Streak       int    `json:"streak"`
	ProfileColor string `json:"profile_color"`
}

// Personal ranks every user by total score. Ties keep the order of h.Users.
func Personal(h History, scores map[int]Score) []PersonalRank {
	out := make([]PersonalRank, 0, len(h.Users))
	for _, u := range h.Users {
		s := scores[u.ID]
		out = append(out, PersonalRank{
			ID:           u.ID,
			Name:         u.Name,
			Score:        s.Total(),
			Streak:       s.Streak,
			ProfileColor: u.ProfileColor,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Score > out[j].Score })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

type GroupRank struct {
	Rank        int    `json:"rank"`
	ID          int    `json:"id"`
	Name        string `json:"name"`
	TotalScore  int    `json:"total_score"`
	MemberCount int    `json:"member_count"`
	Color       string `json:"color"`
}

// Groups ranks groups by the summed total score of their current members.
func Groups(h History, scores map[int]Score) []GroupRank {
	total := map[int]int{}
	count := map[int]int{}
	for _, m := range h.Members {
		total[m.GroupMissionID] += scores[m.UserID].Total()
		count[m.GroupMissionID]++
	}

	out := make([]GroupRank, 0, len(h.Groups))
	for _, g := range h.Groups {
		out = append(out, GroupRank{
			ID:          g.ID,
			Name:        g.Name,
			TotalScore:  total[g.ID],
			MemberCount: count[g.ID],
			Color:       g.Color,
		})
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].TotalScore > out[j].TotalScore })
	for i := range out {
		out[i].Rank = i + 1
	}
	return out
}

type MyGroupRank struct {
	GroupID    int `json:"group_id"`
	Rank       int `json:"rank"`
	MemberRank int `json:"member_rank"`
}

type MyRank struct {
	PersonalRank int           `json:"personal_rank"`
	Score        int           `json:"score"`
	Streak       int           `json:"streak"`
	GroupRanks   []MyGroupRank `json:"group_ranks"`
}

// Mine places userID in the personal ranking and, for each group it belongs
// to, gives the group's position and userID's position among its members.
// A user missing from h has rank 0.
func Mine(h History, today calendar.Date, userID int) MyRank {
	scores := Scores(h, today)
	me := MyRank{GroupRanks: []MyGroupRank{}}
	for _, r := range Personal(h, scores) {
		if r.ID == userID {
			me.PersonalRank, me.Score, me.Streak = r.Rank, r.Score, r.Streak
			break
		}
	}

	groupRank := map[int]int{}
	for _, g := range Groups(h, scores) {
		groupRank[g.ID] = g.Rank
	}

	roster := map[int][]int{}
	for _, m := range h.Members {
		roster[m.GroupMissionID] = append(roster[m.GroupMissionID], m.UserID)
	}
	for _, m := range h.Members {
		if m.UserID != userID {
			continue
		}
		ranked := append([]int(nil), roster[m.GroupMissionID]...)
		sort.SliceStable(ranked, func(i, j int) bool {
			return scores[ranked[i]].Total() > scores[ranked[j]].Total()
		})
		me.GroupRanks = append(me.GroupRanks, MyGroupRank{
			GroupID:    m.GroupMissionID,
			Rank:       groupRank[m.GroupMissionID],
			MemberRank: indexOf(ranked, userID) + 1,
		})
	}
	return me
}

func indexOf(ids []int, id int) int {
	for i, v := range ids {
		if v == id {
			return i
		}
	}
	return -1
}
