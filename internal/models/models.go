package models

import (
	"time"

	"zerowaste/internal/calendar"
)

const (
	DefaultProfileColor = "bg-green-300"
	DefaultBio          = "친환경 실천 중!"
	DefaultGroupColor   = "bg-blue-300"
)

type User struct {
	ID           int       `json:"id" db:"id"`
	Email        string    `json:"email" db:"email"`
	PasswordHash *string   `json:"-" db:"password_hash"`
	Name         string    `json:"name" db:"name"`
	ProfileColor string    `json:"profile_color" db:"profile_color"`
	Bio          string    `json:"bio" db:"bio"`
	KakaoID      *string   `json:"kakao_id,omitempty" db:"kakao_id"`
	CreatedAt    time.Time `json:"created_at" db:"created_at"`
}

// CatalogMission is a category and the sub-missions a user may pick from it.
type CatalogMission struct {
	ID          int      `json:"id" yaml:"id"`
	Category    string   `json:"category" yaml:"category"`
	Submissions []string `json:"submissions" yaml:"submissions"`
	Name        string   `json:"name,omitempty" yaml:"-"`
}

// DisplayName is the first sub-mission, or the category when there is none.
func (m CatalogMission) DisplayName() string {
	if len(m.Submissions) > 0 {
		return m.Submissions[0]
	}
	return m.Category
}

// Allows reports whether submission may be chosen. An entry without a label
// set allows any label.
func (m CatalogMission) Allows(submission string) bool {
	if len(m.Submissions) == 0 {
		return true
	}
	for _, s := range m.Submissions {
		if s == submission {
			return true
		}
	}
	return false
}

// DayMission is an explicit per-date record.
type DayMission struct {
	ID         int           `json:"id" db:"id"`
	UserID     int           `json:"user_id" db:"user_id"`
	MissionID  int           `json:"mission_id" db:"mission_id"`
	Date       calendar.Date `json:"date" db:"date"`
	SubMission string        `json:"sub_mission" db:"sub_mission"`
	Completed  bool          `json:"completed" db:"completed"`
	CreatedAt  time.Time     `json:"created_at" db:"created_at"`
}

// WeeklyRoutine is a recurring intention for one week, shown from StartDate
// until the week's Sunday.
type WeeklyRoutine struct {
	ID            int           `json:"id" db:"id"`
	UserID        int           `json:"user_id" db:"user_id"`
	MissionID     int           `json:"mission_id" db:"mission_id"`
	SubMission    string        `json:"sub_mission" db:"sub_mission"`
	WeekStartDate calendar.Date `json:"week_start_date" db:"week_start_date"`
	StartDate     calendar.Date `json:"start_date" db:"start_date"`
	CreatedAt     time.Time     `json:"created_at" db:"created_at"`
}

type GroupMission struct {
	ID        int       `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Color     string    `json:"color" db:"color"`
	CreatedBy int       `json:"created_by" db:"created_by"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type GroupMember struct {
	ID             int       `json:"id" db:"id"`
	GroupMissionID int       `json:"group_mission_id" db:"group_mission_id"`
	UserID         int       `json:"user_id" db:"user_id"`
	UserName       string    `json:"user_name" db:"user_name"`
	JoinedAt       time.Time `json:"joined_at" db:"joined_at"`
}

type GroupMissionCheck struct {
	ID             int           `json:"id" db:"id"`
	GroupMissionID int           `json:"group_mission_id" db:"group_mission_id"`
	UserID         int           `json:"user_id" db:"user_id"`
	Date           calendar.Date `json:"date" db:"date"`
	Completed      bool          `json:"completed" db:"completed"`
}

const (
	InviteStatusPending  = "pending"
	InviteStatusAccepted = "accepted"
	InviteStatusDeclined = "declined"
)

type Invite struct {
	ID             int       `json:"id" db:"id"`
	GroupMissionID int       `json:"group_mission_id" db:"group_mission_id"`
	FromUserID     int       `json:"from_user_id" db:"from_user_id"`
	ToUserID       int       `json:"to_user_id" db:"to_user_id"`
	Status         string    `json:"status" db:"status"`
	CreatedAt      time.Time `json:"created_at" db:"created_at"`
}

type Friend struct {
	ID        int       `json:"id" db:"id"`
	UserID    int       `json:"user_id" db:"user_id"`
	FriendID  int       `json:"friend_id" db:"friend_id"`
	CreatedAt time.Time `json:"created_at" db:"created_at"`
}

type PushSubscription struct {
	ID       int    `json:"id" db:"id"`
	UserID   int    `json:"user_id" db:"user_id"`
	Endpoint string `json:"endpoint" db:"endpoint"`
	P256dh   string `json:"p256dh" db:"p256dh"`
	Auth     string `json:"auth" db:"auth"`
}

// Requests

type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
	Remember bool   `json:"remember,omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Remember bool   `json:"remember,omitempty"`
}

type AuthResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

type UpdateUserRequest struct {
	Name         *string `json:"name"`
	ProfileColor *string `json:"profile_color"`
	Bio          *string `json:"bio"`
}

type AddMissionRequest struct {
	MissionID   int    `json:"mission_id"`
	Submission  string `json:"submission"`
	ApplyToWeek bool   `json:"apply_to_week"`
}

type ToggleCompleteRequest struct {
	Completed bool `json:"completed"`
}

type CreateRoutineRequest struct {
	MissionID     int            `json:"mission_id"`
	Submission    string         `json:"submission"`
	Date          calendar.Date  `json:"date"`
	WeekStartDate *calendar.Date `json:"week_start_date,omitempty"`
}

type CreateGroupRequest struct {
	Name  string `json:"name"`
	Color string `json:"color"`
}

type GroupCheckRequest struct {
	Date      calendar.Date `json:"date"`
	Completed bool          `json:"completed"`
}

type InviteRequest struct {
	FriendIDs []int `json:"friend_ids"`
}

type AddFriendRequest struct {
	FriendID int `json:"friend_id"`
}
