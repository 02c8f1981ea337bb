package services

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"github.com/tidwall/gjson"

	"github.com/julianstephens/habithaven/internal/constants"
	"github.com/julianstephens/habithaven/internal/models"
	"github.com/julianstephens/habithaven/internal/utils"
)

// Backend field names vary between endpoints and releases. Each DTO below
// lists every accepted spelling as its own pointer field; toModel applies a
// fixed fallback chain where the first present field wins.

// flexID accepts a string, a number, or a populated object carrying id/_id.
type flexID string

func (f *flexID) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	switch {
	case res.IsObject():
		*f = flexID(objectID(res))
	case res.Type == gjson.Number:
		*f = flexID(res.Raw)
	default:
		*f = flexID(res.String())
	}
	return nil
}

// flexRef is a reference that may arrive as a bare id or as the populated object.
type flexRef struct {
	ID     string
	Object json.RawMessage
}

func (r *flexRef) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	if res.IsObject() {
		r.Object = append(json.RawMessage(nil), b...)
		r.ID = objectID(res)
		return nil
	}
	if res.Type == gjson.Number {
		r.ID = res.Raw
		return nil
	}
	r.ID = res.String()
	return nil
}

// flexInt accepts numbers and numeric strings; anything else is 0.
type flexInt int

func (f *flexInt) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	switch res.Type {
	case gjson.Number:
		*f = flexInt(res.Int())
	case gjson.String:
		n, err := strconv.Atoi(strings.TrimSpace(res.String()))
		if err == nil {
			*f = flexInt(n)
		}
	}
	return nil
}

// flexBool accepts booleans, "true"/"false" strings and 0/1.
type flexBool bool

func (f *flexBool) UnmarshalJSON(b []byte) error {
	res := gjson.ParseBytes(b)
	switch res.Type {
	case gjson.True:
		*f = true
	case gjson.False:
		*f = false
	case gjson.Number:
		*f = res.Int() != 0
	case gjson.String:
		v, err := strconv.ParseBool(strings.TrimSpace(res.String()))
		*f = flexBool(err == nil && v)
	}
	return nil
}

// flexStrings accepts an array of strings or of objects carrying a name/title.
type flexStrings []string

func (f *flexStrings) UnmarshalJSON(b []byte) error {
	out := []string{}
	gjson.ParseBytes(b).ForEach(func(_, v gjson.Result) bool {
		switch {
		case v.Type == gjson.String:
			out = append(out, v.String())
		case v.IsObject():
			for _, key := range []string{"name", "title"} {
				if s := v.Get(key); s.Type == gjson.String {
					out = append(out, s.String())
					break
				}
			}
		}
		return true
	})
	*f = out
	return nil
}

func objectID(res gjson.Result) string {
	for _, key := range []string{"id", "_id"} {
		if v := res.Get(key); v.Exists() {
			if v.Type == gjson.Number {
				return v.Raw
			}
			return v.String()
		}
	}
	return ""
}

// first returns the first non-nil value.
func first[T any](vals ...*T) (T, bool) {
	for _, v := range vals {
		if v != nil {
			return *v, true
		}
	}
	var zero T
	return zero, false
}

// firstOr returns the first non-nil value or def.
func firstOr[T any](def T, vals ...*T) T {
	if v, ok := first(vals...); ok {
		return v
	}
	return def
}

// timestampOr parses the first present value, falling back to the zero time.
func timestampOr(vals ...*string) time.Time {
	if s, ok := first(vals...); ok {
		if t := utils.ParseTimestamp(s); t != nil {
			return *t
		}
	}
	return time.Time{}
}

type userDTO struct {
	ID            *flexID      `json:"id"`
	MongoID       *flexID      `json:"_id"`
	FullName      *string      `json:"fullName"`
	FullNameSnake *string      `json:"full_name"`
	Name          *string      `json:"name"`
	Username      *string      `json:"username"`
	Email         *string      `json:"email"`
	Level         *flexInt     `json:"level"`
	XP            *flexInt     `json:"xp"`
	StreakCount   *flexInt     `json:"streakCount"`
	StreakSnake   *flexInt     `json:"streak_count"`
	Streak        *flexInt     `json:"streak"`
	Badges        *flexStrings `json:"badges"`
	DailyScore    *flexInt     `json:"dailyScore"`
	DailyScoreSn  *flexInt     `json:"daily_score"`
}

func (d userDTO) toModel() models.User {
	return models.User{
		ID:          string(firstOr("", d.ID, d.MongoID)),
		FullName:    firstOr("", d.FullName, d.FullNameSnake, d.Name),
		Username:    firstOr("", d.Username),
		Email:       firstOr("", d.Email),
		Level:       int(firstOr(0, d.Level)),
		XP:          int(firstOr(0, d.XP)),
		StreakCount: int(firstOr(0, d.StreakCount, d.StreakSnake, d.Streak)),
		Badges:      []string(firstOr(flexStrings{}, d.Badges)),
		DailyScore:  int(firstOr(0, d.DailyScore, d.DailyScoreSn)),
	}
}

type loginDTO struct {
	AccessToken      *string         `json:"accessToken"`
	Token            *string         `json:"token"`
	AccessTokenSnake *string         `json:"access_token"`
	User             json.RawMessage `json:"user"`
}

func (d loginDTO) token() string {
	return firstOr("", d.AccessToken, d.Token, d.AccessTokenSnake)
}

type taskDTO struct {
	ID               *flexID   `json:"id"`
	MongoID          *flexID   `json:"_id"`
	Title            *string   `json:"title"`
	Description      *string   `json:"description"`
	Date             *string   `json:"date"`
	IsCompleted      *flexBool `json:"isCompleted"`
	Completed        *flexBool `json:"completed"`
	IsCompletedSnake *flexBool `json:"is_completed"`
	CreatedAt        *string   `json:"createdAt"`
	CreatedAtSnake   *string   `json:"created_at"`
	UpdatedAt        *string   `json:"updatedAt"`
	UpdatedAtSnake   *string   `json:"updated_at"`
}

func (d taskDTO) toModel() models.Task {
	return models.Task{
		ID:          string(firstOr("", d.ID, d.MongoID)),
		Title:       firstOr("", d.Title),
		Description: firstOr("", d.Description),
		Date:        utils.NormalizeDate(firstOr("", d.Date)),
		IsCompleted: bool(firstOr(false, d.IsCompleted, d.Completed, d.IsCompletedSnake)),
		CreatedAt:   timestampOr(d.CreatedAt, d.CreatedAtSnake),
		UpdatedAt:   timestampOr(d.UpdatedAt, d.UpdatedAtSnake),
	}
}

type prayerDTO struct {
	ID               *flexID   `json:"id"`
	MongoID          *flexID   `json:"_id"`
	PrayerName       *string   `json:"prayerName"`
	Name             *string   `json:"name"`
	PrayerNameSnake  *string   `json:"prayer_name"`
	Type             *string   `json:"type"`
	IsCompleted      *flexBool `json:"isCompleted"`
	Completed        *flexBool `json:"completed"`
	IsCompletedSnake *flexBool `json:"is_completed"`
	CompletedAt      *string   `json:"completedAt"`
	CompletedAtSnake *string   `json:"completed_at"`
	Date             *string   `json:"date"`
	PrayerDate       *string   `json:"prayer_date"`
}

func (d prayerDTO) toModel(today string) models.Prayer {
	p := models.Prayer{
		ID:          string(firstOr("", d.ID, d.MongoID)),
		Name:        firstOr("", d.PrayerName, d.Name, d.PrayerNameSnake, d.Type),
		IsCompleted: bool(firstOr(false, d.IsCompleted, d.Completed, d.IsCompletedSnake)),
		Date:        today,
	}
	if s, ok := first(d.CompletedAt, d.CompletedAtSnake); ok {
		p.CompletedAt = utils.ParseTimestamp(s)
	}
	if s, ok := first(d.Date, d.PrayerDate); ok && strings.TrimSpace(s) != "" {
		p.Date = utils.NormalizeDate(s)
	}
	return p
}

type challengeDTO struct {
	ID             *flexID   `json:"id"`
	MongoID        *flexID   `json:"_id"`
	Title          *string   `json:"title"`
	Description    *string   `json:"description"`
	Goal           *string   `json:"goal"`
	TotalDays      *flexInt  `json:"totalDays"`
	TotalDaysSnake *flexInt  `json:"total_days"`
	Duration       *flexInt  `json:"duration"`
	Status         *string   `json:"status"`
	IsGroup        *flexBool `json:"isGroup"`
	IsGroupSnake   *flexBool `json:"is_group"`
	GroupID        *flexID   `json:"groupId"`
	GroupIDSnake   *flexID   `json:"group_id"`
	Group          *flexID   `json:"group"`
}

func (d challengeDTO) toModel() models.Challenge {
	c := models.Challenge{
		ID:          string(firstOr("", d.ID, d.MongoID)),
		Title:       firstOr("", d.Title),
		Description: firstOr("", d.Description),
		Goal:        firstOr("", d.Goal),
		TotalDays:   int(firstOr(0, d.TotalDays, d.TotalDaysSnake, d.Duration)),
		Status:      constants.ChallengeActive,
		IsGroup:     bool(firstOr(false, d.IsGroup, d.IsGroupSnake)),
		GroupID:     string(firstOr("", d.GroupID, d.GroupIDSnake, d.Group)),
	}
	if s, ok := first(d.Status); ok && strings.EqualFold(s, string(constants.ChallengeExpired)) {
		c.Status = constants.ChallengeExpired
	}
	if c.GroupID != "" {
		c.IsGroup = true
	}
	return c
}

type participationDTO struct {
	ChallengeID     *flexRef  `json:"challengeId"`
	Challenge       *flexRef  `json:"challenge"`
	Progress        *flexInt  `json:"progress"`
	CurrentDay      *flexInt  `json:"currentDay"`
	CurrentDaySnake *flexInt  `json:"current_day"`
	Completed       *flexBool `json:"completed"`
	IsCompleted     *flexBool `json:"isCompleted"`
	JoinedAt        *string   `json:"joinedAt"`
	JoinedAtSnake   *string   `json:"joined_at"`
	CreatedAt       *string   `json:"createdAt"`
}

func (d participationDTO) toModel() models.ChallengeParticipation {
	p := models.ChallengeParticipation{
		Progress:   int(firstOr(0, d.Progress)),
		CurrentDay: int(firstOr(0, d.CurrentDay, d.CurrentDaySnake)),
		Completed:  bool(firstOr(false, d.Completed, d.IsCompleted)),
	}
	if ref, ok := first(d.ChallengeID, d.Challenge); ok {
		if ref.Object != nil {
			var cd challengeDTO
			if err := json.Unmarshal(ref.Object, &cd); err == nil {
				p.Challenge = cd.toModel()
			}
		}
		if p.Challenge.ID == "" {
			p.Challenge.ID = ref.ID
		}
	}
	if s, ok := first(d.JoinedAt, d.JoinedAtSnake, d.CreatedAt); ok {
		p.JoinedAt = utils.ParseTimestamp(s)
	}
	return p
}

type groupDTO struct {
	ID               *flexID            `json:"id"`
	MongoID          *flexID            `json:"_id"`
	Name             *string            `json:"name"`
	Description      *string            `json:"description"`
	MemberCount      *flexInt           `json:"memberCount"`
	MemberCountSnake *flexInt           `json:"member_count"`
	Members          *[]json.RawMessage `json:"members"`
	CreatedAt        *string            `json:"createdAt"`
	CreatedAtSnake   *string            `json:"created_at"`
}

func (d groupDTO) toModel() models.Group {
	g := models.Group{
		ID:          string(firstOr("", d.ID, d.MongoID)),
		Name:        firstOr("", d.Name),
		Description: firstOr("", d.Description),
		CreatedAt:   timestampOr(d.CreatedAt, d.CreatedAtSnake),
	}
	if n, ok := first(d.MemberCount, d.MemberCountSnake); ok {
		g.MemberCount = int(n)
	} else if d.Members != nil {
		g.MemberCount = len(*d.Members)
	}
	return g
}

// userRef resolves the participant identity shared by members and leaderboard rows.
type userRef struct {
	UserID        *flexRef `json:"userId"`
	UserIDSnake   *flexRef `json:"user_id"`
	User          *flexRef `json:"user"`
	ID            *flexID  `json:"id"`
	MongoID       *flexID  `json:"_id"`
	FullName      *string  `json:"fullName"`
	FullNameSnake *string  `json:"full_name"`
	Name          *string  `json:"name"`
	Username      *string  `json:"username"`
}

// resolve returns the user id, full name, username, and the populated user if any.
func (r userRef) resolve() (string, string, string, *userDTO) {
	var populated *userDTO
	id := ""
	if ref, ok := first(r.UserID, r.UserIDSnake, r.User); ok {
		id = ref.ID
		if ref.Object != nil {
			var u userDTO
			if err := json.Unmarshal(ref.Object, &u); err == nil {
				populated = &u
			}
		}
	}
	if id == "" {
		id = string(firstOr("", r.ID, r.MongoID))
	}

	fullName := firstOr("", r.FullName, r.FullNameSnake, r.Name)
	username := firstOr("", r.Username)
	if populated != nil {
		pu := populated.toModel()
		if fullName == "" {
			fullName = pu.FullName
		}
		if username == "" {
			username = pu.Username
		}
	}
	return id, fullName, username, populated
}

type memberDTO struct {
	userRef
	Role *string `json:"role"`
}

func (d memberDTO) toModel() models.Member {
	id, fullName, username, _ := d.resolve()
	return models.Member{UserID: id, FullName: fullName, Username: username}
}

func (d memberDTO) isAdmin() bool {
	role, ok := first(d.Role)
	return ok && strings.EqualFold(role, "admin")
}

type leaderboardDTO struct {
	userRef
	XP              *flexInt     `json:"xp"`
	Progress        *flexInt     `json:"progress"`
	CurrentDay      *flexInt     `json:"currentDay"`
	CurrentDaySnake *flexInt     `json:"current_day"`
	Completed       *flexBool    `json:"completed"`
	IsCompleted     *flexBool    `json:"isCompleted"`
	Badges          *flexStrings `json:"badges"`
}

func (d leaderboardDTO) toModel() models.LeaderboardEntry {
	id, fullName, username, populated := d.resolve()
	e := models.LeaderboardEntry{
		UserID:     id,
		FullName:   fullName,
		Username:   username,
		XP:         int(firstOr(0, d.XP)),
		Progress:   int(firstOr(0, d.Progress)),
		CurrentDay: int(firstOr(0, d.CurrentDay, d.CurrentDaySnake)),
		Completed:  bool(firstOr(false, d.Completed, d.IsCompleted)),
		Badges:     []string(firstOr(flexStrings{}, d.Badges)),
	}
	if populated != nil {
		if d.XP == nil {
			e.XP = int(firstOr(0, populated.XP))
		}
		if d.Badges == nil {
			e.Badges = []string(firstOr(flexStrings{}, populated.Badges))
		}
	}
	return e
}
