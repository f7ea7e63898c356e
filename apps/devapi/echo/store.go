package echoapi

import (
	"encoding/json"
	"time"

	"github.com/volatiletech/null/v8"
	"golang.org/x/crypto/bcrypt"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/exam"
	"github.com/Rodert/learn-hub/core/material"
	"github.com/Rodert/learn-hub/core/progress"
	"github.com/Rodert/learn-hub/core/question"
	"github.com/Rodert/learn-hub/core/role"
	"github.com/Rodert/learn-hub/core/user"
	inmemdb "github.com/Rodert/learn-hub/storage/inmem"
)

var bcryptCost = bcrypt.DefaultCost // lowered in tests

type (
	userRecord struct {
		user.User
		PasswordHash []byte
	}

	progressRecord struct {
		ID          int
		UserID      int
		CourseID    int
		Progress    int
		Duration    int
		IsCompleted bool
		CompletedAt core.Timestamp
		LastStudyAt core.Timestamp
	}

	// Store holds every table served by the API.
	Store struct {
		Users       *inmemdb.Table[userRecord]
		Roles       *inmemdb.Table[role.Role]
		Permissions *inmemdb.Table[role.Permission]
		Materials   *inmemdb.Table[material.Material]
		Questions   *inmemdb.Table[question.Question]
		Exams       *inmemdb.Table[exam.Exam]
		Courses     *inmemdb.Table[course.Course]
		Progress    *inmemdb.Table[progressRecord]
	}
)

func NewStore() *Store {
	return &Store{
		Users:       inmemdb.NewTable(func(r userRecord) int { return r.ID }, func(r *userRecord, id int) { r.ID = id }),
		Roles:       inmemdb.NewTable(func(r role.Role) int { return r.ID }, func(r *role.Role, id int) { r.ID = id }),
		Permissions: inmemdb.NewTable(func(p role.Permission) int { return p.ID }, func(p *role.Permission, id int) { p.ID = id }),
		Materials:   inmemdb.NewTable(func(m material.Material) int { return m.ID }, func(m *material.Material, id int) { m.ID = id }),
		Questions:   inmemdb.NewTable(func(q question.Question) int { return q.ID }, func(q *question.Question, id int) { q.ID = id }),
		Exams:       inmemdb.NewTable(func(e exam.Exam) int { return e.ID }, func(e *exam.Exam, id int) { e.ID = id }),
		Courses:     inmemdb.NewTable(func(c course.Course) int { return c.ID }, func(c *course.Course, id int) { c.ID = id }),
		Progress:    inmemdb.NewTable(func(p progressRecord) int { return p.ID }, func(p *progressRecord, id int) { p.ID = id }),
	}
}

func hashPassword(pwd string) ([]byte, error) {
	return bcrypt.GenerateFromPassword([]byte(pwd), bcryptCost)
}

// userView fills in the role references of rec.
func (s *Store) userView(rec userRecord) user.User {
	usr := rec.User
	usr.Roles = make([]user.RoleRef, 0, len(usr.RoleIDs))
	for _, id := range usr.RoleIDs {
		if r, err := s.Roles.Get(id); err == nil {
			usr.Roles = append(usr.Roles, user.RoleRef{ID: r.ID, Code: r.Code, Name: r.Name})
		}
	}
	if usr.RoleIDs == nil {
		usr.RoleIDs = []int{}
	}
	return usr
}

// roleView counts the users holding r.
func (s *Store) roleView(r role.Role) role.Role {
	r.UserCount = s.Users.Count(func(u userRecord) bool { return hasID(u.RoleIDs, r.ID) })
	if r.PermissionIDs == nil {
		r.PermissionIDs = []int{}
	}
	return r
}

func (s *Store) courseProgress(rec progressRecord) progress.CourseRecord {
	cr := progress.CourseRecord{
		UserID:      rec.UserID,
		Progress:    rec.Progress,
		Duration:    rec.Duration,
		IsCompleted: rec.IsCompleted,
		CompletedAt: rec.CompletedAt,
		LastStudyAt: rec.LastStudyAt,
	}
	if u, err := s.Users.Get(rec.UserID); err == nil {
		cr.Username = u.Username
		cr.Name = u.Nickname
	}
	return cr
}

func (s *Store) userProgress(rec progressRecord) progress.UserRecord {
	ur := progress.UserRecord{
		CourseID:    rec.CourseID,
		Progress:    rec.Progress,
		Duration:    rec.Duration,
		IsCompleted: rec.IsCompleted,
		CompletedAt: rec.CompletedAt,
		LastStudyAt: rec.LastStudyAt,
	}
	if c, err := s.Courses.Get(rec.CourseID); err == nil {
		ur.CourseTitle = c.Title
	}
	return ur
}

func hasID(ids []int, id int) bool {
	for _, i := range ids {
		if i == id {
			return true
		}
	}
	return false
}

// Seed fills an empty store with an `admin` account and a few records of each kind.
func (s *Store) Seed(adminPassword string) error {
	now := core.NewTimestamp(time.Now())

	for _, p := range []role.Permission{
		{Name: "users:manage", Description: "Manage users", Resource: "users", Action: "manage"},
		{Name: "roles:manage", Description: "Manage roles", Resource: "roles", Action: "manage"},
		{Name: "materials:manage", Description: "Manage learning materials", Resource: "materials", Action: "manage"},
		{Name: "questions:manage", Description: "Manage the question bank", Resource: "questions", Action: "manage"},
		{Name: "exams:manage", Description: "Manage exams", Resource: "exams", Action: "manage"},
		{Name: "courses:manage", Description: "Manage courses", Resource: "courses", Action: "manage"},
		{Name: "progress:read", Description: "Read learning progress", Resource: "progress", Action: "read"},
	} {
		s.Permissions.Insert(p)
	}
	allPerms := make([]int, 0)
	for _, p := range s.Permissions.Query(nil) {
		allPerms = append(allPerms, p.ID)
	}

	admin := s.Roles.Insert(role.Role{
		Code: "admin", Name: "Administrator", Description: "Full access", Status: role.StatusEnabled,
		PermissionIDs: allPerms, CreatedAt: now, UpdatedAt: now,
	})
	learner := s.Roles.Insert(role.Role{
		Code: "learner", Name: "Learner", Status: role.StatusEnabled, PermissionIDs: []int{}, CreatedAt: now, UpdatedAt: now,
	})

	hash, err := hashPassword(adminPassword)
	if err != nil {
		return err
	}
	s.Users.Insert(userRecord{
		User: user.User{
			Username: "admin", Nickname: "Administrator", Status: user.StatusActive,
			RoleIDs: []int{admin.ID}, CreatedAt: now, UpdatedAt: now,
		},
		PasswordHash: hash,
	})
	learnerHash, err := hashPassword("learner-pass")
	if err != nil {
		return err
	}
	alice := s.Users.Insert(userRecord{
		User: user.User{
			Username: "alice", Nickname: "Alice", Status: user.StatusActive,
			RoleIDs: []int{learner.ID}, CreatedAt: now, UpdatedAt: now,
		},
		PasswordHash: learnerHash,
	})

	s.Materials.Insert(material.Material{
		Title: "Getting started", Description: "Platform tour", ContentType: material.ContentText,
		Content: "<p>Welcome to <b>Learn Hub</b>.</p>", Status: material.StatusPublished, CreatedAt: now, UpdatedAt: now,
	})
	s.Materials.Insert(material.Material{
		Title: "Safety briefing", Description: "Mandatory video", ContentType: material.ContentVideo,
		Content: "Watch before your first shift.", FileURL: null.StringFrom("https://cdn.example.com/safety.mp4"),
		FileSize: null.Int64From(52428800), Status: material.StatusDraft, CreatedAt: now, UpdatedAt: now,
	})

	ex := s.Exams.Insert(exam.Exam{
		Title: "Safety quiz", Description: "Checks the safety briefing", TotalScore: 100, PassScore: 60,
		TimeLimit: 30, Status: exam.StatusPublished, CreatedAt: now, UpdatedAt: now,
	})
	opts, _ := json.Marshal([]string{"Run", "Walk to the nearest exit", "Hide"})
	s.Questions.Insert(question.Question{
		ExamID: null.IntFrom(ex.ID), QuestionType: question.TypeSingleChoice, Content: "What do you do when the alarm rings?",
		Options: opts, Answer: "Walk to the nearest exit", Score: 50, CreatedAt: now, UpdatedAt: now,
	})
	s.Questions.Insert(question.Question{
		QuestionType: question.TypeFillBlank, Content: "The assembly point is in the ____ lot.",
		Answer: "north", Explanation: null.StringFrom("See the site map."), Score: 50, CreatedAt: now, UpdatedAt: now,
	})

	intro := s.Courses.Insert(course.Course{
		Title: "Onboarding", Description: "First week essentials", ContentType: course.ContentMixed,
		VideoURL: "https://cdn.example.com/onboarding.mp4", TextContent: "<h1>Welcome</h1>", Duration: 754,
		Status: course.StatusPublished, CreatedAt: now, UpdatedAt: now,
	})
	s.Courses.Insert(course.Course{
		Title: "Code of conduct", ContentType: course.ContentText, TextContent: "Be kind.",
		Status: course.StatusDraft, SortOrder: 1, CreatedAt: now, UpdatedAt: now,
	})

	s.Progress.Insert(progressRecord{
		UserID: alice.ID, CourseID: intro.ID, Progress: 100, Duration: 754, IsCompleted: true,
		CompletedAt: now, LastStudyAt: now,
	})
	return nil
}
