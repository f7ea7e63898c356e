// Package nav is the static menu of the admin shell.
package nav

import "strings"

const (
	LoginRoute     = "/login"
	DashboardRoute = "/dashboard"
	// DefaultRoute is where a successful login lands.
	DefaultRoute = DashboardRoute

	MaterialsRoute      = "/materials"
	QuestionsRoute      = "/questions"
	ExamsRoute          = "/exams"
	CoursesRoute        = "/courses"
	CourseProgressRoute = "/courses/progress"
	UsersRoute          = "/users"
	RolesRoute          = "/roles"
)

type Route struct {
	Path      string
	Title     string
	Command   string // shell command opening the page
	Protected bool
}

// Menu lists the pages in display order.
var Menu = []Route{
	{Path: DashboardRoute, Title: "Dashboard", Command: "dashboard", Protected: true},
	{Path: MaterialsRoute, Title: "Materials", Command: "materials", Protected: true},
	{Path: QuestionsRoute, Title: "Questions", Command: "questions", Protected: true},
	{Path: ExamsRoute, Title: "Exams", Command: "exams", Protected: true},
	{Path: CoursesRoute, Title: "Courses", Command: "courses", Protected: true},
	{Path: CourseProgressRoute, Title: "Course progress", Command: "courses progress", Protected: true},
	{Path: UsersRoute, Title: "Users", Command: "users", Protected: true},
	{Path: RolesRoute, Title: "Roles", Command: "roles", Protected: true},
}

var loginPage = Route{Path: LoginRoute, Title: "Login", Command: "login"}

// Lookup finds the route registered for path. Unknown paths are reported as not found.
func Lookup(path string) (Route, bool) {
	path = "/" + strings.Trim(strings.TrimSpace(path), "/")
	if path == LoginRoute {
		return loginPage, true
	}
	for _, r := range Menu {
		if r.Path == path {
			return r, true
		}
	}
	return Route{}, false
}

// ByCommand finds the route opened by a shell command.
func ByCommand(cmd string) (Route, bool) {
	if cmd == loginPage.Command {
		return loginPage, true
	}
	for _, r := range Menu {
		if r.Command == cmd {
			return r, true
		}
	}
	return Route{}, false
}

// IsProtected reports whether path requires a session. Unknown paths are protected.
func IsProtected(path string) bool {
	r, ok := Lookup(path)
	return !ok || r.Protected
}
