package main

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/form"
	"github.com/Rodert/learn-hub/core/nav"
	sessionstore "github.com/Rodert/learn-hub/storage/session"
	"github.com/Rodert/learn-hub/tests"
)

var ctx = context.Background()

func setup(t *testing.T, input string) (*commandLine, *bytes.Buffer) {
	t.Helper()
	conf := &core.Config{Env: core.EnvTest, APIBaseURL: testutil.NewAPIServer(t), PageSize: 10}
	out := new(bytes.Buffer)
	return newCommandLine(conf, sessionstore.NewMemoryStore(), strings.NewReader(input), out, nil), out
}

func login(t *testing.T, cli *commandLine, out *bytes.Buffer) {
	t.Helper()
	if err := cli.run(ctx, []string{progName, "login", "-username", "admin", "-password", testutil.AdminPassword}); err != nil {
		t.Fatalf("login failed: %v\n%s", err, out)
	}
	out.Reset()
}

type cliTest struct {
	name       string
	args       []string // without program name
	wantErr    error
	wantErrStr string
	wantOut    []string
	notOut     []string
}

func runCLITests(t *testing.T, cli *commandLine, out *bytes.Buffer, tests []cliTest) {
	t.Helper()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			out.Reset()
			err := cli.run(ctx, append([]string{progName}, tt.args...))
			switch {
			case tt.wantErr != nil:
				if !errors.Is(err, tt.wantErr) {
					t.Errorf("run() error = %v, want %v", err, tt.wantErr)
				}
			case tt.wantErrStr != "":
				if err == nil || !strings.Contains(err.Error(), tt.wantErrStr) {
					t.Errorf("run() error = %v, want %q", err, tt.wantErrStr)
				}
			case err != nil:
				t.Errorf("run() unexpected error = %v\n%s", err, out)
			}
			for _, s := range tt.wantOut {
				if !strings.Contains(out.String(), s) {
					t.Errorf("output misses %q:\n%s", s, out)
				}
			}
			for _, s := range tt.notOut {
				if strings.Contains(out.String(), s) {
					t.Errorf("output contains %q:\n%s", s, out)
				}
			}
		})
	}
}

func Test_commandLine_run(t *testing.T) {
	cli, out := setup(t, "")

	runCLITests(t, cli, out, []cliTest{
		{name: "no command", args: nil, wantErr: errHelp, wantOut: []string{"Usage:"}},
		{name: "unknown command", args: []string{"lol"}, wantErr: errHelp},
		{name: "unknown page command", args: []string{"users", "lol"}, wantErr: errHelp, wantOut: []string{`unknown command "lol"`}},
		{name: "menu", args: []string{"menu"}, wantOut: []string{"/materials", "hubadmin courses progress"}},
		{name: "protected page", args: []string{"users", "list"}, wantErr: errLoginRequired, wantOut: []string{"/users requires a session", "== Login =="}},
		{name: "protected dashboard", args: []string{"dashboard"}, wantErr: errLoginRequired},
		{name: "whoami", args: []string{"whoami"}, wantErr: errLoginRequired, wantOut: []string{"not logged in"}},
	})
}

func Test_commandLine_login(t *testing.T) {
	cli, out := setup(t, "")

	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte(testutil.AdminPassword), nil
	}

	runCLITests(t, cli, out, []cliTest{
		{name: "no username", args: []string{"login"}, wantErr: errHelp},
		{
			name:       "wrong password",
			args:       []string{"login", "-username", "admin", "-password", "nope"},
			wantErrStr: "invalid username or password",
			wantOut:    []string{"error: invalid username or password"},
		},
		{
			name:    "prompted password",
			args:    []string{"login", "-username", "admin"},
			wantOut: []string{"Enter password:", "== Dashboard ==", "Users", "Materials", "Courses"},
		},
		{name: "whoami", args: []string{"whoami"}, wantOut: []string{"admin (Administrator) #1", "token expires"}},
		{name: "logout", args: []string{"logout"}, wantOut: []string{"== Login =="}},
		{name: "page after logout", args: []string{"users"}, wantErr: errLoginRequired},
	})

	if cli.sess.Authenticated() {
		t.Error("session still authenticated after logout")
	}
}

func Test_commandLine_users(t *testing.T) {
	cli, out := setup(t, "n\ny\n")
	login(t, cli, out)

	runCLITests(t, cli, out, []cliTest{
		{name: "list", args: []string{"users"}, wantOut: []string{"== Users ==", "USERNAME", "admin", "alice", "page 1 of 1 (2 users)"}},
		{name: "filter", args: []string{"users", "list", "-username", "ali"}, wantOut: []string{"alice"}, notOut: []string{"Administrator"}},
		{
			name:       "create invalid",
			args:       []string{"users", "create", "-username", "bob", "-password", "123456", "-nickname", "Bob"},
			wantErrStr: "password cannot be entirely numeric",
			wantOut:    []string{"-password: password cannot be entirely numeric"},
		},
		{
			name:    "create",
			args:    []string{"users", "create", "-username", "bob", "-password", "Kw!9zr-Tq", "-nickname", "Bob", "-role_ids", "2"},
			wantOut: []string{"ok: user created", "bob", "(3 users)"},
		},
		{name: "create duplicate", args: []string{"users", "create", "-username", "bob", "-password", "Kw!9zr-Tq", "-nickname", "Bob"}, wantErrStr: "username already exists"},
		{name: "update username", args: []string{"users", "update", "-id", "2", "-username", "alicia"}, wantErr: form.ErrReadOnly},
		{name: "update not on page", args: []string{"users", "update", "-id", "99", "-nickname", "X"}, wantErrStr: "user #99 is not on page 1"},
		{name: "update", args: []string{"users", "update", "-id", "2", "-nickname", "Alice B."}, wantOut: []string{"ok: user updated", "Alice B."}},
		{name: "progress", args: []string{"users", "progress", "-id", "2"}, wantOut: []string{"Onboarding", "100%"}},
		{name: "delete declined", args: []string{"users", "delete", "-id", "2"}, wantOut: []string{"Delete user #2? [y/N]", "alice"}, notOut: []string{"ok: user deleted"}},
		{name: "delete confirmed", args: []string{"users", "delete", "-id", "2"}, wantOut: []string{"ok: user deleted", "(2 users)"}},
		{name: "delete self", args: []string{"users", "delete", "-id", "1", "-yes"}, wantErrStr: "400"},
	})
}

func Test_commandLine_usersPassword(t *testing.T) {
	cli, out := setup(t, "")
	login(t, cli, out)

	readPasswordFunc = func(fd int) ([]byte, error) {
		return []byte("N3w-pass!word"), nil
	}
	runCLITests(t, cli, out, []cliTest{
		{name: "no id", args: []string{"users", "password"}, wantErr: errHelp},
		{name: "reset", args: []string{"users", "password", "-id", "2"}, wantOut: []string{"Enter new password for alice:", "ok: user updated"}},
	})

	out.Reset()
	err := cli.run(ctx, []string{progName, "login", "-username", "alice", "-password", "N3w-pass!word"})
	if err != nil {
		t.Errorf("login with the new password failed: %v\n%s", err, out)
	}
}

func Test_commandLine_content(t *testing.T) {
	cli, out := setup(t, "")
	login(t, cli, out)

	runCLITests(t, cli, out, []cliTest{
		{name: "materials published", args: []string{"materials"}, wantOut: []string{"Getting started"}, notOut: []string{"Safety briefing"}},
		{name: "materials all", args: []string{"materials", "list", "-status", ""}, wantOut: []string{"Getting started", "Safety briefing", "(2 materials)"}},
		{name: "materials video without file", args: []string{"materials", "create", "-title", "Intro", "-content_type", "video"}, wantErrStr: "file_url", wantOut: []string{"-file_url:"}},
		{name: "questions by type", args: []string{"questions", "list", "-type", "fill_blank"}, wantOut: []string{"(1 questions)"}},
		{name: "questions delete", args: []string{"questions", "delete", "-id", "2", "-yes"}, wantOut: []string{"ok: question deleted"}},
		{name: "exams", args: []string{"exams"}, wantOut: []string{"Safety quiz"}},
		{name: "roles", args: []string{"roles"}, wantOut: []string{"admin", "learner"}},
		{name: "roles permissions", args: []string{"roles", "permissions"}, wantOut: []string{"RESOURCE", "users:manage"}},
		{name: "roles delete in use", args: []string{"roles", "delete", "-id", "2", "-yes"}, wantErrStr: "400"},
	})
}

func Test_commandLine_courses(t *testing.T) {
	cli, out := setup(t, "")
	login(t, cli, out)

	runCLITests(t, cli, out, []cliTest{
		{name: "list", args: []string{"courses"}, wantOut: []string{"Onboarding", "Code of conduct", "12:34"}},
		{name: "filter status", args: []string{"courses", "list", "-status", "0"}, wantOut: []string{"Code of conduct"}, notOut: []string{"Onboarding"}},
		{name: "show", args: []string{"courses", "show", "-id", "1"}, wantOut: []string{"Onboarding", "Mixed"}},
		{name: "show missing", args: []string{"courses", "show", "-id", "99"}, wantErrStr: "404"},
		{name: "publish", args: []string{"courses", "publish", "-id", "2"}, wantOut: []string{"ok: course published"}},
		{name: "unpublish", args: []string{"courses", "unpublish", "-id", "2"}, wantOut: []string{"ok: course unpublished"}},
		{name: "update", args: []string{"courses", "update", "-id", "2", "-sortOrder", "5"}, wantOut: []string{"ok: course updated"}},
		{name: "video course needs url", args: []string{"courses", "create", "-title", "Clip", "-contentType", "1"}, wantErrStr: "a video URL is required"},
		{name: "progress", args: []string{"courses", "progress", "-id", "1"}, wantOut: []string{"== Course progress ==", "alice", "100%"}},
		{name: "progress filtered", args: []string{"courses", "progress", "-id", "1", "-username", "bob"}, wantOut: []string{"no learners found"}},
	})

	if cli.route != nav.CourseProgressRoute {
		t.Errorf("route = %q, want %q", cli.route, nav.CourseProgressRoute)
	}
}

func Test_commandLine_import(t *testing.T) {
	cli, out := setup(t, "")
	login(t, cli, out)

	dir := t.TempDir()
	good := filepath.Join(dir, "users.csv")
	writeFile(t, good, "username,password,nickname\ncarol,Kw!9zr-Tq,Carol\ndave,Pz#4mn-Lx,Dave\n")
	mixed := filepath.Join(dir, "mixed.csv")
	writeFile(t, mixed, "username,password,nickname\nerin,Kw!9zr-Tq,Erin\nx,Kw!9zr-Tq,Short\n")
	ragged := filepath.Join(dir, "ragged.csv")
	writeFile(t, ragged, "username,password,nickname\ngina,Kw!9zr-Tq,Gina\nhank,Kw!9zr-Tq,Hank,extra,more\nivan,Kw!9zr-Tq,Ivan\n")
	badHeader := filepath.Join(dir, "header.csv")
	writeFile(t, badHeader, "username,email\nfrank,frank@example.com\n")

	runCLITests(t, cli, out, []cliTest{
		{name: "no kind", args: []string{"import"}, wantErr: errHelp},
		{name: "no file", args: []string{"import", "users"}, wantErr: errHelp},
		{name: "unknown kind", args: []string{"import", "exams", "-file", good}, wantErr: errHelp},
		{name: "users", args: []string{"import", "users", "-file", good}, wantOut: []string{"ok: imported 2 users, 0 failed"}},
		{name: "failed rows", args: []string{"import", "users", "-file", mixed}, wantErrStr: "1 of 2 rows failed", wantOut: []string{"row 3: username:", "imported 1 users, 1 failed"}},
		{name: "ragged row", args: []string{"import", "users", "-file", ragged}, wantErrStr: "1 of 3 rows failed", wantOut: []string{"row 3: has 5 fields, want 3", "imported 2 users, 1 failed"}},
		{name: "unknown column", args: []string{"import", "users", "-file", badHeader}, wantErrStr: `unknown column "email"`},
		{name: "imported users listed", args: []string{"users"}, wantOut: []string{"carol", "dave", "erin", "gina", "ivan"}, notOut: []string{"hank"}},
	})
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
}
