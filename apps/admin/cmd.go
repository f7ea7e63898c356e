package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"syscall"
	"time"

	"github.com/dustin/go-humanize"
	"golang.org/x/term"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/auth"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/exam"
	"github.com/Rodert/learn-hub/core/material"
	"github.com/Rodert/learn-hub/core/nav"
	"github.com/Rodert/learn-hub/core/progress"
	"github.com/Rodert/learn-hub/core/question"
	"github.com/Rodert/learn-hub/core/role"
	"github.com/Rodert/learn-hub/core/session"
	"github.com/Rodert/learn-hub/core/user"
	"github.com/Rodert/learn-hub/services/apiclient"
)

const progName = "hubadmin"

var (
	readPasswordFunc = term.ReadPassword // mockable

	errHelp          = errors.New("help provided")
	errLoginRequired = errors.New("login required")
)

type commandLine struct {
	conf   *core.Config
	in     *bufio.Reader
	out    io.Writer
	logger core.Logger

	api   core.Doer
	sess  *session.Manager
	route string
	// assumeYes answers every confirmation with yes
	assumeYes bool

	users     *user.Service
	roles     *role.Service
	materials *material.Service
	questions *question.Service
	exams     *exam.Service
	courses   *course.Service
	progress  *progress.Service
}

var (
	_ core.Notifier  = (*commandLine)(nil)
	_ core.Confirmer = (*commandLine)(nil)
	_ core.Navigator = (*commandLine)(nil)
)

func newCommandLine(conf *core.Config, store session.Store, in io.Reader, out io.Writer, logger core.Logger) *commandLine {
	if logger == nil {
		logger = core.NopLogger{}
	}
	cli := &commandLine{conf: conf, in: bufio.NewReader(in), out: out, logger: logger}
	cli.api = apiclient.New(apiclient.Options{
		BaseURL:     conf.APIBaseURL,
		Timeout:     conf.RequestTimeout,
		TokenSource: func() string { return cli.sess.Token() },
		Logger:      logger,
	})
	cli.sess = session.NewManager(store, auth.NewService(cli.api), cli, logger)

	cli.users = user.NewService(cli.api)
	cli.roles = role.NewService(cli.api)
	cli.materials = material.NewService(cli.api)
	cli.questions = question.NewService(cli.api)
	cli.exams = exam.NewService(cli.api)
	cli.courses = course.NewService(cli.api)
	cli.progress = progress.NewService(cli.api)
	return cli
}

func (cli *commandLine) printUsage() {
	fmt.Fprintln(cli.out, "Usage:")
	fmt.Fprintln(cli.out, "  login -username USERNAME [-password PASSWORD] - open a session (password prompted when omitted)")
	fmt.Fprintln(cli.out, "  logout                                         - close the session")
	fmt.Fprintln(cli.out, "  whoami                                         - show the logged in admin")
	fmt.Fprintln(cli.out, "  menu                                           - list the pages")
	fmt.Fprintln(cli.out, "  dashboard                                      - show record counts")
	fmt.Fprintln(cli.out, "  <page> list|create|update|delete [flags]       - manage users, roles, materials, questions, exams or courses")
	fmt.Fprintln(cli.out, "  users progress|password -id ID                 - show a user's course progress or reset their password")
	fmt.Fprintln(cli.out, "  roles permissions                              - list the grantable permissions")
	fmt.Fprintln(cli.out, "  courses show|publish|unpublish -id ID          - show or (un)publish a course")
	fmt.Fprintln(cli.out, "  courses progress -id ID [-username USERNAME]   - show a course's learners")
	fmt.Fprintln(cli.out, "  import users|questions -file FILE.csv          - create records from a CSV file")
	fmt.Fprintln(cli.out, "Run `<page> <command> -h` for the flags of a command.")
}

func (cli *commandLine) run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		cli.printUsage()
		return errHelp
	}
	if err := cli.sess.Init(ctx); err != nil {
		return err
	}

	switch args[1] {
	case "login":
		return cli.login(ctx, args[2:])
	case "logout":
		return cli.sess.Logout(ctx)
	case "whoami":
		return cli.whoami()
	case "menu":
		cli.menu()
		return nil
	case "dashboard":
		if err := cli.open(nav.DashboardRoute); err != nil {
			return err
		}
		return cli.renderDashboard(ctx)
	case "import":
		return cli.importCSV(ctx, args[2:])
	default:
		if page, ok := cli.pages()[args[1]]; ok {
			return page(ctx, args[2:])
		}
		cli.printUsage()
		return errHelp
	}
}

func (cli *commandLine) login(ctx context.Context, args []string) error {
	loginCmd := flag.NewFlagSet("login", flag.ContinueOnError)
	loginCmd.SetOutput(cli.out)
	uname := loginCmd.String("username", "", "The admin's username.")
	pwd := loginCmd.String("password", "", "The admin's password. Prompted when omitted.")
	if err := loginCmd.Parse(args); err != nil {
		return errHelp
	}
	if *uname == "" {
		loginCmd.Usage()
		return errHelp
	}
	if *pwd == "" {
		fmt.Fprint(cli.out, "Enter password:")
		b, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		*pwd = string(b)
	}
	if *pwd == "" {
		loginCmd.Usage()
		return errHelp
	}

	if err := cli.sess.Login(ctx, *uname, *pwd); err != nil {
		cli.Error(core.UserMessage(err, "login failed"))
		return err
	}
	return cli.renderDashboard(ctx)
}

func (cli *commandLine) whoami() error {
	if !cli.sess.Authenticated() {
		fmt.Fprintln(cli.out, "not logged in")
		return errLoginRequired
	}
	p := cli.sess.Profile()
	fmt.Fprintf(cli.out, "%s (%s) #%d, %s\n", p.Username, p.Nickname, p.ID, core.Label(user.StatusLabels, p.Status))
	if claims, err := cli.sess.Claims(); err == nil && !claims.ExpiresAt.IsZero() {
		if claims.Expired(time.Now()) {
			fmt.Fprintf(cli.out, "token expired %s\n", humanize.Time(claims.ExpiresAt))
		} else {
			fmt.Fprintf(cli.out, "token expires %s\n", humanize.Time(claims.ExpiresAt))
		}
	}
	return nil
}

func (cli *commandLine) menu() {
	for _, r := range nav.Menu {
		marker := " "
		if r.Path == cli.route {
			marker = "*"
		}
		fmt.Fprintf(cli.out, "%s %-18s %-16s %s\n", marker, r.Path, r.Title, progName+" "+r.Command)
	}
}

// open guards route and navigates to it.
func (cli *commandLine) open(route string) error {
	target, ok := cli.sess.Guard(route)
	if !ok {
		fmt.Fprintf(cli.out, "%s requires a session, please log in first\n", route)
		cli.Navigate(target)
		return errLoginRequired
	}
	if route != nav.LoginRoute {
		cli.Navigate(target)
	}
	return nil
}

// Navigate renders the header of route.
func (cli *commandLine) Navigate(route string) {
	cli.route = route
	title := route
	if r, ok := nav.Lookup(route); ok {
		title = r.Title
	}
	fmt.Fprintf(cli.out, "== %s ==\n", title)
}

func (cli *commandLine) Success(msg string) {
	fmt.Fprintf(cli.out, "ok: %s\n", msg)
}

func (cli *commandLine) Error(msg string) {
	fmt.Fprintf(cli.out, "error: %s\n", msg)
}

// Confirm asks prompt on the terminal; only "y" or "yes" confirm.
func (cli *commandLine) Confirm(ctx context.Context, prompt string) bool {
	if cli.assumeYes {
		return true
	}
	fmt.Fprintf(cli.out, "%s [y/N] ", prompt)
	answer, err := cli.in.ReadString('\n')
	if err != nil && answer == "" {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
