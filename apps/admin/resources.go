package main

import (
	"context"
	"flag"
	"fmt"
	"syscall"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/exam"
	"github.com/Rodert/learn-hub/core/listing"
	"github.com/Rodert/learn-hub/core/material"
	"github.com/Rodert/learn-hub/core/nav"
	"github.com/Rodert/learn-hub/core/progress"
	"github.com/Rodert/learn-hub/core/question"
	"github.com/Rodert/learn-hub/core/role"
	"github.com/Rodert/learn-hub/core/user"
)

// pages returns the resource pages by command name.
func (cli *commandLine) pages() map[string]pageCommand {
	return map[string]pageCommand{
		"users":     cli.usersPage().run,
		"roles":     cli.rolesPage().run,
		"materials": cli.materialsPage().run,
		"questions": cli.questionsPage().run,
		"exams":     cli.examsPage().run,
		"courses":   cli.coursesPage().run,
	}
}

func (cli *commandLine) usersPage() *resource[user.User, user.Filter, user.NewUser, user.UpdateUser] {
	r := newResource(cli, nav.UsersRoute, "users", user.FormSpec(cli.users), cli.users.List, cli.users.Delete, user.Filter{}, user.Columns)
	r.filterFlags = func(fs *flag.FlagSet) func(user.Filter) user.Filter {
		status := fs.String("status", "", "Only users with this status.")
		uname := fs.String("username", "", "Only usernames containing this text.")
		return func(f user.Filter) user.Filter {
			f.Status, f.Username = *status, *uname
			return f
		}
	}
	r.extra["progress"] = subCommand{run: func(ctx context.Context, args []string) error {
		fs := r.flagSet("progress")
		id := fs.Int("id", 0, "ID of the user.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		recs, err := cli.progress.ByUser(ctx, *id)
		if err != nil {
			cli.Error(core.UserMessage(err, "failed to load the user's progress"))
			return err
		}
		renderTable(cli.out, progress.UserColumns, recs, "no course started yet")
		return nil
	}}
	r.extra["password"] = subCommand{run: func(ctx context.Context, args []string) error {
		fs := r.flagSet("password")
		id := fs.Int("id", 0, "ID of the user.")
		page := fs.Int("page", 1, "List page holding the user.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}
		usr, err := r.find(ctx, *id, *page)
		if err != nil {
			return err
		}

		fmt.Fprintf(cli.out, "Enter new password for %s:", usr.Username)
		b, err := readPasswordFunc(int(syscall.Stdin))
		fmt.Fprintln(cli.out)
		if err != nil {
			return err
		}
		if len(b) == 0 {
			cli.Error("the password cannot be empty")
			return errHelp
		}

		if err := r.list.OnCreateOrEdit(&usr); err != nil {
			return err
		}
		if err := r.form.Set("password", string(b)); err != nil {
			r.form.Close()
			return err
		}
		return r.submit(ctx)
	}}
	return r
}

func (cli *commandLine) rolesPage() *resource[role.Role, role.Filter, role.NewRole, role.UpdateRole] {
	r := newResource(cli, nav.RolesRoute, "roles", role.FormSpec(cli.roles), cli.roles.List, cli.roles.Delete, role.Filter{}, role.Columns)
	r.filterFlags = func(fs *flag.FlagSet) func(role.Filter) role.Filter {
		status := fs.String("status", "", "Only roles with this status.")
		return func(f role.Filter) role.Filter {
			f.Status = *status
			return f
		}
	}
	r.extra["permissions"] = subCommand{run: func(ctx context.Context, args []string) error {
		perms, err := cli.roles.Permissions(ctx)
		if err != nil {
			cli.Error(core.UserMessage(err, "failed to load permissions"))
			return err
		}
		renderTable(cli.out, role.PermissionColumns, perms, "no permissions defined")
		return nil
	}}
	return r
}

func (cli *commandLine) materialsPage() *resource[material.Material, material.Filter, material.NewMaterial, material.UpdateMaterial] {
	r := newResource(cli, nav.MaterialsRoute, "materials", material.FormSpec(cli.materials), cli.materials.List, cli.materials.Delete,
		material.Filter{Status: material.StatusPublished}, material.Columns)
	r.filterFlags = func(fs *flag.FlagSet) func(material.Filter) material.Filter {
		status := fs.String("status", material.StatusPublished, "Only materials with this status, empty for all.")
		return func(f material.Filter) material.Filter {
			f.Status = *status
			return f
		}
	}
	return r
}

func (cli *commandLine) questionsPage() *resource[question.Question, question.Filter, question.NewQuestion, question.UpdateQuestion] {
	r := newResource(cli, nav.QuestionsRoute, "questions", question.FormSpec(cli.questions), cli.questions.List, cli.questions.Delete, question.Filter{}, question.Columns)
	r.filterFlags = func(fs *flag.FlagSet) func(question.Filter) question.Filter {
		qt := fs.String("type", "", "Only questions of this type.")
		return func(f question.Filter) question.Filter {
			f.Type = *qt
			return f
		}
	}
	return r
}

func (cli *commandLine) examsPage() *resource[exam.Exam, exam.Filter, exam.NewExam, exam.UpdateExam] {
	r := newResource(cli, nav.ExamsRoute, "exams", exam.FormSpec(cli.exams), cli.exams.List, cli.exams.Delete, exam.Filter{}, exam.Columns)
	r.filterFlags = func(fs *flag.FlagSet) func(exam.Filter) exam.Filter {
		status := fs.String("status", "", "Only exams with this status.")
		return func(f exam.Filter) exam.Filter {
			f.Status = *status
			return f
		}
	}
	return r
}

func (cli *commandLine) coursesPage() *resource[course.Course, course.Filter, course.NewCourse, course.UpdateCourse] {
	r := newResource(cli, nav.CoursesRoute, "courses", course.FormSpec(cli.courses), cli.courses.List, cli.courses.Delete, course.Filter{}, course.Columns)
	r.get = cli.courses.Get
	r.filterFlags = func(fs *flag.FlagSet) func(course.Filter) course.Filter {
		title := fs.String("title", "", "Only titles containing this text.")
		status := fs.Int("status", -1, "Only courses with this status (0 draft, 1 published, 2 unpublished), -1 for all.")
		return func(f course.Filter) course.Filter {
			f.Title = *title
			f.Status = nil
			if *status >= 0 {
				f.Status = core.IntPtr(*status)
			}
			return f
		}
	}

	idFlag := func(cmd string, args []string) (int, error) {
		fs := r.flagSet(cmd)
		id := fs.Int("id", 0, "ID of the course.")
		if err := fs.Parse(args); err != nil {
			return 0, errHelp
		}
		if *id <= 0 {
			fs.Usage()
			return 0, errHelp
		}
		return *id, nil
	}

	r.extra["show"] = subCommand{run: func(ctx context.Context, args []string) error {
		id, err := idFlag("show", args)
		if err != nil {
			return err
		}
		c, err := r.find(ctx, id, 1)
		if err != nil {
			return err
		}
		renderCourse(cli.out, c)
		return nil
	}}

	publish := func(cmd string, status int) subCommand {
		return subCommand{run: func(ctx context.Context, args []string) error {
			id, err := idFlag(cmd, args)
			if err != nil {
				return err
			}
			if err := cli.courses.Publish(ctx, id, status); err != nil {
				cli.Error(core.UserMessage(err, "failed to "+cmd+" course"))
				return err
			}
			cli.Success("course " + cmd + "ed")
			return nil
		}}
	}
	r.extra["publish"] = publish("publish", course.StatusPublished)
	r.extra["unpublish"] = publish("unpublish", course.StatusUnpublished)

	r.extra["progress"] = subCommand{route: nav.CourseProgressRoute, run: func(ctx context.Context, args []string) error {
		fs := r.flagSet("progress")
		id := fs.Int("id", 0, "ID of the course.")
		uname := fs.String("username", "", "Only learners whose username contains this text.")
		page := fs.Int("page", 1, "Page number.")
		limit := fs.Int("limit", cli.conf.PageSize, "Rows per page.")
		if err := fs.Parse(args); err != nil {
			return errHelp
		}
		if *id <= 0 {
			fs.Usage()
			return errHelp
		}

		lc := listing.New(listing.Options[progress.CourseRecord, progress.CourseFilter]{
			Entity:   "progress record",
			Plural:   "learners",
			PageSize: *limit,
			Filter:   progress.CourseFilter{CourseID: *id, Username: *uname},
			List:     cli.progress.ByCourse,
			Notifier: cli,
		})
		if err := lc.OnPageChange(ctx, *page); err != nil {
			return err
		}
		renderPage(cli.out, "learners", progress.CourseColumns, lc.State(), lc.TotalPages())
		return nil
	}}
	return r
}
