package main

import (
	"context"
	"fmt"
	"text/tabwriter"

	"github.com/dustin/go-humanize"

	"github.com/Rodert/learn-hub/core"
	"github.com/Rodert/learn-hub/core/course"
	"github.com/Rodert/learn-hub/core/dashboard"
	"github.com/Rodert/learn-hub/core/exam"
	"github.com/Rodert/learn-hub/core/material"
	"github.com/Rodert/learn-hub/core/nav"
	"github.com/Rodert/learn-hub/core/question"
	"github.com/Rodert/learn-hub/core/user"
)

func (cli *commandLine) renderDashboard(ctx context.Context) error {
	stats, err := dashboard.Collect(ctx, []dashboard.Source{
		{Title: "Users", Route: nav.UsersRoute, Count: dashboard.CountOf(cli.users.List, user.Filter{})},
		{Title: "Materials", Route: nav.MaterialsRoute, Count: dashboard.CountOf(cli.materials.List, material.Filter{})},
		{Title: "Questions", Route: nav.QuestionsRoute, Count: dashboard.CountOf(cli.questions.List, question.Filter{})},
		{Title: "Exams", Route: nav.ExamsRoute, Count: dashboard.CountOf(cli.exams.List, exam.Filter{})},
		{Title: "Courses", Route: nav.CoursesRoute, Count: dashboard.CountOf(cli.courses.List, course.Filter{})},
	})
	if err != nil {
		cli.Error(core.UserMessage(err, "failed to load the dashboard"))
		return err
	}

	p := cli.sess.Profile()
	fmt.Fprintf(cli.out, "Welcome, %s\n", p.Nickname)
	tw := tabwriter.NewWriter(cli.out, 0, 0, 2, ' ', 0)
	for _, s := range stats {
		fmt.Fprintf(tw, "%s\t%s\t%s\n", s.Title, humanize.Comma(s.Count), s.Route)
	}
	return tw.Flush()
}
