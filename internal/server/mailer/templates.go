package mailer

import "html/template"

// WelcomeTemplate greets a user right after their profile is created.
// Data: struct{ DisplayName string }.
var WelcomeTemplate = template.Must(template.New("welcome").Parse(`
{{define "subject"}}Welcome to TeamTrack{{end}}

{{define "plainBody"}}
Hi {{.DisplayName}},

Your TeamTrack profile is ready. Log your first task and it will show up
on the team dashboard right away.

The TeamTrack Team
{{end}}

{{define "htmlBody"}}
<!doctype html>
<html>
<body>
<p>Hi {{.DisplayName}},</p>
<p>Your TeamTrack profile is ready. Log your first task and it will show up
on the team dashboard right away.</p>
<p>The TeamTrack Team</p>
</body>
</html>
{{end}}
`))

// ReportTemplate delivers a generated activity report.
// Data: struct{ Day, Report string }.
var ReportTemplate = template.Must(template.New("report").Parse(`
{{define "subject"}}Team activity report for {{.Day}}{{end}}

{{define "plainBody"}}
Team activity for {{.Day}}:

{{.Report}}
{{end}}

{{define "htmlBody"}}
<!doctype html>
<html>
<body>
<p>Team activity for {{.Day}}:</p>
<pre>{{.Report}}</pre>
</body>
</html>
{{end}}
`))
