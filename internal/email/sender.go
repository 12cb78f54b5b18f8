package email

import (
	"bytes"
	"fmt"
	"html/template"
	"net/smtp"
	"time"

	"shortscope/internal/config"
	"shortscope/internal/models"
	"shortscope/internal/report"
)

// Sender delivers digest mails for newly surfaced videos.
type Sender struct {
	config *config.EmailConfig
}

func NewSender(cfg *config.EmailConfig) *Sender {
	return &Sender{config: cfg}
}

// Digest is the data handed to the digest template.
type Digest struct {
	Date    time.Time
	Videos  []*models.Video
	Summary string
	Zone    *time.Location
}

// SendDigest mails the digest. A digest with no videos is silently
// skipped.
func (s *Sender) SendDigest(d *Digest) error {
	if d == nil {
		return fmt.Errorf("digest cannot be nil")
	}
	if len(d.Videos) == 0 {
		return nil
	}

	subject := fmt.Sprintf("Short-Video Digest - %d New Videos (%s)",
		len(d.Videos), d.Date.Format("Jan 2, 2006"))

	body, err := s.renderBody(d)
	if err != nil {
		return fmt.Errorf("failed to generate digest body: %w", err)
	}

	return s.sendViaSMTP(subject, body)
}

func (s *Sender) sendViaSMTP(subject, body string) error {
	auth := smtp.PlainAuth("", s.config.Username, s.config.Password, s.config.SMTPServer)

	to := []string{s.config.ToEmail}
	msg := []byte(fmt.Sprintf(`To: %s
From: %s
Subject: %s
MIME-Version: 1.0
Content-Type: text/html; charset=UTF-8

%s`, s.config.ToEmail, s.config.FromEmail, subject, body))

	addr := fmt.Sprintf("%s:%d", s.config.SMTPServer, s.config.SMTPPort)
	return smtp.SendMail(addr, auth, s.config.FromEmail, to, msg)
}

const digestTemplate = `<html>
<body style="font-family: sans-serif; color: #222;">
<h2>Short-Video Digest - {{.Date.Format "Jan 2, 2006"}}</h2>
{{if .Summary}}<p>{{.Summary}}</p>{{end}}
<table border="0" cellpadding="6" cellspacing="0">
<tr><th align="left">#</th><th align="left">Title</th><th align="left">Channel</th><th align="right">Views</th><th align="right">Length</th><th align="left">Published</th></tr>
{{range $i, $v := .Videos}}
<tr>
<td>{{inc $i}}</td>
<td><a href="{{$v.URL}}">{{$v.Title}}</a></td>
<td>{{$v.ChannelTitle}}</td>
<td align="right">{{views $v.ViewCount}}</td>
<td align="right">{{printf "%.0fs" $v.DurationSeconds}}</td>
<td>{{inzone $v.PublishedAt}}</td>
</tr>
{{end}}
</table>
</body>
</html>`

func (s *Sender) renderBody(d *Digest) (string, error) {
	tmpl := template.New("digest").Funcs(template.FuncMap{
		"inc":   func(i int) int { return i + 1 },
		"views": report.FormatCount,
		"inzone": func(t time.Time) string {
			return report.FormatInZone(t, d.Zone)
		},
	})

	tmpl, err := tmpl.Parse(digestTemplate)
	if err != nil {
		return "", err
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, d); err != nil {
		return "", err
	}
	return buf.String(), nil
}
