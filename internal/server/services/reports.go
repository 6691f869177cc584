package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/dkaledin/teamtrack/internal/report"
	sc "github.com/dkaledin/teamtrack/internal/server/config"
	"github.com/dkaledin/teamtrack/internal/server/mailer"
	"github.com/dkaledin/teamtrack/internal/server/shared/db"
	"github.com/google/uuid"
)

// emptyExportPlaceholder is shown instead of an empty file body when the
// window has no tasks.
const emptyExportPlaceholder = "No tasks to export for today."

// ExportResult is a finished export artifact: the text itself plus,
// when object storage is configured, a presigned download URL.
type ExportResult struct {
	FileName    string `json:"file_name"`
	Content     string `json:"content"`
	DownloadURL string `json:"download_url,omitempty"`
}

// MemberStats are one member's own counters for the current day.
type MemberStats struct {
	TaskCount  int `json:"task_count"`
	TotalHours int `json:"total_hours"`
}

// ReportService builds activity reports over the stored profiles and
// tasks and handles export delivery (S3 upload + presigned URL, email).
type ReportService struct {
	manager db.RepositoryManager
	mailer  Mailer
	config  *sc.Config
}

func NewReportService(m db.RepositoryManager, mail Mailer, cfg *sc.Config) *ReportService {
	return &ReportService{manager: m, mailer: mail, config: cfg}
}

// Build aggregates all tasks inside the window around ref. A zero ref
// means "now".
func (s *ReportService) Build(ctx context.Context, ref time.Time, mode report.Mode) (*report.Report, error) {
	users, err := s.manager.Users().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	tasks, err := s.manager.Tasks().List(ctx)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	r := report.Build(toReportUsers(users), toReportTasks(tasks), ref, mode)
	return &r, nil
}

// ExportText renders the day report around ref as plain text. An empty
// report yields the placeholder line instead of an empty body.
func (s *ReportService) ExportText(ctx context.Context, ref time.Time) (string, string, error) {
	r, err := s.Build(ctx, ref, report.ModeDay)
	if err != nil {
		return "", "", err
	}

	content := report.ExportText(r.Entries)
	if content == "" {
		content = emptyExportPlaceholder
	}

	day := ref
	if day.IsZero() {
		day = time.Now()
	}
	return content, report.ExportFileName(day), nil
}

// exportStorageKey places artifacts under exports/<year>/<month>/<day>/.
func exportStorageKey(day time.Time) string {
	return fmt.Sprintf("exports/%d/%d/%d/%v", day.Year(), int(day.Month()), day.Day(), uuid.New())
}

func (s *ReportService) getS3Client(ctx context.Context) (*s3.Client, error) {
	cfg, err := awsconfig.LoadDefaultConfig(ctx,
		awsconfig.WithRegion(s.config.S3Region),
		awsconfig.WithCredentialsProvider(credentials.NewStaticCredentialsProvider(
			s.config.S3RootUser,
			s.config.S3RootPassword,
			"",
		)))
	if err != nil {
		return nil, err
	}

	return s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.BaseEndpoint = aws.String(s.config.S3BaseEndpoint)
		o.UsePathStyle = true
	}), nil
}

// seams for tests
var (
	putObject = func(ctx context.Context, client *s3.Client, in *s3.PutObjectInput) error {
		_, err := client.PutObject(ctx, in)
		return err
	}
	presignGet = func(ctx context.Context, client *s3.Client, in *s3.GetObjectInput) (string, error) {
		req, err := s3.NewPresignClient(client).PresignGetObject(ctx, in, s3.WithPresignExpires(15*time.Minute))
		if err != nil {
			return "", err
		}
		return req.URL, nil
	}
)

// Export renders the day report, uploads it to object storage and
// returns the content together with a presigned download URL.
func (s *ReportService) Export(ctx context.Context, ref time.Time) (*ExportResult, error) {
	content, fileName, err := s.ExportText(ctx, ref)
	if err != nil {
		return nil, err
	}

	day := ref
	if day.IsZero() {
		day = time.Now()
	}

	client, err := s.getS3Client(ctx)
	if err != nil {
		return nil, fmt.Errorf("error creating s3 client: %w", err)
	}

	bucket := s.config.S3Bucket
	key := exportStorageKey(day)

	err = putObject(ctx, client, &s3.PutObjectInput{
		Bucket:             &bucket,
		Key:                &key,
		Body:               strings.NewReader(content),
		ContentType:        aws.String("text/plain; charset=utf-8"),
		ContentDisposition: aws.String(fmt.Sprintf("attachment; filename=%q", fileName)),
	})
	if err != nil {
		return nil, fmt.Errorf("error uploading export: %w", err)
	}

	url, err := presignGet(ctx, client, &s3.GetObjectInput{
		Bucket: &bucket,
		Key:    &key,
	})
	if err != nil {
		return nil, fmt.Errorf("error presigning export: %w", err)
	}

	return &ExportResult{FileName: fileName, Content: content, DownloadURL: url}, nil
}

// EmailExport mails the day report to the recipient.
func (s *ReportService) EmailExport(ctx context.Context, ref time.Time, recipient string) error {
	content, _, err := s.ExportText(ctx, ref)
	if err != nil {
		return err
	}

	day := ref
	if day.IsZero() {
		day = time.Now()
	}

	data := struct{ Day, Report string }{
		Day:    day.Format("2006-01-02"),
		Report: content,
	}
	return s.mailer.Send(recipient, mailer.ReportTemplate, data)
}

// MemberToday returns the caller's own counters for the current day,
// shown in the member header.
func (s *ReportService) MemberToday(ctx context.Context, userID string) (*MemberStats, error) {
	tasks, err := s.manager.Tasks().ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing tasks: %w", err)
	}

	w := report.NewWindow(time.Time{}, report.ModeDay)
	stats := &MemberStats{}
	for _, t := range toReportTasks(tasks) {
		if !w.Contains(t.CreatedAt) {
			continue
		}
		stats.TaskCount++
		if h, ok := report.Hours(t.FromTime, t.ToTime); ok {
			stats.TotalHours += h
		}
	}
	return stats, nil
}
