package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/dkaledin/teamtrack/internal/report"
)

// Report fetches and prints the aggregated team report. Admin only;
// pass "month" to widen the window from the default day.
func (a *App) Report(ctx context.Context, args []string) error {
	mode := report.ModeDay
	if len(args) > 0 {
		mode = report.ParseMode(args[0])
	}

	rep, err := a.api.GetReport(ctx, time.Time{}, mode)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Printf("Team report (%s): %d active member(s), %d task(s), %d hour(s)\n",
		rep.Mode, rep.Stats.ActiveUsers, rep.Stats.TotalTasks, rep.Stats.TotalHours)
	for _, entry := range rep.Entries {
		fmt.Printf("  %s: %d task(s), %d hour(s)\n", entry.User.DisplayName, entry.TaskCount, entry.TotalHours)
	}
	return nil
}

// Export delivers the daily report. Without arguments the text export
// is downloaded and written to a local file; "s3" uploads it and prints
// a presigned URL; "email [recipient]" mails it.
func (a *App) Export(ctx context.Context, args []string) error {
	if len(args) == 0 {
		content, fileName, err := a.api.DownloadExport(ctx, time.Time{})
		if err != nil {
			log.Println(err.Error())
			return err
		}
		if err := os.WriteFile(fileName, []byte(content), 0o644); err != nil {
			log.Println(err.Error())
			return err
		}
		fmt.Printf("Saved %s\n", fileName)
		return nil
	}

	delivery := args[0]
	recipient := ""
	if len(args) > 1 {
		recipient = args[1]
	}

	result, err := a.api.DeliverExport(ctx, delivery, recipient, time.Time{})
	if err != nil {
		log.Println(err.Error())
		return err
	}

	switch delivery {
	case "email":
		fmt.Printf("Report sent to %s\n", result)
	default:
		fmt.Printf("Uploaded, download at: %s\n", result)
	}
	return nil
}

// Watch follows live task updates, printing a summary for every
// snapshot until the user presses Enter.
func (a *App) Watch(ctx context.Context, args []string) error {
	collection := "tasks"
	if len(args) > 0 {
		collection = args[0]
	}

	streamCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	ch, wait, err := a.api.Watch(streamCtx, collection)
	if err != nil {
		log.Println(err.Error())
		return err
	}

	fmt.Println("Watching for updates, press Enter to stop...")

	go func() {
		for snap := range ch {
			var items []json.RawMessage
			if err := json.Unmarshal(snap.Data, &items); err != nil {
				continue
			}
			fmt.Printf("[%s] %s: %d item(s)\n", time.Now().Format("15:04:05"), collection, len(items))
		}
	}()

	_, _ = a.reader.ReadString('\n')
	cancel()
	return wait()
}
