package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"

	"github.com/dkaledin/teamtrack/internal/client/session"
)

func (a *App) getStatus() string {
	switch a.session.State() {
	case session.StateNeedsProfile:
		return fmt.Sprintf("(%s needs-name)", a.session.Email())
	case session.StateActive:
		role := ""
		if a.session.IsAdmin() {
			role = " admin"
		}
		return fmt.Sprintf("(%s%s)", a.session.DisplayName(), role)
	default:
		return ""
	}
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to TeamTrack CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)

	runREPL(ctx, a, a.getStatus, scanner)
}
