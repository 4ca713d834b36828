package cli

import (
	"bufio"
	"context"
	"fmt"
	"log"
	"os"
)

func (a *App) getStatus() string {
	if a.session == nil {
		return "(offline)"
	}
	return fmt.Sprintf("(%s)", a.session.UserName)
}

func (a *App) Root(ctx context.Context) {
	log.Println("Welcome to Linguo CLI (type 'help' for commands)")
	scanner := bufio.NewScanner(os.Stdin)
	runREPL(ctx, a, a.getStatus, scanner)
}
