package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/dmitrijs2005/cvboard/internal/client/client"
	"github.com/dmitrijs2005/cvboard/internal/client/config"
	"github.com/dmitrijs2005/cvboard/internal/client/projection"
	"github.com/dmitrijs2005/cvboard/internal/client/ui"
	"github.com/dmitrijs2005/cvboard/internal/logging"
	"github.com/dmitrijs2005/cvboard/internal/telemetry"
	"golang.org/x/text/language"
)

type App struct {
	config *config.Config
	logger logging.Logger
	client *client.Client
	binder *ui.Binder
	reader *bufio.Reader
	out    io.Writer
}

func NewApp(c *config.Config) *App {
	return &App{
		config: c,
		logger: logging.New(os.Stderr, "text", c.LogLevel),
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
	}
}

// bind attaches a binder over records rendering into the app.
func (a *App) bind(records ui.RecordService, loc *time.Location, lang language.Tag) {
	a.binder = ui.NewBinder(records, a, ui.WithLogger(a.logger), ui.WithLocation(loc), ui.WithLanguage(lang))
}

// Run authenticates, loads the lists and runs the REPL until exit or EOF.
// Nothing is bound when no session is established.
func (a *App) Run(ctx context.Context) error {
	shutdownTracing, err := telemetry.Setup(ctx, "cvboard-cli", a.config.OTLPEndpoint)
	if err != nil {
		a.logger.Warn(ctx, "tracing disabled", "error", err)
	}
	defer func() { _ = shutdownTracing(context.Background()) }()

	c, err := client.Connect(ctx, a.config, a.logger, a.out)
	if err != nil {
		a.logger.Error(ctx, "no session", "error", err)
		return err
	}
	defer c.Close()

	a.client = c
	a.bind(c.Records, c.Location, c.Language)

	printlnFn("cvboard (type 'help' for commands)")
	a.binder.Load(ctx)

	runREPL(ctx, a, a.status, a.reader)
	return nil
}

func (a *App) status() string {
	if a.client == nil || a.client.Session.Identity.IsAnonymous() {
		return "anonymous"
	}
	return a.client.Session.Identity.Principal
}

// RenderList prints rows under the list heading.
func (a *App) RenderList(listID string, rows []projection.DisplayRow) {
	fmt.Fprintf(a.out, "[%s]\n", listID)
	if len(rows) == 0 {
		fmt.Fprintln(a.out, "  (none)")
		return
	}
	for _, r := range rows {
		fmt.Fprintln(a.out, "  "+r.Text)
	}
}

func (a *App) RenderSkillOptions(skills []string) {
	if len(skills) == 0 {
		fmt.Fprintf(a.out, "[%s] (none)\n", ui.SearchSkillID)
		return
	}
	fmt.Fprintf(a.out, "[%s] %s\n", ui.SearchSkillID, strings.Join(skills, ", "))
}

func (a *App) Alert(msg string) {
	fmt.Fprintf(a.out, "!! %s\n", msg)
}
