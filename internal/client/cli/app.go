package cli

import (
	"bufio"
	"context"
	"database/sql"
	"errors"
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/beehive-drones/admin/internal/client/client"
	"github.com/beehive-drones/admin/internal/client/config"
	"github.com/beehive-drones/admin/internal/client/crud"
	"github.com/beehive-drones/admin/internal/client/resources"
	"github.com/beehive-drones/admin/internal/client/services"
	"github.com/beehive-drones/admin/internal/client/session"
	"github.com/beehive-drones/admin/internal/client/storage"
	"github.com/beehive-drones/admin/internal/common"
	"github.com/beehive-drones/admin/internal/logging"
)

var (
	ErrNotLoggedIn     = errors.New("not logged in")
	ErrUnknownResource = errors.New("unknown resource")
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// App is the admin CLI: one session, one API client and a list view per
// resource.
type App struct {
	log    logging.Logger
	db     *sql.DB
	api    client.Client
	origin string
	holder *session.Holder
	auth   services.AuthService
	notify *consoleNotifier

	views   map[string]view
	aliases map[string]string

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the session database, builds the HTTP client and wires every
// resource view.
func NewApp(ctx context.Context, cfg *config.Config, log logging.Logger, in io.Reader, out io.Writer) (*App, error) {
	db, err := storage.Open(ctx, cfg.SessionDB)
	if err != nil {
		log.Error(ctx, "error initializing database", "error", err)
		return nil, err
	}

	holder := session.NewHolder(db)
	api, err := client.NewHTTPClient(cfg.APIBaseURL,
		client.WithTokenSource(holder),
		client.WithRateLimit(cfg.RequestsPerSecond),
		client.WithLogger(log),
	)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	a := newApp(api, api.Origin(), holder, log, in, out)
	a.db = db
	return a, nil
}

func newApp(api client.Client, origin string, holder *session.Holder, log logging.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = logging.Nop()
	}
	a := &App{
		log:    log,
		api:    api,
		origin: origin,
		holder: holder,
		auth:   services.NewAuthService(api, holder, log),
		notify: &consoleNotifier{w: out},
		reader: bufio.NewReader(in),
		out:    out,
	}
	a.buildViews()
	return a
}

// buildViews replaces every list view with a fresh, unloaded one. Views
// being replaced are detached so late responses cannot touch them.
func (a *App) buildViews() {
	for _, v := range a.views {
		v.detach()
	}

	cfg := crud.Config{
		Logger:         a.log,
		Notifier:       a.notify,
		OnUnauthorized: a.expire,
	}
	views := []view{
		articleView(crud.NewController(resources.Articles{}, a.api, cfg), a.origin),
		careerView(crud.NewController(resources.Careers{}, a.api, cfg)),
		projectView(crud.NewController(resources.Projects{}, a.api, cfg), a.origin),
		productView(crud.NewController(resources.Products{}, a.api, cfg), a.origin),
	}

	a.views = make(map[string]view, len(views))
	a.aliases = make(map[string]string, 2*len(views))
	for _, v := range views {
		name := v.name()
		a.views[name] = v
		a.aliases[name] = name
		a.aliases[strings.TrimSuffix(name, "s")] = name
	}
}

// Resources lists the resource names accepted by the commands.
func (a *App) Resources() []string {
	names := make([]string, 0, len(a.views))
	for n := range a.views {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// expire ends a session the server no longer accepts.
func (a *App) expire(ctx context.Context) {
	if err := a.holder.Teardown(ctx); err != nil {
		a.log.Error(ctx, "session teardown failed", "error", err)
	}
	fmt.Fprintln(a.out, "Session expired. Please log in again.")
}

func (a *App) loggedIn() bool {
	_, ok := a.auth.Current()
	return ok
}

func (a *App) status() string {
	if u, ok := a.auth.Current(); ok {
		return fmt.Sprintf("(%s)", u.Email)
	}
	return "(logged out)"
}

// Restore resumes a persisted session, if one is still valid.
func (a *App) Restore(ctx context.Context) bool {
	u, ok, err := a.auth.Restore(ctx)
	if err != nil {
		a.log.Warn(ctx, "session restore failed", "error", err)
		return false
	}
	if ok {
		a.log.Debug(ctx, "resumed session", "email", u.Email)
	}
	return ok
}

// Run restores the previous session, asks for credentials when there is
// none and then serves the REPL until the user exits.
func (a *App) Run(ctx context.Context) {
	fmt.Fprintln(a.out, "Beehive admin (type 'help' for commands)")
	if a.Restore(ctx) {
		u, _ := a.auth.Current()
		fmt.Fprintf(a.out, "Welcome back, %s.\n", u.Name)
	} else {
		_ = a.Login(ctx)
	}
	runREPL(ctx, a, a.status, a.reader, a.out)
}

// Close detaches the views and releases the client and the database.
func (a *App) Close(ctx context.Context) error {
	for _, v := range a.views {
		v.detach()
	}
	err := a.auth.Close(ctx)
	if a.db != nil {
		err = errors.Join(err, a.db.Close())
	}
	return err
}

// Login prompts for credentials and starts a session.
//
// The password is wiped before returning. A failed login is reported to the
// operator and returned.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	u, err := a.auth.Login(ctx, email, password)
	if err != nil {
		a.notify.Failure(ctx, "Login failed", err)
		return err
	}

	a.buildViews()
	a.notify.Success(ctx, fmt.Sprintf("Logged in as %s.", u.Name))
	return nil
}

// Logout ends the session and forgets every loaded list.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		a.notify.Failure(ctx, "Logout failed", err)
		return err
	}
	a.buildViews()
	a.notify.Success(ctx, "Logged out.")
	return nil
}

// Whoami prints the operator of the current session.
func (a *App) Whoami(context.Context) error {
	u, ok := a.auth.Current()
	if !ok {
		fmt.Fprintln(a.out, "Not logged in.")
		return ErrNotLoggedIn
	}
	fmt.Fprintf(a.out, "%s <%s>\n", u.Name, u.Email)
	return nil
}

func (a *App) List(ctx context.Context, resource string, page int) error {
	return a.withView(resource, func(v view) error { return v.list(ctx, a.out, page) })
}

func (a *App) Refresh(ctx context.Context, resource string) error {
	return a.withView(resource, func(v view) error { return v.refresh(ctx, a.out) })
}

func (a *App) Show(ctx context.Context, resource string, id int64) error {
	return a.withView(resource, func(v view) error { return v.show(ctx, a.out, id) })
}

func (a *App) Create(ctx context.Context, resource string) error {
	return a.withView(resource, func(v view) error {
		return v.create(ctx, newPrompter(a.reader, a.out))
	})
}

func (a *App) Edit(ctx context.Context, resource string, id int64) error {
	return a.withView(resource, func(v view) error {
		return v.edit(ctx, newPrompter(a.reader, a.out), id)
	})
}

// Delete removes a record, asking first when confirm is set.
func (a *App) Delete(ctx context.Context, resource string, id int64, confirm bool) error {
	return a.withView(resource, func(v view) error {
		if confirm {
			ok, err := newPrompter(a.reader, a.out).confirm(fmt.Sprintf("Delete %s %d? This cannot be undone.", v.name(), id))
			if err != nil || !ok {
				return err
			}
		}
		return v.remove(ctx, id)
	})
}

// withView runs fn against the named resource. Errors the controllers do
// not report themselves are printed here.
func (a *App) withView(resource string, fn func(v view) error) error {
	if !a.loggedIn() {
		fmt.Fprintln(a.out, "Please log in first (type 'login').")
		return ErrNotLoggedIn
	}
	name, ok := a.aliases[strings.ToLower(resource)]
	if !ok {
		fmt.Fprintf(a.out, "Unknown resource %q, choose one of: %s\n", resource, strings.Join(a.Resources(), ", "))
		return fmt.Errorf("%w: %s", ErrUnknownResource, resource)
	}

	err := fn(a.views[name])
	if errors.Is(err, crud.ErrNotFound) || errors.Is(err, io.EOF) {
		fmt.Fprintln(a.out, err)
	}
	return err
}
