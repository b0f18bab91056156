package cli

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mesh-intelligence/luxedir/internal/app"
	"github.com/mesh-intelligence/luxedir/internal/auth"
	"github.com/mesh-intelligence/luxedir/internal/logging"
	"github.com/mesh-intelligence/luxedir/internal/paths"
	"github.com/mesh-intelligence/luxedir/internal/sqlite"
	"github.com/mesh-intelligence/luxedir/pkg/types"
)

// session is an attached backend and the directory loaded from it. Every
// command that touches data opens one and closes it before returning.
type session struct {
	cfg     settings
	dataDir string
	log     *zap.SugaredLogger
	backend *sqlite.Backend
	dir     *app.Directory
}

// resolveSettings resolves the config directory, loads config.yaml from it
// and resolves the data directory.
func resolveSettings(f *rootFlags) (configDir string, cfg settings, dataDir string, err error) {
	configDir, err = paths.ResolveConfigDir(f.configDir)
	if err != nil {
		return "", settings{}, "", fmt.Errorf("resolving config directory: %w", err)
	}
	cfg, err = loadConfig(configDir)
	if err != nil {
		return "", settings{}, "", err
	}
	dataDir, err = paths.ResolveDataDir(f.dataDir, cfg.DataDir)
	if err != nil {
		return "", settings{}, "", fmt.Errorf("resolving data directory: %w", err)
	}
	if f.debug {
		cfg.Debug = true
	}
	return configDir, cfg, dataDir, nil
}

// openSession attaches the backend named in the configuration and loads the
// directory state.
func openSession(f *rootFlags) (*session, error) {
	_, cfg, dataDir, err := resolveSettings(f)
	if err != nil {
		return nil, sysError(err)
	}
	return attachSession(cfg, dataDir)
}

func attachSession(cfg settings, dataDir string) (*session, error) {
	log, err := logging.New(cfg.Debug)
	if err != nil {
		return nil, sysError(err)
	}

	backend := sqlite.NewBackend(log)
	if err := backend.Attach(cfg.storeConfig(dataDir)); err != nil {
		_ = log.Sync()
		return nil, sysError(fmt.Errorf("attaching backend: %w", err))
	}
	dir, err := app.New(backend, log)
	if err != nil {
		_ = backend.Detach()
		_ = log.Sync()
		return nil, sysError(fmt.Errorf("loading directory: %w", err))
	}
	return &session{cfg: cfg, dataDir: dataDir, log: log, backend: backend, dir: dir}, nil
}

func (s *session) close() {
	if err := s.backend.Detach(); err != nil {
		s.log.Errorw("detaching backend", "error", err)
	}
	_ = s.log.Sync()
}

// withSession opens a session, runs fn and closes the session.
func withSession(f *rootFlags, fn func(s *session) error) error {
	s, err := openSession(f)
	if err != nil {
		return err
	}
	defer s.close()
	return fn(s)
}

// Gate failures.
var (
	errSignInRequired = errors.New("sign in to browse the directory")
	errAdminRequired  = errors.New("admin or owner access required")
	errAdminOnly      = errors.New("admin access required")
	errNotYourRecord  = errors.New("only the owner of a listing or an admin may change it")
)

func (s *session) requireBrowse() error {
	if !auth.CanBrowse(s.dir.Config(), s.dir.CurrentUser()) {
		return userError(errSignInRequired)
	}
	return nil
}

func (s *session) requireAdminArea() error {
	if !auth.CanAdminister(s.dir.CurrentUser()) {
		return userError(errAdminRequired)
	}
	return nil
}

// requireAdmin checks an admin-only gate such as auth.CanManageSchema.
func (s *session) requireAdmin(gate func(*types.User) bool) error {
	if !gate(s.dir.CurrentUser()) {
		return userError(errAdminOnly)
	}
	return nil
}

func (s *session) requireRecord(id string) (types.Record, error) {
	r, err := s.dir.Record(id)
	if err != nil {
		return types.Record{}, classify(err)
	}
	if !auth.CanManageRecord(s.dir.CurrentUser(), r) {
		return types.Record{}, userError(errNotYourRecord)
	}
	return r, nil
}

// confirm lets a destructive command proceed when the decision needs no
// confirmation or the user passed --yes. Otherwise it describes what would
// happen on stderr and fails.
func confirm(cmd *cobra.Command, d app.Decision, yes bool) error {
	if !d.RequiresConfirmation || yes {
		return nil
	}
	fmt.Fprintf(cmd.ErrOrStderr(), "%s [%s]\n%s\n", d.Title, d.Danger, d.Message)
	return userError(fmt.Errorf("%s needs confirmation: rerun with --yes", d.ConfirmText))
}
