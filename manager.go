package cmdtree

import "sync"

// RegistrationState is the manager's three-phase lifecycle (spec §3):
// transitions are monotonic forward, Before → During → After, with
// During → After terminal unless Settings.AllowUnsafeRegistration is set.
type RegistrationState int

const (
	StateBefore RegistrationState = iota
	StateDuring
	StateAfter
)

func (s RegistrationState) String() string {
	switch s {
	case StateBefore:
		return "before"
	case StateDuring:
		return "during"
	case StateAfter:
		return "after"
	default:
		return "unknown"
	}
}

// PreProcessor runs over the raw input before tokenization/dispatch begins,
// and may transform or reject it.
type PreProcessor func(ctx *Context, input string) (string, error)

// PostProcessor runs once a parse reaches a terminal node with input
// exhausted, gating whether the handler actually runs (spec §4.4 step 7).
type PostProcessor func(ctx *Context) error

// SuggestionProcessor filters or transforms the suggestion list gathered by
// Manager.Suggest's tree walk (spec §4.6's "Filter/Map pipeline") — e.g. an
// extra prefix filter or typo-tolerance pass.
type SuggestionProcessor func(ctx *Context, suggestions []string) []string

// Manager is the orchestrator spec §2 calls "J": it owns the tree, the
// parser registry, the pre/post-processor chains, exception routing,
// settings, and the registration lifecycle.
type Manager struct {
	mu sync.RWMutex

	tree     *Tree
	registry *Registry
	settings Settings
	state    RegistrationState

	// preProcessors/postProcessors are replaced wholesale on every Add
	// call (copy-on-write), so a dispatch in flight always sees a
	// consistent snapshot even if another goroutine is registering a new
	// processor concurrently (spec §5).
	preProcessors        []PreProcessor
	postProcessors       []PostProcessor
	suggestionProcessors []SuggestionProcessor

	exceptionHandlers map[Kind]func(*Failure)
}

// NewManager constructs a Manager in lifecycle state Before, with an empty
// tree and registry.
func NewManager(opts ...SettingOption) *Manager {
	settings := DefaultSettings()
	for _, opt := range opts {
		opt(&settings)
	}

	return &Manager{
		tree:              NewTree(),
		registry:          NewRegistry(),
		settings:          settings,
		exceptionHandlers: make(map[Kind]func(*Failure)),
	}
}

// Registry returns the manager's parser registry.
func (m *Manager) Registry() *Registry {
	return m.registry
}

// Settings returns a copy of the manager's current settings.
func (m *Manager) Settings() Settings {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.settings
}

// ConfigureSettings applies opts to the manager's settings.
func (m *Manager) ConfigureSettings(opts ...SettingOption) {
	m.mu.Lock()
	defer m.mu.Unlock()

	for _, opt := range opts {
		opt(&m.settings)
	}
}

// State returns the manager's current registration lifecycle state.
func (m *Manager) State() RegistrationState {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.state
}

// Register inserts cmd's component chain into the tree. The first
// successful call transitions the manager from Before to During; calling
// Register after Finalize (state After) is rejected unless
// Settings.AllowUnsafeRegistration is set.
func (m *Manager) Register(cmd *Command) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.state == StateAfter && !m.settings.AllowUnsafeRegistration {
		return newFailure(ErrRegistrationLocked, "manager registration is locked")
	}

	if err := m.tree.Insert(cmd, m.settings.OverrideExistingCommands); err != nil {
		return err
	}

	if m.state == StateBefore {
		m.state = StateDuring
	}

	return nil
}

// DeleteRoot removes a top-level command by name, pruning any interior node
// left empty by the removal (spec §4.3's deletion rule).
func (m *Manager) DeleteRoot(name string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()

	return m.tree.DeleteRoot(name)
}

// Finalize locks registration (transitioning to state After) after running
// the build-end ambiguity check (spec §4.3). Subsequent Register calls are
// rejected unless Settings.AllowUnsafeRegistration is set.
func (m *Manager) Finalize() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := m.tree.ValidateAmbiguity(); err != nil {
		return err
	}

	m.state = StateAfter

	return nil
}

// AddPreProcessor prepends p to the pre-processor chain (LIFO: the most
// recently added processor sees the raw input first).
func (m *Manager) AddPreProcessor(p PreProcessor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.preProcessors = append([]PreProcessor{p}, m.preProcessors...)
}

// AddPostProcessor prepends p to the post-processor chain.
func (m *Manager) AddPostProcessor(p PostProcessor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.postProcessors = append([]PostProcessor{p}, m.postProcessors...)
}

// AddSuggestionProcessor prepends p to the suggestion-processor chain. Each
// processor runs once per suggestion request, always after the tree-gathering
// step (spec §4.6), and may filter or transform the list it's handed.
func (m *Manager) AddSuggestionProcessor(p SuggestionProcessor) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.suggestionProcessors = append([]SuggestionProcessor{p}, m.suggestionProcessors...)
}

func (m *Manager) snapshotProcessors() ([]PreProcessor, []PostProcessor) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.preProcessors, m.postProcessors
}

func (m *Manager) snapshotSuggestionProcessors() []SuggestionProcessor {
	m.mu.RLock()
	defer m.mu.RUnlock()

	return m.suggestionProcessors
}

// OnError installs the exception handler for kind, replacing any previous
// one (spec §7's "exception routing table"). The default handler for an
// unconfigured kind stringifies the failure via Failure.Error, doing
// nothing else.
func (m *Manager) OnError(kind Kind, handler func(*Failure)) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.exceptionHandlers[kind] = handler
}

// routeFailure runs the installed handler for f.Kind, if any, synchronously
// on the calling goroutine (spec §7: "Routing is synchronous and runs on the
// thread that produced the failure"). It always returns f unchanged, so
// callers can route-then-return in one line.
func (m *Manager) routeFailure(f *Failure) *Failure {
	if f == nil {
		return nil
	}

	m.mu.RLock()
	handler := m.exceptionHandlers[f.Kind]
	m.mu.RUnlock()

	if handler != nil {
		handler(f)
	}

	return f
}
