package onsave

// PrefKeyBeautifyOnSave is the persisted preference gating the on-save
// trigger. The value is stored as the literal string "true" or "false".
const PrefKeyBeautifyOnSave string = "beautify_on_save"

const (
	prefValueTrue  string = "true"
	prefValueFalse string = "false"
)

// PreferenceStore is the host's persisted key-value store. Only string
// values are exchanged.
type PreferenceStore interface {
	Get(key string) (string, bool)
	Set(key string, value string) error
}

// StateListener receives the new checked state after a toggle. The host
// wires it to its menu checkmark.
type StateListener func(enabled bool)

// MemoryStore is a non-persisting PreferenceStore, used when the
// file-backed store is unavailable and in tests.
type MemoryStore struct {
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	value, exists := s.values[key]
	return value, exists
}

func (s *MemoryStore) Set(key string, value string) error {
	s.values[key] = value
	return nil
}

// Manager gates automatic beautification on save. Saves of documents
// other than the active one never trigger reformatting of the foreground
// buffer.
type Manager struct {
	prefs   PreferenceStore
	onState StateListener
}

func NewManager(prefs PreferenceStore, onState StateListener) *Manager {
	return &Manager{
		prefs:   prefs,
		onState: onState,
	}
}

func (m *Manager) Enabled() bool {
	value, exists := m.prefs.Get(PrefKeyBeautifyOnSave)
	return exists && value == prefValueTrue
}

// Toggle flips the persisted preference and notifies the state listener.
// The listener only fires after the new value was persisted, so checkmark
// and stored value cannot diverge.
func (m *Manager) Toggle() (bool, error) {
	enabled := !m.Enabled()

	value := prefValueFalse
	if enabled {
		value = prefValueTrue
	}
	if err := m.prefs.Set(PrefKeyBeautifyOnSave, value); err != nil {
		return m.Enabled(), err
	}

	if m.onState != nil {
		m.onState(enabled)
	}

	return enabled, nil
}

// ShouldBeautify reports whether a save of savedPath must trigger
// beautification. Stale or background saves do not.
func (m *Manager) ShouldBeautify(savedPath string, activePath string) bool {
	if !m.Enabled() {
		return false
	}
	if savedPath == "" || activePath == "" {
		return false
	}
	return savedPath == activePath
}
