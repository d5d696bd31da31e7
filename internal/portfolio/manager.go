// Package portfolio provides cached, structured access to the portfolio
// content records and builds the assistant's knowledge base from them.
package portfolio

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/wastrilith2k/portfolio-assistant/internal/knowledge"
	"github.com/wastrilith2k/portfolio-assistant/internal/storage"
)

// RecordStore defines the storage operations the Manager needs.
// Implemented by storage.Store.
type RecordStore interface {
	SaveRecord(kind, id, data string) error
	LoadRecord(kind, id string) (storage.Record, error)
	LoadKind(kind string) ([]storage.Record, error)
	DeleteRecord(kind, id string) error
}

// Clock abstracts time for testability.
type Clock interface {
	Now() time.Time
}

type realClock struct{}

func (realClock) Now() time.Time { return time.Now() }

// view is one consistent snapshot of the stored content.
type view struct {
	profile  Profile
	skills   []Skill
	projects []Project
	override string
	kb       knowledge.Base
}

// Manager reads portfolio content from the store with a short-lived cache and
// falls back to the static defaults when records are absent or the store
// errors. It never writes through a read path; seeding is explicit.
type Manager struct {
	store RecordStore
	clock Clock
	ttl   time.Duration

	mu       sync.RWMutex
	cached   *view
	cachedAt time.Time
}

// NewManager creates a Manager with a 60-second cache TTL.
func NewManager(store RecordStore) *Manager {
	return &Manager{
		store: store,
		clock: realClock{},
		ttl:   60 * time.Second,
	}
}

// NewManagerWithClock creates a Manager with a custom clock (for testing).
func NewManagerWithClock(store RecordStore, clock Clock, ttl time.Duration) *Manager {
	return &Manager{store: store, clock: clock, ttl: ttl}
}

// KnowledgeBase returns the knowledge base assembled from stored content,
// with the static defaults filling any gaps.
func (m *Manager) KnowledgeBase() knowledge.Base {
	return m.snapshot().kb
}

// Override returns the chatbot-context override text. Empty means "use the
// default persona and knowledge rendering", never "empty knowledge base".
func (m *Manager) Override() string {
	return m.snapshot().override
}

// Profile returns the stored profile, or the static default.
func (m *Manager) Profile() Profile {
	return m.snapshot().profile
}

// Skills returns the stored skills inventory, or the static defaults.
func (m *Manager) Skills() []Skill {
	s := m.snapshot().skills
	out := make([]Skill, len(s))
	copy(out, s)
	return out
}

// Projects returns the stored project list, or the static defaults.
func (m *Manager) Projects() []Project {
	p := m.snapshot().projects
	out := make([]Project, len(p))
	copy(out, p)
	return out
}

func (m *Manager) snapshot() view {
	m.mu.RLock()
	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		v := *m.cached
		m.mu.RUnlock()
		return v
	}
	m.mu.RUnlock()

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.cached != nil && m.clock.Now().Before(m.cachedAt.Add(m.ttl)) {
		return *m.cached
	}

	v := m.load()
	m.cached = &v
	m.cachedAt = m.clock.Now()
	return v
}

// load fetches the four record kinds concurrently and merges them over the
// defaults. Store failures degrade to the static defaults, never to an error.
func (m *Manager) load() view {
	v := view{
		profile:  DefaultProfile(),
		skills:   DefaultSkills(),
		projects: DefaultProjects(),
	}

	var (
		g            errgroup.Group
		prof         *Profile
		skills       []Skill
		projects     []Project
		overrideText string
	)

	g.Go(func() error {
		rec, err := m.store.LoadRecord(storage.KindProfile, storage.SingletonID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading profile: %w", err)
		}
		var p Profile
		if err := json.Unmarshal([]byte(rec.Data), &p); err != nil {
			return fmt.Errorf("decoding profile: %w", err)
		}
		prof = &p
		return nil
	})

	g.Go(func() error {
		records, err := m.store.LoadKind(storage.KindSkill)
		if err != nil {
			return fmt.Errorf("loading skills: %w", err)
		}
		for _, rec := range records {
			var s Skill
			if err := json.Unmarshal([]byte(rec.Data), &s); err != nil {
				return fmt.Errorf("decoding skill %s: %w", rec.ID, err)
			}
			s.ID = rec.ID
			skills = append(skills, s)
		}
		return nil
	})

	g.Go(func() error {
		records, err := m.store.LoadKind(storage.KindProject)
		if err != nil {
			return fmt.Errorf("loading projects: %w", err)
		}
		for _, rec := range records {
			var p Project
			if err := json.Unmarshal([]byte(rec.Data), &p); err != nil {
				return fmt.Errorf("decoding project %s: %w", rec.ID, err)
			}
			p.ID = rec.ID
			projects = append(projects, p)
		}
		return nil
	})

	g.Go(func() error {
		rec, err := m.store.LoadRecord(storage.KindChatbotContext, storage.SingletonID)
		if errors.Is(err, storage.ErrNotFound) {
			return nil
		}
		if err != nil {
			return fmt.Errorf("loading chatbot context: %w", err)
		}
		overrideText = rec.Data
		return nil
	})

	if err := g.Wait(); err != nil {
		slog.Warn("content store unavailable, serving static defaults", "error", err)
		v.kb = m.assemble(v)
		return v
	}

	if prof != nil {
		v.profile = *prof
	}
	if len(skills) > 0 {
		v.skills = skills
	}
	if len(projects) > 0 {
		v.projects = projects
	}
	v.override = overrideText
	v.kb = m.assemble(v)
	return v
}

// assemble overlays the editable records onto the static knowledge base.
// Facets without a stored counterpart (work history, education, interests)
// come from the defaults unchanged.
func (m *Manager) assemble(v view) knowledge.Base {
	kb := knowledge.Default()
	applyProfile(&kb, v.profile)
	kb.TechnicalSkills = skillAreas(v.skills)
	kb.Projects = knowledgeProjects(v.projects)
	return kb
}

// Invalidate drops the cached snapshot.
func (m *Manager) Invalidate() {
	m.mu.Lock()
	m.cached = nil
	m.mu.Unlock()
}

// --- Writes (all invalidate the cache) ---

// SetProfile persists the profile document.
func (m *Manager) SetProfile(p Profile) error {
	return m.saveJSON(storage.KindProfile, storage.SingletonID, p)
}

// AddSkill persists a new skill record, assigning an ID when absent.
func (m *Manager) AddSkill(s Skill) (Skill, error) {
	if s.ID == "" {
		s.ID = uuid.New().String()
	}
	if err := m.saveJSON(storage.KindSkill, s.ID, s); err != nil {
		return Skill{}, err
	}
	return s, nil
}

// UpdateSkill replaces an existing skill record.
func (m *Manager) UpdateSkill(id string, s Skill) error {
	if _, err := m.store.LoadRecord(storage.KindSkill, id); err != nil {
		return err
	}
	s.ID = id
	return m.saveJSON(storage.KindSkill, id, s)
}

// DeleteSkill removes a skill record.
func (m *Manager) DeleteSkill(id string) error {
	return m.deleteRecord(storage.KindSkill, id)
}

// AddProject persists a new project record, assigning an ID when absent.
func (m *Manager) AddProject(p Project) (Project, error) {
	if p.ID == "" {
		p.ID = uuid.New().String()
	}
	if err := m.saveJSON(storage.KindProject, p.ID, p); err != nil {
		return Project{}, err
	}
	return p, nil
}

// UpdateProject replaces an existing project record.
func (m *Manager) UpdateProject(id string, p Project) error {
	if _, err := m.store.LoadRecord(storage.KindProject, id); err != nil {
		return err
	}
	p.ID = id
	return m.saveJSON(storage.KindProject, id, p)
}

// DeleteProject removes a project record.
func (m *Manager) DeleteProject(id string) error {
	return m.deleteRecord(storage.KindProject, id)
}

// SetOverride stores the chatbot-context override text verbatim.
func (m *Manager) SetOverride(text string) error {
	if err := m.store.SaveRecord(storage.KindChatbotContext, storage.SingletonID, text); err != nil {
		return fmt.Errorf("saving chatbot context: %w", err)
	}
	m.Invalidate()
	return nil
}

// AppendOverride extends the current override text, starting one when empty.
func (m *Manager) AppendOverride(text string) error {
	current := m.Override()
	if current != "" {
		text = current + "\n\n" + text
	}
	return m.SetOverride(text)
}

// ClearOverride removes the override so the default rendering applies again.
func (m *Manager) ClearOverride() error {
	err := m.store.DeleteRecord(storage.KindChatbotContext, storage.SingletonID)
	if err != nil && !errors.Is(err, storage.ErrNotFound) {
		return fmt.Errorf("clearing chatbot context: %w", err)
	}
	m.Invalidate()
	return nil
}

// Seed writes the static defaults into the store for every record kind that
// has no stored document yet. It never overwrites existing content.
func (m *Manager) Seed() error {
	if _, err := m.store.LoadRecord(storage.KindProfile, storage.SingletonID); errors.Is(err, storage.ErrNotFound) {
		if err := m.SetProfile(DefaultProfile()); err != nil {
			return err
		}
	} else if err != nil {
		return fmt.Errorf("checking profile: %w", err)
	}

	existing, err := m.store.LoadKind(storage.KindSkill)
	if err != nil {
		return fmt.Errorf("checking skills: %w", err)
	}
	if len(existing) == 0 {
		for _, s := range DefaultSkills() {
			if _, err := m.AddSkill(s); err != nil {
				return err
			}
		}
	}

	existing, err = m.store.LoadKind(storage.KindProject)
	if err != nil {
		return fmt.Errorf("checking projects: %w", err)
	}
	if len(existing) == 0 {
		for _, p := range DefaultProjects() {
			if _, err := m.AddProject(p); err != nil {
				return err
			}
		}
	}

	m.Invalidate()
	return nil
}

func (m *Manager) saveJSON(kind, id string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("marshaling %s %s: %w", kind, id, err)
	}
	if err := m.store.SaveRecord(kind, id, string(data)); err != nil {
		return fmt.Errorf("saving %s %s: %w", kind, id, err)
	}
	m.Invalidate()
	return nil
}

func (m *Manager) deleteRecord(kind, id string) error {
	if err := m.store.DeleteRecord(kind, id); err != nil {
		return err
	}
	m.Invalidate()
	return nil
}
