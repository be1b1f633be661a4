package editor

import (
	"sync"

	"github.com/google/uuid"

	"github.com/spotme/spotme-api/internal/domain/portfolio"
)

// Store holds the in-flight portfolio document per user and is the only
// sanctioned mutation surface for editor state. All changes go through the
// section patch commands; every applied change notifies that user's
// subscribers with a fresh snapshot. Persistence is a separate, explicit
// step (save/publish use cases).
type Store struct {
	mu      sync.RWMutex
	docs    map[uuid.UUID]*portfolio.Document
	subs    map[uuid.UUID]map[int]chan portfolio.Document
	nextSub int
}

func NewStore() *Store {
	return &Store{
		docs: make(map[uuid.UUID]*portfolio.Document),
		subs: make(map[uuid.UUID]map[int]chan portfolio.Document),
	}
}

// Set replaces the user's current document. A nil doc clears editor state.
func (s *Store) Set(userID uuid.UUID, doc *portfolio.Document) {
	s.mu.Lock()
	if doc == nil {
		delete(s.docs, userID)
		s.mu.Unlock()
		return
	}
	cloned := cloneDocument(*doc)
	s.docs[userID] = &cloned
	snapshot := cloneDocument(cloned)
	s.mu.Unlock()

	s.notify(userID, snapshot)
}

// Get returns a snapshot of the user's current document. Mutating the
// returned value does not affect store state.
func (s *Store) Get(userID uuid.UUID) (portfolio.Document, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	doc, ok := s.docs[userID]
	if !ok {
		return portfolio.Document{}, false
	}
	return cloneDocument(*doc), true
}

// Subscribe registers a listener for the user's document changes. The
// returned cancel func must be called when the listener goes away; slow
// consumers skip intermediate snapshots rather than block the writer.
func (s *Store) Subscribe(userID uuid.UUID) (<-chan portfolio.Document, func()) {
	ch := make(chan portfolio.Document, 1)

	s.mu.Lock()
	id := s.nextSub
	s.nextSub++
	if s.subs[userID] == nil {
		s.subs[userID] = make(map[int]chan portfolio.Document)
	}
	s.subs[userID][id] = ch
	s.mu.Unlock()

	cancel := func() {
		s.mu.Lock()
		if subs, ok := s.subs[userID]; ok {
			delete(subs, id)
			if len(subs) == 0 {
				delete(s.subs, userID)
			}
		}
		s.mu.Unlock()
	}
	return ch, cancel
}

func (s *Store) notify(userID uuid.UUID, snapshot portfolio.Document) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, ch := range s.subs[userID] {
		select {
		case ch <- snapshot:
		default:
			// drop the stale snapshot; a newer one is already pending
			select {
			case <-ch:
			default:
			}
			select {
			case ch <- snapshot:
			default:
			}
		}
	}
}

// apply runs f against the user's current document under the write lock and
// notifies subscribers. No-op when no document is loaded.
func (s *Store) apply(userID uuid.UUID, f func(doc *portfolio.Document)) (portfolio.Document, bool) {
	s.mu.Lock()
	doc, ok := s.docs[userID]
	if !ok {
		s.mu.Unlock()
		return portfolio.Document{}, false
	}
	f(doc)
	snapshot := cloneDocument(*doc)
	s.mu.Unlock()

	s.notify(userID, snapshot)
	return snapshot, true
}

func (s *Store) UpdateHero(userID uuid.UUID, patch HeroPatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.Hero == nil {
			doc.Hero = &portfolio.Hero{}
		}
		h := doc.Hero
		if patch.Name != nil {
			h.Name = *patch.Name
		}
		if patch.Title != nil {
			h.Title = *patch.Title
		}
		if patch.AvatarURL != nil {
			h.AvatarURL = *patch.AvatarURL
		}
		if patch.AvatarSize != nil {
			h.AvatarSize = *patch.AvatarSize
		}
		if patch.AvatarShape != nil {
			h.AvatarShape = *patch.AvatarShape
		}
		if patch.CTAText != nil {
			h.CTAText = *patch.CTAText
		}
		if patch.CTAURL != nil {
			h.CTAURL = *patch.CTAURL
		}
		if h.AvatarSize == 0 {
			h.AvatarSize = portfolio.DefaultAvatarSize
		}
		if h.AvatarShape == "" {
			h.AvatarShape = portfolio.DefaultAvatarShape
		}
	})
}

func (s *Store) UpdateAbout(userID uuid.UUID, patch AboutPatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.About == nil {
			doc.About = &portfolio.About{}
		}
		if patch.Bio != nil {
			doc.About.Bio = *patch.Bio
		}
		if patch.Mission != nil {
			doc.About.Mission = *patch.Mission
		}
	})
}

func (s *Store) UpdateSkills(userID uuid.UUID, patch SkillsPatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.Skills == nil {
			doc.Skills = &portfolio.Skills{Items: []portfolio.Skill{}}
		}
		if patch.Items != nil {
			doc.Skills.Items = append([]portfolio.Skill(nil), *patch.Items...)
		}
	})
}

func (s *Store) UpdateProjects(userID uuid.UUID, patch ProjectsPatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.Projects == nil {
			doc.Projects = &portfolio.Projects{Items: []portfolio.Project{}}
		}
		if patch.Items != nil {
			doc.Projects.Items = append([]portfolio.Project(nil), *patch.Items...)
		}
	})
}

func (s *Store) UpdateContact(userID uuid.UUID, patch ContactPatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.Contact == nil {
			doc.Contact = &portfolio.Contact{SocialLinks: []portfolio.SocialLink{}}
		}
		if patch.Email != nil {
			doc.Contact.Email = *patch.Email
		}
		if patch.Phone != nil {
			doc.Contact.Phone = *patch.Phone
		}
		if patch.SocialLinks != nil {
			doc.Contact.SocialLinks = append([]portfolio.SocialLink(nil), *patch.SocialLinks...)
		}
	})
}

func (s *Store) UpdateTheme(userID uuid.UUID, patch ThemePatch) (portfolio.Document, bool) {
	return s.apply(userID, func(doc *portfolio.Document) {
		if doc.Theme == nil {
			doc.Theme = &portfolio.Theme{}
		}
		t := doc.Theme
		if patch.Mode != nil {
			t.Mode = *patch.Mode
		}
		if patch.PrimaryColor != nil {
			t.PrimaryColor = *patch.PrimaryColor
		}
		if patch.SecondaryColor != nil {
			t.SecondaryColor = *patch.SecondaryColor
		}
		if patch.AccentColor != nil {
			t.AccentColor = *patch.AccentColor
		}
		if patch.FontFamily != nil {
			t.FontFamily = *patch.FontFamily
		}
		if patch.DarkOpacity != nil {
			t.DarkOpacity = *patch.DarkOpacity
		}
	})
}

func cloneDocument(doc portfolio.Document) portfolio.Document {
	out := portfolio.Document{}
	if doc.Hero != nil {
		h := *doc.Hero
		out.Hero = &h
	}
	if doc.About != nil {
		a := *doc.About
		out.About = &a
	}
	if doc.Skills != nil {
		out.Skills = &portfolio.Skills{Items: append([]portfolio.Skill(nil), doc.Skills.Items...)}
	}
	if doc.Projects != nil {
		out.Projects = &portfolio.Projects{Items: append([]portfolio.Project(nil), doc.Projects.Items...)}
	}
	if doc.Contact != nil {
		c := *doc.Contact
		c.SocialLinks = append([]portfolio.SocialLink(nil), doc.Contact.SocialLinks...)
		out.Contact = &c
	}
	if doc.Theme != nil {
		t := *doc.Theme
		out.Theme = &t
	}
	return out
}
