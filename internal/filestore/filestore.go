// Package filestore is the flat-file storage backend. A single process-wide
// mutex serializes every read-modify-write cycle and documents are persisted
// by writing a temp file and renaming it over the old one, so two racing
// requests can never produce a lost update or a torn file.
package filestore

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/bytedance/sonic"

	"github.com/altivainc/altiva/internal/services/report"
	"github.com/altivainc/altiva/internal/services/user"
)

// document is the in-memory state, holding the domain models directly.
type document struct {
	Users   []*user.User
	Reports []*report.Report
}

// storedUser is the on-disk shape of a user. The API model hides the password
// hash from JSON, so persistence needs its own struct that writes the hash out
// explicitly.
type storedUser struct {
	ID           string        `json:"id"`
	Name         string        `json:"name"`
	Email        string        `json:"email"`
	PasswordHash string        `json:"password_hash"`
	Role         user.UserRole `json:"role"`
	OrgLabel     string        `json:"org_label"`
	Picture      string        `json:"picture,omitempty"`
	CreatedAt    time.Time     `json:"created_at"`
}

// storedReport omits the client name, which is joined from users on every read.
type storedReport struct {
	ID        string    `json:"id"`
	Title     string    `json:"title"`
	ClientID  string    `json:"client_id"`
	AIContext string    `json:"ai_context"`
	Status    string    `json:"status"`
	FileURL   string    `json:"file_url"`
	CreatedAt time.Time `json:"created_at"`
}

type fileDocument struct {
	Users   []storedUser   `json:"users"`
	Reports []storedReport `json:"reports"`
}

func (d *document) toFile() *fileDocument {
	fd := &fileDocument{
		Users:   make([]storedUser, 0, len(d.Users)),
		Reports: make([]storedReport, 0, len(d.Reports)),
	}

	for _, u := range d.Users {
		fd.Users = append(fd.Users, storedUser{
			ID:           u.ID,
			Name:         u.Name,
			Email:        u.Email,
			PasswordHash: u.PasswordHash,
			Role:         u.Role,
			OrgLabel:     u.OrgLabel,
			Picture:      u.Picture,
			CreatedAt:    u.CreatedAt,
		})
	}
	for _, rep := range d.Reports {
		fd.Reports = append(fd.Reports, storedReport{
			ID:        rep.ID,
			Title:     rep.Title,
			ClientID:  rep.ClientID,
			AIContext: rep.AIContext,
			Status:    rep.Status,
			FileURL:   rep.FileURL,
			CreatedAt: rep.CreatedAt,
		})
	}

	return fd
}

func documentFromFile(fd *fileDocument) *document {
	doc := &document{}

	for _, su := range fd.Users {
		doc.Users = append(doc.Users, &user.User{
			ID:           su.ID,
			Name:         su.Name,
			Email:        su.Email,
			PasswordHash: su.PasswordHash,
			Role:         su.Role,
			OrgLabel:     su.OrgLabel,
			Picture:      su.Picture,
			CreatedAt:    su.CreatedAt,
		})
	}
	for _, sr := range fd.Reports {
		doc.Reports = append(doc.Reports, &report.Report{
			ID:        sr.ID,
			Title:     sr.Title,
			ClientID:  sr.ClientID,
			AIContext: sr.AIContext,
			Status:    sr.Status,
			FileURL:   sr.FileURL,
			CreatedAt: sr.CreatedAt,
		})
	}

	return doc
}

type Store struct {
	path string

	mu  sync.Mutex
	doc *document
}

// Open loads the document at path, creating an empty one (and its parent
// directory) if the file does not exist yet.
func Open(path string) (*Store, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return nil, fmt.Errorf("failed to create store directory: %w", err)
	}

	s := &Store{path: path, doc: &document{}}

	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read store file: %w", err)
	}

	var fd fileDocument
	if err := sonic.Unmarshal(raw, &fd); err != nil {
		return nil, fmt.Errorf("failed to parse store file: %w", err)
	}
	s.doc = documentFromFile(&fd)

	return s, nil
}

// view runs fn with the document under lock, without persisting.
func (s *Store) view(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	return fn(s.doc)
}

// update runs fn with the document under lock and persists the result. If fn
// fails nothing is written.
func (s *Store) update(fn func(doc *document) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := fn(s.doc); err != nil {
		return err
	}

	return s.persist()
}

func (s *Store) persist() error {
	raw, err := sonic.Marshal(s.doc.toFile())
	if err != nil {
		return fmt.Errorf("failed to encode store file: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".altiva-*.json")
	if err != nil {
		return fmt.Errorf("failed to create temp store file: %w", err)
	}

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write temp store file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close temp store file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace store file: %w", err)
	}

	return nil
}
