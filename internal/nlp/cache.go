package nlp

import (
	"crypto/sha256"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// keyPrefix is reserved for this system's persisted models. Purging only
// ever touches keys under this prefix.
const keyPrefix = "sportiq_intent_"

// Store is the persistence contract for trained models: a key-value store
// with load/save/delete and prefix listing. Any backing store works; the
// default is JSON files in a directory.
type Store interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
	List(prefix string) ([]string, error)
}

// FileStore persists values as <key>.json files under a directory.
type FileStore struct {
	dir string
}

func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create model cache dir: %w", err)
	}
	return &FileStore{dir: dir}, nil
}

func (s *FileStore) path(key string) string {
	return filepath.Join(s.dir, key+".json")
}

func (s *FileStore) Load(key string) ([]byte, error) {
	return os.ReadFile(s.path(key))
}

func (s *FileStore) Save(key string, data []byte) error {
	return os.WriteFile(s.path(key), data, 0o644)
}

func (s *FileStore) Delete(key string) error {
	err := os.Remove(s.path(key))
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

func (s *FileStore) List(prefix string) ([]string, error) {
	entries, err := os.ReadDir(s.dir)
	if err != nil {
		return nil, err
	}
	var keys []string
	for _, e := range entries {
		name := strings.TrimSuffix(e.Name(), ".json")
		if !e.IsDir() && strings.HasSuffix(e.Name(), ".json") && strings.HasPrefix(name, prefix) {
			keys = append(keys, name)
		}
	}
	return keys, nil
}

// Signature is a deterministic fingerprint of the vocabulary token
// sequence. Identical corpora yield identical signatures; any change to
// the token set changes it.
func Signature(vocab []string) string {
	sum := sha256.Sum256([]byte(strings.Join(vocab, " ")))
	return fmt.Sprintf("%x", sum[:8])
}

func storageKey(vocab []string) string {
	return fmt.Sprintf("%sv3_%d_%s", keyPrefix, len(vocab), Signature(vocab))
}

// TrainStats reports what EnsureModel did.
type TrainStats struct {
	Accuracy float64
	Loss     float64
	Epochs   int
	CacheHit bool
	Key      string
}

// Manager owns the single active model and its persisted copies. The
// active model is replaced wholesale on signature change, never mutated.
type Manager struct {
	mu     sync.Mutex
	store  Store
	debug  bool
	model  *Model
	vocab  []string
	labels []string
	key    string
}

func NewManager(store Store, debug bool) *Manager {
	return &Manager{store: store, debug: debug}
}

type persistedModel struct {
	Key   string `json:"key"`
	Model *Model `json:"model"`
}

// EnsureModel makes a model matching the corpus signature active. A cached
// model with the current signature loads at zero training cost; otherwise
// every persisted model under the reserved prefix is purged, a fresh model
// is trained, persisted under the new signature and activated.
func (m *Manager) EnsureModel(samples []Sample) (TrainStats, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	vocab := BuildVocab(samples)
	labels := BuildLabels(samples)
	key := storageKey(vocab)

	if data, err := m.store.Load(key); err == nil {
		var cached persistedModel
		if jerr := json.Unmarshal(data, &cached); jerr == nil &&
			cached.Model != nil && cached.Model.InputDim == len(vocab) {
			m.model, m.vocab, m.labels, m.key = cached.Model, vocab, labels, key
			if m.debug {
				fmt.Printf("[nlp] loaded cached model %s\n", key)
			}
			return TrainStats{Accuracy: 1, Loss: 0, Epochs: 0, CacheHit: true, Key: key}, nil
		}
	}

	if err := m.purgeLocked(); err != nil && m.debug {
		fmt.Printf("[nlp] cache purge: %v\n", err)
	}

	model, report, err := Train(samples, vocab, labels)
	if err != nil {
		return TrainStats{}, fmt.Errorf("training failed: %w", err)
	}
	data, err := json.Marshal(persistedModel{Key: key, Model: model})
	if err != nil {
		return TrainStats{}, fmt.Errorf("failed to marshal model: %w", err)
	}
	if err := m.store.Save(key, data); err != nil {
		return TrainStats{}, fmt.Errorf("failed to persist model: %w", err)
	}
	m.model, m.vocab, m.labels, m.key = model, vocab, labels, key
	if m.debug {
		fmt.Printf("[nlp] trained model %s (val acc %.4f)\n", key, report.ValAcc)
	}
	return TrainStats{Accuracy: report.ValAcc, Loss: report.ValLoss, Epochs: report.Epochs, Key: key}, nil
}

// Classify vectorizes the text against the active vocabulary and predicts
// an intent. A shape mismatch purges every persisted model so the next
// EnsureModel call retrains from scratch; the error is still returned so
// the caller can reply with a transient-failure message for this turn.
func (m *Manager) Classify(text string) (string, float64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.model == nil {
		return "", 0, ErrModelNotReady
	}
	intent, confidence, err := m.model.Predict(Vectorize(text, m.vocab))
	if errors.Is(err, ErrShapeMismatch) {
		if m.debug {
			fmt.Printf("[nlp] shape mismatch, purging model cache: %v\n", err)
		}
		if perr := m.purgeLocked(); perr != nil && m.debug {
			fmt.Printf("[nlp] cache purge: %v\n", perr)
		}
		m.model = nil
		m.key = ""
	}
	return intent, confidence, err
}

// Key returns the active model's storage key, empty if none is active.
func (m *Manager) Key() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.key
}

func (m *Manager) purgeLocked() error {
	keys, err := m.store.List(keyPrefix)
	if err != nil {
		return err
	}
	var firstErr error
	for _, k := range keys {
		if err := m.store.Delete(k); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
