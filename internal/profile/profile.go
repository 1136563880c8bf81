// Package profile persists each captain's career across games.
package profile

import (
	"encoding/hex"
	"fmt"
	"strings"
	"sync"

	"github.com/Scrimzay/plunderpunk/pkg/logger"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

const (
	objectPrefix    = "captain_"
	profileProperty = "profile"
)

// PlayerData is the saved record of one captain.
type PlayerData struct {
	Name            string `yaml:"name" json:"name"`
	TotalPoints     int    `yaml:"totalPoints" json:"totalPoints"`
	BattlesWon      int    `yaml:"battlesWon" json:"battlesWon"`
	IslandsCaptured int    `yaml:"islandsCaptured" json:"islandsCaptured"`
	BoardGameScore  int    `yaml:"boardGameScore" json:"boardGameScore"` // best single game
	GamesPlayed     int    `yaml:"gamesPlayed" json:"gamesPlayed"`
	Victories       int    `yaml:"victories" json:"victories"`
}

// Result is what one finished game adds to a profile.
type Result struct {
	Points          int
	BattlesWon      int
	IslandsCaptured int
	Won             bool
}

// Backend is the key/value storage profiles live in. *gdata.Manager satisfies it.
type Backend interface {
	ObjectPropExists(objectKey, propKey string) bool
	LoadObjectProp(objectKey, propKey string) ([]byte, error)
	SaveObjectProp(objectKey, propKey string, data []byte) error
}

type Store struct {
	mu      sync.Mutex
	backend Backend
	log     *logrus.Entry
}

func NewStore(backend Backend) *Store {
	return &Store{
		backend: backend,
		log:     logger.Component("profile"),
	}
}

// Load returns the saved profile, or a fresh one when the captain is new.
func (s *Store) Load(name string) (PlayerData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load(name)
}

func (s *Store) load(name string) (PlayerData, error) {
	key, err := objectKey(name)
	if err != nil {
		return PlayerData{}, err
	}
	if !s.backend.ObjectPropExists(key, profileProperty) {
		return PlayerData{Name: name}, nil
	}

	data, err := s.backend.LoadObjectProp(key, profileProperty)
	if err != nil {
		return PlayerData{}, fmt.Errorf("load profile %q: %w", name, err)
	}
	var pd PlayerData
	if err := yaml.Unmarshal(data, &pd); err != nil {
		return PlayerData{}, fmt.Errorf("decode profile %q: %w", name, err)
	}
	pd.Name = name
	return pd, nil
}

func (s *Store) Save(pd PlayerData) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.save(pd)
}

func (s *Store) save(pd PlayerData) error {
	key, err := objectKey(pd.Name)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(pd)
	if err != nil {
		return fmt.Errorf("encode profile %q: %w", pd.Name, err)
	}
	if err := s.backend.SaveObjectProp(key, profileProperty, data); err != nil {
		return fmt.Errorf("save profile %q: %w", pd.Name, err)
	}
	return nil
}

// Record folds a finished game into the captain's profile and saves it.
func (s *Store) Record(name string, r Result) (PlayerData, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	pd, err := s.load(name)
	if err != nil {
		return PlayerData{}, err
	}
	pd.GamesPlayed++
	pd.TotalPoints += r.Points
	pd.BattlesWon += r.BattlesWon
	pd.IslandsCaptured += r.IslandsCaptured
	if r.Points > pd.BoardGameScore {
		pd.BoardGameScore = r.Points
	}
	if r.Won {
		pd.Victories++
	}

	if err := s.save(pd); err != nil {
		return PlayerData{}, err
	}
	s.log.WithFields(logrus.Fields{
		"player":  name,
		"points":  r.Points,
		"won":     r.Won,
		"total":   pd.TotalPoints,
		"victory": pd.Victories,
	}).Info("Profile updated")
	return pd, nil
}

// objectKey maps a display name onto a storage-safe key. Names compare
// case-insensitively, and the hex form keeps every distinct name distinct.
func objectKey(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", fmt.Errorf("player name is required")
	}
	return objectPrefix + hex.EncodeToString([]byte(strings.ToLower(name))), nil
}
