package storage

import (
	"context"
	"fmt"
	"os"
	"strings"
	"sync"
	"time"

	"cloud.google.com/go/firestore"
	firebase "firebase.google.com/go"
	"google.golang.org/api/option"

	"github.com/ellielalafontaine/trackmaniabottime/constants"
	"github.com/ellielalafontaine/trackmaniabottime/models"
	"github.com/ellielalafontaine/trackmaniabottime/utils"
)

// Firestore document location for the single active competition snapshot.
const (
	competitionCollection = "competitions"
	competitionDocument   = "weekly-shorts"
)

// Error recovery settings
const (
	maxReconnectAttempts = 3
	reconnectDelay       = 2 * time.Second
)

// FirestoreStorage keeps the competition snapshot in a single Firestore
// document. It exists for deployments without a persistent disk; the JSON
// file backend remains the default.
type FirestoreStorage struct {
	client         *firestore.Client
	app            *firebase.App
	ctx            context.Context
	reconnectMutex sync.Mutex
}

// firestoreSnapshot is the document layout. Firestore map fields require
// string keys, so map numbers are converted at this boundary like the file
// backend does.
type firestoreSnapshot struct {
	CurrentWeek string                    `firestore:"currentWeek"`
	PlayerNames map[string]string         `firestore:"playerNames"`
	PlayerTimes map[string]map[string]int `firestore:"playerTimes"`
	AuthorTimes map[string]int            `firestore:"authorTimes"`
	LastUpdated time.Time                 `firestore:"lastUpdated"`
}

// NewFirestoreStorage connects to Firestore using credentials from the
// environment.
func NewFirestoreStorage() (*FirestoreStorage, error) {
	utils.Info("Initializing Firestore storage backend")
	ctx := context.Background()

	creds := os.Getenv(constants.EnvFirebaseCreds)
	if creds == "" {
		return nil, fmt.Errorf("%s environment variable not set", constants.EnvFirebaseCreds)
	}

	opt := option.WithCredentialsJSON([]byte(creds))

	app, err := firebase.NewApp(ctx, nil, opt)
	if err != nil {
		return nil, fmt.Errorf("error initializing app: %v", err)
	}

	client, err := app.Firestore(ctx)
	if err != nil {
		return nil, fmt.Errorf("error initializing Firestore client: %v", err)
	}

	utils.Info("Firestore storage backend initialized successfully")
	return &FirestoreStorage{
		client: client,
		app:    app,
		ctx:    ctx,
	}, nil
}

// Load reads the competition document. A missing document yields an empty
// snapshot.
func (s *FirestoreStorage) Load() (*models.Snapshot, error) {
	var stored firestoreSnapshot
	err := s.executeWithRetry(func() error {
		doc, err := s.client.Collection(competitionCollection).Doc(competitionDocument).Get(s.ctx)
		if err != nil {
			if doc != nil && !doc.Exists() {
				return nil
			}
			return err
		}
		return doc.DataTo(&stored)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to load competition document: %w", err)
	}

	snapshot := models.EmptySnapshot()
	snapshot.CurrentWeek = stored.CurrentWeek
	snapshot.LastUpdated = stored.LastUpdated
	for id, name := range stored.PlayerNames {
		snapshot.PlayerNames[id] = name
	}
	for id, times := range stored.PlayerTimes {
		snapshot.PlayerTimes[id] = decodeMapTimes(times)
	}
	if stored.AuthorTimes != nil {
		snapshot.AuthorTimes = decodeMapTimes(stored.AuthorTimes)
	}

	return snapshot, nil
}

// Save overwrites the competition document with the full snapshot.
func (s *FirestoreStorage) Save(snapshot *models.Snapshot) error {
	stored := firestoreSnapshot{
		CurrentWeek: snapshot.CurrentWeek,
		PlayerNames: snapshot.PlayerNames,
		PlayerTimes: make(map[string]map[string]int, len(snapshot.PlayerTimes)),
		AuthorTimes: encodeMapTimes(snapshot.AuthorTimes),
		LastUpdated: snapshot.LastUpdated,
	}
	for id, times := range snapshot.PlayerTimes {
		stored.PlayerTimes[id] = encodeMapTimes(times)
	}

	return s.executeWithRetry(func() error {
		_, err := s.client.Collection(competitionCollection).Doc(competitionDocument).Set(s.ctx, stored)
		return err
	})
}

// Close releases the Firestore client.
func (s *FirestoreStorage) Close() error {
	if s.client == nil {
		return nil
	}
	return s.client.Close()
}

// executeWithRetry runs a Firestore operation, reconnecting once on
// connection-type errors.
func (s *FirestoreStorage) executeWithRetry(operation func() error) error {
	err := operation()
	if err != nil && isConnectionError(err) {
		utils.Warn("Detected Firestore connection error, attempting reconnection: %v", err)
		if reconnectErr := s.reconnect(); reconnectErr != nil {
			return fmt.Errorf("operation failed and reconnection failed: %v (original: %v)", reconnectErr, err)
		}
		return operation()
	}
	return err
}

// reconnect replaces the Firestore client, backing off between attempts.
func (s *FirestoreStorage) reconnect() error {
	s.reconnectMutex.Lock()
	defer s.reconnectMutex.Unlock()

	utils.Warn("Attempting to reconnect to Firestore")

	for attempt := 1; attempt <= maxReconnectAttempts; attempt++ {
		if s.client != nil {
			s.client.Close()
		}

		newClient, err := s.app.Firestore(s.ctx)
		if err != nil {
			utils.Warn("Firestore reconnection attempt %d/%d failed: %v", attempt, maxReconnectAttempts, err)
			if attempt < maxReconnectAttempts {
				time.Sleep(reconnectDelay * time.Duration(attempt))
			}
			continue
		}

		s.client = newClient
		utils.Info("Successfully reconnected to Firestore on attempt %d", attempt)
		return nil
	}

	return fmt.Errorf("failed to reconnect to Firestore after %d attempts", maxReconnectAttempts)
}

// isConnectionError matches the transient error shapes worth a reconnect.
func isConnectionError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "connection") ||
		strings.Contains(msg, "network") ||
		strings.Contains(msg, "timeout") ||
		strings.Contains(msg, "unavailable") ||
		strings.Contains(msg, "deadline exceeded")
}
