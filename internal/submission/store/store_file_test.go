package store

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"intake/internal/submission"
	"intake/pkg/platform/sentinel"
)

type FileStoreSuite struct {
	suite.Suite
	dir   string
	path  string
	store *FileStore
}

func TestFileStoreSuite(t *testing.T) {
	suite.Run(t, new(FileStoreSuite))
}

func (s *FileStoreSuite) SetupTest() {
	s.dir = s.T().TempDir()
	s.path = filepath.Join(s.dir, "data", DefaultFileName)
	s.store = NewFileStore(s.path)
}

func makeSubmission(i int) submission.Submission {
	return submission.New(submission.PersonalData{
		Name:   fmt.Sprintf("User %d", i),
		Email:  fmt.Sprintf("user%d@example.com", i),
		Age:    20 + i,
		Gender: submission.GenderOther,
	}, time.Date(2026, 1, 1, 0, 0, i, 0, time.UTC))
}

func (s *FileStoreSuite) TestFirstRun() {
	s.Run("read before any append is empty and creates nothing", func() {
		subs, err := s.store.ReadAll(context.Background())
		s.Require().NoError(err)
		s.NotNil(subs)
		s.Empty(subs)

		_, statErr := os.Stat(filepath.Dir(s.path))
		s.True(os.IsNotExist(statErr), "data directory is created lazily")
	})

	s.Run("first append creates the data directory", func() {
		s.Require().NoError(s.store.Append(context.Background(), makeSubmission(1)))

		info, err := os.Stat(s.path)
		s.Require().NoError(err)
		s.False(info.IsDir())
	})
}

func (s *FileStoreSuite) TestRoundTrip() {
	s.Run("returns every appended record in order", func() {
		const n = 5
		for i := 0; i < n; i++ {
			s.Require().NoError(s.store.Append(context.Background(), makeSubmission(i)))
		}

		subs, err := s.store.ReadAll(context.Background())
		s.Require().NoError(err)
		s.Require().Len(subs, n)
		for i, sub := range subs {
			s.Equal(makeSubmission(i), sub)
			s.NotEmpty(sub.SubmittedAt)
		}
	})

	s.Run("a fresh store over the same path sees the records", func() {
		reopened := NewFileStore(s.path)
		subs, err := reopened.ReadAll(context.Background())
		s.Require().NoError(err)
		s.Len(subs, 5)
	})
}

func (s *FileStoreSuite) TestDocumentLayout() {
	s.Require().NoError(s.store.Append(context.Background(), submission.New(submission.PersonalData{
		Name:   "John Doe",
		Email:  "john@example.com",
		Age:    30,
		Gender: submission.GenderMale,
	}, time.Date(2026, 10, 16, 9, 30, 0, 0, time.UTC))))

	raw, err := os.ReadFile(s.path)
	s.Require().NoError(err)

	expected := `[
  {
    "data": {
      "name": "John Doe",
      "email": "john@example.com",
      "age": 30,
      "gender": "male"
    },
    "submittedAt": "2026-10-16T09:30:00.000Z"
  }
]`
	s.Equal(expected, string(raw))

	entries, err := os.ReadDir(filepath.Dir(s.path))
	s.Require().NoError(err)
	s.Len(entries, 1, "no temporary files are left behind")
}

func (s *FileStoreSuite) TestExistingDocuments() {
	s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))

	s.Run("empty file reads as empty collection", func() {
		s.Require().NoError(os.WriteFile(s.path, []byte("  \n"), 0o644))
		subs, err := s.store.ReadAll(context.Background())
		s.Require().NoError(err)
		s.Empty(subs)
	})

	s.Run("null document reads as empty collection", func() {
		s.Require().NoError(os.WriteFile(s.path, []byte("null"), 0o644))
		subs, err := s.store.ReadAll(context.Background())
		s.Require().NoError(err)
		s.NotNil(subs)
		s.Empty(subs)
	})

	s.Run("appends after records written by another writer", func() {
		existing := []submission.Submission{makeSubmission(7)}
		raw, err := json.MarshalIndent(existing, "", "  ")
		s.Require().NoError(err)
		s.Require().NoError(os.WriteFile(s.path, raw, 0o644))

		s.Require().NoError(s.store.Append(context.Background(), makeSubmission(8)))

		subs, err := s.store.ReadAll(context.Background())
		s.Require().NoError(err)
		s.Equal([]submission.Submission{makeSubmission(7), makeSubmission(8)}, subs)
	})
}

func (s *FileStoreSuite) TestFailures() {
	s.Run("corrupt document is reported and left untouched", func() {
		s.Require().NoError(os.MkdirAll(filepath.Dir(s.path), 0o755))
		s.Require().NoError(os.WriteFile(s.path, []byte("{not json"), 0o644))

		_, err := s.store.ReadAll(context.Background())
		s.ErrorIs(err, sentinel.ErrInvalidState)

		err = s.store.Append(context.Background(), makeSubmission(1))
		s.ErrorIs(err, sentinel.ErrInvalidState)

		raw, readErr := os.ReadFile(s.path)
		s.Require().NoError(readErr)
		s.Equal("{not json", string(raw))
	})

	s.Run("unwritable location is reported as unavailable", func() {
		blocker := filepath.Join(s.dir, "blocker")
		s.Require().NoError(os.WriteFile(blocker, []byte("file, not directory"), 0o644))
		store := NewFileStore(filepath.Join(blocker, "data", DefaultFileName))

		err := store.Append(context.Background(), makeSubmission(1))
		s.ErrorIs(err, sentinel.ErrUnavailable)
	})

	s.Run("canceled context skips the write", func() {
		store := NewFileStore(filepath.Join(s.dir, "canceled", DefaultFileName))
		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		err := store.Append(ctx, makeSubmission(1))
		s.ErrorIs(err, context.Canceled)

		_, statErr := os.Stat(store.Path())
		s.True(os.IsNotExist(statErr))
	})
}

func (s *FileStoreSuite) TestConcurrentAppendsAreNotLost() {
	const writers = 50

	var wg sync.WaitGroup
	errs := make(chan error, writers)
	for i := 0; i < writers; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			errs <- s.store.Append(context.Background(), makeSubmission(idx))
		}(i)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		s.Require().NoError(err)
	}

	subs, err := s.store.ReadAll(context.Background())
	s.Require().NoError(err)
	s.Len(subs, writers)

	seen := make(map[string]bool, writers)
	for _, sub := range subs {
		seen[sub.Data.Email] = true
	}
	s.Len(seen, writers)
}
